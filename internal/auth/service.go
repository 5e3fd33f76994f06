// internal/auth/service.go
// Business logic for registration, login and session management

package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/nkrishnan/sambandh-backend/internal/common/utils"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountBlocked     = errors.New("account has been blocked")
)

const tokenIssuer = "sambandh-backend"

// Welcomer greets newly registered accounts. Implemented by the
// notification service; a nil Welcomer disables the greeting.
type Welcomer interface {
	NotifyWelcome(ctx context.Context, userID int64)
}

type Service interface {
	// Registration and authentication
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GoogleAuth(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error)

	// Token management
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	// Session management
	Logout(ctx context.Context, token string) error
	LogoutAllDevices(ctx context.Context, userID int64) error

	// Account management
	ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error
	MarkProfileComplete(ctx context.Context, userID int64, complete bool) error

	// User queries
	GetUserByID(ctx context.Context, userID int64) (*User, error)

	// SetWelcomer wires the notification service after construction
	SetWelcomer(welcomer Welcomer)
}

// Config holds service configuration
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
	GoogleClientID     string
}

type service struct {
	repo     Repository
	redis    *redis.Client
	config   *Config
	welcomer Welcomer
}

func NewService(repo Repository, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

func (s *service) SetWelcomer(welcomer Welcomer) {
	s.welcomer = welcomer
}

// Register creates a new local account and signs it in
func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	var normalizedEmail *string
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		normalizedEmail = &email

		if taken, err := s.repo.IsEmailTaken(ctx, email); err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		} else if taken {
			return nil, ErrEmailAlreadyExists
		}
	}

	var normalizedPhone *string
	if req.Phone != nil && *req.Phone != "" {
		normalizedPhone = req.Phone

		if taken, err := s.repo.IsPhoneTaken(ctx, *req.Phone); err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		} else if taken {
			return nil, ErrPhoneAlreadyExists
		}
	}

	if normalizedEmail == nil && normalizedPhone == nil {
		return nil, errors.New("either email or phone number is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashedPasswordStr := string(hashedPassword)

	user := &User{
		Email:        normalizedEmail,
		Phone:        normalizedPhone,
		PasswordHash: &hashedPasswordStr,
		Provider:     "local",
		Role:         "member",
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.welcomer != nil {
		s.welcomer.NotifyWelcome(ctx, user.ID)
	}

	return s.createAuthSession(ctx, user)
}

// Login authenticates a local account by email or phone
func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var user *User
	var err error

	if isEmail(req.EmailOrPhone) {
		user, err = s.repo.GetUserByEmail(ctx, strings.ToLower(req.EmailOrPhone))
	} else if isPhone(req.EmailOrPhone) {
		user, err = s.repo.GetUserByPhone(ctx, req.EmailOrPhone)
	} else {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	if user.PasswordHash == nil {
		return nil, errors.New("this account uses social login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAttempt(ctx, req.EmailOrPhone)
		return nil, ErrInvalidCredentials
	}
	s.clearFailedAttempts(ctx, req.EmailOrPhone)

	return s.createAuthSession(ctx, user)
}

// GoogleAuth verifies a Google ID token, creating the account on first
// sign-in
func (s *service) GoogleAuth(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	tokenInfo, err := oauth2Service.Tokeninfo().IdToken(req.IDToken).Do()
	if err != nil {
		return nil, fmt.Errorf("invalid Google token: %w", err)
	}

	if s.config.GoogleClientID != "" && tokenInfo.Audience != s.config.GoogleClientID {
		return nil, errors.New("Google token issued for a different application")
	}

	user, err := s.repo.GetUserByEmail(ctx, tokenInfo.Email)
	if err == ErrUserNotFound {
		user = &User{
			Email:      &tokenInfo.Email,
			Provider:   "google",
			ProviderID: &tokenInfo.UserId,
			Role:       "member",
			IsVerified: true, // Google accounts are pre-verified
		}

		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		if s.welcomer != nil {
			s.welcomer.NotifyWelcome(ctx, user.ID)
		}
	} else if err != nil {
		return nil, err
	} else if user.Provider == "local" {
		user.Provider = "google"
		user.ProviderID = &tokenInfo.UserId
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	return s.createAuthSession(ctx, user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	return s.createAuthSession(ctx, user)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	return utils.ValidateJWT(token, s.config.JWTSecret)
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSessionByToken(ctx, token)
}

func (s *service) LogoutAllDevices(ctx context.Context, userID int64) error {
	return s.repo.DeleteUserSessions(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == nil {
		return errors.New("this account uses social login")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.config.BCryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hashedPasswordStr := string(hashedPassword)
	user.PasswordHash = &hashedPasswordStr

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Other devices must sign in again with the new password
	return s.repo.DeleteUserSessions(ctx, userID)
}

func (s *service) MarkProfileComplete(ctx context.Context, userID int64, complete bool) error {
	return s.repo.MarkProfileComplete(ctx, userID, complete)
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// Helper functions

func (s *service) createAuthSession(ctx context.Context, user *User) (*AuthResponse, error) {
	accessToken, err := s.generateToken(user, "access", s.config.AccessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(user, "refresh", s.config.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.config.AccessTokenExpiry),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenExpiry.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func (s *service) generateToken(user *User, tokenType string, expiry time.Duration) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	claims := &utils.JWTClaims{
		UserID:    user.ID,
		Email:     email,
		Type:      tokenType,
		ExpiresAt: time.Now().Add(expiry).Unix(),
		IssuedAt:  time.Now().Unix(),
		NotBefore: time.Now().Unix(),
		Issuer:    tokenIssuer,
		Subject:   fmt.Sprintf("%d", user.ID),
	}

	return utils.GenerateJWT(claims, s.config.JWTSecret)
}

func (s *service) recordFailedAttempt(ctx context.Context, identifier string) {
	if s.redis == nil {
		return
	}
	key := fmt.Sprintf("failed:%s", identifier)
	s.redis.Incr(ctx, key)
	s.redis.Expire(ctx, key, 15*time.Minute)
}

func (s *service) clearFailedAttempts(ctx context.Context, identifier string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, fmt.Sprintf("failed:%s", identifier))
}

func isEmail(input string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(input)
}

func isPhone(input string) bool {
	phoneRegex := regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	return phoneRegex.MatchString(input)
}
