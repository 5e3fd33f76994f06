// internal/auth/models.go

package auth

import "time"

// User is an account on the platform. Profile data lives in the
// profile package; this record only carries identity and credentials.
type User struct {
	ID                int64     `json:"id" db:"id"`
	Email             *string   `json:"email" db:"email"` // nullable for phone-only users
	Phone             *string   `json:"phone" db:"phone"` // nullable for email-only users
	PasswordHash      *string   `json:"-" db:"password_hash"`
	Provider          string    `json:"provider" db:"provider"` // 'local' or 'google'
	ProviderID        *string   `json:"provider_id,omitempty" db:"provider_id"`
	Role              string    `json:"role" db:"role"` // 'member' or 'admin'
	IsVerified        bool      `json:"is_verified" db:"is_verified"`
	IsProfileComplete bool      `json:"is_profile_complete" db:"is_profile_complete"`
	IsBlocked         bool      `json:"is_blocked" db:"is_blocked"`
	BlockedReason     *string   `json:"-" db:"blocked_reason"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Session is an active signed-in device
type Session struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Token        string    `json:"token" db:"token"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	DeviceInfo   *string   `json:"device_info,omitempty" db:"device_info"`
	IPAddress    *string   `json:"ip_address,omitempty" db:"ip_address"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email           *string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone           *string `json:"phone" validate:"required_without=Email,omitempty,e164"`
	Password        string  `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	AcceptTerms     bool    `json:"accept_terms" validate:"required"`
}

// LoginRequest handles both email and phone login
type LoginRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// GoogleAuthRequest for OAuth signin/signup
type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"` // Google ID token from frontend
}

// RefreshTokenRequest to get a new access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest for signed-in password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=100"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
