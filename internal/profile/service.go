// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/nkrishnan/sambandh-backend/internal/common/storage"
)

var (
	ErrProfileExists    = errors.New("profile already exists")
	ErrUnderage         = errors.New("members must be at least 18 years old")
	ErrInvalidBirthDate = errors.New("invalid date of birth")
	ErrProfileHidden    = errors.New("this profile is not available")
)

// AccountSync propagates profile completion onto the account record.
// Implemented by the auth service.
type AccountSync interface {
	MarkProfileComplete(ctx context.Context, userID int64, complete bool) error
}

type Service interface {
	SetupProfile(ctx context.Context, userID int64, req *ProfileSetupRequest) (*Profile, error)
	GetMyProfile(ctx context.Context, userID int64) (*Profile, error)
	GetProfile(ctx context.Context, viewerID, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	UploadProfilePicture(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error)
	GetCompletion(ctx context.Context, userID int64) (*ProfileCompletion, error)
	Search(ctx context.Context, userID int64, filter *SearchFilter) ([]*Profile, error)
	SetActive(ctx context.Context, userID int64, active bool) error
	DeleteProfile(ctx context.Context, userID int64) error
}

type service struct {
	repo     Repository
	uploads  storage.UploadService
	accounts AccountSync
}

func NewService(repo Repository, uploads storage.UploadService, accounts AccountSync) Service {
	return &service{repo: repo, uploads: uploads, accounts: accounts}
}

func (s *service) SetupProfile(ctx context.Context, userID int64, req *ProfileSetupRequest) (*Profile, error) {
	if _, err := s.repo.GetProfileByUserID(ctx, userID); err == nil {
		return nil, ErrProfileExists
	} else if err != ErrProfileNotFound {
		return nil, err
	}

	dob, err := parseBirthDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		UserID:      userID,
		FullName:    req.FullName,
		Gender:      req.Gender,
		DateOfBirth: dob,
		IsActive:    true,
	}
	if req.Religion != "" {
		profile.Religion = &req.Religion
	}
	if req.Community != "" {
		profile.Community = &req.Community
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	profile.ComputeAge()
	return profile, nil
}

func (s *service) GetMyProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

// GetProfile returns another member's profile. Hidden or blocked
// profiles are indistinguishable from missing ones to the viewer.
func (s *service) GetProfile(ctx context.Context, viewerID, userID int64) (*Profile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if viewerID != userID && (!profile.IsActive || profile.IsBlocked) {
		return nil, ErrProfileHidden
	}

	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := parseBirthDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		dob = &parsed
	}

	profile, err := s.repo.UpdateProfile(ctx, userID, req, dob)
	if err != nil {
		return nil, err
	}

	s.refreshCompletion(ctx, profile)
	return profile, nil
}

func (s *service) UploadProfilePicture(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.uploads.UploadFile(ctx, file, header, "profiles")
	if err != nil {
		return "", fmt.Errorf("failed to upload picture: %w", err)
	}

	if err := s.repo.UpdateProfilePicture(ctx, userID, url); err != nil {
		return "", err
	}

	if profile, err := s.repo.GetProfileByUserID(ctx, userID); err == nil {
		s.refreshCompletion(ctx, profile)
	}

	return url, nil
}

func (s *service) GetCompletion(ctx context.Context, userID int64) (*ProfileCompletion, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return computeCompletion(profile), nil
}

func (s *service) Search(ctx context.Context, userID int64, filter *SearchFilter) ([]*Profile, error) {
	return s.repo.SearchProfiles(ctx, userID, filter)
}

func (s *service) SetActive(ctx context.Context, userID int64, active bool) error {
	return s.repo.SetActive(ctx, userID, active)
}

func (s *service) DeleteProfile(ctx context.Context, userID int64) error {
	return s.repo.DeleteProfile(ctx, userID)
}

// refreshCompletion recomputes the completion flag and mirrors it on
// the account record so auth middleware can gate matching features
func (s *service) refreshCompletion(ctx context.Context, profile *Profile) {
	completion := computeCompletion(profile)
	complete := len(completion.Missing) == 0

	if complete == profile.IsProfileComplete {
		return
	}

	if err := s.repo.SetProfileComplete(ctx, profile.UserID, complete); err != nil {
		log.Printf("profile: failed to update completion for user %d: %v", profile.UserID, err)
		return
	}
	profile.IsProfileComplete = complete

	if s.accounts != nil {
		if err := s.accounts.MarkProfileComplete(ctx, profile.UserID, complete); err != nil {
			log.Printf("profile: failed to sync completion to account %d: %v", profile.UserID, err)
		}
	}
}

// computeCompletion walks the sections a serious matrimony profile
// needs. The basics from setup always count as completed.
func computeCompletion(p *Profile) *ProfileCompletion {
	type section struct {
		name   string
		filled bool
	}

	sections := []section{
		{"basic_details", p.FullName != "" && p.Gender != "" && !p.DateOfBirth.IsZero()},
		{"about", p.About != nil && *p.About != ""},
		{"profile_picture", p.ProfilePicture != nil},
		{"height", p.Height != nil},
		{"marital_status", p.MaritalStatus != nil},
		{"education", p.Education != nil},
		{"profession", p.Profession != nil},
		{"annual_income", p.AnnualIncome != nil},
		{"location", p.CurrentCity != nil},
		{"lifestyle", p.Diet != nil},
		{"community", p.Community != nil},
		{"mother_tongue", p.MotherTongue != nil},
		{"partner_preferences", p.Preferences != nil},
	}

	completion := &ProfileCompletion{}
	for _, sec := range sections {
		if sec.filled {
			completion.Completed = append(completion.Completed, sec.name)
		} else {
			completion.Missing = append(completion.Missing, sec.name)
		}
	}
	completion.Percentage = len(completion.Completed) * 100 / len(sections)

	return completion
}

func parseBirthDate(value string) (time.Time, error) {
	dob, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidBirthDate
	}

	probe := Profile{DateOfBirth: dob}
	if probe.AgeAt(time.Now()) < 18 {
		return time.Time{}, ErrUnderage
	}

	return dob, nil
}
