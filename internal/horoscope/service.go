// internal/horoscope/service.go

package horoscope

import (
	"context"
	"errors"
	"time"

	"github.com/nkrishnan/sambandh-backend/internal/match"
)

var (
	ErrHoroscopeExists     = errors.New("horoscope already exists for this user")
	ErrOwnHoroscopeMissing = errors.New("please complete your horoscope details first")
	ErrPartnerChartMissing = errors.New("partner has not provided horoscope details")
)

type Service interface {
	Save(ctx context.Context, userID int64, req *SaveHoroscopeRequest) (*Horoscope, error)
	Get(ctx context.Context, userID int64) (*Horoscope, error)
	Update(ctx context.Context, userID int64, req *SaveHoroscopeRequest) (*Horoscope, error)
	Delete(ctx context.Context, userID int64) error
	SetKundliImage(ctx context.Context, userID int64, imageURL string) error
	Match(ctx context.Context, userID, partnerUserID int64) (*MatchReport, error)
}

// MatchReport bundles the score, per-factor breakdown and the chart
// summaries for display
type MatchReport struct {
	Result       *MatchResult     `json:"result"`
	Assessment   match.Assessment `json:"assessment"`
	UserChart    ChartSummary     `json:"user_horoscope"`
	PartnerChart ChartSummary     `json:"partner_horoscope"`
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Save(ctx context.Context, userID int64, req *SaveHoroscopeRequest) (*Horoscope, error) {
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil, ErrHoroscopeExists
	} else if err != ErrHoroscopeNotFound {
		return nil, err
	}

	chart, err := s.derive(req)
	if err != nil {
		return nil, err
	}

	chart.UserID = userID
	if err := s.repo.Create(ctx, chart); err != nil {
		return nil, err
	}

	RecordChartDerived(chart.Rashi)
	return chart, nil
}

func (s *service) Get(ctx context.Context, userID int64) (*Horoscope, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update recomputes the chart in full from the submitted birth details
// and replaces the stored record. Derived fields are never patched
// individually.
func (s *service) Update(ctx context.Context, userID int64, req *SaveHoroscopeRequest) (*Horoscope, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	chart, err := s.derive(req)
	if err != nil {
		return nil, err
	}

	chart.UserID = userID
	chart.KundliImage = existing.KundliImage
	if err := s.repo.Replace(ctx, chart); err != nil {
		return nil, err
	}

	return chart, nil
}

func (s *service) Delete(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

func (s *service) SetKundliImage(ctx context.Context, userID int64, imageURL string) error {
	return s.repo.UpdateKundliImage(ctx, userID, imageURL)
}

// Match scores the caller's chart against a partner's. A missing chart
// on either side is a precondition failure with its own error, distinct
// from any scoring problem.
func (s *service) Match(ctx context.Context, userID, partnerUserID int64) (*MatchReport, error) {
	userChart, err := s.repo.GetByUserID(ctx, userID)
	if err == ErrHoroscopeNotFound {
		return nil, ErrOwnHoroscopeMissing
	}
	if err != nil {
		return nil, err
	}

	partnerChart, err := s.repo.GetByUserID(ctx, partnerUserID)
	if err == ErrHoroscopeNotFound {
		return nil, ErrPartnerChartMissing
	}
	if err != nil {
		return nil, err
	}

	result := MatchScore(userChart, partnerChart)
	RecordMatchScore(result.Total)

	return &MatchReport{
		Result:       result,
		Assessment:   match.Classify(result.Total, match.ScaleGuna),
		UserChart:    userChart.Summary(),
		PartnerChart: partnerChart.Summary(),
	}, nil
}

func (s *service) derive(req *SaveHoroscopeRequest) (*Horoscope, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrMissingBirthDetails
	}

	return Derive(BirthDetails{
		DateOfBirth:  dob,
		TimeOfBirth:  req.TimeOfBirth,
		PlaceOfBirth: req.PlaceOfBirth,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
}
