package horoscope

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Horoscope is a member's astrological chart, owned 1:1 by the user.
// It is computed once from the birth details and fully recomputed
// whenever any birth field changes.
type Horoscope struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	DateOfBirth   time.Time `json:"date_of_birth" db:"date_of_birth"`
	TimeOfBirth   string    `json:"time_of_birth" db:"time_of_birth"` // HH:MM, 24h
	PlaceOfBirth  string    `json:"place_of_birth" db:"place_of_birth"`
	Latitude      *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64  `json:"longitude,omitempty" db:"longitude"`

	// Derived fields
	Rashi         string           `json:"rashi" db:"rashi"`
	Nakshatra     string           `json:"nakshatra" db:"nakshatra"`
	NakshatraPada int              `json:"nakshatra_pada" db:"nakshatra_pada"` // 1-4
	Manglik       bool             `json:"manglik" db:"manglik"`
	Planets       PlanetPlacements `json:"planets" db:"planets"`
	MatchPoints   int              `json:"match_points" db:"match_points"` // base guna points, 0-36

	KundliImage   *string   `json:"kundli_image,omitempty" db:"kundli_image"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PlanetPlacements maps each of the 9 planets to a rashi. Stored as JSONB.
type PlanetPlacements map[string]string

// Scan implements sql.Scanner for PlanetPlacements
func (p *PlanetPlacements) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return nil
}

// Value implements driver.Valuer for PlanetPlacements
func (p PlanetPlacements) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// BirthDetails are the inputs the deriver needs
type BirthDetails struct {
	DateOfBirth  time.Time
	TimeOfBirth  string // HH:MM
	PlaceOfBirth string
	Latitude     *float64
	Longitude    *float64
}

// SaveHoroscopeRequest is the API payload for creating/updating a chart
type SaveHoroscopeRequest struct {
	DateOfBirth  string   `json:"date_of_birth" validate:"required"`
	TimeOfBirth  string   `json:"time_of_birth" validate:"required,len=5"`
	PlaceOfBirth string   `json:"place_of_birth" validate:"required,min=2,max=100"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// MatchRequest asks for compatibility against another member
type MatchRequest struct {
	PartnerUserID int64 `json:"partner_user_id" validate:"required"`
}

// Factor is one named sub-factor of a compatibility result
type Factor struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	Percent     int    `json:"percent"` // Score/MaxScore, rounded
	Description string `json:"description"`
}

// MatchResult is the full guna-milan compatibility outcome.
// Ephemeral: computed per request, never persisted.
type MatchResult struct {
	Total   int      `json:"total"` // 0-36
	Max     int      `json:"max"`
	Factors []Factor `json:"factors"`
}

// ChartSummary is the trimmed view of a chart returned alongside a match
type ChartSummary struct {
	Rashi     string `json:"rashi"`
	Nakshatra string `json:"nakshatra"`
	Manglik   bool   `json:"manglik"`
}

// Summary returns the trimmed public view of the chart
func (h *Horoscope) Summary() ChartSummary {
	return ChartSummary{Rashi: h.Rashi, Nakshatra: h.Nakshatra, Manglik: h.Manglik}
}
