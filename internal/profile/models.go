//internals/profile/models.go

package profile

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Profile represents a member's matrimony profile
type Profile struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	FullName       string    `json:"full_name" db:"full_name"`
	Gender         string    `json:"gender" db:"gender"` // Male, Female, Other
	DateOfBirth    time.Time `json:"date_of_birth" db:"date_of_birth"`
	Age            int       `json:"age"` // derived from DateOfBirth, never stored
	ProfilePicture *string   `json:"profile_picture,omitempty" db:"profile_picture"`
	About          *string   `json:"about,omitempty" db:"about"`

	// Attributes
	Height            *int    `json:"height,omitempty" db:"height"` // in cm
	MaritalStatus     *string `json:"marital_status,omitempty" db:"marital_status"`
	Education         *string `json:"education,omitempty" db:"education"`
	Profession        *string `json:"profession,omitempty" db:"profession"`
	AnnualIncome      *int64  `json:"annual_income,omitempty" db:"annual_income"`
	CurrentCity       *string `json:"current_city,omitempty" db:"current_city"`
	CurrentState      *string `json:"current_state,omitempty" db:"current_state"`
	CurrentCountry    *string `json:"current_country,omitempty" db:"current_country"`
	WillingToRelocate bool    `json:"willing_to_relocate" db:"willing_to_relocate"`

	// Lifestyle
	Diet     *string `json:"diet,omitempty" db:"diet"`         // Vegetarian, Non-Vegetarian, Eggetarian, Vegan
	Smoking  *string `json:"smoking,omitempty" db:"smoking"`   // No, Occasionally, Yes
	Drinking *string `json:"drinking,omitempty" db:"drinking"` // No, Occasionally, Yes

	// Community
	Religion     *string `json:"religion,omitempty" db:"religion"`
	Community    *string `json:"community,omitempty" db:"community"`
	SubCommunity *string `json:"sub_community,omitempty" db:"sub_community"`
	Gotra        *string `json:"gotra,omitempty" db:"gotra"`
	MotherTongue *string `json:"mother_tongue,omitempty" db:"mother_tongue"`

	// Partner preferences
	Preferences *PartnerPreferences `json:"preferences,omitempty" db:"preferences"`

	// Status flags
	IsActive          bool `json:"is_active" db:"is_active"`
	IsBlocked         bool `json:"is_blocked" db:"is_blocked"`
	IsProfileComplete bool `json:"is_profile_complete" db:"is_profile_complete"`
	IsVerified        bool `json:"is_verified" db:"is_verified"`

	LastActive time.Time `json:"last_active" db:"last_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// AgeAt returns the member's completed age in years at the given instant.
// Age is always derived from DateOfBirth so the two can never diverge.
func (p *Profile) AgeAt(now time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	years := now.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// ComputeAge refreshes the derived Age field. Called on every read path.
func (p *Profile) ComputeAge() {
	p.Age = p.AgeAt(time.Now())
}

// PartnerPreferences captures what a member is looking for in a match.
// Stored as a JSONB column.
type PartnerPreferences struct {
	AgeRange      *Range   `json:"age_range,omitempty"`
	HeightRange   *Range   `json:"height_range,omitempty"` // in cm
	MaritalStatus []string `json:"marital_status,omitempty"`
	Education     []string `json:"education,omitempty"`
	Profession    []string `json:"profession,omitempty"`
	IncomeRange   *Range   `json:"income_range,omitempty"`
}

// Range is an inclusive [Min, Max] numeric range
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v falls inside the range
func (r *Range) Contains(v int) bool {
	if r == nil {
		return false
	}
	return v >= r.Min && v <= r.Max
}

// Scan implements the sql.Scanner interface for PartnerPreferences
func (p *PartnerPreferences) Scan(value interface{}) error {
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

// Value implements the driver.Valuer interface for PartnerPreferences
func (p PartnerPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FullName          *string             `json:"full_name" validate:"omitempty,min=2,max=100"`
	About             *string             `json:"about" validate:"omitempty,max=1000"`
	DateOfBirth       *string             `json:"date_of_birth" validate:"omitempty"`
	Height            *int                `json:"height" validate:"omitempty,min=100,max=250"`
	MaritalStatus     *string             `json:"marital_status" validate:"omitempty,max=50"`
	Education         *string             `json:"education" validate:"omitempty,max=100"`
	Profession        *string             `json:"profession" validate:"omitempty,max=100"`
	AnnualIncome      *int64              `json:"annual_income" validate:"omitempty,min=0"`
	CurrentCity       *string             `json:"current_city" validate:"omitempty,max=100"`
	CurrentState      *string             `json:"current_state" validate:"omitempty,max=100"`
	CurrentCountry    *string             `json:"current_country" validate:"omitempty,max=100"`
	WillingToRelocate *bool               `json:"willing_to_relocate"`
	Diet              *string             `json:"diet" validate:"omitempty,oneof=Vegetarian Non-Vegetarian Eggetarian Vegan"`
	Smoking           *string             `json:"smoking" validate:"omitempty,oneof=No Occasionally Yes"`
	Drinking          *string             `json:"drinking" validate:"omitempty,oneof=No Occasionally Yes"`
	Religion          *string             `json:"religion" validate:"omitempty,max=50"`
	Community         *string             `json:"community" validate:"omitempty,max=50"`
	SubCommunity      *string             `json:"sub_community" validate:"omitempty,max=50"`
	Gotra             *string             `json:"gotra" validate:"omitempty,max=50"`
	MotherTongue      *string             `json:"mother_tongue" validate:"omitempty,max=50"`
	Preferences       *PartnerPreferences `json:"preferences"`
}

// ProfileSetupRequest represents initial profile creation
type ProfileSetupRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Religion    string `json:"religion" validate:"omitempty,max=50"`
	Community   string `json:"community" validate:"omitempty,max=50"`
}

// SearchFilter represents filters for searching profiles
type SearchFilter struct {
	Gender        *string  `json:"gender"`
	MinAge        *int     `json:"min_age"`
	MaxAge        *int     `json:"max_age"`
	MinHeight     *int     `json:"min_height"`
	MaxHeight     *int     `json:"max_height"`
	MaritalStatus []string `json:"marital_status"`
	Education     []string `json:"education"`
	Profession    []string `json:"profession"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	SubCommunity  *string  `json:"sub_community"`
	MotherTongue  *string  `json:"mother_tongue"`
	Limit         int      `json:"limit"`
	Offset        int      `json:"offset"`
}

// ProfileCompletion reports which sections of a profile are filled in
type ProfileCompletion struct {
	Percentage int      `json:"percentage"`
	Missing    []string `json:"missing_fields"`
	Completed  []string `json:"completed_fields"`
}
