// internal/admin/models.go

package admin

import "time"

// PlatformStats is the operations dashboard payload
type PlatformStats struct {
	TotalUsers        int64      `json:"total_users" db:"total_users"`
	ActiveUsers       int64      `json:"active_users" db:"active_users"`
	DailyActiveUsers  int64      `json:"daily_active_users" db:"daily_active_users"`
	VerifiedUsers     int64      `json:"verified_users" db:"verified_users"`
	CompleteProfiles  int64      `json:"complete_profiles" db:"complete_profiles"`
	TotalInterests    int64      `json:"total_interests" db:"total_interests"`
	AcceptanceRate    float64    `json:"acceptance_rate" db:"acceptance_rate"`
	MutualMatches     int64      `json:"mutual_matches" db:"mutual_matches"`
	AverageMatchScore float64    `json:"average_match_score" db:"average_match_score"`
	TotalMessages     int64      `json:"total_messages" db:"total_messages"`
	ActiveSubscribers int64      `json:"active_subscribers" db:"active_subscribers"`
	RevenuePaise      int64      `json:"revenue_paise" db:"revenue_paise"`
	LastUpdated       time.Time  `json:"last_updated"`
}

// MemberRow is one row in the admin member listing
type MemberRow struct {
	UserID            int64      `json:"user_id" db:"user_id"`
	Email             *string    `json:"email,omitempty" db:"email"`
	Phone             *string    `json:"phone,omitempty" db:"phone"`
	FullName          *string    `json:"full_name,omitempty" db:"full_name"`
	Gender            *string    `json:"gender,omitempty" db:"gender"`
	IsVerified        bool       `json:"is_verified" db:"is_verified"`
	IsBlocked         bool       `json:"is_blocked" db:"is_blocked"`
	IsProfileComplete bool       `json:"is_profile_complete" db:"is_profile_complete"`
	LastActive        *time.Time `json:"last_active,omitempty" db:"last_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// MemberFilter narrows the member listing
type MemberFilter struct {
	Query   string
	Blocked *bool
	Limit   int
	Offset  int
}

// BlockRequest records why a member was blocked
type BlockRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
