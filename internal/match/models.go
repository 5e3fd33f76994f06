// internal/match/models.go

package match

import "time"

// Interest statuses. An interest moves from pending to exactly one of
// accepted or rejected; a pending interest may also be withdrawn by its
// sender, which deletes it.
const (
	InterestPending  = "pending"
	InterestAccepted = "accepted"
	InterestRejected = "rejected"
)

// Interest is an expression of interest from one member to another
type Interest struct {
	ID          int64      `json:"id" db:"id"`
	SenderID    int64      `json:"sender_id" db:"sender_id"`
	ReceiverID  int64      `json:"receiver_id" db:"receiver_id"`
	Status      string     `json:"status" db:"status"`
	Message     *string    `json:"message,omitempty" db:"message"`
	MatchScore  *int       `json:"match_score,omitempty" db:"match_score"`
	RespondedAt *time.Time `json:"responded_at,omitempty" db:"responded_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// Joined for list views
	Sender   *MemberInfo `json:"sender,omitempty" db:"-"`
	Receiver *MemberInfo `json:"receiver,omitempty" db:"-"`
}

// MemberInfo is the slim profile view embedded in interest listings
type MemberInfo struct {
	UserID         int64   `json:"user_id" db:"user_id"`
	FullName       string  `json:"full_name" db:"full_name"`
	ProfilePicture *string `json:"profile_picture,omitempty" db:"profile_picture"`
	CurrentCity    *string `json:"current_city,omitempty" db:"current_city"`
	Profession     *string `json:"profession,omitempty" db:"profession"`
}

// CandidateFilters narrows the suggestion pool before scoring. Gender
// is mandatory; the age window comes from the seeker's preferences when
// stated.
type CandidateFilters struct {
	Gender string
	MinAge int
	MaxAge int
	Limit  int
}
