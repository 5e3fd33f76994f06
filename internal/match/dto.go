// internal/match/dto.go

package match

import "github.com/nkrishnan/sambandh-backend/internal/profile"

// SendInterestRequest expresses interest in another member
type SendInterestRequest struct {
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Message    string `json:"message" validate:"omitempty,max=500"`
}

// RespondInterestRequest accepts or rejects a received interest
type RespondInterestRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// CompatibilityReport is the full demographic compatibility view of a
// candidate: the per-factor breakdown, its qualitative tier and the
// candidate's profile.
type CompatibilityReport struct {
	Breakdown  *Breakdown       `json:"breakdown"`
	Assessment Assessment       `json:"assessment"`
	Partner    *profile.Profile `json:"partner_profile"`
}
