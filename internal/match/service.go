// internal/match/service.go

package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

var (
	ErrInterestNotFound      = errors.New("interest not found")
	ErrCannotInterestSelf    = errors.New("cannot send interest to yourself")
	ErrAlreadyInterested     = errors.New("interest already exists between these members")
	ErrAlreadyResponded      = errors.New("interest already responded to")
	ErrUnauthorized          = errors.New("unauthorized to perform this action")
	ErrProfileMissing        = errors.New("please complete your profile first")
	ErrPartnerProfileMissing = errors.New("the requested member's profile is not available")
)

const (
	suggestionCacheTTL = 10 * time.Minute
	candidatePoolLimit = 200
)

// Notifier delivers interest lifecycle notifications. Implemented by
// the notification service; a nil Notifier disables delivery.
type Notifier interface {
	NotifyInterestReceived(ctx context.Context, receiverID, senderID int64)
	NotifyInterestAccepted(ctx context.Context, senderID, receiverID int64)
}

// ConversationOpener opens a chat conversation once two members match.
// Implemented by the chat service.
type ConversationOpener interface {
	OpenConversation(ctx context.Context, user1ID, user2ID int64) error
}

type Service interface {
	// Interests
	SendInterest(ctx context.Context, userID int64, req *SendInterestRequest) (*Interest, error)
	RespondToInterest(ctx context.Context, interestID, userID int64, req *RespondInterestRequest) (*Interest, error)
	WithdrawInterest(ctx context.Context, interestID, userID int64) error
	GetInterests(ctx context.Context, userID int64, direction string) ([]*Interest, error)
	IsMutualMatch(ctx context.Context, user1ID, user2ID int64) (bool, error)

	// Matching
	GetSuggestions(ctx context.Context, userID int64) ([]ScoredCandidate, error)
	GetCompatibility(ctx context.Context, userID, partnerUserID int64) (*CompatibilityReport, error)

	// SetConversationOpener wires the chat service after construction.
	// The chat service itself depends on IsMutualMatch.
	SetConversationOpener(conversations ConversationOpener)
}

type service struct {
	repo          Repository
	cache         *redis.Client
	notifier      Notifier
	conversations ConversationOpener
}

func NewService(repo Repository, cache *redis.Client, notifier Notifier, conversations ConversationOpener) Service {
	return &service{
		repo:          repo,
		cache:         cache,
		notifier:      notifier,
		conversations: conversations,
	}
}

func (s *service) SetConversationOpener(conversations ConversationOpener) {
	s.conversations = conversations
}

func (s *service) SendInterest(ctx context.Context, userID int64, req *SendInterestRequest) (*Interest, error) {
	if userID == req.ReceiverID {
		return nil, ErrCannotInterestSelf
	}

	sender, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	receiver, err := s.repo.GetProfile(ctx, req.ReceiverID)
	if err == ErrProfileMissing {
		return nil, ErrPartnerProfileMissing
	}
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.HasInterestBetween(ctx, userID, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInterested
	}

	// The score at send time is a snapshot for the receiver's inbox.
	score := CalculateMatchScore(sender, receiver)

	interest := &Interest{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Status:     InterestPending,
		MatchScore: &score,
	}
	if req.Message != "" {
		interest.Message = &req.Message
	}

	if err := s.repo.CreateInterest(ctx, interest); err != nil {
		return nil, err
	}

	RecordInterestSent()
	s.invalidateSuggestions(ctx, userID, req.ReceiverID)

	if s.notifier != nil {
		s.notifier.NotifyInterestReceived(ctx, req.ReceiverID, userID)
	}

	return interest, nil
}

func (s *service) RespondToInterest(ctx context.Context, interestID, userID int64, req *RespondInterestRequest) (*Interest, error) {
	interest, err := s.repo.GetInterest(ctx, interestID)
	if err != nil {
		return nil, err
	}

	if interest.ReceiverID != userID {
		return nil, ErrUnauthorized
	}
	if interest.Status != InterestPending {
		return nil, ErrAlreadyResponded
	}

	now := time.Now()
	interest.Status = req.Status
	interest.RespondedAt = &now

	if err := s.repo.UpdateInterestStatus(ctx, interest); err != nil {
		return nil, err
	}

	RecordInterestResponse(req.Status)

	if req.Status == InterestAccepted {
		RecordMutualMatch()

		// A conversation failure must not roll back the acceptance.
		if s.conversations != nil {
			if err := s.conversations.OpenConversation(ctx, interest.SenderID, interest.ReceiverID); err != nil {
				log.Printf("match: failed to open conversation for interest %d: %v", interest.ID, err)
			}
		}
		if s.notifier != nil {
			s.notifier.NotifyInterestAccepted(ctx, interest.SenderID, interest.ReceiverID)
		}
	}

	return interest, nil
}

func (s *service) WithdrawInterest(ctx context.Context, interestID, userID int64) error {
	interest, err := s.repo.GetInterest(ctx, interestID)
	if err != nil {
		return err
	}

	if interest.SenderID != userID {
		return ErrUnauthorized
	}
	if interest.Status != InterestPending {
		return ErrAlreadyResponded
	}

	if err := s.repo.DeleteInterest(ctx, interestID); err != nil {
		return err
	}

	s.invalidateSuggestions(ctx, interest.SenderID, interest.ReceiverID)
	return nil
}

func (s *service) GetInterests(ctx context.Context, userID int64, direction string) ([]*Interest, error) {
	return s.repo.GetUserInterests(ctx, userID, direction)
}

func (s *service) IsMutualMatch(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	return s.repo.AreMutuallyMatched(ctx, user1ID, user2ID)
}

// GetSuggestions returns the top scored candidates for the member.
// Results are cached briefly; sending or withdrawing an interest
// invalidates the cache so acted-on members drop out immediately.
func (s *service) GetSuggestions(ctx context.Context, userID int64) ([]ScoredCandidate, error) {
	if cached, ok := s.cachedSuggestions(ctx, userID); ok {
		return cached, nil
	}

	seeker, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.FindCandidates(ctx, userID, candidateFilters(seeker))
	if err != nil {
		return nil, err
	}

	ranked := RankCandidates(seeker, pool, DefaultSuggestionLimit)
	for _, c := range ranked {
		RecordMatchScore(c.Score)
	}

	s.storeSuggestions(ctx, userID, ranked)
	return ranked, nil
}

func (s *service) GetCompatibility(ctx context.Context, userID, partnerUserID int64) (*CompatibilityReport, error) {
	if userID == partnerUserID {
		return nil, ErrCannotInterestSelf
	}

	seeker, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	partner, err := s.repo.GetProfile(ctx, partnerUserID)
	if err == ErrProfileMissing {
		return nil, ErrPartnerProfileMissing
	}
	if err != nil {
		return nil, err
	}

	breakdown := ScoreBreakdown(seeker, partner)
	return &CompatibilityReport{
		Breakdown:  breakdown,
		Assessment: Classify(breakdown.Total, ScalePercent),
		Partner:    partner,
	}, nil
}

// candidateFilters derives the hard pool filters from the seeker's
// profile: opposite gender and, when stated, the preferred age window.
func candidateFilters(seeker *profile.Profile) *CandidateFilters {
	filters := &CandidateFilters{
		Gender: oppositeGender(seeker.Gender),
		Limit:  candidatePoolLimit,
	}

	if seeker.Preferences != nil && seeker.Preferences.AgeRange != nil {
		filters.MinAge = seeker.Preferences.AgeRange.Min
		filters.MaxAge = seeker.Preferences.AgeRange.Max
	}

	return filters
}

// oppositeGender maps Male to Female and back. Any other value leaves
// the pool unfiltered by gender.
func oppositeGender(gender string) string {
	switch gender {
	case "Male":
		return "Female"
	case "Female":
		return "Male"
	}
	return ""
}

func suggestionCacheKey(userID int64) string {
	return fmt.Sprintf("match:suggestions:%d", userID)
}

func (s *service) cachedSuggestions(ctx context.Context, userID int64) ([]ScoredCandidate, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, suggestionCacheKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var ranked []ScoredCandidate
	if err := json.Unmarshal(data, &ranked); err != nil {
		return nil, false
	}
	return ranked, true
}

func (s *service) storeSuggestions(ctx context.Context, userID int64, ranked []ScoredCandidate) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(ranked)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, suggestionCacheKey(userID), data, suggestionCacheTTL).Err(); err != nil {
		log.Printf("match: failed to cache suggestions for user %d: %v", userID, err)
	}
}

func (s *service) invalidateSuggestions(ctx context.Context, userIDs ...int64) {
	if s.cache == nil {
		return
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, suggestionCacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("match: failed to invalidate suggestion cache: %v", err)
	}
}
