// internal/admin/service.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrMemberNotFound = errors.New("member not found")

const statsCacheKey = "admin:platform_stats"
const statsCacheTTL = 5 * time.Minute

type Service interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
	ListMembers(ctx context.Context, filter *MemberFilter) ([]*MemberRow, error)
	BlockMember(ctx context.Context, userID int64, reason string) error
	UnblockMember(ctx context.Context, userID int64) error
}

type service struct {
	repo  Repository
	cache *redis.Client
}

func NewService(repo Repository, cache *redis.Client) Service {
	return &service{repo: repo, cache: cache}
}

// GetPlatformStats serves the dashboard from a short-lived cache since
// the aggregates scan several large tables.
func (s *service) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats PlatformStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.repo.GetPlatformStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				log.Printf("admin: cache platform stats: %v", err)
			}
		}
	}

	return stats, nil
}

func (s *service) ListMembers(ctx context.Context, filter *MemberFilter) ([]*MemberRow, error) {
	return s.repo.ListMembers(ctx, filter)
}

func (s *service) BlockMember(ctx context.Context, userID int64, reason string) error {
	return s.repo.SetBlocked(ctx, userID, true, reason)
}

func (s *service) UnblockMember(ctx context.Context, userID int64) error {
	return s.repo.SetBlocked(ctx, userID, false, "")
}
