// internal/admin/repository.go

package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
	ListMembers(ctx context.Context, filter *MemberFilter) ([]*MemberRow, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool, reason string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{LastUpdated: time.Now()}

	userQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN is_verified THEN 1 END) AS verified,
			COUNT(CASE WHEN is_profile_complete THEN 1 END) AS complete
		FROM users
	`
	if err := r.db.QueryRowxContext(ctx, userQuery).Scan(
		&stats.TotalUsers, &stats.VerifiedUsers, &stats.CompleteProfiles,
	); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	activityQuery := `
		SELECT
			COUNT(CASE WHEN last_active > NOW() - INTERVAL '30 days' THEN 1 END) AS active,
			COUNT(CASE WHEN last_active > NOW() - INTERVAL '1 day' THEN 1 END) AS daily_active
		FROM profiles
	`
	if err := r.db.QueryRowxContext(ctx, activityQuery).Scan(
		&stats.ActiveUsers, &stats.DailyActiveUsers,
	); err != nil {
		return nil, fmt.Errorf("activity stats: %w", err)
	}

	interestQuery := `
		SELECT
			COUNT(*) AS total,
			COALESCE(
				COUNT(CASE WHEN status = 'accepted' THEN 1 END)::FLOAT /
				NULLIF(COUNT(CASE WHEN status IN ('accepted', 'rejected') THEN 1 END), 0),
			0) AS acceptance_rate,
			COUNT(CASE WHEN status = 'accepted' THEN 1 END) AS mutual,
			COALESCE(AVG(match_score), 0) AS avg_score
		FROM interests
	`
	if err := r.db.QueryRowxContext(ctx, interestQuery).Scan(
		&stats.TotalInterests, &stats.AcceptanceRate, &stats.MutualMatches, &stats.AverageMatchScore,
	); err != nil {
		return nil, fmt.Errorf("interest stats: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.TotalMessages,
		`SELECT COUNT(*) FROM messages`); err != nil {
		return nil, fmt.Errorf("message stats: %w", err)
	}

	revenueQuery := `
		SELECT
			COUNT(CASE WHEN s.expires_at > NOW() THEN 1 END) AS subscribers,
			COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'completed'), 0) AS revenue
		FROM payments p
		LEFT JOIN subscriptions s ON s.payment_id = p.id
	`
	if err := r.db.QueryRowxContext(ctx, revenueQuery).Scan(
		&stats.ActiveSubscribers, &stats.RevenuePaise,
	); err != nil {
		return nil, fmt.Errorf("revenue stats: %w", err)
	}

	return stats, nil
}

func (r *postgresRepository) ListMembers(ctx context.Context, filter *MemberFilter) ([]*MemberRow, error) {
	var conditions []string
	var args []interface{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Query != "" {
		add("(u.email ILIKE $%d OR p.full_name ILIKE $%[1]d)", "%"+filter.Query+"%")
	}
	if filter.Blocked != nil {
		add("u.is_blocked = $%d", *filter.Blocked)
	}

	query := `
		SELECT u.id AS user_id, u.email, u.phone,
		       p.full_name, p.gender, p.last_active,
		       u.is_verified, u.is_blocked, u.is_profile_complete, u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY u.created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	var members []*MemberRow
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresRepository) SetBlocked(ctx context.Context, userID int64, blocked bool, reason string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_blocked = $1, blocked_reason = $2, updated_at = $3 WHERE id = $4`,
		blocked, nullIfEmpty(reason), time.Now(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
