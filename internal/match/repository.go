package match

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

type Repository interface {
	// Interests
	CreateInterest(ctx context.Context, interest *Interest) error
	GetInterest(ctx context.Context, id int64) (*Interest, error)
	UpdateInterestStatus(ctx context.Context, interest *Interest) error
	DeleteInterest(ctx context.Context, id int64) error
	GetUserInterests(ctx context.Context, userID int64, direction string) ([]*Interest, error)
	HasInterestBetween(ctx context.Context, user1ID, user2ID int64) (bool, error)
	AreMutuallyMatched(ctx context.Context, user1ID, user2ID int64) (bool, error)

	// Profiles for matching
	GetProfile(ctx context.Context, userID int64) (*profile.Profile, error)
	FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*profile.Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Interest Methods

func (r *postgresRepository) CreateInterest(ctx context.Context, interest *Interest) error {
	query := `
		INSERT INTO interests (
			sender_id, receiver_id, status, message, match_score
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		interest.SenderID, interest.ReceiverID, interest.Status,
		interest.Message, interest.MatchScore,
	).Scan(&interest.ID, &interest.CreatedAt, &interest.UpdatedAt)
}

func (r *postgresRepository) GetInterest(ctx context.Context, id int64) (*Interest, error) {
	var interest Interest
	query := `SELECT * FROM interests WHERE id = $1`

	err := r.db.GetContext(ctx, &interest, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrInterestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &interest, nil
}

func (r *postgresRepository) UpdateInterestStatus(ctx context.Context, interest *Interest) error {
	query := `
		UPDATE interests
		SET status = $2, responded_at = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, interest.ID, interest.Status, interest.RespondedAt)
	return err
}

func (r *postgresRepository) DeleteInterest(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interests WHERE id = $1`, id)
	return err
}

func (r *postgresRepository) GetUserInterests(ctx context.Context, userID int64, direction string) ([]*Interest, error) {
	baseQuery := `
		SELECT i.*,
		       ps.user_id as "sender.user_id", ps.full_name as "sender.full_name",
		       ps.profile_picture as "sender.profile_picture",
		       ps.current_city as "sender.current_city", ps.profession as "sender.profession",
		       pr.user_id as "receiver.user_id", pr.full_name as "receiver.full_name",
		       pr.profile_picture as "receiver.profile_picture",
		       pr.current_city as "receiver.current_city", pr.profession as "receiver.profession"
		FROM interests i
		JOIN profiles ps ON i.sender_id = ps.user_id
		JOIN profiles pr ON i.receiver_id = pr.user_id
	`

	var query string
	switch direction {
	case "sent":
		query = baseQuery + " WHERE i.sender_id = $1 ORDER BY i.created_at DESC"
	case "received":
		query = baseQuery + " WHERE i.receiver_id = $1 ORDER BY i.created_at DESC"
	default:
		query = baseQuery + " WHERE i.sender_id = $1 OR i.receiver_id = $1 ORDER BY i.created_at DESC"
	}

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []*Interest
	for rows.Next() {
		var interest Interest
		var sender, receiver MemberInfo

		err := rows.Scan(
			&interest.ID, &interest.SenderID, &interest.ReceiverID,
			&interest.Status, &interest.Message, &interest.MatchScore,
			&interest.RespondedAt, &interest.CreatedAt, &interest.UpdatedAt,
			&sender.UserID, &sender.FullName, &sender.ProfilePicture,
			&sender.CurrentCity, &sender.Profession,
			&receiver.UserID, &receiver.FullName, &receiver.ProfilePicture,
			&receiver.CurrentCity, &receiver.Profession,
		)
		if err != nil {
			continue
		}

		interest.Sender = &sender
		interest.Receiver = &receiver
		interests = append(interests, &interest)
	}

	return interests, rows.Err()
}

// HasInterestBetween reports whether any interest exists in either
// direction that is still pending or accepted. Rejected interests do
// not block a fresh attempt.
func (r *postgresRepository) HasInterestBetween(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM interests
			WHERE ((sender_id = $1 AND receiver_id = $2)
			    OR (sender_id = $2 AND receiver_id = $1))
			  AND status IN ('pending', 'accepted')
		)
	`

	err := r.db.GetContext(ctx, &exists, query, user1ID, user2ID)
	return exists, err
}

func (r *postgresRepository) AreMutuallyMatched(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM interests
			WHERE ((sender_id = $1 AND receiver_id = $2)
			    OR (sender_id = $2 AND receiver_id = $1))
			  AND status = 'accepted'
		)
	`

	err := r.db.GetContext(ctx, &exists, query, user1ID, user2ID)
	return exists, err
}

// Profile Methods

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*profile.Profile, error) {
	var p profile.Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileMissing
	}
	if err != nil {
		return nil, err
	}

	p.ComputeAge()
	return &p, nil
}

// FindCandidates builds the raw suggestion pool. Hard filters only:
// gender, activity and completeness flags, no prior pending or accepted
// interest in either direction, and the seeker's stated age window.
// Scoring and ranking happen in memory afterwards.
func (r *postgresRepository) FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*profile.Profile, error) {
	query := `
		SELECT p.* FROM profiles p
		WHERE p.user_id != $1
		  AND p.is_active = TRUE
		  AND p.is_blocked = FALSE
		  AND p.is_profile_complete = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM interests i
			WHERE ((i.sender_id = $1 AND i.receiver_id = p.user_id)
			    OR (i.sender_id = p.user_id AND i.receiver_id = $1))
			  AND i.status IN ('pending', 'accepted')
		  )
	`
	args := []interface{}{userID}

	if filters.Gender != "" {
		args = append(args, filters.Gender)
		query += fmt.Sprintf(" AND p.gender = $%d", len(args))
	}

	// Age window translates to a date-of-birth window. The lower DOB
	// bound is one year wider than MaxAge so members mid-year still fit.
	now := time.Now()
	if filters.MinAge > 0 {
		args = append(args, now.AddDate(-filters.MinAge, 0, 0))
		query += fmt.Sprintf(" AND p.date_of_birth <= $%d", len(args))
	}
	if filters.MaxAge > 0 {
		args = append(args, now.AddDate(-filters.MaxAge-1, 0, 0))
		query += fmt.Sprintf(" AND p.date_of_birth > $%d", len(args))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 200
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY p.last_active DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pool []*profile.Profile
	for rows.Next() {
		var p profile.Profile
		if err := rows.StructScan(&p); err != nil {
			continue
		}
		p.ComputeAge()
		pool = append(pool, &p)
	}

	return pool, rows.Err()
}
