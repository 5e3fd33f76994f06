// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrProfileNotFound = errors.New("profile not found")

// Repository defines the profile repository interface
type Repository interface {
	// Profile CRUD
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest, dob *time.Time) (*Profile, error)
	UpdateProfilePicture(ctx context.Context, userID int64, url string) error
	SetProfileComplete(ctx context.Context, userID int64, complete bool) error
	SetActive(ctx context.Context, userID int64, active bool) error
	DeleteProfile(ctx context.Context, userID int64) error

	// Search
	SearchProfiles(ctx context.Context, userID int64, filter *SearchFilter) ([]*Profile, error)

	// Activity
	TouchLastActive(ctx context.Context, userID int64) error
}

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProfile(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, full_name, gender, date_of_birth,
			religion, community, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		profile.UserID, profile.FullName, profile.Gender, profile.DateOfBirth,
		profile.Religion, profile.Community,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.ComputeAge()
	return &profile, nil
}

// UpdateProfile patches only the fields present in the request
func (r *postgresRepository) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest, dob *time.Time) (*Profile, error) {
	var setClauses []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.FullName != nil {
		add("full_name", *req.FullName)
	}
	if req.About != nil {
		add("about", *req.About)
	}
	if dob != nil {
		add("date_of_birth", *dob)
	}
	if req.Height != nil {
		add("height", *req.Height)
	}
	if req.MaritalStatus != nil {
		add("marital_status", *req.MaritalStatus)
	}
	if req.Education != nil {
		add("education", *req.Education)
	}
	if req.Profession != nil {
		add("profession", *req.Profession)
	}
	if req.AnnualIncome != nil {
		add("annual_income", *req.AnnualIncome)
	}
	if req.CurrentCity != nil {
		add("current_city", *req.CurrentCity)
	}
	if req.CurrentState != nil {
		add("current_state", *req.CurrentState)
	}
	if req.CurrentCountry != nil {
		add("current_country", *req.CurrentCountry)
	}
	if req.WillingToRelocate != nil {
		add("willing_to_relocate", *req.WillingToRelocate)
	}
	if req.Diet != nil {
		add("diet", *req.Diet)
	}
	if req.Smoking != nil {
		add("smoking", *req.Smoking)
	}
	if req.Drinking != nil {
		add("drinking", *req.Drinking)
	}
	if req.Religion != nil {
		add("religion", *req.Religion)
	}
	if req.Community != nil {
		add("community", *req.Community)
	}
	if req.SubCommunity != nil {
		add("sub_community", *req.SubCommunity)
	}
	if req.Gotra != nil {
		add("gotra", *req.Gotra)
	}
	if req.MotherTongue != nil {
		add("mother_tongue", *req.MotherTongue)
	}
	if req.Preferences != nil {
		add("preferences", *req.Preferences)
	}

	add("updated_at", time.Now())

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE user_id = $%d`,
		strings.Join(setClauses, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrProfileNotFound
	}

	return r.GetProfileByUserID(ctx, userID)
}

func (r *postgresRepository) UpdateProfilePicture(ctx context.Context, userID int64, url string) error {
	var pictureValue interface{}
	if url != "" {
		pictureValue = url
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET profile_picture = $1, updated_at = $2 WHERE user_id = $3`,
		pictureValue, time.Now(), userID)
	return err
}

func (r *postgresRepository) SetProfileComplete(ctx context.Context, userID int64, complete bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET is_profile_complete = $1, updated_at = $2 WHERE user_id = $3`,
		complete, time.Now(), userID)
	return err
}

func (r *postgresRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET is_active = $1, updated_at = $2 WHERE user_id = $3`,
		active, time.Now(), userID)
	return err
}

// DeleteProfile removes the profile together with its dependent rows.
// Horoscope charts and interests reference the profile by user and
// must not outlive it.
func (r *postgresRepository) DeleteProfile(ctx context.Context, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM horoscopes WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM interests WHERE sender_id = $1 OR receiver_id = $1`, userID); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrProfileNotFound
	}

	return tx.Commit()
}

// SearchProfiles applies the member-facing search filters. Blocked and
// inactive profiles never appear.
func (r *postgresRepository) SearchProfiles(ctx context.Context, userID int64, filter *SearchFilter) ([]*Profile, error) {
	query := `
		SELECT p.* FROM profiles p
		WHERE p.user_id != $1
		  AND p.is_active = TRUE
		  AND p.is_blocked = FALSE
	`
	args := []interface{}{userID}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}

	if filter.Gender != nil {
		add("p.gender = $%d", *filter.Gender)
	}
	now := time.Now()
	if filter.MinAge != nil {
		add("p.date_of_birth <= $%d", now.AddDate(-*filter.MinAge, 0, 0))
	}
	if filter.MaxAge != nil {
		add("p.date_of_birth > $%d", now.AddDate(-*filter.MaxAge-1, 0, 0))
	}
	if filter.MinHeight != nil {
		add("p.height >= $%d", *filter.MinHeight)
	}
	if filter.MaxHeight != nil {
		add("p.height <= $%d", *filter.MaxHeight)
	}
	if len(filter.MaritalStatus) > 0 {
		add("p.marital_status = ANY($%d)", pq.Array(filter.MaritalStatus))
	}
	if len(filter.Education) > 0 {
		add("p.education = ANY($%d)", pq.Array(filter.Education))
	}
	if len(filter.Profession) > 0 {
		add("p.profession = ANY($%d)", pq.Array(filter.Profession))
	}
	if filter.City != nil {
		add("p.current_city ILIKE $%d", *filter.City)
	}
	if filter.State != nil {
		add("p.current_state ILIKE $%d", *filter.State)
	}
	if filter.SubCommunity != nil {
		add("p.sub_community = $%d", *filter.SubCommunity)
	}
	if filter.MotherTongue != nil {
		add("p.mother_tongue = $%d", *filter.MotherTongue)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY p.last_active DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		var p Profile
		if err := rows.StructScan(&p); err != nil {
			continue
		}
		p.ComputeAge()
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

func (r *postgresRepository) TouchLastActive(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET last_active = $1 WHERE user_id = $2`, time.Now(), userID)
	return err
}
