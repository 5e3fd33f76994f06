package horoscope

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrHoroscopeNotFound = errors.New("horoscope not found")

type Repository interface {
	Create(ctx context.Context, h *Horoscope) error
	GetByUserID(ctx context.Context, userID int64) (*Horoscope, error)
	Replace(ctx context.Context, h *Horoscope) error
	UpdateKundliImage(ctx context.Context, userID int64, imageURL string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, h *Horoscope) error {
	query := `
        INSERT INTO horoscopes (
            user_id, date_of_birth, time_of_birth, place_of_birth,
            latitude, longitude, rashi, nakshatra, nakshatra_pada,
            manglik, planets, match_points
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		h.UserID, h.DateOfBirth, h.TimeOfBirth, h.PlaceOfBirth,
		h.Latitude, h.Longitude, h.Rashi, h.Nakshatra, h.NakshatraPada,
		h.Manglik, h.Planets, h.MatchPoints,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*Horoscope, error) {
	var h Horoscope
	query := `SELECT * FROM horoscopes WHERE user_id = $1`

	err := r.db.GetContext(ctx, &h, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHoroscopeNotFound
	}
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// Replace overwrites every derived field alongside the birth inputs.
// The chart is recomputed in full whenever birth data changes, so a
// partial update is never correct here.
func (r *postgresRepository) Replace(ctx context.Context, h *Horoscope) error {
	query := `
        UPDATE horoscopes
        SET date_of_birth = $2, time_of_birth = $3, place_of_birth = $4,
            latitude = $5, longitude = $6, rashi = $7, nakshatra = $8,
            nakshatra_pada = $9, manglik = $10, planets = $11,
            match_points = $12, updated_at = CURRENT_TIMESTAMP
        WHERE user_id = $1
        RETURNING id, updated_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		h.UserID, h.DateOfBirth, h.TimeOfBirth, h.PlaceOfBirth,
		h.Latitude, h.Longitude, h.Rashi, h.Nakshatra, h.NakshatraPada,
		h.Manglik, h.Planets, h.MatchPoints,
	).Scan(&h.ID, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrHoroscopeNotFound
	}

	return err
}

func (r *postgresRepository) UpdateKundliImage(ctx context.Context, userID int64, imageURL string) error {
	query := `
        UPDATE horoscopes
        SET kundli_image = $2, updated_at = CURRENT_TIMESTAMP
        WHERE user_id = $1
    `

	result, err := r.db.ExecContext(ctx, query, userID, imageURL)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrHoroscopeNotFound
	}

	return nil
}

func (r *postgresRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM horoscopes WHERE user_id = $1`, userID)
	return err
}
