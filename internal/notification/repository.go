// internal/notification/repository.go

package notification

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	GetUserNotifications(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) ([]*Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, notificationID, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	DeleteNotification(ctx context.Context, notificationID, userID int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	GetPreferences(ctx context.Context, userID int64) (*Preferences, error)
	UpsertPreferences(ctx context.Context, prefs *Preferences) error

	GetRecipient(ctx context.Context, userID int64) (*Recipient, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateNotification(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, n.Data,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *postgresRepository) GetUserNotifications(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT * FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var notifications []*Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	return notifications, err
}

func (r *postgresRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	return count, err
}

func (r *postgresRepository) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $1
		 WHERE id = $2 AND user_id = $3`,
		time.Now(), notificationID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $1
		 WHERE user_id = $2 AND is_read = FALSE`,
		time.Now(), userID)
	return err
}

func (r *postgresRepository) DeleteNotification(ctx context.Context, notificationID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresRepository) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	var prefs Preferences
	err := r.db.GetContext(ctx, &prefs,
		`SELECT user_id, email_enabled, sms_enabled, updated_at
		 FROM notification_preferences WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *postgresRepository) UpsertPreferences(ctx context.Context, prefs *Preferences) error {
	query := `
		INSERT INTO notification_preferences (user_id, email_enabled, sms_enabled, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			email_enabled = EXCLUDED.email_enabled,
			sms_enabled = EXCLUDED.sms_enabled,
			updated_at = EXCLUDED.updated_at
	`
	prefs.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		prefs.UserID, prefs.EmailEnabled, prefs.SMSEnabled, prefs.UpdatedAt)
	return err
}

// GetRecipient joins accounts and profiles for delivery details
func (r *postgresRepository) GetRecipient(ctx context.Context, userID int64) (*Recipient, error) {
	query := `
		SELECT u.id AS user_id, u.email, u.phone,
		       COALESCE(p.full_name, '') AS full_name
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var recipient Recipient
	err := r.db.GetContext(ctx, &recipient, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}
