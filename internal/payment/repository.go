// internal/payment/repository.go

package payment

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id int64) (*Payment, error)
	GetPaymentByGatewayOrder(ctx context.Context, gatewayOrderID string) (*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error
	GetUserPayments(ctx context.Context, userID int64, limit, offset int) ([]*Payment, error)

	UpsertSubscription(ctx context.Context, sub *Subscription) error
	GetSubscription(ctx context.Context, userID int64) (*Subscription, error)
	DeleteSubscription(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreatePayment(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (user_id, plan_code, amount, currency, receipt, gateway_order_id, status, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		p.UserID, p.PlanCode, p.Amount, p.Currency, p.Receipt, p.GatewayOrderID, p.Status, p.Features,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, `SELECT * FROM payments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) GetPaymentByGatewayOrder(ctx context.Context, gatewayOrderID string) (*Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p,
		`SELECT * FROM payments WHERE gateway_order_id = $1`, gatewayOrderID)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) UpdatePayment(ctx context.Context, p *Payment) error {
	query := `
		UPDATE payments SET
			gateway_payment_id = $1,
			status = $2,
			refund_amount = $3,
			refund_reason = $4,
			starts_at = $5,
			expires_at = $6,
			updated_at = $7
		WHERE id = $8
	`
	p.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		p.GatewayPayID, p.Status, p.RefundAmount, p.RefundReason,
		p.StartsAt, p.ExpiresAt, p.UpdatedAt, p.ID)
	return err
}

func (r *postgresRepository) GetUserPayments(ctx context.Context, userID int64, limit, offset int) ([]*Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var payments []*Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM payments WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return payments, err
}

func (r *postgresRepository) UpsertSubscription(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, plan_code, payment_id, starts_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_code = EXCLUDED.plan_code,
			payment_id = EXCLUDED.payment_id,
			starts_at = EXCLUDED.starts_at,
			expires_at = EXCLUDED.expires_at
	`
	_, err := r.db.ExecContext(ctx, query,
		sub.UserID, sub.PlanCode, sub.PaymentID, sub.StartsAt, sub.ExpiresAt)
	return err
}

func (r *postgresRepository) GetSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	var sub Subscription
	err := r.db.GetContext(ctx, &sub,
		`SELECT * FROM subscriptions WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *postgresRepository) DeleteSubscription(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE user_id = $1`, userID)
	return err
}
