// internal/payment/models.go

package payment

import (
	"time"

	"github.com/lib/pq"
)

// Payment statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// Plan is a subscription tier. Amount is in paise.
type Plan struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	DurationMonths int      `json:"duration_months"`
	Amount         int64    `json:"amount"`
	Currency       string   `json:"currency"`
	Features       []string `json:"features"`
}

// Payment is one order and its lifecycle
type Payment struct {
	ID             int64          `json:"id" db:"id"`
	UserID         int64          `json:"user_id" db:"user_id"`
	PlanCode       string         `json:"plan_code" db:"plan_code"`
	Amount         int64          `json:"amount" db:"amount"`
	Currency       string         `json:"currency" db:"currency"`
	Receipt        string         `json:"receipt" db:"receipt"`
	GatewayOrderID string         `json:"gateway_order_id" db:"gateway_order_id"`
	GatewayPayID   *string        `json:"gateway_payment_id,omitempty" db:"gateway_payment_id"`
	Status         string         `json:"status" db:"status"`
	Features       pq.StringArray `json:"features" db:"features"`
	RefundAmount   *int64         `json:"refund_amount,omitempty" db:"refund_amount"`
	RefundReason   *string        `json:"refund_reason,omitempty" db:"refund_reason"`
	StartsAt       *time.Time     `json:"starts_at,omitempty" db:"starts_at"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Subscription is the member's current premium state
type Subscription struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	PlanCode  string    `json:"plan_code" db:"plan_code"`
	PaymentID int64     `json:"payment_id" db:"payment_id"`
	StartsAt  time.Time `json:"starts_at" db:"starts_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubscriptionStatus is the status payload returned to clients
type SubscriptionStatus struct {
	IsPremium bool       `json:"is_premium"`
	Plan      string     `json:"plan"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	DaysLeft  int        `json:"days_left"`
	Features  []string   `json:"features"`
}

// Invoice is generated on demand for a completed payment
type Invoice struct {
	InvoiceNumber string    `json:"invoice_number"`
	Date          time.Time `json:"date"`
	PlanCode      string    `json:"plan_code"`
	Subtotal      int64     `json:"subtotal"`
	TaxRate       float64   `json:"tax_rate"`
	TaxAmount     int64     `json:"tax_amount"`
	TotalAmount   int64     `json:"total_amount"`
	Status        string    `json:"status"`
}

// CreateOrderRequest starts a checkout for a plan
type CreateOrderRequest struct {
	PlanCode string `json:"plan_code" validate:"required,oneof=basic gold platinum"`
}

// CreateOrderResponse carries what the client needs to open checkout
type CreateOrderResponse struct {
	PaymentID      int64  `json:"payment_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// VerifyPaymentRequest completes checkout with the gateway callback
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

// RefundRequest cancels a completed subscription
type RefundRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
