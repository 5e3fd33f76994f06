// internal/payment/service.go

package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrNoSubscription     = errors.New("no active subscription")
	ErrInvalidPlan        = errors.New("invalid plan selected")
	ErrInvalidSignature   = errors.New("payment verification failed")
	ErrAlreadyProcessed   = errors.New("payment already processed")
	ErrNotRefundable      = errors.New("only completed payments can be refunded")
	ErrRefundWindowClosed = errors.New("cannot refund after 30 days")
	ErrUnauthorized       = errors.New("unauthorized")
)

const (
	statusCacheTTL = 5 * time.Minute
	taxRate        = 0.18

	fullRefundWindow = 7 * 24 * time.Hour
	halfRefundWindow = 30 * 24 * time.Hour
)

// Activated is called after a subscription goes live. Implemented by
// the notification service.
type Activated interface {
	NotifySubscriptionActivated(ctx context.Context, userID int64, planName string, expiresAt time.Time)
}

type Service interface {
	GetPlans(ctx context.Context) []*Plan
	CreateOrder(ctx context.Context, userID int64, req *CreateOrderRequest) (*CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID int64, req *VerifyPaymentRequest) (*Payment, error)
	GetSubscriptionStatus(ctx context.Context, userID int64) (*SubscriptionStatus, error)
	GetPaymentHistory(ctx context.Context, userID int64, limit, offset int) ([]*Payment, error)
	RefundPayment(ctx context.Context, paymentID int64, reason string) (*Payment, error)
	GenerateInvoice(ctx context.Context, userID, paymentID int64) (*Invoice, error)
}

type service struct {
	repo      Repository
	gateway   Gateway
	cache     *redis.Client
	secret    string
	activated Activated
}

func NewService(repo Repository, gateway Gateway, cache *redis.Client, secret string, activated Activated) Service {
	return &service{
		repo:      repo,
		gateway:   gateway,
		cache:     cache,
		secret:    secret,
		activated: activated,
	}
}

func (s *service) GetPlans(ctx context.Context) []*Plan {
	return ListPlans()
}

func (s *service) CreateOrder(ctx context.Context, userID int64, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	plan, ok := GetPlan(req.PlanCode)
	if !ok {
		return nil, ErrInvalidPlan
	}

	receipt := "rcpt_" + uuid.NewString()
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, plan.Amount, plan.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	p := &Payment{
		UserID:         userID,
		PlanCode:       plan.Code,
		Amount:         plan.Amount,
		Currency:       plan.Currency,
		Receipt:        receipt,
		GatewayOrderID: gatewayOrderID,
		Status:         StatusPending,
		Features:       plan.Features,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	RecordOrderCreated(plan.Code)

	return &CreateOrderResponse{
		PaymentID:      p.ID,
		GatewayOrderID: gatewayOrderID,
		Amount:         plan.Amount,
		Currency:       plan.Currency,
	}, nil
}

func (s *service) VerifyPayment(ctx context.Context, userID int64, req *VerifyPaymentRequest) (*Payment, error) {
	if !VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature, s.secret) {
		RecordVerification("invalid_signature")
		return nil, ErrInvalidSignature
	}

	p, err := s.repo.GetPaymentByGatewayOrder(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrUnauthorized
	}
	if p.Status != StatusPending {
		return nil, ErrAlreadyProcessed
	}

	plan, ok := GetPlan(p.PlanCode)
	if !ok {
		return nil, ErrInvalidPlan
	}

	now := time.Now()
	expiresAt := now.AddDate(0, plan.DurationMonths, 0)

	p.GatewayPayID = &req.GatewayPaymentID
	p.Status = StatusCompleted
	p.StartsAt = &now
	p.ExpiresAt = &expiresAt
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	sub := &Subscription{
		UserID:    userID,
		PlanCode:  plan.Code,
		PaymentID: p.ID,
		StartsAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.invalidateStatus(ctx, userID)
	RecordVerification("success")
	RecordRevenue(plan.Code, plan.Amount)

	if s.activated != nil {
		s.activated.NotifySubscriptionActivated(ctx, userID, plan.Name, expiresAt)
	}

	return p, nil
}

func (s *service) GetSubscriptionStatus(ctx context.Context, userID int64) (*SubscriptionStatus, error) {
	cacheKey := fmt.Sprintf("payment:status:%d", userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var status SubscriptionStatus
			if json.Unmarshal([]byte(cached), &status) == nil {
				return &status, nil
			}
		}
	}

	status := &SubscriptionStatus{Plan: "none", Features: []string{}}

	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil && err != ErrNoSubscription {
		return nil, err
	}

	if sub != nil && sub.ExpiresAt.After(time.Now()) {
		status.IsPremium = true
		status.Plan = sub.PlanCode
		status.ExpiresAt = &sub.ExpiresAt
		status.DaysLeft = int(time.Until(sub.ExpiresAt).Hours() / 24)
		if plan, ok := GetPlan(sub.PlanCode); ok {
			status.Features = plan.Features
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(status); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, statusCacheTTL).Err(); err != nil {
				log.Printf("payment: cache status for user %d: %v", userID, err)
			}
		}
	}

	return status, nil
}

func (s *service) GetPaymentHistory(ctx context.Context, userID int64, limit, offset int) ([]*Payment, error) {
	return s.repo.GetUserPayments(ctx, userID, limit, offset)
}

// RefundPayment applies the refund policy: full within 7 days, half
// within 30 days, nothing after that.
func (s *service) RefundPayment(ctx context.Context, paymentID int64, reason string) (*Payment, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusCompleted || p.GatewayPayID == nil || p.StartsAt == nil {
		return nil, ErrNotRefundable
	}

	used := time.Since(*p.StartsAt)
	var refundAmount int64
	switch {
	case used <= fullRefundWindow:
		refundAmount = p.Amount
	case used <= halfRefundWindow:
		refundAmount = p.Amount / 2
	default:
		return nil, ErrRefundWindowClosed
	}

	if err := s.gateway.Refund(ctx, *p.GatewayPayID, refundAmount); err != nil {
		return nil, fmt.Errorf("gateway refund: %w", err)
	}

	p.Status = StatusRefunded
	p.RefundAmount = &refundAmount
	p.RefundReason = &reason
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSubscription(ctx, p.UserID); err != nil {
		log.Printf("payment: drop subscription for user %d: %v", p.UserID, err)
	}
	s.invalidateStatus(ctx, p.UserID)
	RecordRefund(p.PlanCode)

	return p, nil
}

func (s *service) GenerateInvoice(ctx context.Context, userID, paymentID int64) (*Invoice, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrUnauthorized
	}

	tax := int64(float64(p.Amount) * taxRate)
	return &Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%08d", p.ID),
		Date:          p.CreatedAt,
		PlanCode:      p.PlanCode,
		Subtotal:      p.Amount,
		TaxRate:       taxRate * 100,
		TaxAmount:     tax,
		TotalAmount:   p.Amount + tax,
		Status:        p.Status,
	}, nil
}

func (s *service) invalidateStatus(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("payment:status:%d", userID)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		log.Printf("payment: invalidate status cache for user %d: %v", userID, err)
	}
}
