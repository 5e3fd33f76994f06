package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"
)

const testSecret = "test-gateway-secret"

type fakeRepo struct {
	payments      map[int64]*Payment
	subscriptions map[int64]*Subscription
	nextID        int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		payments:      make(map[int64]*Payment),
		subscriptions: make(map[int64]*Subscription),
	}
}

func (f *fakeRepo) CreatePayment(ctx context.Context, p *Payment) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.payments[p.ID] = p
	return nil
}

func (f *fakeRepo) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakeRepo) GetPaymentByGatewayOrder(ctx context.Context, gatewayOrderID string) (*Payment, error) {
	for _, p := range f.payments {
		if p.GatewayOrderID == gatewayOrderID {
			return p, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (f *fakeRepo) UpdatePayment(ctx context.Context, p *Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakeRepo) GetUserPayments(ctx context.Context, userID int64, limit, offset int) ([]*Payment, error) {
	var out []*Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertSubscription(ctx context.Context, sub *Subscription) error {
	f.subscriptions[sub.UserID] = sub
	return nil
}

func (f *fakeRepo) GetSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	sub, ok := f.subscriptions[userID]
	if !ok {
		return nil, ErrNoSubscription
	}
	return sub, nil
}

func (f *fakeRepo) DeleteSubscription(ctx context.Context, userID int64) error {
	delete(f.subscriptions, userID)
	return nil
}

func signOrder(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	sig := signOrder("order_abc", "pay_xyz")

	if !VerifySignature("order_abc", "pay_xyz", sig, testSecret) {
		t.Error("valid signature rejected")
	}
	if VerifySignature("order_abc", "pay_other", sig, testSecret) {
		t.Error("tampered payment ID accepted")
	}
	if VerifySignature("order_abc", "pay_xyz", sig, "wrong-secret") {
		t.Error("signature accepted under wrong secret")
	}
}

func TestCreateOrderForKnownPlan(t *testing.T) {
	repo := newFakeRepo()
	gateway := NewMockGateway()
	svc := NewService(repo, gateway, nil, testSecret, nil)

	resp, err := svc.CreateOrder(context.Background(), 1, &CreateOrderRequest{PlanCode: "gold"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if resp.Amount != 249900 || resp.Currency != "INR" {
		t.Errorf("order = %+v", resp)
	}
	if len(gateway.Orders) != 1 {
		t.Errorf("gateway orders = %d, want 1", len(gateway.Orders))
	}

	p := repo.payments[resp.PaymentID]
	if p == nil || p.Status != StatusPending {
		t.Fatalf("stored payment = %+v", p)
	}
}

func TestCreateOrderRejectsUnknownPlan(t *testing.T) {
	svc := NewService(newFakeRepo(), NewMockGateway(), nil, testSecret, nil)

	if _, err := svc.CreateOrder(context.Background(), 1, &CreateOrderRequest{PlanCode: "diamond"}); err != ErrInvalidPlan {
		t.Errorf("unknown plan: err = %v, want ErrInvalidPlan", err)
	}
}

func TestVerifyPaymentActivatesSubscription(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewMockGateway(), nil, testSecret, nil)

	order, err := svc.CreateOrder(context.Background(), 1, &CreateOrderRequest{PlanCode: "basic"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	req := &VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        signOrder(order.GatewayOrderID, "pay_123"),
	}

	p, err := svc.VerifyPayment(context.Background(), 1, req)
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if p.Status != StatusCompleted {
		t.Errorf("status = %s, want completed", p.Status)
	}

	sub := repo.subscriptions[1]
	if sub == nil {
		t.Fatal("no subscription created")
	}
	if sub.PlanCode != "basic" {
		t.Errorf("plan = %s, want basic", sub.PlanCode)
	}

	wantExpiry := time.Now().AddDate(0, 1, 0)
	if sub.ExpiresAt.Sub(wantExpiry) > time.Minute || wantExpiry.Sub(sub.ExpiresAt) > time.Minute {
		t.Errorf("expiry = %v, want about %v", sub.ExpiresAt, wantExpiry)
	}

	// Replays must be rejected
	if _, err := svc.VerifyPayment(context.Background(), 1, req); err != ErrAlreadyProcessed {
		t.Errorf("replay: err = %v, want ErrAlreadyProcessed", err)
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewMockGateway(), nil, testSecret, nil)

	order, _ := svc.CreateOrder(context.Background(), 1, &CreateOrderRequest{PlanCode: "basic"})

	req := &VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "forged",
	}
	if _, err := svc.VerifyPayment(context.Background(), 1, req); err != ErrInvalidSignature {
		t.Errorf("forged signature: err = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyPaymentRejectsOtherUsersOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewMockGateway(), nil, testSecret, nil)

	order, _ := svc.CreateOrder(context.Background(), 1, &CreateOrderRequest{PlanCode: "basic"})

	req := &VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        signOrder(order.GatewayOrderID, "pay_123"),
	}
	if _, err := svc.VerifyPayment(context.Background(), 2, req); err != ErrUnauthorized {
		t.Errorf("other user: err = %v, want ErrUnauthorized", err)
	}
}

func TestRefundPolicy(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		wantAmount int64
		wantErr    error
	}{
		{"within a week", 3 * 24 * time.Hour, 99900, nil},
		{"within a month", 20 * 24 * time.Hour, 49950, nil},
		{"too old", 45 * 24 * time.Hour, 0, ErrRefundWindowClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			gateway := NewMockGateway()
			svc := NewService(repo, gateway, nil, testSecret, nil)

			started := time.Now().Add(-tt.age)
			payID := "pay_123"
			repo.CreatePayment(context.Background(), &Payment{
				UserID:   1,
				PlanCode: "basic",
				Amount:   99900,
				Status:   StatusCompleted,
			})
			p := repo.payments[1]
			p.GatewayPayID = &payID
			p.StartsAt = &started
			repo.subscriptions[1] = &Subscription{UserID: 1, PlanCode: "basic"}

			refunded, err := svc.RefundPayment(context.Background(), 1, "changed my mind")
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RefundPayment: %v", err)
			}

			if refunded.Status != StatusRefunded {
				t.Errorf("status = %s, want refunded", refunded.Status)
			}
			if refunded.RefundAmount == nil || *refunded.RefundAmount != tt.wantAmount {
				t.Errorf("refund amount = %v, want %d", refunded.RefundAmount, tt.wantAmount)
			}
			if _, ok := repo.subscriptions[1]; ok {
				t.Error("subscription survived the refund")
			}
		})
	}
}

func TestRefundRequiresCompletedPayment(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewMockGateway(), nil, testSecret, nil)

	repo.CreatePayment(context.Background(), &Payment{
		UserID: 1, PlanCode: "basic", Amount: 99900, Status: StatusPending,
	})

	if _, err := svc.RefundPayment(context.Background(), 1, "nope"); err != ErrNotRefundable {
		t.Errorf("pending payment: err = %v, want ErrNotRefundable", err)
	}
}

func TestInvoiceAddsGST(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewMockGateway(), nil, testSecret, nil)

	repo.CreatePayment(context.Background(), &Payment{
		UserID: 1, PlanCode: "gold", Amount: 249900, Status: StatusCompleted,
	})

	invoice, err := svc.GenerateInvoice(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}

	if invoice.TaxAmount != 44982 {
		t.Errorf("tax = %d, want 44982", invoice.TaxAmount)
	}
	if invoice.TotalAmount != 294882 {
		t.Errorf("total = %d, want 294882", invoice.TotalAmount)
	}

	if _, err := svc.GenerateInvoice(context.Background(), 2, 1); err != ErrUnauthorized {
		t.Errorf("other user invoice: err = %v, want ErrUnauthorized", err)
	}
}

func TestSubscriptionStatusExpiry(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewMockGateway(), nil, testSecret, nil)

	// No subscription at all
	status, err := svc.GetSubscriptionStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSubscriptionStatus: %v", err)
	}
	if status.IsPremium {
		t.Error("member without subscription reported premium")
	}

	// Expired subscription
	repo.subscriptions[1] = &Subscription{
		UserID:    1,
		PlanCode:  "gold",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	status, _ = svc.GetSubscriptionStatus(context.Background(), 1)
	if status.IsPremium {
		t.Error("expired subscription reported premium")
	}

	// Active subscription
	repo.subscriptions[1].ExpiresAt = time.Now().Add(48 * time.Hour)
	status, _ = svc.GetSubscriptionStatus(context.Background(), 1)
	if !status.IsPremium {
		t.Error("active subscription not reported premium")
	}
	if status.Plan != "gold" {
		t.Errorf("plan = %s, want gold", status.Plan)
	}
}
