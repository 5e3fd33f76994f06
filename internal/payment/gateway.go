// internal/payment/gateway.go

package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Gateway abstracts the payment provider
type Gateway interface {
	// CreateOrder registers an order and returns the provider order ID
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)

	// Refund reverses a captured payment, amount in paise
	Refund(ctx context.Context, gatewayPaymentID string, amount int64) error
}

// razorpayGateway talks to the Razorpay Orders REST API
type razorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   "https://api.razorpay.com/v1",
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := g.post(ctx, "/orders", payload, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (g *razorpayGateway) Refund(ctx context.Context, gatewayPaymentID string, amount int64) error {
	payload, err := json.Marshal(map[string]interface{}{
		"amount": amount,
		"speed":  "normal",
	})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/payments/%s/refund", gatewayPaymentID)
	return g.post(ctx, path, payload, &struct{}{})
}

func (g *razorpayGateway) post(ctx context.Context, path string, payload []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("gateway request %s: status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// MockGateway fakes the provider for development and tests
type MockGateway struct {
	Orders  []string
	Refunds []string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	orderID := "order_" + uuid.NewString()
	m.Orders = append(m.Orders, orderID)
	return orderID, nil
}

func (m *MockGateway) Refund(ctx context.Context, gatewayPaymentID string, amount int64) error {
	m.Refunds = append(m.Refunds, gatewayPaymentID)
	return nil
}
