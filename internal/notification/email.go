// internal/notification/email.go

package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers outbound email
type EmailSender interface {
	SendEmail(ctx context.Context, msg *EmailMessage) error
}

// SMTPEmailSender delivers through a plain SMTP relay
type SMTPEmailSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPEmailSender(host string, port int, username, password, from, fromName string) (*SMTPEmailSender, error) {
	if host == "" || from == "" {
		return nil, fmt.Errorf("incomplete SMTP configuration")
	}
	if fromName == "" {
		fromName = "Sambandh"
	}

	return &SMTPEmailSender{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}, nil
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, msg *EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.fromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
		if msg.Body != "" {
			m.AddAlternative("text/plain", msg.Body)
		}
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// SendGridEmailSender delivers through the SendGrid API
type SendGridEmailSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridEmailSender(apiKey, from, fromName string) (*SendGridEmailSender, error) {
	if apiKey == "" || from == "" {
		return nil, fmt.Errorf("incomplete SendGrid configuration")
	}
	if fromName == "" {
		fromName = "Sambandh"
	}

	return &SendGridEmailSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}, nil
}

func (s *SendGridEmailSender) SendEmail(ctx context.Context, msg *EmailMessage) error {
	from := sgmail.NewEmail(s.fromName, s.from)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", msg.To, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send to %s: status %d", msg.To, resp.StatusCode)
	}
	return nil
}

// MockEmailSender records messages instead of delivering them
type MockEmailSender struct {
	Sent []*EmailMessage
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendEmail(ctx context.Context, msg *EmailMessage) error {
	m.Sent = append(m.Sent, msg)
	log.Printf("notification: mock email to %s: %s", msg.To, msg.Subject)
	return nil
}
