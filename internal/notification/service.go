// internal/notification/service.go

package notification

import (
	"context"
	"errors"
	"log"
	"time"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRecipientNotFound    = errors.New("recipient not found")
)

const retentionPeriod = 90 * 24 * time.Hour

type Service interface {
	// Event hooks called by other features
	NotifyInterestReceived(ctx context.Context, receiverID, senderID int64)
	NotifyInterestAccepted(ctx context.Context, senderID, receiverID int64)
	NotifyWelcome(ctx context.Context, userID int64)
	NotifySubscriptionActivated(ctx context.Context, userID int64, planName string, expiresAt time.Time)

	// In-app notification management
	GetNotifications(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) (*NotificationsResponse, error)
	MarkAsRead(ctx context.Context, notificationID, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	DeleteNotification(ctx context.Context, notificationID, userID int64) error

	// Preferences
	GetPreferences(ctx context.Context, userID int64) (*Preferences, error)
	UpdatePreferences(ctx context.Context, userID int64, req *UpdatePreferencesRequest) (*Preferences, error)

	// Maintenance
	CleanupOldNotifications(ctx context.Context) error
}

type service struct {
	repo    Repository
	email   EmailSender
	sms     SMSSender
	baseURL string
}

func NewService(repo Repository, email EmailSender, sms SMSSender, baseURL string) Service {
	return &service{
		repo:    repo,
		email:   email,
		sms:     sms,
		baseURL: baseURL,
	}
}

func (s *service) NotifyInterestReceived(ctx context.Context, receiverID, senderID int64) {
	sender, err := s.repo.GetRecipient(ctx, senderID)
	if err != nil {
		log.Printf("notification: sender %d lookup: %v", senderID, err)
		return
	}

	title, body, tmplData := interestReceivedContent("", sender.FullName, s.baseURL)

	s.deliver(ctx, receiverID, &Notification{
		UserID:  receiverID,
		Type:    TypeInterestReceived,
		Title:   title,
		Message: body,
		Data:    NotificationData{"sender_id": senderID},
	}, tmplData)
}

func (s *service) NotifyInterestAccepted(ctx context.Context, senderID, receiverID int64) {
	accepter, err := s.repo.GetRecipient(ctx, receiverID)
	if err != nil {
		log.Printf("notification: accepter %d lookup: %v", receiverID, err)
		return
	}

	title, body, tmplData := interestAcceptedContent("", accepter.FullName, s.baseURL)

	s.deliver(ctx, senderID, &Notification{
		UserID:  senderID,
		Type:    TypeInterestAccepted,
		Title:   title,
		Message: body,
		Data:    NotificationData{"accepter_id": receiverID},
	}, tmplData)
}

func (s *service) NotifyWelcome(ctx context.Context, userID int64) {
	title, body, tmplData := welcomeContent("", s.baseURL)

	s.deliver(ctx, userID, &Notification{
		UserID:  userID,
		Type:    TypeWelcome,
		Title:   title,
		Message: body,
	}, tmplData)
}

func (s *service) NotifySubscriptionActivated(ctx context.Context, userID int64, planName string, expiresAt time.Time) {
	title, body, tmplData := subscriptionActivatedContent("", planName, expiresAt, s.baseURL)

	s.deliver(ctx, userID, &Notification{
		UserID:  userID,
		Type:    TypeSubscription,
		Title:   title,
		Message: body,
		Data:    NotificationData{"plan": planName},
	}, tmplData)
}

// deliver stores the in-app row and fans out to the channels the
// recipient has enabled. Outbound failures are logged, never returned.
func (s *service) deliver(ctx context.Context, userID int64, n *Notification, tmplData *emailTemplateData) {
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		log.Printf("notification: store for user %d: %v", userID, err)
		return
	}
	RecordDelivery("in_app")

	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		log.Printf("notification: preferences for user %d: %v", userID, err)
		prefs = DefaultPreferences(userID)
	}

	if !prefs.EmailEnabled && !prefs.SMSEnabled {
		return
	}

	recipient, err := s.repo.GetRecipient(ctx, userID)
	if err != nil {
		log.Printf("notification: recipient %d lookup: %v", userID, err)
		return
	}
	if tmplData != nil && recipient.FullName != "" {
		tmplData.Name = recipient.FullName
	}

	if prefs.EmailEnabled && recipient.Email != nil && s.email != nil {
		go s.sendEmail(*recipient.Email, n, tmplData)
	}
	if prefs.SMSEnabled && recipient.Phone != nil && s.sms != nil {
		go s.sendSMS(*recipient.Phone, n)
	}
}

func (s *service) sendEmail(to string, n *Notification, tmplData *emailTemplateData) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html := ""
	if tmplData != nil {
		rendered, err := renderEmail(tmplData)
		if err != nil {
			log.Printf("notification: render email %s: %v", n.Type, err)
		} else {
			html = rendered
		}
	}

	msg := &EmailMessage{To: to, Subject: n.Title, Body: n.Message, HTML: html}
	if err := s.email.SendEmail(ctx, msg); err != nil {
		log.Printf("notification: email %s: %v", n.Type, err)
		RecordDeliveryFailure("email")
		return
	}
	RecordDelivery("email")
}

func (s *service) sendSMS(to string, n *Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	msg := &SMSMessage{To: to, Message: n.Title + ". " + n.Message}
	if err := s.sms.SendSMS(ctx, msg); err != nil {
		log.Printf("notification: sms %s: %v", n.Type, err)
		RecordDeliveryFailure("sms")
		return
	}
	RecordDelivery("sms")
}

func (s *service) GetNotifications(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) (*NotificationsResponse, error) {
	notifications, err := s.repo.GetUserNotifications(ctx, userID, limit, offset, unreadOnly)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return &NotificationsResponse{
		Notifications: notifications,
		UnreadCount:   unread,
		HasMore:       len(notifications) == limit,
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) DeleteNotification(ctx context.Context, notificationID, userID int64) error {
	return s.repo.DeleteNotification(ctx, notificationID, userID)
}

func (s *service) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	return s.repo.GetPreferences(ctx, userID)
}

func (s *service) UpdatePreferences(ctx context.Context, userID int64, req *UpdatePreferencesRequest) (*Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.EmailEnabled != nil {
		prefs.EmailEnabled = *req.EmailEnabled
	}
	if req.SMSEnabled != nil {
		prefs.SMSEnabled = *req.SMSEnabled
	}

	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *service) CleanupOldNotifications(ctx context.Context) error {
	deleted, err := s.repo.DeleteOlderThan(ctx, time.Now().Add(-retentionPeriod))
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("notification: cleaned up %d old notifications", deleted)
	}
	return nil
}
