package notification

import (
	"context"
	"strings"
	"testing"
	"time"
)

type fakeRepo struct {
	notifications []*Notification
	prefs         map[int64]*Preferences
	recipients    map[int64]*Recipient
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		prefs:      make(map[int64]*Preferences),
		recipients: make(map[int64]*Recipient),
	}
}

func (f *fakeRepo) CreateNotification(ctx context.Context, n *Notification) error {
	n.ID = int64(len(f.notifications) + 1)
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeRepo) GetUserNotifications(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) ([]*Notification, error) {
	var out []*Notification
	for _, n := range f.notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	for _, n := range f.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (f *fakeRepo) MarkAllAsRead(ctx context.Context, userID int64) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) DeleteNotification(ctx context.Context, notificationID, userID int64) error {
	for i, n := range f.notifications {
		if n.ID == notificationID && n.UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (f *fakeRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	if p, ok := f.prefs[userID]; ok {
		return p, nil
	}
	return DefaultPreferences(userID), nil
}

func (f *fakeRepo) UpsertPreferences(ctx context.Context, prefs *Preferences) error {
	f.prefs[prefs.UserID] = prefs
	return nil
}

func (f *fakeRepo) GetRecipient(ctx context.Context, userID int64) (*Recipient, error) {
	if r, ok := f.recipients[userID]; ok {
		return r, nil
	}
	return nil, ErrRecipientNotFound
}

func strPtr(s string) *string { return &s }

func TestNotifyInterestReceivedStoresInApp(t *testing.T) {
	repo := newFakeRepo()
	repo.recipients[1] = &Recipient{UserID: 1, FullName: "Asha Rao", Email: strPtr("asha@example.com")}
	repo.recipients[2] = &Recipient{UserID: 2, FullName: "Vikram Shetty"}

	email := NewMockEmailSender()
	svc := NewService(repo, email, NewMockSMSSender(), "https://app.example.com")

	svc.NotifyInterestReceived(context.Background(), 1, 2)

	if len(repo.notifications) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(repo.notifications))
	}

	n := repo.notifications[0]
	if n.UserID != 1 || n.Type != TypeInterestReceived {
		t.Errorf("notification = %+v", n)
	}
	if !strings.Contains(n.Message, "Vikram Shetty") {
		t.Errorf("message %q does not name the sender", n.Message)
	}

	// Email delivery happens on a separate goroutine
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && len(email.Sent) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if len(email.Sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(email.Sent))
	}
	if email.Sent[0].To != "asha@example.com" {
		t.Errorf("email to = %q", email.Sent[0].To)
	}
}

func TestDisabledChannelsAreSkipped(t *testing.T) {
	repo := newFakeRepo()
	repo.recipients[1] = &Recipient{UserID: 1, FullName: "Asha Rao", Email: strPtr("asha@example.com")}
	repo.recipients[2] = &Recipient{UserID: 2, FullName: "Vikram Shetty"}
	repo.prefs[1] = &Preferences{UserID: 1, EmailEnabled: false, SMSEnabled: false}

	email := NewMockEmailSender()
	svc := NewService(repo, email, NewMockSMSSender(), "https://app.example.com")

	svc.NotifyInterestReceived(context.Background(), 1, 2)

	if len(repo.notifications) != 1 {
		t.Fatal("in-app notification must be stored even with channels off")
	}

	time.Sleep(50 * time.Millisecond)
	if len(email.Sent) != 0 {
		t.Errorf("sent %d emails with email disabled", len(email.Sent))
	}
}

func TestUpdatePreferencesMergesPartialRequest(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, "")

	off := false
	prefs, err := svc.UpdatePreferences(context.Background(), 5, &UpdatePreferencesRequest{EmailEnabled: &off})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}

	if prefs.EmailEnabled {
		t.Error("email still enabled after opt out")
	}
	if prefs.SMSEnabled != DefaultPreferences(5).SMSEnabled {
		t.Error("untouched SMS preference changed")
	}
}

func TestGetNotificationsUnreadCount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, "")

	repo.CreateNotification(context.Background(), &Notification{UserID: 1, Type: TypeWelcome, Title: "a"})
	repo.CreateNotification(context.Background(), &Notification{UserID: 1, Type: TypeNewMessage, Title: "b"})
	repo.MarkAsRead(context.Background(), 1, 1)

	resp, err := svc.GetNotifications(context.Background(), 1, 20, 0, false)
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(resp.Notifications) != 2 {
		t.Errorf("listed %d notifications, want 2", len(resp.Notifications))
	}
	if resp.UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", resp.UnreadCount)
	}
}

func TestRenderEmailIncludesAction(t *testing.T) {
	_, _, data := interestAcceptedContent("Vikram", "Asha", "https://app.example.com")
	data.Name = "Vikram"

	html, err := renderEmail(data)
	if err != nil {
		t.Fatalf("renderEmail: %v", err)
	}
	if !strings.Contains(html, "https://app.example.com/chat") {
		t.Error("rendered email missing chat link")
	}
	if !strings.Contains(html, "Vikram") {
		t.Error("rendered email missing recipient name")
	}
}
