// internal/notification/models.go

package notification

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// NotificationType enumerates the events members can be notified about
type NotificationType string

const (
	TypeInterestReceived NotificationType = "interest_received"
	TypeInterestAccepted NotificationType = "interest_accepted"
	TypeNewMessage       NotificationType = "new_message"
	TypeWelcome          NotificationType = "welcome"
	TypeSubscription     NotificationType = "subscription"
)

// Notification is an in-app notification row
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      NotificationData `json:"data" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationData holds extra payload persisted as JSONB
type NotificationData map[string]interface{}

func (nd *NotificationData) Scan(value interface{}) error {
	if value == nil {
		*nd = make(NotificationData)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, nd)
}

func (nd NotificationData) Value() (driver.Value, error) {
	if nd == nil {
		return "{}", nil
	}
	return json.Marshal(nd)
}

// Preferences controls which channels a member receives
type Preferences struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	EmailEnabled bool      `json:"email_enabled" db:"email_enabled"`
	SMSEnabled   bool      `json:"sms_enabled" db:"sms_enabled"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultPreferences is used when a member has never saved any
func DefaultPreferences(userID int64) *Preferences {
	return &Preferences{UserID: userID, EmailEnabled: true, SMSEnabled: false}
}

// UpdatePreferencesRequest toggles delivery channels
type UpdatePreferencesRequest struct {
	EmailEnabled *bool `json:"email_enabled,omitempty"`
	SMSEnabled   *bool `json:"sms_enabled,omitempty"`
}

// Recipient carries the contact details needed for outbound delivery
type Recipient struct {
	UserID   int64   `db:"user_id"`
	FullName string  `db:"full_name"`
	Email    *string `db:"email"`
	Phone    *string `db:"phone"`
}

// EmailMessage is one outbound email
type EmailMessage struct {
	To      string
	Subject string
	Body    string
	HTML    string
}

// SMSMessage is one outbound text message
type SMSMessage struct {
	To      string
	Message string
}

// NotificationsResponse is the paginated list payload
type NotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
	HasMore       bool            `json:"has_more"`
}
