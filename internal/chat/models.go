// internal/chat/models.go

package chat

import (
	"encoding/json"
	"time"
)

// Conversation links two mutually matched members. User1ID is always
// the smaller ID so each pair has exactly one conversation.
type Conversation struct {
	ID            int64      `json:"id" db:"id"`
	User1ID       int64      `json:"user1_id" db:"user1_id"`
	User2ID       int64      `json:"user2_id" db:"user2_id"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`

	// Joined for list views
	PartnerName    *string `json:"partner_name,omitempty" db:"partner_name"`
	PartnerPicture *string `json:"partner_picture,omitempty" db:"partner_picture"`
	UnreadCount    int     `json:"unread_count" db:"unread_count"`
}

// Message is a single chat message
type Message struct {
	ID             int64      `json:"id" db:"id"`
	ConversationID int64      `json:"conversation_id" db:"conversation_id"`
	SenderID       int64      `json:"sender_id" db:"sender_id"`
	Content        string     `json:"content" db:"content"`
	ReadAt         *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// SendMessageRequest posts a message into a conversation
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// WSMessageType enumerates websocket frame types
type WSMessageType string

const (
	WSTypeMessage WSMessageType = "message"
	WSTypeTyping  WSMessageType = "typing"
	WSTypeRead    WSMessageType = "read"
)

// WSMessage is the websocket frame envelope
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}
