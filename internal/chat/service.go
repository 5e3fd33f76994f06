// internal/chat/service.go

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not part of this conversation")
	ErrNotMatched           = errors.New("you can only chat with accepted matches")
)

// MatchChecker reports whether two members have an accepted interest
// between them. Satisfied by the match service.
type MatchChecker interface {
	IsMutualMatch(ctx context.Context, user1ID, user2ID int64) (bool, error)
}

type Service interface {
	// OpenConversation creates the conversation for a newly accepted
	// match. Safe to call more than once for the same pair.
	OpenConversation(ctx context.Context, user1ID, user2ID int64) error

	GetConversations(ctx context.Context, userID int64) ([]*Conversation, error)
	GetMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]*Message, error)
	SendMessage(ctx context.Context, senderID, conversationID int64, content string) (*Message, error)
	MarkConversationRead(ctx context.Context, userID, conversationID int64) error
	GetUnreadCount(ctx context.Context, userID int64) (int, error)

	// RelayTyping forwards a typing indicator to the other
	// participant without persisting anything
	RelayTyping(ctx context.Context, userID, conversationID int64)
}

type service struct {
	repo    Repository
	matches MatchChecker
	hub     *Hub
}

func NewService(repo Repository, matches MatchChecker, hub *Hub) Service {
	return &service{
		repo:    repo,
		matches: matches,
		hub:     hub,
	}
}

func (s *service) OpenConversation(ctx context.Context, user1ID, user2ID int64) error {
	conv := &Conversation{User1ID: user1ID, User2ID: user2ID}
	return s.repo.CreateConversation(ctx, conv)
}

func (s *service) GetConversations(ctx context.Context, userID int64) ([]*Conversation, error) {
	return s.repo.GetUserConversations(ctx, userID)
}

func (s *service) GetMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]*Message, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.hasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	return s.repo.GetMessages(ctx, conversationID, limit, offset)
}

func (s *service) SendMessage(ctx context.Context, senderID, conversationID int64, content string) (*Message, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.hasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	// The match may have been withdrawn since the conversation opened
	matched, err := s.matches.IsMutualMatch(ctx, conv.User1ID, conv.User2ID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotMatched
	}

	msg := &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	RecordMessageSent()
	s.pushToPartner(conv, senderID, msg)

	return msg, nil
}

func (s *service) MarkConversationRead(ctx context.Context, userID, conversationID int64) error {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.hasParticipant(userID) {
		return ErrNotParticipant
	}

	return s.repo.MarkRead(ctx, conversationID, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) RelayTyping(ctx context.Context, userID, conversationID int64) {
	if s.hub == nil {
		return
	}

	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil || !conv.hasParticipant(userID) {
		return
	}

	partnerID := conv.User1ID
	if partnerID == userID {
		partnerID = conv.User2ID
	}

	data, err := json.Marshal(map[string]int64{
		"conversation_id": conversationID,
		"user_id":         userID,
	})
	if err != nil {
		return
	}

	frame, err := json.Marshal(&WSMessage{
		Type:      string(WSTypeTyping),
		Data:      data,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	s.hub.SendToUser(partnerID, frame)
}

// pushToPartner delivers the message over the websocket hub when the
// partner is connected. Delivery is best effort.
func (s *service) pushToPartner(conv *Conversation, senderID int64, msg *Message) {
	if s.hub == nil {
		return
	}

	partnerID := conv.User1ID
	if partnerID == senderID {
		partnerID = conv.User2ID
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("chat: marshal message %d: %v", msg.ID, err)
		return
	}

	frame, err := json.Marshal(&WSMessage{
		Type:      string(WSTypeMessage),
		Data:      data,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("chat: marshal frame for message %d: %v", msg.ID, err)
		return
	}

	s.hub.SendToUser(partnerID, frame)
}

func (c *Conversation) hasParticipant(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}
