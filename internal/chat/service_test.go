package chat

import (
	"context"
	"testing"
)

type fakeRepo struct {
	conversations map[int64]*Conversation
	messages      []*Message
	readCalls     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{conversations: make(map[int64]*Conversation)}
}

func (f *fakeRepo) CreateConversation(ctx context.Context, conv *Conversation) error {
	conv.ID = int64(len(f.conversations) + 1)
	f.conversations[conv.ID] = conv
	return nil
}

func (f *fakeRepo) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	conv, ok := f.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (f *fakeRepo) GetConversationBetween(ctx context.Context, user1ID, user2ID int64) (*Conversation, error) {
	for _, conv := range f.conversations {
		if conv.hasParticipant(user1ID) && conv.hasParticipant(user2ID) {
			return conv, nil
		}
	}
	return nil, ErrConversationNotFound
}

func (f *fakeRepo) GetUserConversations(ctx context.Context, userID int64) ([]*Conversation, error) {
	var out []*Conversation
	for _, conv := range f.conversations {
		if conv.hasParticipant(userID) {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateMessage(ctx context.Context, msg *Message) error {
	msg.ID = int64(len(f.messages) + 1)
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeRepo) GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]*Message, error) {
	var out []*Message
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	f.readCalls++
	return nil
}

func (f *fakeRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	return 0, nil
}

type fakeMatcher struct {
	matched bool
}

func (f *fakeMatcher) IsMutualMatch(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	return f.matched, nil
}

func TestSendMessageRequiresMutualMatch(t *testing.T) {
	repo := newFakeRepo()
	repo.conversations[1] = &Conversation{ID: 1, User1ID: 10, User2ID: 20}

	svc := NewService(repo, &fakeMatcher{matched: false}, nil)

	_, err := svc.SendMessage(context.Background(), 10, 1, "hello")
	if err != ErrNotMatched {
		t.Errorf("unmatched pair: err = %v, want ErrNotMatched", err)
	}
	if len(repo.messages) != 0 {
		t.Error("message persisted despite missing match")
	}
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	repo := newFakeRepo()
	repo.conversations[1] = &Conversation{ID: 1, User1ID: 10, User2ID: 20}

	svc := NewService(repo, &fakeMatcher{matched: true}, nil)

	if _, err := svc.SendMessage(context.Background(), 99, 1, "hello"); err != ErrNotParticipant {
		t.Errorf("outsider: err = %v, want ErrNotParticipant", err)
	}
}

func TestSendMessagePersistsForMatchedPair(t *testing.T) {
	repo := newFakeRepo()
	repo.conversations[1] = &Conversation{ID: 1, User1ID: 10, User2ID: 20}

	svc := NewService(repo, &fakeMatcher{matched: true}, nil)

	msg, err := svc.SendMessage(context.Background(), 10, 1, "hello there")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.ID == 0 {
		t.Error("message was not assigned an ID")
	}
	if msg.SenderID != 10 || msg.Content != "hello there" {
		t.Errorf("stored message = %+v", msg)
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeMatcher{matched: true}, nil)

	if _, err := svc.SendMessage(context.Background(), 10, 42, "hi"); err != ErrConversationNotFound {
		t.Errorf("missing conversation: err = %v, want ErrConversationNotFound", err)
	}
}

func TestMarkConversationReadChecksMembership(t *testing.T) {
	repo := newFakeRepo()
	repo.conversations[1] = &Conversation{ID: 1, User1ID: 10, User2ID: 20}

	svc := NewService(repo, &fakeMatcher{matched: true}, nil)

	if err := svc.MarkConversationRead(context.Background(), 99, 1); err != ErrNotParticipant {
		t.Errorf("outsider mark read: err = %v, want ErrNotParticipant", err)
	}
	if repo.readCalls != 0 {
		t.Error("repository touched for an outsider")
	}

	if err := svc.MarkConversationRead(context.Background(), 20, 1); err != nil {
		t.Errorf("participant mark read: %v", err)
	}
	if repo.readCalls != 1 {
		t.Errorf("readCalls = %d, want 1", repo.readCalls)
	}
}
