package chat

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Conversations
	CreateConversation(ctx context.Context, conv *Conversation) error
	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	GetConversationBetween(ctx context.Context, user1ID, user2ID int64) (*Conversation, error)
	GetUserConversations(ctx context.Context, userID int64) ([]*Conversation, error)

	// Messages
	CreateMessage(ctx context.Context, msg *Message) error
	GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]*Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateConversation(ctx context.Context, conv *Conversation) error {
	if conv.User1ID > conv.User2ID {
		conv.User1ID, conv.User2ID = conv.User2ID, conv.User1ID
	}

	query := `
		INSERT INTO conversations (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query, conv.User1ID, conv.User2ID).
		Scan(&conv.ID, &conv.CreatedAt)
}

func (r *postgresRepository) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	var conv Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT id, user1_id, user2_id, last_message_at, created_at FROM conversations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *postgresRepository) GetConversationBetween(ctx context.Context, user1ID, user2ID int64) (*Conversation, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	var conv Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT id, user1_id, user2_id, last_message_at, created_at
		 FROM conversations WHERE user1_id = $1 AND user2_id = $2`,
		user1ID, user2ID)
	if err == sql.ErrNoRows {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetUserConversations lists conversations newest-first with the
// partner's display fields and the caller's unread count joined in
func (r *postgresRepository) GetUserConversations(ctx context.Context, userID int64) ([]*Conversation, error) {
	query := `
		SELECT c.id, c.user1_id, c.user2_id, c.last_message_at, c.created_at,
		       p.full_name AS partner_name,
		       p.profile_picture AS partner_picture,
		       (
			SELECT COUNT(*) FROM messages m
			WHERE m.conversation_id = c.id
			  AND m.sender_id != $1
			  AND m.read_at IS NULL
		       ) AS unread_count
		FROM conversations c
		JOIN profiles p ON p.user_id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC
	`

	var conversations []*Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *postgresRepository) CreateMessage(ctx context.Context, msg *Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		msg.ConversationID, msg.SenderID, msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET last_message_at = $1 WHERE id = $2`,
		msg.CreatedAt, msg.ConversationID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]*Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var messages []*Message
	err := r.db.SelectContext(ctx, &messages,
		`SELECT * FROM messages
		 WHERE conversation_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		conversationID, limit, offset)
	return messages, err
}

func (r *postgresRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read_at = $1
		 WHERE conversation_id = $2 AND sender_id != $3 AND read_at IS NULL`,
		time.Now(), conversationID, readerID)
	return err
}

func (r *postgresRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.user1_id = $1 OR c.user2_id = $1)
		  AND m.sender_id != $1
		  AND m.read_at IS NULL
	`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
