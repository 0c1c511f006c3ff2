package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultTitle = "New conversation"

// Conversation is a per-user transcript. Messages are append-only and kept
// in chronological order inside a single jsonb document, so an append is one
// atomic row update.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one exchange: the user's turn and the AI's reply.
type Message struct {
	UserText  string    `json:"user_text"`
	AIText    string    `json:"ai_text"`
	CreatedAt time.Time `json:"created_at"`
}

// ListByOwner returns all of an owner's conversations, most recently
// active first. An unknown owner yields an empty slice, not an error.
func (s *Store) ListByOwner(ctx context.Context, owner string) ([]Conversation, error) {
	if owner == "" {
		return nil, &ValidationError{Field: "owner"}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, title, messages, created_at, updated_at
		FROM conversations
		WHERE owner = $1
		ORDER BY updated_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	convs := []Conversation{}
	for rows.Next() {
		var c Conversation
		var raw []byte
		if err := rows.Scan(&c.ID, &c.Owner, &c.Title, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		if err := json.Unmarshal(raw, &c.Messages); err != nil {
			return nil, fmt.Errorf("decode transcript: %w", err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// Create inserts a conversation with an empty transcript. An empty title
// gets the default placeholder.
func (s *Store) Create(ctx context.Context, owner, title string) (uuid.UUID, error) {
	if owner == "" {
		return uuid.Nil, &ValidationError{Field: "owner"}
	}
	if title == "" {
		title = defaultTitle
	}

	id := uuid.New()
	now := time.Now().UTC()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversations (id, owner, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, '[]', $4, $4)`,
		id, owner, title, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert conversation: %w", err)
	}
	return id, nil
}

// AppendMessage appends one exchange to the transcript identified by both id
// and owner, stamping the message and updated_at with the same instant.
// The locate-append-timestamp sequence is a single UPDATE, so concurrent
// appends to one conversation serialize at the row: both land, in some
// order, never partially. Returns the message as stored (read-your-write).
func (s *Store) AppendMessage(ctx context.Context, id uuid.UUID, owner, userText, aiText string) (Message, error) {
	if owner == "" {
		return Message{}, &ValidationError{Field: "owner"}
	}
	if userText == "" {
		return Message{}, &ValidationError{Field: "userText"}
	}

	now := time.Now().UTC()
	msg := Message{UserText: userText, AIText: aiText, CreatedAt: now}
	appended, err := json.Marshal([]Message{msg})
	if err != nil {
		return Message{}, fmt.Errorf("encode message: %w", err)
	}

	var raw []byte
	err = s.pool.QueryRow(ctx, `
		UPDATE conversations
		SET messages = messages || $3::jsonb, updated_at = $4
		WHERE id = $1 AND owner = $2
		RETURNING messages`,
		id, owner, appended, now,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, fmt.Errorf("append message: %w", err)
	}

	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return Message{}, fmt.Errorf("decode transcript: %w", err)
	}
	if len(messages) == 0 {
		// Shouldn't happen after a successful append; treat like a miss
		// rather than hand back a phantom message.
		return Message{}, ErrNotFound
	}
	return messages[len(messages)-1], nil
}
