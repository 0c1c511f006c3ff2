package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ducktype/internal/store"
)

// Wire representations carry identifiers as strings and timestamps as
// ISO-8601 with millisecond precision, the shape clients consume.

type ConversationWire struct {
	ID        string        `json:"id"`
	Owner     string        `json:"owner"`
	Title     string        `json:"title"`
	Messages  []MessageWire `json:"messages"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type MessageWire struct {
	UserText  string `json:"userText"`
	AIText    string `json:"aiText"`
	CreatedAt string `json:"createdAt"`
}

const wireTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout)
}

func parseWireTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func normalizeMessage(m store.Message) MessageWire {
	return MessageWire{
		UserText:  m.UserText,
		AIText:    m.AIText,
		CreatedAt: formatWireTime(m.CreatedAt),
	}
}

func normalizeConversation(c store.Conversation) ConversationWire {
	msgs := make([]MessageWire, len(c.Messages))
	for i, m := range c.Messages {
		msgs[i] = normalizeMessage(m)
	}
	return ConversationWire{
		ID:        c.ID.String(),
		Owner:     c.Owner,
		Title:     c.Title,
		Messages:  msgs,
		CreatedAt: formatWireTime(c.CreatedAt),
		UpdatedAt: formatWireTime(c.UpdatedAt),
	}
}

// parseConversationID is the inverse of the wire id mapping.
func parseConversationID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
