// Package events announces transcript activity over NATS so sibling services
// (summarizers, analytics) can react without polling the store. Publishing is
// fire-and-forget: a failed publish never fails the request that caused it.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectConversationCreated = "ducktype.conversation.created"
	SubjectMessageAppended     = "ducktype.message.appended"
)

// ConversationCreated is published after a conversation is inserted.
type ConversationCreated struct {
	ConversationID string `json:"conversation_id"`
	Owner          string `json:"owner"`
	Title          string `json:"title"`
}

// MessageAppended is published after a successful transcript append.
type MessageAppended struct {
	ConversationID string `json:"conversation_id"`
	Owner          string `json:"owner"`
	CreatedAt      string `json:"created_at"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// Publish marshals data and emits it on subject. A nil publisher is a no-op,
// so the service runs fine without NATS configured.
func (p *Publisher) Publish(subject string, data any) {
	if p == nil || p.conn == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("marshal event payload", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn("publish event", "subject", subject, "error", err)
	}
}
