// Package prompts asks the generative language API for conversational turns:
// starter prompts to open a session, and Socratic follow-up questions seeded
// by a transcript. One upstream call per request, no retries; malformed model
// content degrades to a fixed fallback, transport failures do not.
package prompts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/ducktype/internal/extract"
	"github.com/MikeSquared-Agency/ducktype/internal/gemini"
	"github.com/MikeSquared-Agency/ducktype/internal/metrics"
)

// ErrEmptyConversation is returned by FollowUpQuestions before any network
// call when the seed transcript is missing.
var ErrEmptyConversation = errors.New("missing conversation")

type Service struct {
	llm    *gemini.Client
	logger *slog.Logger
}

func New(llm *gemini.Client, logger *slog.Logger) *Service {
	return &Service{llm: llm, logger: logger}
}

// StarterPrompts returns 3-6 short prompts a user could open with.
// Upstream transport failures propagate; malformed content falls back.
func (s *Service) StarterPrompts(ctx context.Context) ([]string, error) {
	contents := []gemini.Content{
		{Role: "user", Parts: []gemini.Part{{Text: "Provide starter prompts"}}},
	}
	schema := gemini.ResponseSchema{Field: "prompts", MinItems: 1, MaxItems: 6}

	raw, err := s.llm.GenerateContent(ctx, starterSystemPrompt, contents, 128, schema)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("starter_prompts", "error").Inc()
		return nil, fmt.Errorf("starter prompts: %w", err)
	}
	metrics.UpstreamRequests.WithLabelValues("starter_prompts", "ok").Inc()

	result, ok := extract.StringArray(raw, extract.Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: starterFallback,
	})
	if !ok {
		metrics.ParserFallbacks.WithLabelValues("starter_prompts").Inc()
		s.logger.Warn("no valid prompts in model output, using fallback", "raw_len", len(raw))
	}
	return result, nil
}

// FollowUpQuestions returns 1-2 clarifying questions seeded by the
// conversation so far. The history must be non-empty; that check happens
// before any network call.
func (s *Service) FollowUpQuestions(ctx context.Context, conversation []gemini.Content) ([]string, error) {
	if len(conversation) == 0 {
		return nil, ErrEmptyConversation
	}

	schema := gemini.ResponseSchema{Field: "questions", MinItems: 1, MaxItems: 2}

	raw, err := s.llm.GenerateContent(ctx, questionsSystemPrompt, conversation, 256, schema)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("follow_up_questions", "error").Inc()
		return nil, fmt.Errorf("follow-up questions: %w", err)
	}
	metrics.UpstreamRequests.WithLabelValues("follow_up_questions", "ok").Inc()

	result, ok := extract.StringArray(raw, extract.Schema{
		Field:    "questions",
		MinItems: 1,
		MaxItems: 2,
		Fallback: questionsFallback,
	})
	if !ok {
		metrics.ParserFallbacks.WithLabelValues("follow_up_questions").Inc()
		s.logger.Warn("no valid questions in model output, using fallback", "raw_len", len(raw))
	}
	return result, nil
}
