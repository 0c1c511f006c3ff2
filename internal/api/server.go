package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/ducktype/internal/events"
	"github.com/MikeSquared-Agency/ducktype/internal/gemini"
	"github.com/MikeSquared-Agency/ducktype/internal/store"
)

// ConversationStore is the repository surface the HTTP boundary consumes.
type ConversationStore interface {
	ListByOwner(ctx context.Context, owner string) ([]store.Conversation, error)
	Create(ctx context.Context, owner, title string) (uuid.UUID, error)
	AppendMessage(ctx context.Context, id uuid.UUID, owner, userText, aiText string) (store.Message, error)
}

// PromptProvider produces AI conversational turns.
type PromptProvider interface {
	StarterPrompts(ctx context.Context) ([]string, error)
	FollowUpQuestions(ctx context.Context, conversation []gemini.Content) ([]string, error)
}

type Server struct {
	router  *chi.Mux
	port    int
	store   ConversationStore
	prompts PromptProvider
	events  *events.Publisher
	logger  *slog.Logger
}

func NewServer(port int, st ConversationStore, pr PromptProvider, ev *events.Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		store:   st,
		prompts: pr,
		events:  ev,
		logger:  logger,
	}

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/conversations", s.listConversations)
		r.Post("/conversations", s.createConversation)
		r.Post("/conversations/{id}/messages", s.appendMessage)
		r.Post("/ai/prompts", s.starterPrompts)
		r.Post("/ai/questions", s.followUpQuestions)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
