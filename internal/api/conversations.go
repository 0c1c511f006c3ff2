package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/ducktype/internal/events"
	"github.com/MikeSquared-Agency/ducktype/internal/metrics"
	"github.com/MikeSquared-Agency/ducktype/internal/store"
)

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		respondError(w, http.StatusBadRequest, "missing owner")
		return
	}

	convs, err := s.store.ListByOwner(r.Context(), owner)
	if err != nil {
		s.logger.Error("list conversations", "owner", owner, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	wire := make([]ConversationWire, len(convs))
	for i, c := range convs {
		wire[i] = normalizeConversation(c)
	}
	respondJSON(w, http.StatusOK, wire)
}

type createRequest struct {
	Owner string `json:"owner"`
	Title string `json:"title"`
}

func (s *Server) createConversation(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Owner == "" {
		respondError(w, http.StatusBadRequest, "missing owner")
		return
	}

	id, err := s.store.Create(r.Context(), req.Owner, req.Title)
	if err != nil {
		s.logger.Error("create conversation", "owner", req.Owner, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	metrics.ConversationsCreated.Inc()

	s.events.Publish(events.SubjectConversationCreated, events.ConversationCreated{
		ConversationID: id.String(),
		Owner:          req.Owner,
		Title:          req.Title,
	})

	respondJSON(w, http.StatusOK, map[string]string{
		"id":    id.String(),
		"owner": req.Owner,
	})
}

type appendRequest struct {
	Owner    string          `json:"owner"`
	UserText string          `json:"userText"`
	AIText   json.RawMessage `json:"aiText"`
}

// resolveAIText accepts the AI turn as either a string or an array of
// strings; segments are newline-joined before storage.
func resolveAIText(raw json.RawMessage) (string, bool) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, true
	}
	var segments []string
	if err := json.Unmarshal(raw, &segments); err == nil {
		return strings.Join(segments, "\n"), true
	}
	return "", false
}

func (s *Server) appendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := parseConversationID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	var req appendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	aiText, ok := resolveAIText(req.AIText)
	if !ok {
		respondError(w, http.StatusBadRequest, "missing payload")
		return
	}

	msg, err := s.store.AppendMessage(r.Context(), id, req.Owner, req.UserText, aiText)
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "missing payload")
		return
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
		return
	case err != nil:
		s.logger.Error("append message", "conversation", id, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	metrics.MessagesAppended.Inc()

	s.events.Publish(events.SubjectMessageAppended, events.MessageAppended{
		ConversationID: id.String(),
		Owner:          req.Owner,
		CreatedAt:      formatWireTime(msg.CreatedAt),
	})

	respondJSON(w, http.StatusOK, map[string]MessageWire{
		"message": normalizeMessage(msg),
	})
}
