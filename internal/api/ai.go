package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/ducktype/internal/gemini"
	"github.com/MikeSquared-Agency/ducktype/internal/prompts"
)

func (s *Server) starterPrompts(w http.ResponseWriter, r *http.Request) {
	result, err := s.prompts.StarterPrompts(r.Context())
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"prompts": result})
}

type questionsRequest struct {
	Conversation []gemini.Content `json:"conversation"`
}

func (s *Server) followUpQuestions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := s.prompts.FollowUpQuestions(r.Context(), req.Conversation)
	if errors.Is(err, prompts.ErrEmptyConversation) {
		respondError(w, http.StatusBadRequest, "missing conversation")
		return
	}
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"questions": result})
}

// respondUpstreamError surfaces the generative API's own status code when
// there is one; anything else is a plain server error. Content-shape
// problems never reach here, the prompt service already fell back.
func (s *Server) respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) {
		s.logger.Error("upstream generation failed", "status", apiErr.StatusCode, "detail", apiErr.Detail)
		respondJSON(w, apiErr.StatusCode, map[string]string{
			"error":   "generation service error",
			"details": apiErr.Detail,
		})
		return
	}
	s.logger.Error("upstream call failed", "error", err)
	respondError(w, http.StatusInternalServerError, "server error")
}
