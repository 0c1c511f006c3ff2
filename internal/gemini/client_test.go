package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateContent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key query param test-key, got %q", r.URL.Query().Get("key"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.SystemInstruction == nil || len(req.SystemInstruction.Parts) != 1 || req.SystemInstruction.Parts[0].Text != "you are a test" {
			t.Errorf("unexpected system instruction: %+v", req.SystemInstruction)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected contents: %+v", req.Contents)
		}
		if req.GenerationConfig.MaxOutputTokens != 128 {
			t.Errorf("expected max_output_tokens 128, got %d", req.GenerationConfig.MaxOutputTokens)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected json mime type, got %q", req.GenerationConfig.ResponseMimeType)
		}
		props, ok := req.GenerationConfig.ResponseJSONSchema["properties"].(map[string]any)
		if !ok {
			t.Fatalf("missing schema properties: %+v", req.GenerationConfig.ResponseJSONSchema)
		}
		if _, ok := props["prompts"]; !ok {
			t.Errorf("expected schema field prompts, got %+v", props)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `{"prompts":["a"]}`}}}},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	contents := []Content{{Role: "user", Parts: []Part{{Text: "hello"}}}}
	schema := ResponseSchema{Field: "prompts", MinItems: 1, MaxItems: 6}
	result, err := c.GenerateContent(context.Background(), "you are a test", contents, 128, schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != `{"prompts":["a"]}` {
		t.Errorf("unexpected text %q", result)
	}
}

func TestGenerateContent_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	contents := []Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}
	_, err := c.GenerateContent(context.Background(), "", contents, 128, ResponseSchema{Field: "prompts", MinItems: 1, MaxItems: 6})
	if err == nil {
		t.Fatal("expected error for API error response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Detail, "quota exceeded") {
		t.Errorf("expected upstream detail, got %q", apiErr.Detail)
	}
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	contents := []Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}
	result, err := c.GenerateContent(context.Background(), "", contents, 128, ResponseSchema{Field: "questions", MinItems: 1, MaxItems: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "" {
		t.Errorf("expected empty text for missing candidates, got %q", result)
	}
}
