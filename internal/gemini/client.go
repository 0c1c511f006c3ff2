package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(baseURL string) {
	c.baseURL = baseURL
}

// Content is a single conversational turn: role "user" or "model".
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// ResponseSchema constrains generation to a JSON object carrying a single
// string-array field.
type ResponseSchema struct {
	Field    string
	MinItems int
	MaxItems int
}

type request struct {
	SystemInstruction *systemInstruction `json:"systemInstruction,omitempty"`
	Contents          []Content          `json:"contents"`
	GenerationConfig  generationConfig   `json:"generationConfig"`
}

type systemInstruction struct {
	Parts []Part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens    int            `json:"max_output_tokens"`
	Temperature        float64        `json:"temperature"`
	ResponseMimeType   string         `json:"response_mime_type"`
	ResponseJSONSchema map[string]any `json:"response_json_schema"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// APIError is a non-success response from the generative language API.
// The status code is kept so callers can propagate it.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error %d: %s", e.StatusCode, e.Detail)
}

// GenerateContent sends one generateContent request and returns the
// generated text of the first candidate. maxTokens and the response schema
// are per-call because each task asks for a different payload shape.
func (c *Client) GenerateContent(ctx context.Context, system string, contents []Content, maxTokens int, schema ResponseSchema) (string, error) {
	reqBody := request{
		Contents: contents,
		GenerationConfig: generationConfig{
			MaxOutputTokens:  maxTokens,
			Temperature:      0.2,
			ResponseMimeType: "application/json",
			ResponseJSONSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					schema.Field: map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": schema.MinItems,
						"maxItems": schema.MaxItems,
					},
				},
				"required": []string{schema.Field},
			},
		},
	}
	if system != "" {
		reqBody.SystemInstruction = &systemInstruction{Parts: []Part{{Text: system}}}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Detail: string(respBody)}
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	// A body without candidates is a content problem, not a transport one:
	// empty text flows to the caller, whose parser falls back.
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}
