package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiosk_checkin/backend/internal/models"
)

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint. The
// bearer credential stays server-side; the kiosk never sees it.
type OpenAIClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type completionRequest struct {
	Model       string               `json:"model"`
	Temperature float64              `json:"temperature"`
	Messages    []models.ChatMessage `json:"messages"`
}

type completionResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []models.ChatMessage, model string, temperature float64) (string, error) {
	if len(messages) == 0 {
		return "", models.Invalid("messages[] is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return "", models.Misconfigured("completion provider API key is not configured")
	}

	body, _ := json.Marshal(completionRequest{
		Model:       model,
		Temperature: temperature,
		Messages:    messages,
	})
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		return "", &models.ExternalServiceError{Service: "completion provider", Message: "completion request failed", Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.ExternalServiceError{Service: "completion provider", Message: "completion response unreadable", Status: resp.StatusCode, Detail: err.Error()}
	}

	var res completionResponse
	_ = json.Unmarshal(raw, &res)

	// Some provider failures arrive as an error object inside a 200; both
	// shapes fail the same way, surfacing the provider's own message.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || res.Error != nil {
		msg := "completion provider request failed"
		if res.Error != nil && res.Error.Message != "" {
			msg = res.Error.Message
		}
		return "", &models.ExternalServiceError{Service: "completion provider", Message: msg, Status: resp.StatusCode, Detail: looseJSON(raw)}
	}

	if len(res.Choices) == 0 {
		return "", nil
	}
	return res.Choices[0].Message.Content, nil
}

// httpClient bounds each call at 45s, tightened to the context deadline when
// one is nearer.
func (c *OpenAIClient) httpClient(ctx context.Context) *http.Client {
	if c.Client != nil {
		return c.Client
	}
	timeout := 45 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	return &http.Client{Timeout: timeout}
}

func looseJSON(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}
