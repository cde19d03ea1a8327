package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiosk_checkin/backend/internal/models"
)

func chat(content string) []models.ChatMessage {
	return []models.ChatMessage{
		{Role: "system", Content: "You are a kiosk assistant."},
		{Role: "user", Content: content},
	}
}

func TestCompleteEmptyMessagesMakesNoCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := &OpenAIClient{BaseURL: srv.URL, APIKey: "sk-test", Client: srv.Client()}
	_, err := c.Complete(context.Background(), nil, "gpt-4o-mini", 0.2)

	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", calls)
	}
}

func TestCompleteMissingCredential(t *testing.T) {
	c := &OpenAIClient{BaseURL: "http://unused.invalid"}
	_, err := c.Complete(context.Background(), chat("hi"), "gpt-4o-mini", 0.2)

	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestCompleteForwardsRequestVerbatim(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer srv.Close()

	c := &OpenAIClient{BaseURL: srv.URL, APIKey: "sk-test", Client: srv.Client()}
	messages := chat("hi")
	content, err := c.Complete(context.Background(), messages, "gpt-4o-mini", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "hello there" {
		t.Fatalf("unexpected content %q", content)
	}
	if got.Model != "gpt-4o-mini" || got.Temperature != 0.7 {
		t.Fatalf("model/temperature not forwarded: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "hi" {
		t.Fatalf("message order not preserved: %+v", got.Messages)
	}
}

func TestCompleteEmbeddedErrorOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := &OpenAIClient{BaseURL: srv.URL, APIKey: "sk-test", Client: srv.Client()}
	_, err := c.Complete(context.Background(), chat("hi"), "gpt-4o-mini", 0.2)

	var extErr *models.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.Message != "model overloaded" {
		t.Fatalf("expected provider message to surface, got %q", extErr.Message)
	}
}

func TestCompleteHTTPErrorSurfacesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
	}))
	defer srv.Close()

	c := &OpenAIClient{BaseURL: srv.URL, APIKey: "sk-test", Client: srv.Client()}
	_, err := c.Complete(context.Background(), chat("hi"), "gpt-4o-mini", 0.2)

	var extErr *models.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.Message != "rate limit reached" || extErr.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected error: %+v", extErr)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := &OpenAIClient{BaseURL: srv.URL, APIKey: "sk-test", Client: srv.Client()}
	content, err := c.Complete(context.Background(), chat("hi"), "gpt-4o-mini", 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content, got %q", content)
	}
}
