package llm

import (
	"context"
	"fmt"

	"github.com/kiosk_checkin/backend/internal/models"
)

// MockCompleter answers without calling any provider. Useful for local runs
// and handler tests.
type MockCompleter struct {
	Reply string
}

func (m MockCompleter) Complete(_ context.Context, messages []models.ChatMessage, model string, _ float64) (string, error) {
	if len(messages) == 0 {
		return "", models.Invalid("messages[] is required")
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	last := messages[len(messages)-1]
	return fmt.Sprintf("[%s mock] %s", model, last.Content), nil
}
