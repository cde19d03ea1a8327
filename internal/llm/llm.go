package llm

import (
	"context"

	"github.com/kiosk_checkin/backend/internal/models"
)

// Completer forwards an ordered message sequence to a completion provider and
// returns the top choice's content as opaque text. The content is never
// parsed here; interpreting it is the caller's job.
type Completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage, model string, temperature float64) (string, error)
}
