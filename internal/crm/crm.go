package crm

import (
	"context"

	"github.com/kiosk_checkin/backend/internal/models"
)

// Client is the surface this service consumes from the CRM. The CRM owns the
// customer and ticket lifecycles; we only ever query, create customers, and
// create tickets.
type Client interface {
	// FindCustomer runs a best-effort search for an existing customer
	// matching the submission's contact fields. A failed query degrades to
	// "not found" rather than an error: the caller falls back to creating
	// the customer.
	FindCustomer(ctx context.Context, sub models.CheckInSubmission) (int64, bool)

	// CreateCustomer provisions a new customer record and returns its id.
	CreateCustomer(ctx context.Context, sub models.CheckInSubmission) (int64, error)

	// CreateTicket submits a ticket and returns the normalized result.
	// Submission is not idempotent: two calls with the same payload create
	// two tickets.
	CreateTicket(ctx context.Context, payload models.TicketPayload) (models.TicketResult, error)
}
