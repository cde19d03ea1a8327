package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kiosk_checkin/backend/internal/classify"
	"github.com/kiosk_checkin/backend/internal/crm"
	"github.com/kiosk_checkin/backend/internal/models"
	"github.com/kiosk_checkin/backend/internal/sanitize"
)

const (
	defaultSubject = "New Service Request"
	commentSubject = "Kiosk Check-In"
)

// CheckIn runs the kiosk pipeline: validate the submission, resolve or create
// the CRM customer, compose the ticket, submit it. Nothing is stored locally;
// the CRM holds all state.
type CheckIn struct {
	CRM    crm.Client
	Logger zerolog.Logger
}

// ValidateSubmission rejects a submission whose required contact fields are
// empty after sanitization. It runs before any external call.
func ValidateSubmission(sub models.CheckInSubmission) error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", sub.FirstName},
		{"last_name", sub.LastName},
		{"email", sub.Email},
		{"mobile", sub.Mobile},
	}
	var missing []string
	for _, f := range required {
		if sanitize.CleanDefault(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return models.Invalid("Missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ComposeTicket builds the CRM ticket payload. The subject comes from the
// sanitized visit reason, the problem type from the raw reason text, and the
// note body from the fixed-order optional lines. The note is attached as a
// hidden comment so the customer never sees it.
func ComposeTicket(sub models.CheckInSubmission, customerID int64) models.TicketPayload {
	subject := sanitize.Clean(sub.Reason(), 120)
	if subject == "" {
		subject = defaultSubject
	}
	return models.TicketPayload{
		CustomerID:  customerID,
		Subject:     subject,
		ProblemType: string(classify.Problem(sub.Reason())),
		Comments: []models.TicketComment{
			{Subject: commentSubject, Body: composeNote(sub), Hidden: true},
		},
	}
}

// composeNote joins the note lines in fixed order: Issue, Device, Preference,
// Contact, Address, Notes. Blank source fields drop their line entirely; the
// Contact line is always present.
func composeNote(sub models.CheckInSubmission) string {
	var lines []string

	if issue := sanitize.Clean(sub.Issue, 2000); issue != "" {
		lines = append(lines, "Issue: "+issue)
	}

	device := strings.TrimSpace(sanitize.Clean(sub.DeviceBrand, 120) + " " + sanitize.Clean(sub.DeviceModel, 120))
	if device != "" {
		lines = append(lines, "Device: "+device)
	}

	if pref := sanitize.Clean(sub.OnsiteOrDropoff, 40); pref != "" {
		lines = append(lines, "Preference: "+pref)
	}

	lines = append(lines, fmt.Sprintf("Contact: %s %s — %s / %s",
		sanitize.Clean(sub.FirstName, 80),
		sanitize.Clean(sub.LastName, 80),
		sanitize.Clean(sub.Mobile, 40),
		sanitize.Clean(sub.Email, 120)))

	var addressParts []string
	for _, v := range []string{sub.Address, sub.City, sub.State, sub.Zip} {
		if part := sanitize.Clean(v, 120); part != "" {
			addressParts = append(addressParts, part)
		}
	}
	if len(addressParts) > 0 {
		lines = append(lines, "Address: "+strings.Join(addressParts, ", "))
	}

	if notes := sanitize.Clean(sub.ExtraNotes, 2000); notes != "" {
		lines = append(lines, "Notes: "+notes)
	}

	return strings.Join(lines, "\n")
}

// EnsureCustomer resolves the submission against existing CRM customers and
// provisions a new record on a miss. A failed or empty lookup is not an
// error; it just routes to the create path.
func (s *CheckIn) EnsureCustomer(ctx context.Context, sub models.CheckInSubmission) (int64, error) {
	if id, found := s.CRM.FindCustomer(ctx, sub); found {
		s.Logger.Debug().Int64("customer_id", id).Msg("customer resolved")
		return id, nil
	}
	id, err := s.CRM.CreateCustomer(ctx, sub)
	if err != nil {
		return 0, err
	}
	s.Logger.Info().Int64("customer_id", id).Msg("customer created")
	return id, nil
}

// CreateTicket runs the full pipeline for one submission.
func (s *CheckIn) CreateTicket(ctx context.Context, sub models.CheckInSubmission) (models.TicketResult, error) {
	if err := ValidateSubmission(sub); err != nil {
		return models.TicketResult{}, err
	}
	customerID, err := s.EnsureCustomer(ctx, sub)
	if err != nil {
		return models.TicketResult{}, err
	}
	result, err := s.CRM.CreateTicket(ctx, ComposeTicket(sub, customerID))
	if err != nil {
		return models.TicketResult{}, err
	}
	s.Logger.Info().
		Int64("ticket_id", result.TicketID).
		Int64("ticket_number", result.TicketNumber).
		Int64("customer_id", customerID).
		Msg("ticket created")
	return result, nil
}
