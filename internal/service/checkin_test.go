package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kiosk_checkin/backend/internal/models"
)

type fakeCRM struct {
	findID    int64
	findOK    bool
	createdID int64

	findCalls   int
	createCalls int
	tickets     []models.TicketPayload

	createErr error
	ticketErr error
}

func (f *fakeCRM) FindCustomer(_ context.Context, _ models.CheckInSubmission) (int64, bool) {
	f.findCalls++
	return f.findID, f.findOK
}

func (f *fakeCRM) CreateCustomer(_ context.Context, _ models.CheckInSubmission) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createdID, nil
}

func (f *fakeCRM) CreateTicket(_ context.Context, payload models.TicketPayload) (models.TicketResult, error) {
	f.tickets = append(f.tickets, payload)
	if f.ticketErr != nil {
		return models.TicketResult{}, f.ticketErr
	}
	return models.TicketResult{TicketID: 9001, TicketNumber: 9001}, nil
}

func minimalSubmission() models.CheckInSubmission {
	return models.CheckInSubmission{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@x.com",
		Mobile:    "5551234567",
	}
}

func TestValidateSubmissionListsMissingFields(t *testing.T) {
	sub := minimalSubmission()
	sub.Email = "   "
	sub.Mobile = ""
	err := ValidateSubmission(sub)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); got != "Missing fields: email, mobile" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestValidateSubmissionAcceptsMinimal(t *testing.T) {
	if err := ValidateSubmission(minimalSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComposeNoteContactOnly(t *testing.T) {
	payload := ComposeTicket(minimalSubmission(), 1)
	body := payload.Comments[0].Body
	lines := strings.Split(body, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d: %q", len(lines), body)
	}
	want := "Contact: Ann Lee — 5551234567 / a@x.com"
	if lines[0] != want {
		t.Fatalf("unexpected contact line: %q", lines[0])
	}
}

func TestComposeNoteFixedOrder(t *testing.T) {
	sub := minimalSubmission()
	sub.Issue = "won't boot"
	sub.DeviceBrand = "Dell"
	sub.DeviceModel = "XPS 13"
	sub.OnsiteOrDropoff = "dropoff"
	sub.Address = "1 Main St"
	sub.City = "Billings"
	sub.State = "MT"
	sub.Zip = "59101"
	sub.ExtraNotes = "charger included"

	body := ComposeTicket(sub, 1).Comments[0].Body
	lines := strings.Split(body, "\n")
	wantPrefixes := []string{"Issue: ", "Device: ", "Preference: ", "Contact: ", "Address: ", "Notes: "}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("expected %d lines, got %d: %q", len(wantPrefixes), len(lines), body)
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d should start with %q, got %q", i, prefix, lines[i])
		}
	}
	if lines[1] != "Device: Dell XPS 13" {
		t.Fatalf("unexpected device line: %q", lines[1])
	}
	if lines[4] != "Address: 1 Main St, Billings, MT, 59101" {
		t.Fatalf("unexpected address line: %q", lines[4])
	}
	if strings.Contains(body, "\n\n") {
		t.Fatalf("blank line left behind: %q", body)
	}
}

func TestComposeTicketSubjectDefault(t *testing.T) {
	sub := minimalSubmission()
	sub.VisitReason = "   "
	payload := ComposeTicket(sub, 1)
	if payload.Subject != "New Service Request" {
		t.Fatalf("expected default subject, got %q", payload.Subject)
	}
	if payload.ProblemType != "Software" {
		t.Fatalf("expected Software default, got %q", payload.ProblemType)
	}
}

func TestComposeTicketHiddenComment(t *testing.T) {
	payload := ComposeTicket(minimalSubmission(), 1)
	if len(payload.Comments) != 1 {
		t.Fatalf("expected one comment, got %d", len(payload.Comments))
	}
	c := payload.Comments[0]
	if !c.Hidden || c.Subject != "Kiosk Check-In" {
		t.Fatalf("unexpected comment: %+v", c)
	}
}

func TestEnsureCustomerSkipsCreateWhenResolved(t *testing.T) {
	f := &fakeCRM{findID: 7, findOK: true}
	s := &CheckIn{CRM: f, Logger: zerolog.Nop()}
	id, err := s.EnsureCustomer(context.Background(), minimalSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected resolved id 7, got %d", id)
	}
	if f.createCalls != 0 {
		t.Fatalf("create should not be called, got %d calls", f.createCalls)
	}
}

// Spec scenario: Ann Lee checks in with a virus complaint and the CRM knows
// nothing about her. The customer is provisioned and the ticket carries the
// Virus classification with a two-line note.
func TestCreateTicketProvisionsAndClassifies(t *testing.T) {
	f := &fakeCRM{createdID: 42}
	s := &CheckIn{CRM: f, Logger: zerolog.Nop()}

	sub := minimalSubmission()
	sub.Issue = "my computer has a virus"

	result, err := s.CreateTicket(context.Background(), sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TicketID != 9001 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if f.findCalls != 1 || f.createCalls != 1 {
		t.Fatalf("expected one find and one create, got %d/%d", f.findCalls, f.createCalls)
	}

	if len(f.tickets) != 1 {
		t.Fatalf("expected one ticket, got %d", len(f.tickets))
	}
	ticket := f.tickets[0]
	if ticket.CustomerID != 42 {
		t.Fatalf("expected provisioned customer id, got %d", ticket.CustomerID)
	}
	if ticket.ProblemType != "Virus" {
		t.Fatalf("expected Virus, got %q", ticket.ProblemType)
	}
	if ticket.Subject != "my computer has a virus" {
		t.Fatalf("unexpected subject: %q", ticket.Subject)
	}
	lines := strings.Split(ticket.Comments[0].Body, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "Issue: ") || !strings.HasPrefix(lines[1], "Contact: ") {
		t.Fatalf("expected Issue and Contact lines, got %q", ticket.Comments[0].Body)
	}
}

func TestCreateTicketRejectsBeforeAnyExternalCall(t *testing.T) {
	f := &fakeCRM{}
	s := &CheckIn{CRM: f, Logger: zerolog.Nop()}
	_, err := s.CreateTicket(context.Background(), models.CheckInSubmission{FirstName: "Ann"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if f.findCalls != 0 || f.createCalls != 0 || len(f.tickets) != 0 {
		t.Fatal("no CRM call may happen for an invalid submission")
	}
}
