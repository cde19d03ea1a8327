package models

// CheckInSubmission is the kiosk payload describing a visitor's contact info
// and service request. first_name, last_name, email, and mobile must be
// non-empty after sanitization; everything else is optional free text.
type CheckInSubmission struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Phone           string `json:"phone,omitempty"`
	BusinessName    string `json:"business_name,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Zip             string `json:"zip,omitempty"`
	VisitReason     string `json:"visit_reason,omitempty"`
	Issue           string `json:"issue,omitempty"`
	DeviceBrand     string `json:"device_brand,omitempty"`
	DeviceModel     string `json:"device_model,omitempty"`
	OnsiteOrDropoff string `json:"onsite_or_dropoff,omitempty"`
	ExtraNotes      string `json:"extra_notes,omitempty"`
}

// Reason returns the raw text the problem classifier and subject derive from.
func (s CheckInSubmission) Reason() string {
	if s.VisitReason != "" {
		return s.VisitReason
	}
	return s.Issue
}

// TicketComment is a single note attached to a ticket at creation time.
// Hidden comments are staff-only in the CRM.
type TicketComment struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Hidden  bool   `json:"hidden"`
}

// TicketPayload is the ticket-creation body sent to the CRM.
type TicketPayload struct {
	CustomerID  int64           `json:"customer_id"`
	Subject     string          `json:"subject"`
	ProblemType string          `json:"problem_type"`
	Comments    []TicketComment `json:"comments_attributes"`
}

// TicketResult is the normalized outcome of a ticket submission. Raw carries
// the CRM's full response body untouched for the kiosk to display.
type TicketResult struct {
	TicketID     int64          `json:"ticket_id"`
	TicketNumber int64          `json:"ticket_number"`
	Raw          map[string]any `json:"ticket"`
}

// ChatMessage is one turn of a conversation forwarded to the completion
// provider. Order within a request is semantically significant and is
// preserved verbatim.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
