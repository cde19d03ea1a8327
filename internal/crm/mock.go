package crm

import (
	"context"
	"sync"

	"github.com/kiosk_checkin/backend/internal/models"
	"github.com/kiosk_checkin/backend/internal/sanitize"
	"github.com/kiosk_checkin/backend/internal/utils"
)

// MockClient is an in-memory stand-in for credential-less local runs. Customer
// ids are derived from a hash of the contact fields so repeated check-ins for
// the same visitor resolve to the same record, like the real CRM would.
type MockClient struct {
	mu         sync.Mutex
	customers  map[string]int64
	nextTicket int64
}

func NewMock() *MockClient {
	return &MockClient{customers: map[string]int64{}, nextTicket: 1000}
}

func (m *MockClient) key(sub models.CheckInSubmission) string {
	if email := sanitize.Clean(sub.Email, 120); email != "" {
		return email
	}
	return sanitize.Clean(sub.Mobile, 40)
}

func (m *MockClient) FindCustomer(_ context.Context, sub models.CheckInSubmission) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.customers[m.key(sub)]
	return id, ok
}

func (m *MockClient) CreateCustomer(_ context.Context, sub models.CheckInSubmission) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(sub)
	id := int64(utils.HashStringToUint64(k)%900000) + 100000
	m.customers[k] = id
	return id, nil
}

func (m *MockClient) CreateTicket(_ context.Context, payload models.TicketPayload) (models.TicketResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextTicket++
	id := m.nextTicket
	raw := map[string]any{
		"ticket": map[string]any{
			"id":           id,
			"number":       id,
			"customer_id":  payload.CustomerID,
			"subject":      payload.Subject,
			"problem_type": payload.ProblemType,
		},
		"mock": true,
	}
	return models.TicketResult{TicketID: id, TicketNumber: id, Raw: raw}, nil
}
