package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kiosk_checkin/backend/internal/models"
	"github.com/kiosk_checkin/backend/internal/sanitize"
)

// HTTPClient talks to a RepairShopr-style CRM API. The API key travels as a
// query parameter on every call.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// customerRecord is the slice of a CRM customer this service reads.
type customerRecord struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Phone  string `json:"phone"`
}

// customerParams is the outbound customer-create body. Email and mobile are
// always sent, even when empty; the remaining optional fields are omitted
// when they sanitize to nothing.
type customerParams struct {
	BusinessName string `json:"business_name,omitempty"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *HTTPClient) endpoint(path string, params url.Values) string {
	q := url.Values{}
	q.Set("api_key", c.APIKey)
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	return c.BaseURL + path + "?" + q.Encode()
}

func (c *HTTPClient) FindCustomer(ctx context.Context, sub models.CheckInSubmission) (int64, bool) {
	term := searchTerm(sub)
	if term == "" {
		return 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/customers", url.Values{"query": {term}}), nil)
	if err != nil {
		return 0, false
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, false
	}
	candidates := decodeCustomers(body)
	return pickCustomer(candidates, sub)
}

// searchTerm builds the single best-effort query term: the first non-empty of
// email, mobile, phone, then "first last", capped at 120.
func searchTerm(sub models.CheckInSubmission) string {
	for _, v := range []string{sub.Email, sub.Mobile, sub.Phone} {
		if t := sanitize.Clean(v, 120); t != "" {
			return t
		}
	}
	return sanitize.Clean(sub.FirstName+" "+sub.LastName, 120)
}

// decodeCustomers tolerates both response shapes the CRM is known to emit: a
// {"customers":[...]} wrapper and a bare array.
func decodeCustomers(body []byte) []customerRecord {
	var wrapped struct {
		Customers []customerRecord `json:"customers"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Customers != nil {
		return wrapped.Customers
	}
	var bare []customerRecord
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}
	return nil
}

// pickCustomer favors the first candidate sharing an exact email, mobile, or
// phone value with the submission; with no exact match it trusts the CRM's
// own relevance ordering and takes the first candidate.
func pickCustomer(candidates []customerRecord, sub models.CheckInSubmission) (int64, bool) {
	keys := []string{
		sanitize.Clean(sub.Email, 120),
		sanitize.Clean(sub.Mobile, 40),
		sanitize.Clean(sub.Phone, 40),
	}
	for _, cand := range candidates {
		if cand.ID == 0 {
			continue
		}
		for _, v := range []string{cand.Email, cand.Mobile, cand.Phone} {
			if v == "" {
				continue
			}
			for _, k := range keys {
				if k != "" && v == k {
					return cand.ID, true
				}
			}
		}
	}
	for _, cand := range candidates {
		if cand.ID != 0 {
			return cand.ID, true
		}
	}
	return 0, false
}

func (c *HTTPClient) CreateCustomer(ctx context.Context, sub models.CheckInSubmission) (int64, error) {
	params := customerParams{
		BusinessName: sanitize.Clean(sub.BusinessName, 120),
		Firstname:    sanitize.Clean(sub.FirstName, 80),
		Lastname:     sanitize.Clean(sub.LastName, 80),
		Email:        sanitize.Clean(sub.Email, 120),
		Phone:        sanitize.Clean(sub.Phone, 40),
		Mobile:       sanitize.Clean(sub.Mobile, 40),
		Address:      sanitize.Clean(sub.Address, 120),
		City:         sanitize.Clean(sub.City, 80),
		State:        sanitize.Clean(sub.State, 40),
		Zip:          sanitize.Clean(sub.Zip, 20),
	}

	status, body, err := c.post(ctx, "/customers", params)
	if err != nil {
		return 0, &models.ExternalServiceError{Service: "crm", Message: "CRM customer create failed", Detail: err.Error()}
	}
	if status < 200 || status >= 300 {
		return 0, &models.ExternalServiceError{Service: "crm", Message: "CRM customer create failed", Status: status, Detail: looseJSON(body)}
	}

	// The CRM is inconsistent about where the created id lives: sometimes
	// top-level, sometimes nested under "customer". Top-level wins.
	var res struct {
		ID       int64 `json:"id"`
		Customer struct {
			ID int64 `json:"id"`
		} `json:"customer"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return 0, &models.ExternalServiceError{Service: "crm", Message: "CRM customer create returned an unreadable body", Status: status, Detail: string(body)}
	}
	id := res.ID
	if id == 0 {
		id = res.Customer.ID
	}
	if id == 0 {
		return 0, &models.ExternalServiceError{Service: "crm", Message: "CRM customer create returned no id", Status: status, Detail: looseJSON(body)}
	}
	return id, nil
}

func (c *HTTPClient) CreateTicket(ctx context.Context, payload models.TicketPayload) (models.TicketResult, error) {
	status, body, err := c.post(ctx, "/tickets", payload)
	if err != nil {
		return models.TicketResult{}, &models.ExternalServiceError{Service: "crm", Message: "CRM ticket create failed", Detail: err.Error()}
	}
	if status < 200 || status >= 300 {
		return models.TicketResult{}, &models.ExternalServiceError{Service: "crm", Message: "CRM ticket create failed", Status: status, Detail: looseJSON(body)}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.TicketResult{}, &models.ExternalServiceError{Service: "crm", Message: "CRM ticket create returned an unreadable body", Status: status, Detail: string(body)}
	}

	id, ok := intField(raw, "id")
	if !ok {
		if nested, isMap := raw["ticket"].(map[string]any); isMap {
			id, ok = intField(nested, "id")
		}
	}
	if !ok {
		return models.TicketResult{}, &models.ExternalServiceError{Service: "crm", Message: "CRM ticket create returned no id", Status: status, Detail: raw}
	}

	number, ok := intField(raw, "number")
	if !ok {
		if nested, isMap := raw["ticket"].(map[string]any); isMap {
			number, ok = intField(nested, "number")
		}
	}
	if !ok {
		number = id
	}

	return models.TicketResult{TicketID: id, TicketNumber: number, Raw: raw}, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(b))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// looseJSON decodes an error body as JSON when possible, else returns it as a
// string, so the downstream service's own diagnostics survive verbatim.
func looseJSON(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

func intField(m map[string]any, key string) (int64, bool) {
	if v, ok := m[key].(float64); ok && v != 0 {
		return int64(v), true
	}
	return 0, false
}
