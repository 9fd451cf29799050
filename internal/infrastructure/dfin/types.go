package dfin

import "encoding/json"

// sessionResponse is the envelope of a created payment session
type sessionResponse struct {
	Data struct {
		PayID       string `json:"pay_id"`
		PaymentLink string `json:"payment_link"`
	} `json:"data"`
}

// Webhook event types and statuses we act on. Everything else is
// acknowledged and ignored.
const (
	EventSavePaymentSuccess = "save_payment.success"
	StatusSucceeded         = "succeeded"
)

// WebhookEvent is an inbound Dfin payment notification
type WebhookEvent struct {
	Type   string           `json:"type"`
	Status string           `json:"status"`
	Data   WebhookEventData `json:"data"`
}

// WebhookEventData carries the metadata echoed back from session creation.
// Dfin wraps the metadata string in a single-element array.
type WebhookEventData struct {
	Metadata []string `json:"metadata"`
}

// SessionMetadata is the JSON document stored in the session's meta_data
// field and echoed back inside webhook events.
type SessionMetadata struct {
	Source  string `json:"source"`
	OrderID string `json:"order_id"`
}

// OrderID extracts the order reference from the event metadata
func (e *WebhookEvent) OrderID() (string, bool) {
	if len(e.Data.Metadata) == 0 {
		return "", false
	}
	var meta SessionMetadata
	if err := json.Unmarshal([]byte(e.Data.Metadata[0]), &meta); err != nil {
		return "", false
	}
	if meta.OrderID == "" {
		return "", false
	}
	return meta.OrderID, true
}

// IsPaymentConfirmation reports whether the event confirms a completed payment
func (e *WebhookEvent) IsPaymentConfirmation() bool {
	return e.Type == EventSavePaymentSuccess && e.Status == StatusSucceeded
}
