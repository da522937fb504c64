package docuseal

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"
)

// Webhook event types the service reacts to.
const (
	EventFormViewed    = "form.viewed"
	EventFormStarted   = "form.started"
	EventFormCompleted = "form.completed"
	EventFormDeclined  = "form.declined"
)

// WebhookEvent is the envelope DocuSeal posts for submitter events.
type WebhookEvent struct {
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      WebhookFormData `json:"data"`
}

// WebhookFormData carries the submitter the event refers to.
type WebhookFormData struct {
	ID           int64  `json:"id"`
	SubmissionID int64  `json:"submission_id"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	Role         string `json:"role"`
}

// ParseWebhook decodes a webhook body.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var evt WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("decode docuseal webhook: %w", err)
	}
	if evt.EventType == "" {
		return nil, fmt.Errorf("docuseal webhook missing event_type")
	}
	if evt.Data.SubmissionID == 0 {
		return nil, fmt.Errorf("docuseal webhook missing submission_id")
	}
	return &evt, nil
}

// VerifySecret compares the shared webhook secret in constant time. An empty
// expected secret rejects every request.
func VerifySecret(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
