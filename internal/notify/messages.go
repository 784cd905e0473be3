package notify

import (
	"encoding/json"
	"time"
)

// ReminderEvent is the message published when a subscription is about to
// renew. Consumers fetch the full subscription from the API if they need it.
type ReminderEvent struct {
	SubscriptionID string    `json:"subscription_id"`
	Name           string    `json:"name"`
	DaysUntil      int       `json:"days_until"`
	PayerID        string    `json:"payer_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewReminderEvent creates a reminder event stamped with the current time.
func NewReminderEvent(subscriptionID, name string, daysUntil int, payerID string) *ReminderEvent {
	return &ReminderEvent{
		SubscriptionID: subscriptionID,
		Name:           name,
		DaysUntil:      daysUntil,
		PayerID:        payerID,
		Timestamp:      time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ReminderEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
