package models

// MessageType classifies a message.
type MessageType string

const (
	MessageTypeGeneral MessageType = "general"
	// MessageTypePaymentReminder marks reminders generated by the scheduler
	// for the current payer of a familial subscription.
	MessageTypePaymentReminder MessageType = "payment_reminder"
	// MessageTypeInvitation notifies a user that they were invited to join
	// a subscription.
	MessageTypeInvitation MessageType = "invitation"
)

// Message is a note between users.
type Message struct {
	// ID is the unique identifier for the message (UUID format).
	ID string `json:"id"`

	// SenderID is the user who sent the message. Empty for system-generated
	// reminders.
	SenderID string `json:"sender_id,omitempty"`

	// RecipientID is the user the message is addressed to.
	RecipientID string `json:"recipient_id"`

	// SubscriptionID optionally links the message to a subscription.
	SubscriptionID string `json:"subscription_id,omitempty"`

	// Body is the message text.
	Body string `json:"body"`

	// Type classifies the message.
	Type MessageType `json:"type"`

	// Read marks whether the recipient has seen the message.
	Read bool `json:"read"`

	// CreatedAt is the Unix timestamp when the message was created.
	CreatedAt int64 `json:"created_at"`
}
