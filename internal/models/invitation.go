package models

// InvitationStatus is the lifecycle state of a subscription invitation.
type InvitationStatus string

const (
	// InvitationPending: sent, awaiting the invitee's answer.
	InvitationPending InvitationStatus = "pending"
	// InvitationAccepted: the invitee joined the subscription.
	InvitationAccepted InvitationStatus = "accepted"
	// InvitationDeclined: the invitee turned it down.
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation asks a user to join a subscription. Only the invitee can
// answer, and only once.
type Invitation struct {
	// ID is the unique identifier for the invitation (UUID format).
	ID string `json:"id"`

	// SubscriptionID is the subscription the invitee is asked to join.
	SubscriptionID string `json:"subscription_id"`

	// InviterID is the user who sent the invitation.
	InviterID string `json:"inviter_id"`

	// InviteeID is the user being invited.
	InviteeID string `json:"invitee_id"`

	// Status is the lifecycle state.
	Status InvitationStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the invitation was sent.
	CreatedAt int64 `json:"created_at"`

	// RespondedAt is the Unix timestamp of the invitee's answer, zero
	// while pending.
	RespondedAt int64 `json:"responded_at,omitempty"`
}
