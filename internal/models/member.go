package models

// Member represents a household participant.
//
// Members have a lifecycle independent from subscriptions: deleting a member
// does not delete the subscriptions it participated in. The storage layer
// scrubs participant and rotation references on delete, and the ledger
// additionally treats unresolved member IDs as contributing zero to balances.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Color is the display color (hex string, e.g. "#FF5733").
	Color string `json:"color"`

	// Emoji is an optional avatar emoji.
	Emoji string `json:"emoji,omitempty"`

	// CreatedAt is the Unix timestamp when the member was created.
	CreatedAt int64 `json:"created_at"`
}
