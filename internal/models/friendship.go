package models

// FriendshipStatus is the lifecycle state of a friendship.
type FriendshipStatus string

const (
	// FriendshipPending: requested, not yet answered by the addressee.
	FriendshipPending FriendshipStatus = "pending"
	// FriendshipAccepted: both sides are friends.
	FriendshipAccepted FriendshipStatus = "accepted"
	// FriendshipBlocked: one side blocked the other; the row stays so the
	// pair cannot re-request.
	FriendshipBlocked FriendshipStatus = "blocked"
)

// Friendship is a directed friend request between two users. Direction only
// matters while pending: the addressee answers, after that both sides are
// equal parties.
type Friendship struct {
	// ID is the unique identifier for the friendship (UUID format).
	ID string `json:"id"`

	// RequesterID is the user who sent the request.
	RequesterID string `json:"requester_id"`

	// AddresseeID is the user the request was sent to.
	AddresseeID string `json:"addressee_id"`

	// Status is the lifecycle state.
	Status FriendshipStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the request was sent.
	CreatedAt int64 `json:"created_at"`
}

// Party reports whether the given user is one of the friendship's two sides.
func (f *Friendship) Party(userID string) bool {
	return userID == f.RequesterID || userID == f.AddresseeID
}

// Other returns the counterpart of the given user in the friendship.
func (f *Friendship) Other(userID string) string {
	if userID == f.RequesterID {
		return f.AddresseeID
	}
	return f.RequesterID
}
