package service

import "errors"

// Validation errors returned to callers before any mutation happens.
var (
	ErrPayerNotParticipant = errors.New("payer is not a participant of this subscription")
	ErrUnknownParticipant  = errors.New("member is not a participant of this subscription")
	ErrAlreadyParticipant  = errors.New("member is already a participant of this subscription")
	ErrInvalidMonth        = errors.New("month must be formatted YYYY-MM")
	ErrInvalidCadence      = errors.New("billing cadence must be weekly, monthly or annual")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrEmptyBody           = errors.New("message body cannot be empty")

	ErrSelfFriend        = errors.New("cannot send a friend request to yourself")
	ErrFriendshipExists  = errors.New("a friendship already exists between these users")
	ErrNotPending        = errors.New("friend request is no longer pending")
	ErrNotAddressee      = errors.New("only the recipient can answer a friend request")
	ErrNotFriendshipSide = errors.New("user is not a party to this friendship")
	ErrSelfInvite        = errors.New("cannot invite yourself to a subscription")
	ErrInvitationPending = errors.New("this user already has a pending invitation for the subscription")
	ErrNotInvitee        = errors.New("only the invited user can answer an invitation")
	ErrAlreadyResponded  = errors.New("invitation has already been answered")
)
