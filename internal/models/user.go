package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique, used for login).
	Email string `json:"email"`

	// DisplayName is the name shown to other users.
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64 `json:"updated_at"`
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
