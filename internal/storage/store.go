// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/fluxyapp/fluxy/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for Fluxy's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Subscription writes replace the whole entity, rotation state and history
// included, as one atomic operation: the ledger transitions are deterministic
// functions of the entity's prior state, so last-writer-wins is acceptable.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
	DeleteSubscription(ctx context.Context, id string) error

	// Members
	CreateMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, id string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id string) error

	// Budgets
	CreateBudget(ctx context.Context, budget *models.Budget) error
	ListBudgets(ctx context.Context) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error

	// Messages
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessagesForRecipient(ctx context.Context, recipientID string) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id string) error

	// Friendships
	CreateFriendship(ctx context.Context, f *models.Friendship) error
	GetFriendship(ctx context.Context, id string) (*models.Friendship, error)
	// GetFriendshipBetween looks the pair up in either direction and
	// returns (nil, nil) when no row exists.
	GetFriendshipBetween(ctx context.Context, userA, userB string) (*models.Friendship, error)
	ListFriendshipsForUser(ctx context.Context, userID string) ([]models.Friendship, error)
	UpdateFriendship(ctx context.Context, f *models.Friendship) error
	DeleteFriendship(ctx context.Context, id string) error

	// Invitations
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, id string) (*models.Invitation, error)
	ListInvitationsForUser(ctx context.Context, userID string) ([]models.Invitation, error)
	UpdateInvitation(ctx context.Context, inv *models.Invitation) error

	// Close releases any resources held by the store.
	Close() error
}
