package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// FriendService owns friendships between users. A friendship starts as a
// pending request addressed by email, and only the addressee can accept it.
type FriendService struct {
	store storage.Store
}

// NewFriendService creates a FriendService with the given storage backend.
func NewFriendService(store storage.Store) *FriendService {
	return &FriendService{store: store}
}

// Friend pairs a friendship with the profile of the user on the other side.
type Friend struct {
	FriendshipID string                  `json:"friendship_id"`
	Status       models.FriendshipStatus `json:"status"`
	// IsRequester tells the caller whether they sent the request, which
	// decides who may accept it.
	IsRequester bool         `json:"is_requester"`
	User        *models.User `json:"user"`
	CreatedAt   int64        `json:"created_at"`
}

// Request sends a friend request to the user registered under email.
// Self-requests and pairs that already have a friendship in either
// direction are rejected.
func (s *FriendService) Request(ctx context.Context, requesterID, email string) (*models.Friendship, error) {
	addressee, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if addressee == nil {
		return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	if addressee.ID == requesterID {
		return nil, ErrSelfFriend
	}

	existing, err := s.store.GetFriendshipBetween(ctx, requesterID, addressee.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFriendshipExists
	}

	f := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addressee.ID,
		Status:      models.FriendshipPending,
	}
	if err := s.store.CreateFriendship(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("Friend request sent",
		"friendship_id", f.ID, "requester_id", requesterID, "addressee_id", addressee.ID)
	return f, nil
}

// Accept marks a pending request as accepted. Only the addressee can accept.
func (s *FriendService) Accept(ctx context.Context, friendshipID, userID string) (*models.Friendship, error) {
	f, err := s.store.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if userID != f.AddresseeID {
		return nil, ErrNotAddressee
	}
	if f.Status != models.FriendshipPending {
		return nil, ErrNotPending
	}

	f.Status = models.FriendshipAccepted
	if err := s.store.UpdateFriendship(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("Friend request accepted", "friendship_id", f.ID, "user_id", userID)
	return f, nil
}

// Block marks a friendship as blocked. Either side may block at any stage;
// the row stays so the pair cannot request again.
func (s *FriendService) Block(ctx context.Context, friendshipID, userID string) (*models.Friendship, error) {
	f, err := s.store.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if !f.Party(userID) {
		return nil, ErrNotFriendshipSide
	}

	f.Status = models.FriendshipBlocked
	if err := s.store.UpdateFriendship(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("Friendship blocked", "friendship_id", f.ID, "user_id", userID)
	return f, nil
}

// Remove deletes a friendship. Either side may remove it, pending or not.
func (s *FriendService) Remove(ctx context.Context, friendshipID, userID string) error {
	f, err := s.store.GetFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if !f.Party(userID) {
		return ErrNotFriendshipSide
	}

	if err := s.store.DeleteFriendship(ctx, friendshipID); err != nil {
		return err
	}
	slog.Info("Friendship removed", "friendship_id", friendshipID, "user_id", userID)
	return nil
}

// List returns the user's friendships with the counterpart's profile
// attached, newest first.
func (s *FriendService) List(ctx context.Context, userID string) ([]Friend, error) {
	friendships, err := s.store.ListFriendshipsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]Friend, 0, len(friendships))
	for i := range friendships {
		f := &friendships[i]
		other, err := s.store.GetUserByID(ctx, f.Other(userID))
		if err != nil {
			return nil, err
		}
		friends = append(friends, Friend{
			FriendshipID: f.ID,
			Status:       f.Status,
			IsRequester:  userID == f.RequesterID,
			User:         other,
			CreatedAt:    f.CreatedAt,
		})
	}
	return friends, nil
}
