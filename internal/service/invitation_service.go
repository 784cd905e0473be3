package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// InvitationService owns invitations that ask a user to join a subscription.
// Sending one also drops an invitation message into the invitee's inbox.
type InvitationService struct {
	store    storage.Store
	messages *MessageService
	now      func() time.Time
}

// NewInvitationService creates an InvitationService with the given storage
// backend and message service.
func NewInvitationService(store storage.Store, messages *MessageService) *InvitationService {
	return &InvitationService{store: store, messages: messages, now: time.Now}
}

// Invite asks inviteeID to join a subscription. A user can hold at most one
// pending invitation per subscription.
func (s *InvitationService) Invite(ctx context.Context, subscriptionID, inviterID, inviteeID string) (*models.Invitation, error) {
	sub, err := s.store.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if inviteeID == inviterID {
		return nil, ErrSelfInvite
	}
	invitee, err := s.store.GetUserByID(ctx, inviteeID)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, fmt.Errorf("user %s: %w", inviteeID, storage.ErrNotFound)
	}

	existing, err := s.store.ListInvitationsForUser(ctx, inviteeID)
	if err != nil {
		return nil, err
	}
	for _, inv := range existing {
		if inv.SubscriptionID == subscriptionID && inv.Status == models.InvitationPending {
			return nil, ErrInvitationPending
		}
	}

	inv := &models.Invitation{
		SubscriptionID: subscriptionID,
		InviterID:      inviterID,
		InviteeID:      inviteeID,
		Status:         models.InvitationPending,
		CreatedAt:      s.now().Unix(),
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("You have been invited to join %s.", sub.Name)
	if inviter, err := s.store.GetUserByID(ctx, inviterID); err == nil && inviter != nil {
		body = fmt.Sprintf("%s invited you to join %s.", inviter.DisplayName, sub.Name)
	}
	msg := &models.Message{
		SenderID:       inviterID,
		RecipientID:    inviteeID,
		SubscriptionID: subscriptionID,
		Body:           body,
		Type:           models.MessageTypeInvitation,
	}
	if err := s.messages.Send(ctx, msg); err != nil {
		slog.Error("Failed to notify invitee", "invitation_id", inv.ID, "error", err)
	}

	slog.Info("Invitation sent",
		"invitation_id", inv.ID, "subscription_id", subscriptionID,
		"inviter_id", inviterID, "invitee_id", inviteeID)
	return inv, nil
}

// Respond records the invitee's answer. Only the invitee can respond, and a
// settled invitation cannot be answered again.
func (s *InvitationService) Respond(ctx context.Context, invitationID, userID string, accept bool) (*models.Invitation, error) {
	inv, err := s.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if userID != inv.InviteeID {
		return nil, ErrNotInvitee
	}
	if inv.Status != models.InvitationPending {
		return nil, ErrAlreadyResponded
	}

	if accept {
		inv.Status = models.InvitationAccepted
	} else {
		inv.Status = models.InvitationDeclined
	}
	inv.RespondedAt = s.now().Unix()
	if err := s.store.UpdateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	slog.Info("Invitation answered",
		"invitation_id", inv.ID, "user_id", userID, "status", inv.Status)
	return inv, nil
}

// List returns the invitations the user sent or received, newest first.
func (s *InvitationService) List(ctx context.Context, userID string) ([]models.Invitation, error) {
	return s.store.ListInvitationsForUser(ctx, userID)
}
