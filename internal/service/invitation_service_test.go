package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

func TestInvitationService(t *testing.T) {
	store := setupTestStore(t)
	svc := NewInvitationService(store, NewMessageService(store))
	svc.now = fixedClock(2026, time.March)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	sub := familialSubscription("Netflix", "17.99")
	if err := store.CreateSubscription(ctx, sub); err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}

	var invitationID string

	t.Run("invite creates a pending invitation", func(t *testing.T) {
		inv, err := svc.Invite(ctx, sub.ID, alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		if inv.Status != models.InvitationPending {
			t.Errorf("expected pending, got %s", inv.Status)
		}
		if inv.RespondedAt != 0 {
			t.Errorf("expected zero RespondedAt, got %d", inv.RespondedAt)
		}
		invitationID = inv.ID
	})

	t.Run("invite drops a message in the invitee's inbox", func(t *testing.T) {
		msgs, err := store.ListMessagesForRecipient(ctx, bob.ID)
		if err != nil {
			t.Fatalf("failed to list messages: %v", err)
		}
		if len(msgs) != 1 {
			t.Fatalf("expected 1 message, got %d", len(msgs))
		}
		if msgs[0].Type != models.MessageTypeInvitation {
			t.Errorf("expected invitation type, got %s", msgs[0].Type)
		}
		if msgs[0].Body != "Alice invited you to join Netflix." {
			t.Errorf("unexpected body %q", msgs[0].Body)
		}
	})

	t.Run("a second pending invitation for the same pair is rejected", func(t *testing.T) {
		if _, err := svc.Invite(ctx, sub.ID, alice.ID, bob.ID); !errors.Is(err, ErrInvitationPending) {
			t.Errorf("expected ErrInvitationPending, got %v", err)
		}
	})

	t.Run("inviting yourself is rejected", func(t *testing.T) {
		if _, err := svc.Invite(ctx, sub.ID, alice.ID, alice.ID); !errors.Is(err, ErrSelfInvite) {
			t.Errorf("expected ErrSelfInvite, got %v", err)
		}
	})

	t.Run("unknown subscription and invitee are rejected", func(t *testing.T) {
		if _, err := svc.Invite(ctx, "missing", alice.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for subscription, got %v", err)
		}
		if _, err := svc.Invite(ctx, sub.ID, alice.ID, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for invitee, got %v", err)
		}
	})

	t.Run("only the invitee can respond", func(t *testing.T) {
		if _, err := svc.Respond(ctx, invitationID, carol.ID, true); !errors.Is(err, ErrNotInvitee) {
			t.Errorf("expected ErrNotInvitee, got %v", err)
		}
	})

	t.Run("accept stamps the response time", func(t *testing.T) {
		inv, err := svc.Respond(ctx, invitationID, bob.ID, true)
		if err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
		if inv.Status != models.InvitationAccepted {
			t.Errorf("expected accepted, got %s", inv.Status)
		}
		if want := svc.now().Unix(); inv.RespondedAt != want {
			t.Errorf("expected RespondedAt %d, got %d", want, inv.RespondedAt)
		}
	})

	t.Run("a settled invitation cannot be answered again", func(t *testing.T) {
		if _, err := svc.Respond(ctx, invitationID, bob.ID, false); !errors.Is(err, ErrAlreadyResponded) {
			t.Errorf("expected ErrAlreadyResponded, got %v", err)
		}
	})

	t.Run("declining is recorded", func(t *testing.T) {
		inv, err := svc.Invite(ctx, sub.ID, alice.ID, carol.ID)
		if err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		declined, err := svc.Respond(ctx, inv.ID, carol.ID, false)
		if err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
		if declined.Status != models.InvitationDeclined {
			t.Errorf("expected declined, got %s", declined.Status)
		}
	})

	t.Run("list covers both sides, newest first", func(t *testing.T) {
		sent, err := svc.List(ctx, alice.ID)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(sent) != 2 {
			t.Fatalf("expected 2 invitations for the inviter, got %d", len(sent))
		}
		received, err := svc.List(ctx, carol.ID)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(received) != 1 || received[0].InviteeID != carol.ID {
			t.Errorf("expected Carol's invitation, got %+v", received)
		}
	})
}
