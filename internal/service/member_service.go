package service

import (
	"context"
	"log/slog"

	"github.com/fluxyapp/fluxy/internal/ledger"
	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// MemberService owns household member CRUD.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// Create persists a new member.
func (s *MemberService) Create(ctx context.Context, member *models.Member) error {
	if err := s.store.CreateMember(ctx, member); err != nil {
		return err
	}
	slog.Info("Member created", "member_id", member.ID, "name", member.Name)
	return nil
}

// Get retrieves a member by ID.
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	return s.store.GetMember(ctx, id)
}

// List retrieves all members.
func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	return s.store.ListMembers(ctx)
}

// Update updates a member's display fields.
func (s *MemberService) Update(ctx context.Context, member *models.Member) error {
	return s.store.UpdateMember(ctx, member)
}

// Delete removes a member and scrubs it out of every subscription that
// references it. Subscriptions themselves survive; each rotation re-anchors
// (or clears) through the ledger so its invariants hold.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return err
	}

	for i := range subs {
		sub := &subs[i]
		if !contains(sub.Participants, id) {
			continue
		}

		updated := ledger.RemoveParticipant(sub, id)
		if updated.Rotation == nil && contains(updated.Participants, id) {
			// No rotation to re-anchor: drop the plain participant reference.
			updated = updated.Clone()
			kept := updated.Participants[:0]
			for _, pid := range updated.Participants {
				if pid != id {
					kept = append(kept, pid)
				}
			}
			updated.Participants = kept
		}
		delete(updated.Shares, id)
		if err := s.store.UpdateSubscription(ctx, updated); err != nil {
			return err
		}
		slog.Info("Member scrubbed from subscription",
			"member_id", id, "subscription_id", sub.ID)
	}

	if err := s.store.DeleteMember(ctx, id); err != nil {
		return err
	}
	slog.Info("Member deleted", "member_id", id)
	return nil
}
