package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fluxyapp/fluxy/internal/ledger"
	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// SubscriptionService owns subscription CRUD and all rotation transitions.
// Every transition follows the same contract: read the entity, apply one pure
// ledger function, write the full updated entity back atomically.
type SubscriptionService struct {
	store storage.Store
	now   func() time.Time
}

// NewSubscriptionService creates a SubscriptionService with the given storage
// backend.
func NewSubscriptionService(store storage.Store) *SubscriptionService {
	return &SubscriptionService{store: store, now: time.Now}
}

func (s *SubscriptionService) validate(sub *models.Subscription) error {
	if !sub.Billing.Valid() {
		return ErrInvalidCadence
	}
	if sub.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Create validates and persists a new subscription. A familial subscription
// with participants but no rotation gets one, starting at the first
// participant.
func (s *SubscriptionService) Create(ctx context.Context, sub *models.Subscription) error {
	if err := s.validate(sub); err != nil {
		return err
	}

	if sub.Familial && len(sub.Participants) > 0 && sub.Rotation == nil {
		sub.Rotation = &models.Rotation{
			Order:        append([]string(nil), sub.Participants...),
			CurrentIndex: 0,
			StartDate:    s.now().Unix(),
		}
	}

	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return err
	}
	slog.Info("Subscription created", "subscription_id", sub.ID, "name", sub.Name, "familial", sub.Familial)
	return nil
}

// Get retrieves a subscription by ID.
func (s *SubscriptionService) Get(ctx context.Context, id string) (*models.Subscription, error) {
	return s.store.GetSubscription(ctx, id)
}

// List retrieves all subscriptions.
func (s *SubscriptionService) List(ctx context.Context) ([]models.Subscription, error) {
	return s.store.ListSubscriptions(ctx)
}

// Update validates and replaces a subscription.
func (s *SubscriptionService) Update(ctx context.Context, sub *models.Subscription) error {
	if err := s.validate(sub); err != nil {
		return err
	}
	return s.store.UpdateSubscription(ctx, sub)
}

// Delete removes a subscription.
func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteSubscription(ctx, id)
}

// Duplicate creates a copy of a subscription under a new ID.
// Rotation state and history are not carried over: the copy starts a fresh
// payment life.
func (s *SubscriptionService) Duplicate(ctx context.Context, id string) (*models.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := sub.Clone()
	dup.ID = uuid.New().String()
	dup.Name = fmt.Sprintf("%s (copy)", sub.Name)
	dup.CreatedAt = 0
	dup.History = nil
	if dup.Rotation != nil {
		dup.Rotation = &models.Rotation{
			Order:        append([]string(nil), sub.Rotation.Order...),
			CurrentIndex: 0,
			StartDate:    s.now().Unix(),
		}
	}

	if err := s.store.CreateSubscription(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// TogglePause flips the paused flag.
func (s *SubscriptionService) TogglePause(ctx context.Context, id string) (*models.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Paused = !sub.Paused
	if err := s.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// RecordPayment settles a month as paid by the given member and persists the
// advanced rotation. An empty month defaults to the current calendar month;
// an empty paidBy defaults to whoever the rotation holds responsible for that
// month. The payer must be a participant; validation happens before any
// mutation.
func (s *SubscriptionService) RecordPayment(ctx context.Context, id, month, paidBy string) (*models.Subscription, error) {
	if month == "" {
		month = ledger.MonthKey(s.now())
	}
	if !ledger.ValidMonthKey(month) {
		return nil, ErrInvalidMonth
	}

	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if paidBy == "" {
		payer, ok := ledger.CurrentPayer(sub, month)
		if !ok {
			return nil, ErrPayerNotParticipant
		}
		paidBy = payer
	}
	if !contains(sub.Participants, paidBy) {
		return nil, ErrPayerNotParticipant
	}

	updated := ledger.RecordPayment(sub, month, paidBy)
	if err := s.store.UpdateSubscription(ctx, updated); err != nil {
		return nil, err
	}
	slog.Info("Payment recorded",
		"subscription_id", id, "month", month, "paid_by", paidBy)
	return updated, nil
}

// SkipPayment advances the rotation without settling a month.
func (s *SubscriptionService) SkipPayment(ctx context.Context, id string) (*models.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := ledger.SkipPayment(sub)
	if err := s.store.UpdateSubscription(ctx, updated); err != nil {
		return nil, err
	}
	slog.Info("Payment skipped", "subscription_id", id)
	return updated, nil
}

// ForcePayer overrides responsibility for one month. An empty month defaults
// to the current calendar month. The member must be a participant.
func (s *SubscriptionService) ForcePayer(ctx context.Context, id, month, memberID string) (*models.Subscription, error) {
	if month == "" {
		month = ledger.MonthKey(s.now())
	}
	if !ledger.ValidMonthKey(month) {
		return nil, ErrInvalidMonth
	}

	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contains(sub.Participants, memberID) {
		return nil, ErrUnknownParticipant
	}

	updated := ledger.ForcePayer(sub, month, memberID)
	if err := s.store.UpdateSubscription(ctx, updated); err != nil {
		return nil, err
	}
	slog.Info("Payer forced", "subscription_id", id, "month", month, "member_id", memberID)
	return updated, nil
}

// Reorder replaces the payer cycle with a new permutation or subset of the
// current participants.
func (s *SubscriptionService) Reorder(ctx context.Context, id string, newOrder []string) (*models.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, memberID := range newOrder {
		if !contains(sub.Participants, memberID) {
			return nil, ErrUnknownParticipant
		}
	}

	updated := ledger.ReorderParticipants(sub, newOrder)
	if err := s.store.UpdateSubscription(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// AddParticipant appends a member to the payer cycle. The member must exist.
func (s *SubscriptionService) AddParticipant(ctx context.Context, id, memberID string) (*models.Subscription, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if contains(sub.Participants, memberID) {
		return nil, ErrAlreadyParticipant
	}

	updated := ledger.AddParticipant(sub, memberID, s.now())
	if err := s.store.UpdateSubscription(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveParticipant drops a member from the payer cycle.
func (s *SubscriptionService) RemoveParticipant(ctx context.Context, id, memberID string) (*models.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := ledger.RemoveParticipant(sub, memberID)
	delete(updated.Shares, memberID)
	if err := s.store.UpdateSubscription(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// CurrentPayer resolves who owes the subscription in the given month
// (current month when empty).
func (s *SubscriptionService) CurrentPayer(ctx context.Context, id, month string) (string, error) {
	if month == "" {
		month = ledger.MonthKey(s.now())
	}
	if !ledger.ValidMonthKey(month) {
		return "", ErrInvalidMonth
	}

	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return "", err
	}

	payer, _ := ledger.CurrentPayer(sub, month)
	return payer, nil
}

// NextPayer resolves whose turn comes after the current payer.
func (s *SubscriptionService) NextPayer(ctx context.Context, id string) (string, error) {
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return "", err
	}

	next, _ := ledger.NextPayer(sub)
	return next, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
