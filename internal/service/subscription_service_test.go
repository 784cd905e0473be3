package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
)

func TestSubscriptionServiceCreate(t *testing.T) {
	store := setupTestStore(t)
	svc := NewSubscriptionService(store)
	ctx := context.Background()

	t.Run("rejects unknown cadence", func(t *testing.T) {
		sub := &models.Subscription{Name: "Bad", Billing: "fortnightly"}
		if err := svc.Create(ctx, sub); !errors.Is(err, ErrInvalidCadence) {
			t.Errorf("Create = %v, want ErrInvalidCadence", err)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		sub := &models.Subscription{
			Name:    "Bad",
			Billing: models.CadenceMonthly,
			Price:   decimal.RequireFromString("-1"),
		}
		if err := svc.Create(ctx, sub); !errors.Is(err, ErrNegativePrice) {
			t.Errorf("Create = %v, want ErrNegativePrice", err)
		}
	})

	t.Run("familial subscription gets a rotation", func(t *testing.T) {
		sub := familialSubscription("Spotify", "17.99", "alice", "bob")
		if err := svc.Create(ctx, sub); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if sub.Rotation == nil {
			t.Fatal("expected rotation to be created")
		}
		if sub.Rotation.CurrentIndex != 0 {
			t.Errorf("CurrentIndex = %d, want 0", sub.Rotation.CurrentIndex)
		}
		if len(sub.Rotation.Order) != 2 || sub.Rotation.Order[0] != "alice" {
			t.Errorf("Order = %v, want participants in order", sub.Rotation.Order)
		}
	})

	t.Run("solo subscription stays without rotation", func(t *testing.T) {
		sub := &models.Subscription{
			Name:    "Domain",
			Billing: models.CadenceAnnual,
			Price:   decimal.RequireFromString("12"),
		}
		if err := svc.Create(ctx, sub); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if sub.Rotation != nil {
			t.Errorf("Rotation = %+v, want nil", sub.Rotation)
		}
	})
}

func TestSubscriptionServiceRecordPayment(t *testing.T) {
	store := setupTestStore(t)
	svc := NewSubscriptionService(store)
	svc.now = fixedClock(2026, time.March)
	ctx := context.Background()

	sub := familialSubscription("Netflix", "15.99", "alice", "bob", "carol")
	if err := svc.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("rejects non-participant payer", func(t *testing.T) {
		if _, err := svc.RecordPayment(ctx, sub.ID, "", "mallory"); !errors.Is(err, ErrPayerNotParticipant) {
			t.Errorf("RecordPayment = %v, want ErrPayerNotParticipant", err)
		}
	})

	t.Run("rejects malformed month", func(t *testing.T) {
		if _, err := svc.RecordPayment(ctx, sub.ID, "03/2026", "alice"); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("RecordPayment = %v, want ErrInvalidMonth", err)
		}
	})

	t.Run("defaults to current month and advances", func(t *testing.T) {
		updated, err := svc.RecordPayment(ctx, sub.ID, "", "alice")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if len(updated.History) != 1 || updated.History[0].Month != "2026-03" {
			t.Errorf("History = %v, want 2026-03 settled", updated.History)
		}
		if updated.Rotation.CurrentIndex != 1 {
			t.Errorf("CurrentIndex = %d, want 1", updated.Rotation.CurrentIndex)
		}

		// State must survive the round trip through storage.
		got, err := svc.Get(ctx, sub.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Rotation.CurrentIndex != 1 || len(got.History) != 1 {
			t.Errorf("persisted state = index %d, %d entries; want 1, 1",
				got.Rotation.CurrentIndex, len(got.History))
		}
	})

	t.Run("same month again corrects without advancing", func(t *testing.T) {
		updated, err := svc.RecordPayment(ctx, sub.ID, "2026-03", "bob")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if len(updated.History) != 1 || updated.History[0].PaidBy != "bob" {
			t.Errorf("History = %v, want single corrected entry", updated.History)
		}
		if updated.Rotation.CurrentIndex != 1 {
			t.Errorf("CurrentIndex = %d, want unchanged 1", updated.Rotation.CurrentIndex)
		}
	})

	t.Run("empty payer defaults to the member due", func(t *testing.T) {
		// The rotation points at bob after the March settlement.
		updated, err := svc.RecordPayment(ctx, sub.ID, "2026-04", "")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if len(updated.History) != 2 || updated.History[1].PaidBy != "bob" {
			t.Errorf("History = %v, want bob credited for 2026-04", updated.History)
		}
		if updated.Rotation.CurrentIndex != 2 {
			t.Errorf("CurrentIndex = %d, want 2", updated.Rotation.CurrentIndex)
		}
	})

	t.Run("empty payer honors a month override", func(t *testing.T) {
		if _, err := svc.ForcePayer(ctx, sub.ID, "2026-05", "alice"); err != nil {
			t.Fatalf("ForcePayer failed: %v", err)
		}
		updated, err := svc.RecordPayment(ctx, sub.ID, "2026-05", "")
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		last := updated.History[len(updated.History)-1]
		if last.Month != "2026-05" || last.PaidBy != "alice" {
			t.Errorf("last entry = %+v, want alice for 2026-05", last)
		}
	})

	t.Run("empty payer without a rotation is rejected", func(t *testing.T) {
		solo := &models.Subscription{
			Name:    "Domain",
			Billing: models.CadenceAnnual,
			Price:   decimal.RequireFromString("12"),
		}
		if err := svc.Create(ctx, solo); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := svc.RecordPayment(ctx, solo.ID, "2026-04", ""); !errors.Is(err, ErrPayerNotParticipant) {
			t.Errorf("RecordPayment = %v, want ErrPayerNotParticipant", err)
		}
	})
}

func TestSubscriptionServiceDuplicate(t *testing.T) {
	store := setupTestStore(t)
	svc := NewSubscriptionService(store)
	svc.now = fixedClock(2026, time.June)
	ctx := context.Background()

	sub := familialSubscription("Spotify", "17.99", "alice", "bob")
	if err := svc.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, sub.ID, "2026-05", "alice"); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	dup, err := svc.Duplicate(ctx, sub.ID)
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if dup.ID == sub.ID {
		t.Error("expected a fresh ID")
	}
	if dup.Name != "Spotify (copy)" {
		t.Errorf("Name = %q, want Spotify (copy)", dup.Name)
	}
	if len(dup.History) != 0 {
		t.Errorf("History = %v, want empty", dup.History)
	}
	if dup.Rotation == nil || dup.Rotation.CurrentIndex != 0 {
		t.Errorf("Rotation = %+v, want fresh cycle at index 0", dup.Rotation)
	}
	// The original is untouched.
	got, err := svc.Get(ctx, sub.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.History) != 1 {
		t.Errorf("original history = %v, want kept", got.History)
	}
}

func TestSubscriptionServiceParticipants(t *testing.T) {
	store := setupTestStore(t)
	svc := NewSubscriptionService(store)
	ctx := context.Background()

	dave := createMember(t, store, "Dave")

	sub := familialSubscription("iCloud", "2.99", "alice", "bob")
	if err := svc.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("add requires an existing member", func(t *testing.T) {
		if _, err := svc.AddParticipant(ctx, sub.ID, "ghost"); err == nil {
			t.Error("expected add of unknown member to fail")
		}
	})

	t.Run("add appends to cycle", func(t *testing.T) {
		updated, err := svc.AddParticipant(ctx, sub.ID, dave.ID)
		if err != nil {
			t.Fatalf("AddParticipant failed: %v", err)
		}
		if len(updated.Participants) != 3 || updated.Participants[2] != dave.ID {
			t.Errorf("Participants = %v, want dave appended", updated.Participants)
		}
		if _, err := svc.AddParticipant(ctx, sub.ID, dave.ID); !errors.Is(err, ErrAlreadyParticipant) {
			t.Errorf("second add = %v, want ErrAlreadyParticipant", err)
		}
	})

	t.Run("reorder rejects outsiders", func(t *testing.T) {
		if _, err := svc.Reorder(ctx, sub.ID, []string{"alice", "mallory"}); !errors.Is(err, ErrUnknownParticipant) {
			t.Errorf("Reorder = %v, want ErrUnknownParticipant", err)
		}
	})

	t.Run("remove drops the share entry", func(t *testing.T) {
		current, err := svc.Get(ctx, sub.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		current.Shares = map[string]int{"bob": 2}
		if err := svc.Update(ctx, current); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		updated, err := svc.RemoveParticipant(ctx, sub.ID, "bob")
		if err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		if _, ok := updated.Shares["bob"]; ok {
			t.Error("expected bob's share to be removed")
		}
		for _, p := range updated.Participants {
			if p == "bob" {
				t.Error("expected bob to be removed from participants")
			}
		}
	})
}

func TestSubscriptionServiceTogglePause(t *testing.T) {
	store := setupTestStore(t)
	svc := NewSubscriptionService(store)
	ctx := context.Background()

	sub := &models.Subscription{
		Name:    "Gym",
		Billing: models.CadenceMonthly,
		Price:   decimal.RequireFromString("30"),
	}
	if err := svc.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	paused, err := svc.TogglePause(ctx, sub.ID)
	if err != nil {
		t.Fatalf("TogglePause failed: %v", err)
	}
	if !paused.Paused {
		t.Error("expected subscription to be paused")
	}

	resumed, err := svc.TogglePause(ctx, sub.ID)
	if err != nil {
		t.Fatalf("TogglePause failed: %v", err)
	}
	if resumed.Paused {
		t.Error("expected subscription to be resumed")
	}
}
