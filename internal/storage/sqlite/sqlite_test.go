package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "fluxy-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateSubscription generates ID and timestamp", func(t *testing.T) {
		sub := &models.Subscription{
			Name:     "Netflix",
			Price:    decimal.RequireFromString("15.99"),
			Currency: "EUR",
			Billing:  models.CadenceMonthly,
		}

		if err := store.CreateSubscription(ctx, sub); err != nil {
			t.Fatalf("CreateSubscription failed: %v", err)
		}
		if sub.ID == "" {
			t.Error("Expected subscription ID to be generated")
		}
		if sub.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetSubscription retrieves rotation state and history", func(t *testing.T) {
		original := &models.Subscription{
			Name:         "Spotify Family",
			Price:        decimal.RequireFromString("17.99"),
			Currency:     "EUR",
			Billing:      models.CadenceMonthly,
			Category:     "music",
			Familial:     true,
			Participants: []string{"alice", "bob", "carol"},
			Shares:       map[string]int{"alice": 2},
			Rotation: &models.Rotation{
				Order:        []string{"alice", "bob", "carol"},
				CurrentIndex: 1,
				Overrides:    map[string]string{"2026-03": "carol"},
				StartDate:    1700000000,
			},
			History: []models.PaymentEntry{
				{Month: "2026-01", PaidBy: "alice"},
				{Month: "2026-02", PaidBy: "bob"},
			},
		}
		if err := store.CreateSubscription(ctx, original); err != nil {
			t.Fatalf("CreateSubscription failed: %v", err)
		}

		got, err := store.GetSubscription(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetSubscription failed: %v", err)
		}
		if !got.Price.Equal(original.Price) {
			t.Errorf("Price = %s, want %s", got.Price, original.Price)
		}
		if len(got.Participants) != 3 || got.Participants[0] != "alice" || got.Participants[2] != "carol" {
			t.Errorf("Participants = %v, want order preserved", got.Participants)
		}
		if got.Shares["alice"] != 2 {
			t.Errorf("Shares[alice] = %d, want 2", got.Shares["alice"])
		}
		if _, ok := got.Shares["bob"]; ok {
			t.Error("Expected no explicit share for bob")
		}
		if got.Rotation == nil {
			t.Fatal("Expected rotation to be loaded")
		}
		if got.Rotation.CurrentIndex != 1 {
			t.Errorf("CurrentIndex = %d, want 1", got.Rotation.CurrentIndex)
		}
		if got.Rotation.Overrides["2026-03"] != "carol" {
			t.Errorf("Overrides = %v, want 2026-03 -> carol", got.Rotation.Overrides)
		}
		if len(got.History) != 2 || got.History[0].Month != "2026-01" || got.History[1].PaidBy != "bob" {
			t.Errorf("History = %v, want two entries in month order", got.History)
		}
	})

	t.Run("UpdateSubscription replaces children atomically", func(t *testing.T) {
		sub := &models.Subscription{
			Name:         "iCloud",
			Price:        decimal.RequireFromString("2.99"),
			Currency:     "EUR",
			Billing:      models.CadenceMonthly,
			Familial:     true,
			Participants: []string{"alice", "bob"},
			Rotation: &models.Rotation{
				Order:     []string{"alice", "bob"},
				StartDate: 1700000000,
			},
		}
		if err := store.CreateSubscription(ctx, sub); err != nil {
			t.Fatalf("CreateSubscription failed: %v", err)
		}

		sub.Participants = []string{"bob"}
		sub.Rotation.Order = []string{"bob"}
		sub.Rotation.CurrentIndex = 0
		sub.History = []models.PaymentEntry{{Month: "2026-05", PaidBy: "alice"}}
		if err := store.UpdateSubscription(ctx, sub); err != nil {
			t.Fatalf("UpdateSubscription failed: %v", err)
		}

		got, err := store.GetSubscription(ctx, sub.ID)
		if err != nil {
			t.Fatalf("GetSubscription failed: %v", err)
		}
		if len(got.Participants) != 1 || got.Participants[0] != "bob" {
			t.Errorf("Participants = %v, want [bob]", got.Participants)
		}
		if len(got.Rotation.Order) != 1 {
			t.Errorf("Rotation order = %v, want [bob]", got.Rotation.Order)
		}
		if len(got.History) != 1 || got.History[0].PaidBy != "alice" {
			t.Errorf("History = %v, want the settled month kept", got.History)
		}
	})

	t.Run("GetSubscription without rotation keeps Rotation nil", func(t *testing.T) {
		sub := &models.Subscription{
			Name:     "Domain",
			Price:    decimal.RequireFromString("12"),
			Currency: "EUR",
			Billing:  models.CadenceAnnual,
		}
		if err := store.CreateSubscription(ctx, sub); err != nil {
			t.Fatalf("CreateSubscription failed: %v", err)
		}

		got, err := store.GetSubscription(ctx, sub.ID)
		if err != nil {
			t.Fatalf("GetSubscription failed: %v", err)
		}
		if got.Rotation != nil {
			t.Errorf("Rotation = %+v, want nil", got.Rotation)
		}
	})

	t.Run("DeleteSubscription cascades to children", func(t *testing.T) {
		sub := &models.Subscription{
			Name:         "Gym",
			Price:        decimal.RequireFromString("30"),
			Currency:     "EUR",
			Billing:      models.CadenceMonthly,
			Familial:     true,
			Participants: []string{"alice"},
			Rotation:     &models.Rotation{Order: []string{"alice"}, StartDate: 1700000000},
		}
		if err := store.CreateSubscription(ctx, sub); err != nil {
			t.Fatalf("CreateSubscription failed: %v", err)
		}
		if err := store.DeleteSubscription(ctx, sub.ID); err != nil {
			t.Fatalf("DeleteSubscription failed: %v", err)
		}
		if _, err := store.GetSubscription(ctx, sub.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetSubscription after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("Members round trip", func(t *testing.T) {
		member := &models.Member{Name: "Alice", Color: "#FF5733", Emoji: "🦊"}
		if err := store.CreateMember(ctx, member); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}

		got, err := store.GetMember(ctx, member.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if got.Name != "Alice" || got.Color != "#FF5733" || got.Emoji != "🦊" {
			t.Errorf("GetMember = %+v, want fields preserved", got)
		}

		got.Name = "Alicia"
		if err := store.UpdateMember(ctx, got); err != nil {
			t.Fatalf("UpdateMember failed: %v", err)
		}
		updated, err := store.GetMember(ctx, member.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if updated.Name != "Alicia" {
			t.Errorf("Name = %q, want Alicia", updated.Name)
		}

		if err := store.DeleteMember(ctx, member.ID); err != nil {
			t.Fatalf("DeleteMember failed: %v", err)
		}
		if _, err := store.GetMember(ctx, member.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMember after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("Users are unique by email", func(t *testing.T) {
		user := models.NewUser("alice@example.com", "Alice", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Fatalf("GetUserByEmail = %+v, want created user", got)
		}

		missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if missing != nil {
			t.Errorf("GetUserByEmail for unknown email = %+v, want nil", missing)
		}

		dup := models.NewUser("alice@example.com", "Other Alice", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected duplicate email to fail")
		}
	})

	t.Run("Budgets round trip", func(t *testing.T) {
		budget := &models.Budget{
			Category:     "streaming",
			MonthlyLimit: decimal.RequireFromString("50"),
		}
		if err := store.CreateBudget(ctx, budget); err != nil {
			t.Fatalf("CreateBudget failed: %v", err)
		}

		budgets, err := store.ListBudgets(ctx)
		if err != nil {
			t.Fatalf("ListBudgets failed: %v", err)
		}
		found := false
		for _, b := range budgets {
			if b.ID == budget.ID && b.MonthlyLimit.Equal(budget.MonthlyLimit) {
				found = true
			}
		}
		if !found {
			t.Errorf("ListBudgets = %v, want created budget", budgets)
		}

		budget.MonthlyLimit = decimal.RequireFromString("60")
		if err := store.UpdateBudget(ctx, budget); err != nil {
			t.Fatalf("UpdateBudget failed: %v", err)
		}
		if err := store.DeleteBudget(ctx, budget.ID); err != nil {
			t.Fatalf("DeleteBudget failed: %v", err)
		}
	})

	t.Run("Messages inbox and read flag", func(t *testing.T) {
		first := &models.Message{
			RecipientID: "alice",
			Body:        "hello",
			Type:        models.MessageTypeGeneral,
			CreatedAt:   100,
		}
		second := &models.Message{
			RecipientID: "alice",
			Body:        "Netflix charges in 3 days",
			Type:        models.MessageTypePaymentReminder,
			CreatedAt:   200,
		}
		for _, msg := range []*models.Message{first, second} {
			if err := store.CreateMessage(ctx, msg); err != nil {
				t.Fatalf("CreateMessage failed: %v", err)
			}
		}

		inbox, err := store.ListMessagesForRecipient(ctx, "alice")
		if err != nil {
			t.Fatalf("ListMessagesForRecipient failed: %v", err)
		}
		if len(inbox) != 2 {
			t.Fatalf("Inbox has %d messages, want 2", len(inbox))
		}
		if inbox[0].ID != second.ID {
			t.Errorf("Inbox[0] = %s, want newest message first", inbox[0].Body)
		}

		if err := store.MarkMessageRead(ctx, first.ID); err != nil {
			t.Fatalf("MarkMessageRead failed: %v", err)
		}
		inbox, err = store.ListMessagesForRecipient(ctx, "alice")
		if err != nil {
			t.Fatalf("ListMessagesForRecipient failed: %v", err)
		}
		for _, msg := range inbox {
			if msg.ID == first.ID && !msg.Read {
				t.Error("Expected message to be marked read")
			}
		}
	})

	t.Run("Friendships pair lookup works in both directions", func(t *testing.T) {
		f := &models.Friendship{
			RequesterID: "user-a",
			AddresseeID: "user-b",
			Status:      models.FriendshipPending,
		}
		if err := store.CreateFriendship(ctx, f); err != nil {
			t.Fatalf("CreateFriendship failed: %v", err)
		}
		if f.ID == "" || f.CreatedAt == 0 {
			t.Error("Expected ID and CreatedAt to be generated")
		}

		forward, err := store.GetFriendshipBetween(ctx, "user-a", "user-b")
		if err != nil {
			t.Fatalf("GetFriendshipBetween failed: %v", err)
		}
		reverse, err := store.GetFriendshipBetween(ctx, "user-b", "user-a")
		if err != nil {
			t.Fatalf("GetFriendshipBetween failed: %v", err)
		}
		if forward == nil || reverse == nil || forward.ID != f.ID || reverse.ID != f.ID {
			t.Errorf("Pair lookup = %+v / %+v, want the same row both ways", forward, reverse)
		}

		none, err := store.GetFriendshipBetween(ctx, "user-a", "user-c")
		if err != nil {
			t.Fatalf("GetFriendshipBetween failed: %v", err)
		}
		if none != nil {
			t.Errorf("GetFriendshipBetween for strangers = %+v, want nil", none)
		}

		f.Status = models.FriendshipAccepted
		if err := store.UpdateFriendship(ctx, f); err != nil {
			t.Fatalf("UpdateFriendship failed: %v", err)
		}
		got, err := store.GetFriendship(ctx, f.ID)
		if err != nil {
			t.Fatalf("GetFriendship failed: %v", err)
		}
		if got.Status != models.FriendshipAccepted {
			t.Errorf("Status = %s, want accepted", got.Status)
		}

		dup := &models.Friendship{
			RequesterID: "user-a",
			AddresseeID: "user-b",
			Status:      models.FriendshipPending,
		}
		if err := store.CreateFriendship(ctx, dup); err == nil {
			t.Error("Expected duplicate pair to fail")
		}

		if err := store.DeleteFriendship(ctx, f.ID); err != nil {
			t.Fatalf("DeleteFriendship failed: %v", err)
		}
		if _, err := store.GetFriendship(ctx, f.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetFriendship after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("Invitations list both sides newest first", func(t *testing.T) {
		older := &models.Invitation{
			SubscriptionID: "sub-1",
			InviterID:      "user-a",
			InviteeID:      "user-b",
			Status:         models.InvitationPending,
			CreatedAt:      100,
		}
		newer := &models.Invitation{
			SubscriptionID: "sub-2",
			InviterID:      "user-c",
			InviteeID:      "user-a",
			Status:         models.InvitationPending,
			CreatedAt:      200,
		}
		for _, inv := range []*models.Invitation{older, newer} {
			if err := store.CreateInvitation(ctx, inv); err != nil {
				t.Fatalf("CreateInvitation failed: %v", err)
			}
		}

		list, err := store.ListInvitationsForUser(ctx, "user-a")
		if err != nil {
			t.Fatalf("ListInvitationsForUser failed: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("List has %d invitations, want 2", len(list))
		}
		if list[0].ID != newer.ID {
			t.Errorf("List[0] = %s, want newest invitation first", list[0].ID)
		}

		older.Status = models.InvitationAccepted
		older.RespondedAt = 300
		if err := store.UpdateInvitation(ctx, older); err != nil {
			t.Fatalf("UpdateInvitation failed: %v", err)
		}
		got, err := store.GetInvitation(ctx, older.ID)
		if err != nil {
			t.Fatalf("GetInvitation failed: %v", err)
		}
		if got.Status != models.InvitationAccepted || got.RespondedAt != 300 {
			t.Errorf("GetInvitation = %+v, want accepted at 300", got)
		}

		if _, err := store.GetInvitation(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetInvitation for unknown ID = %v, want ErrNotFound", err)
		}
	})
}
