package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
)

func TestReportServiceSpend(t *testing.T) {
	store := setupTestStore(t)
	subs := NewSubscriptionService(store)
	reports := NewReportService(store)
	ctx := context.Background()

	for _, sub := range []*models.Subscription{
		{Name: "Netflix", Billing: models.CadenceMonthly, Price: decimal.RequireFromString("15"), Category: "streaming"},
		{Name: "Domain", Billing: models.CadenceAnnual, Price: decimal.RequireFromString("120"), Category: "infra"},
		{Name: "Paused", Billing: models.CadenceMonthly, Price: decimal.RequireFromString("99"), Category: "streaming", Paused: true},
	} {
		if err := subs.Create(ctx, sub); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	summary, err := reports.Spend(ctx)
	if err != nil {
		t.Fatalf("Spend failed: %v", err)
	}

	// 15 monthly + 120/12 annual, paused excluded.
	if want := decimal.RequireFromString("25"); !summary.Monthly.Equal(want) {
		t.Errorf("Monthly = %s, want %s", summary.Monthly, want)
	}
	if want := decimal.RequireFromString("300"); !summary.Annual.Equal(want) {
		t.Errorf("Annual = %s, want %s", summary.Annual, want)
	}
	if want := decimal.RequireFromString("15"); !summary.ByCat["streaming"].Equal(want) {
		t.Errorf("ByCat[streaming] = %s, want %s", summary.ByCat["streaming"], want)
	}
	if want := decimal.RequireFromString("10"); !summary.ByCat["infra"].Equal(want) {
		t.Errorf("ByCat[infra] = %s, want %s", summary.ByCat["infra"], want)
	}
}

func TestReportServiceBalances(t *testing.T) {
	store := setupTestStore(t)
	subs := NewSubscriptionService(store)
	reports := NewReportService(store)
	reports.now = fixedClock(2026, time.April)
	ctx := context.Background()

	alice := createMember(t, store, "Alice")
	bob := createMember(t, store, "Bob")

	sub := familialSubscription("Netflix", "12", alice.ID, bob.ID)
	if err := subs.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, entry := range []struct{ month, payer string }{
		{"2026-01", alice.ID},
		{"2026-02", bob.ID},
		{"2026-03", alice.ID},
	} {
		if _, err := subs.RecordPayment(ctx, sub.ID, entry.month, entry.payer); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
	}

	balances, err := reports.Balances(ctx, 12)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}

	// Household order: alice first.
	a, b := balances[0], balances[1]
	if a.MemberID != alice.ID || b.MemberID != bob.ID {
		t.Fatalf("balance order = %s, %s; want alice, bob", a.MemberID, b.MemberID)
	}
	// Alice paid 24 of 36, fair share is 18 each.
	if want := decimal.RequireFromString("24"); !a.Paid.Equal(want) {
		t.Errorf("alice Paid = %s, want %s", a.Paid, want)
	}
	if want := decimal.RequireFromString("6"); !a.Balance.Equal(want) {
		t.Errorf("alice Balance = %s, want %s", a.Balance, want)
	}
	if want := decimal.RequireFromString("-6"); !b.Balance.Equal(want) {
		t.Errorf("bob Balance = %s, want %s", b.Balance, want)
	}
	if a.PaymentCount != 2 || b.PaymentCount != 1 {
		t.Errorf("PaymentCount = %d, %d; want 2, 1", a.PaymentCount, b.PaymentCount)
	}
}

func TestReportServiceBudgetStatus(t *testing.T) {
	store := setupTestStore(t)
	subs := NewSubscriptionService(store)
	budgets := NewBudgetService(store)
	reports := NewReportService(store)
	ctx := context.Background()

	for _, sub := range []*models.Subscription{
		{Name: "Netflix", Billing: models.CadenceMonthly, Price: decimal.RequireFromString("15"), Category: "streaming"},
		{Name: "Spotify", Billing: models.CadenceMonthly, Price: decimal.RequireFromString("10"), Category: "streaming"},
	} {
		if err := subs.Create(ctx, sub); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	overall := &models.Budget{MonthlyLimit: decimal.RequireFromString("30")}
	scoped := &models.Budget{Category: "streaming", MonthlyLimit: decimal.RequireFromString("20")}
	for _, b := range []*models.Budget{overall, scoped} {
		if err := budgets.Create(ctx, b); err != nil {
			t.Fatalf("CreateBudget failed: %v", err)
		}
	}

	statuses, err := reports.BudgetStatus(ctx)
	if err != nil {
		t.Fatalf("BudgetStatus failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}

	// Sorted by category: overall (empty) first.
	if !statuses[0].Remaining.Equal(decimal.RequireFromString("5")) {
		t.Errorf("overall Remaining = %s, want 5", statuses[0].Remaining)
	}
	// The scoped budget is over by 5.
	if !statuses[1].Remaining.Equal(decimal.RequireFromString("-5")) {
		t.Errorf("streaming Remaining = %s, want -5", statuses[1].Remaining)
	}
}

func TestReportServiceUpcoming(t *testing.T) {
	store := setupTestStore(t)
	subs := NewSubscriptionService(store)
	reports := NewReportService(store)
	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	reports.now = func() time.Time { return now }
	ctx := context.Background()

	soon := &models.Subscription{
		Name:       "Netflix",
		Billing:    models.CadenceMonthly,
		Price:      decimal.RequireFromString("15"),
		NextCharge: now.AddDate(0, 0, 3).Unix(),
	}
	later := &models.Subscription{
		Name:       "Insurance",
		Billing:    models.CadenceAnnual,
		Price:      decimal.RequireFromString("300"),
		NextCharge: now.AddDate(0, 2, 0).Unix(),
	}
	paused := &models.Subscription{
		Name:       "Gym",
		Billing:    models.CadenceMonthly,
		Price:      decimal.RequireFromString("30"),
		NextCharge: now.AddDate(0, 0, 1).Unix(),
		Paused:     true,
	}
	for _, sub := range []*models.Subscription{later, soon, paused} {
		if err := subs.Create(ctx, sub); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	upcoming, err := reports.Upcoming(ctx, 30)
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Name != "Netflix" {
		t.Errorf("Upcoming = %v, want only Netflix", names(upcoming))
	}
}

func names(subs []models.Subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Name
	}
	return out
}
