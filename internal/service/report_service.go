package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/ledger"
	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// DefaultBalanceWindowMonths is the lookback used when the caller does not
// specify one.
const DefaultBalanceWindowMonths = 12

// SpendSummary is the aggregate cost view over all subscriptions.
type SpendSummary struct {
	Monthly decimal.Decimal            `json:"monthly"`
	Annual  decimal.Decimal            `json:"annual"`
	ByCat   map[string]decimal.Decimal `json:"by_category"`
}

// ReportService produces derived, read-only views: fairness balances, spend
// totals, budget status and upcoming charges. All computation happens in the
// ledger; this service only feeds it snapshots.
type ReportService struct {
	store storage.Store
	now   func() time.Time
}

// NewReportService creates a ReportService with the given storage backend.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// Balances computes the per-member fairness report over the given lookback
// window. windowMonths <= 0 selects the default window.
func (s *ReportService) Balances(ctx context.Context, windowMonths int) ([]ledger.MemberBalance, error) {
	if windowMonths <= 0 {
		windowMonths = DefaultBalanceWindowMonths
	}

	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	byID := ledger.Balances(subs, members, windowMonths, s.now())

	// Stable output order: household order.
	balances := make([]ledger.MemberBalance, 0, len(members))
	for _, m := range members {
		balances = append(balances, *byID[m.ID])
	}
	return balances, nil
}

// Spend returns monthly/annual totals and the per-category breakdown,
// paused subscriptions excluded.
func (s *ReportService) Spend(ctx context.Context) (*SpendSummary, error) {
	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	return &SpendSummary{
		Monthly: ledger.TotalMonthly(subs),
		Annual:  ledger.TotalAnnual(subs),
		ByCat:   ledger.CategoryTotals(subs),
	}, nil
}

// Upcoming returns unpaused subscriptions charging within the next `days`
// days, soonest first.
func (s *ReportService) Upcoming(ctx context.Context, days int) ([]models.Subscription, error) {
	if days <= 0 {
		days = 30
	}

	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.UpcomingCharges(subs, s.now(), days), nil
}

// BudgetStatus compares every budget against the current monthly-equivalent
// spend in its scope.
func (s *ReportService) BudgetStatus(ctx context.Context) ([]models.BudgetStatus, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	total := ledger.TotalMonthly(subs)
	byCategory := ledger.CategoryTotals(subs)

	statuses := make([]models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := total
		if b.Category != "" {
			spent = byCategory[b.Category]
		}
		statuses = append(statuses, models.BudgetStatus{
			Budget:    b,
			Spent:     spent,
			Remaining: b.MonthlyLimit.Sub(spent),
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Budget.Category < statuses[j].Budget.Category
	})
	return statuses, nil
}
