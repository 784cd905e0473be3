package models

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit.
// An empty Category applies the limit to all subscriptions; otherwise it
// applies only to subscriptions in that category.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string `json:"id"`

	// Category scopes the budget. Empty means overall.
	Category string `json:"category,omitempty"`

	// MonthlyLimit is the allowed monthly spend.
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`

	// CreatedAt is the Unix timestamp when the budget was created.
	CreatedAt int64 `json:"created_at"`
}

// BudgetStatus is a derived view of one budget against actual spend.
type BudgetStatus struct {
	Budget Budget `json:"budget"`

	// Spent is the current monthly-equivalent spend within the budget's scope,
	// paused subscriptions excluded.
	Spent decimal.Decimal `json:"spent"`

	// Remaining is MonthlyLimit - Spent (negative when over budget).
	Remaining decimal.Decimal `json:"remaining"`
}
