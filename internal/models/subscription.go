package models

import (
	"github.com/shopspring/decimal"
)

// Cadence is the billing frequency of a subscription.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceAnnual  Cadence = "annual"
)

// Valid reports whether c is one of the known billing cadences.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceWeekly, CadenceMonthly, CadenceAnnual:
		return true
	}
	return false
}

// PaymentMode is how a familial subscription splits its cost.
type PaymentMode string

const (
	// PaymentModeRotation: one participant pays the whole bill in turn.
	PaymentModeRotation PaymentMode = "rotation"
	// PaymentModeShared: every participant owes a weighted fraction each cycle.
	PaymentModeShared PaymentMode = "shared"
)

// PaymentEntry records one settled month of a familial subscription.
// History is keyed by month: at most one entry per "YYYY-MM".
type PaymentEntry struct {
	// Month is the settled month as a "YYYY-MM" key.
	Month string `json:"month"`

	// PaidBy is the member ID who actually paid that month.
	PaidBy string `json:"paid_by"`
}

// Rotation tracks whose turn it is to pay a familial subscription.
type Rotation struct {
	// Order is the payer cycle, as an ordered list of member IDs.
	Order []string `json:"order"`

	// CurrentIndex points into Order at the member currently responsible.
	// Invariant: 0 <= CurrentIndex < len(Order) whenever Order is non-empty.
	CurrentIndex int `json:"current_index"`

	// Overrides maps a "YYYY-MM" key to a member ID, reassigning
	// responsibility for that month only. Overrides never move CurrentIndex.
	Overrides map[string]string `json:"overrides,omitempty"`

	// StartDate is the Unix timestamp when the rotation was created.
	StartDate int64 `json:"start_date"`
}

// Clone returns a deep copy of the rotation.
func (r *Rotation) Clone() *Rotation {
	if r == nil {
		return nil
	}
	cp := &Rotation{
		Order:        append([]string(nil), r.Order...),
		CurrentIndex: r.CurrentIndex,
		StartDate:    r.StartDate,
	}
	if r.Overrides != nil {
		cp.Overrides = make(map[string]string, len(r.Overrides))
		for k, v := range r.Overrides {
			cp.Overrides[k] = v
		}
	}
	return cp
}

// Subscription represents one recurring charge.
type Subscription struct {
	// ID is the unique identifier for the subscription (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g. "Netflix").
	Name string `json:"name"`

	// ProviderID optionally links to a catalog provider.
	ProviderID string `json:"provider_id,omitempty"`

	// Price is the amount charged each billing cycle.
	Price decimal.Decimal `json:"price"`

	// Currency is the ISO 4217 code of Price (display concern only).
	Currency string `json:"currency"`

	// Billing is the charge cadence.
	Billing Cadence `json:"billing"`

	// NextCharge is the Unix timestamp of the next expected charge.
	NextCharge int64 `json:"next_charge"`

	// Category groups subscriptions for budget reporting.
	Category string `json:"category"`

	// Notes is free-form text.
	Notes string `json:"notes,omitempty"`

	// Paused excludes the subscription from aggregate totals while true.
	Paused bool `json:"paused"`

	// Familial marks the subscription as shared among members.
	Familial bool `json:"familial"`

	// Participants is the ordered list of member IDs sharing the cost.
	// Non-empty whenever a rotation or shared split is active.
	Participants []string `json:"participants,omitempty"`

	// PaymentMode selects rotation or shared splitting. Empty means rotation.
	PaymentMode PaymentMode `json:"payment_mode,omitempty"`

	// Shares holds per-member integer weights for shared mode.
	// Keys are a subset of Participants; absent members weigh 1.
	Shares map[string]int `json:"shares,omitempty"`

	// Rotation is the payer cycle state; nil when no rotation is active.
	Rotation *Rotation `json:"rotation,omitempty"`

	// History is the append-only list of settled months.
	History []PaymentEntry `json:"history,omitempty"`

	// CreatedAt is the Unix timestamp when the subscription was created.
	CreatedAt int64 `json:"created_at"`
}

// Mode returns the effective payment mode, defaulting to rotation.
func (s *Subscription) Mode() PaymentMode {
	if s.PaymentMode == PaymentModeShared {
		return PaymentModeShared
	}
	return PaymentModeRotation
}

// Clone returns a deep copy of the subscription. Ledger transitions clone
// before mutating so callers keep their snapshot.
func (s *Subscription) Clone() *Subscription {
	cp := *s
	cp.Participants = append([]string(nil), s.Participants...)
	cp.History = append([]PaymentEntry(nil), s.History...)
	cp.Rotation = s.Rotation.Clone()
	if s.Shares != nil {
		cp.Shares = make(map[string]int, len(s.Shares))
		for k, v := range s.Shares {
			cp.Shares[k] = v
		}
	}
	return &cp
}
