package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
)

// MemberBalance is one member's fairness summary over the lookback window.
type MemberBalance struct {
	MemberID string `json:"member_id"`

	// Paid is the monthly-equivalent total of payments this member settled.
	Paid decimal.Decimal `json:"paid"`

	// Owed is the member's fair share of in-window billing cycles.
	Owed decimal.Decimal `json:"owed"`

	// Balance is Paid - Owed: positive means the member is ahead.
	Balance decimal.Decimal `json:"balance"`

	// PaymentCount is the number of in-window payments this member settled.
	PaymentCount int `json:"payment_count"`
}

// Balances produces a per-member fairness report over a trailing window.
//
// The paid side credits each in-window history entry to its payer at the
// subscription's monthly equivalent. The owed side distributes the same
// in-window cycles across participants: equal shares in rotation mode,
// weighted shares in shared mode. Cycles are counted from recorded history
// entries, not elapsed calendar months, so a rotation with no settled months
// contributes nothing to either side.
//
// Member IDs not present in members are ignored; every listed member appears
// in the result, zero-filled when inactive.
func Balances(subs []models.Subscription, members []models.Member, windowMonths int, now time.Time) map[string]*MemberBalance {
	balances := make(map[string]*MemberBalance, len(members))
	for _, m := range members {
		balances[m.ID] = &MemberBalance{
			MemberID: m.ID,
			Paid:     decimal.Zero,
			Owed:     decimal.Zero,
			Balance:  decimal.Zero,
		}
	}

	windowStart := now.AddDate(0, -windowMonths, 0)

	for i := range subs {
		sub := &subs[i]
		if !sub.Familial || sub.Rotation == nil {
			continue
		}

		monthly := MonthlyEquivalent(sub.Price, sub.Billing)

		relevantMonths := 0
		for _, entry := range sub.History {
			start, ok := monthStart(entry.Month)
			if !ok || start.Before(windowStart) {
				continue
			}
			relevantMonths++

			if b, tracked := balances[entry.PaidBy]; tracked {
				b.Paid = b.Paid.Add(monthly)
				b.PaymentCount++
			}
		}

		participants := len(sub.Participants)
		if participants == 0 {
			continue
		}

		cycles := decimal.NewFromInt(int64(relevantMonths))

		if sub.Mode() == models.PaymentModeRotation {
			share := monthly.Mul(cycles).Div(decimal.NewFromInt(int64(participants)))
			for _, id := range sub.Participants {
				if b, tracked := balances[id]; tracked {
					b.Owed = b.Owed.Add(share)
				}
			}
		} else {
			totalShares := 0
			for _, id := range sub.Participants {
				totalShares += shareWeight(sub.Shares, id)
			}
			// All-zero shares would divide by zero; such a split owes nothing.
			if totalShares == 0 {
				continue
			}

			total := decimal.NewFromInt(int64(totalShares))
			for _, id := range sub.Participants {
				b, tracked := balances[id]
				if !tracked {
					continue
				}
				weight := decimal.NewFromInt(int64(shareWeight(sub.Shares, id)))
				b.Owed = b.Owed.Add(monthly.Mul(cycles).Mul(weight).Div(total))
			}
		}
	}

	for _, b := range balances {
		b.Balance = b.Paid.Sub(b.Owed)
	}
	return balances
}

// shareWeight returns the member's share weight, defaulting to 1 when the
// member has no entry in the shares map. An explicit zero stays zero.
func shareWeight(shares map[string]int, id string) int {
	if shares == nil {
		return 1
	}
	w, ok := shares[id]
	if !ok {
		return 1
	}
	return w
}
