// Package ledger implements the rotation and fair-share accounting engine.
//
// Every function is a pure computation over subscription and member snapshots:
// inputs are never mutated, transitions return fresh copies, and the caller
// supplies "now" so results are reproducible. Persistence and API layers sit
// above this package.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
)

// monthLayout is the "YYYY-MM" key format used for overrides and history.
const monthLayout = "2006-01"

var (
	monthsPerYear = decimal.NewFromInt(12)
	weeksPerYear  = decimal.NewFromInt(52)
)

// MonthKey formats t as the "YYYY-MM" key used throughout the ledger.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// ValidMonthKey reports whether key is a well-formed "YYYY-MM" month key.
func ValidMonthKey(key string) bool {
	_, ok := monthStart(key)
	return ok
}

// monthStart parses a "YYYY-MM" key into the first instant of that month.
// Malformed keys report false and are skipped by callers rather than erroring.
func monthStart(key string) (time.Time, bool) {
	t, err := time.Parse(monthLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthlyEquivalent converts a price at the given cadence to its monthly
// equivalent. Unknown cadences pass the price through unchanged; validation
// is a caller concern.
func MonthlyEquivalent(price decimal.Decimal, cadence models.Cadence) decimal.Decimal {
	switch cadence {
	case models.CadenceMonthly:
		return price
	case models.CadenceAnnual:
		return price.Div(monthsPerYear)
	case models.CadenceWeekly:
		return price.Mul(weeksPerYear).Div(monthsPerYear)
	default:
		return price
	}
}

// AnnualEquivalent converts a price at the given cadence to a yearly figure.
func AnnualEquivalent(price decimal.Decimal, cadence models.Cadence) decimal.Decimal {
	return MonthlyEquivalent(price, cadence).Mul(monthsPerYear)
}

// WeeklyEquivalent converts a price at the given cadence to a weekly figure.
func WeeklyEquivalent(price decimal.Decimal, cadence models.Cadence) decimal.Decimal {
	return MonthlyEquivalent(price, cadence).Mul(monthsPerYear).Div(weeksPerYear)
}

// TotalMonthly sums the monthly equivalent of all unpaused subscriptions.
func TotalMonthly(subs []models.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, sub := range subs {
		if sub.Paused {
			continue
		}
		total = total.Add(MonthlyEquivalent(sub.Price, sub.Billing))
	}
	return total
}

// TotalAnnual sums the annual equivalent of all unpaused subscriptions.
func TotalAnnual(subs []models.Subscription) decimal.Decimal {
	return TotalMonthly(subs).Mul(monthsPerYear)
}

// CategoryTotals returns the monthly-equivalent spend per category,
// paused subscriptions excluded.
func CategoryTotals(subs []models.Subscription) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, sub := range subs {
		if sub.Paused {
			continue
		}
		monthly := MonthlyEquivalent(sub.Price, sub.Billing)
		if existing, ok := totals[sub.Category]; ok {
			totals[sub.Category] = existing.Add(monthly)
		} else {
			totals[sub.Category] = monthly
		}
	}
	return totals
}

// DaysUntilNextCharge returns the number of whole days from now until the
// subscription's next charge. Negative when the charge date has passed.
func DaysUntilNextCharge(sub *models.Subscription, now time.Time) int {
	return int(time.Unix(sub.NextCharge, 0).Sub(now).Hours() / 24)
}

// UpcomingCharges returns the unpaused subscriptions charging within the next
// `days` days, soonest first. The input slice is not modified.
func UpcomingCharges(subs []models.Subscription, now time.Time, days int) []models.Subscription {
	cutoff := now.AddDate(0, 0, days)

	var upcoming []models.Subscription
	for _, sub := range subs {
		if sub.Paused {
			continue
		}
		if time.Unix(sub.NextCharge, 0).Before(cutoff) {
			upcoming = append(upcoming, sub)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].NextCharge < upcoming[j].NextCharge
	})
	return upcoming
}
