package ledger

import (
	"time"

	"github.com/fluxyapp/fluxy/internal/models"
)

// CurrentPayer answers who owes the subscription in the given "YYYY-MM" month.
// A month override takes absolute precedence and never consults the rotation
// index. Subscriptions without a rotation or participants have no payer.
func CurrentPayer(sub *models.Subscription, month string) (string, bool) {
	rot := sub.Rotation
	if rot == nil || len(sub.Participants) == 0 || len(rot.Order) == 0 {
		return "", false
	}

	if id, ok := rot.Overrides[month]; ok {
		return id, true
	}

	if rot.CurrentIndex < 0 || rot.CurrentIndex >= len(rot.Order) {
		return "", false
	}
	return rot.Order[rot.CurrentIndex], true
}

// CurrentPayerAt resolves the payer for the calendar month containing t.
func CurrentPayerAt(sub *models.Subscription, t time.Time) (string, bool) {
	return CurrentPayer(sub, MonthKey(t))
}

// NextPayer returns the member whose turn comes after the current payer.
func NextPayer(sub *models.Subscription) (string, bool) {
	rot := sub.Rotation
	if rot == nil || len(sub.Participants) == 0 || len(rot.Order) == 0 {
		return "", false
	}

	next := (rot.CurrentIndex + 1) % len(rot.Order)
	return rot.Order[next], true
}
