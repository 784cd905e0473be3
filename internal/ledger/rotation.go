package ledger

import (
	"time"

	"github.com/fluxyapp/fluxy/internal/models"
)

// Rotation transitions. Each function takes a subscription snapshot and
// returns a new snapshot with the transition applied; the input is never
// mutated. A subscription without a rotation passes through unchanged --
// "not in a rotation" is a normal state, not a fault.

// RecordPayment settles the given month as paid by the given member.
//
// The rotation advances only the first time a month is settled: recording a
// payment for an already-settled month overwrites PaidBy without moving the
// index, so corrections never double-advance the cycle.
func RecordPayment(sub *models.Subscription, month, paidBy string) *models.Subscription {
	if sub.Rotation == nil {
		return sub
	}

	out := sub.Clone()
	for i := range out.History {
		if out.History[i].Month == month {
			out.History[i].PaidBy = paidBy
			return out
		}
	}

	out.History = append(out.History, models.PaymentEntry{Month: month, PaidBy: paidBy})
	if n := len(out.Rotation.Order); n > 0 {
		out.Rotation.CurrentIndex = (out.Rotation.CurrentIndex + 1) % n
	}
	return out
}

// SkipPayment advances the rotation without settling a month: nobody pays
// this cycle but the turn still moves on.
func SkipPayment(sub *models.Subscription) *models.Subscription {
	if sub.Rotation == nil {
		return sub
	}

	out := sub.Clone()
	if n := len(out.Rotation.Order); n > 0 {
		out.Rotation.CurrentIndex = (out.Rotation.CurrentIndex + 1) % n
	}
	return out
}

// ForcePayer assigns responsibility for one month to the given member.
// This is a planning override: it touches neither the rotation index nor the
// payment history, and expires with the month.
func ForcePayer(sub *models.Subscription, month, memberID string) *models.Subscription {
	if sub.Rotation == nil {
		return sub
	}

	out := sub.Clone()
	if out.Rotation.Overrides == nil {
		out.Rotation.Overrides = make(map[string]string, 1)
	}
	out.Rotation.Overrides[month] = memberID
	return out
}

// ReorderParticipants replaces the payer cycle with newOrder.
//
// The member who was currently responsible stays responsible: the index is
// re-anchored to that member's position in newOrder, falling back to 0 when
// the member was removed. An empty newOrder clears the rotation entirely.
func ReorderParticipants(sub *models.Subscription, newOrder []string) *models.Subscription {
	if sub.Rotation == nil {
		return sub
	}

	out := sub.Clone()
	if len(newOrder) == 0 {
		out.Rotation = nil
		out.Participants = nil
		return out
	}

	var prev string
	if out.Rotation.CurrentIndex >= 0 && out.Rotation.CurrentIndex < len(out.Rotation.Order) {
		prev = out.Rotation.Order[out.Rotation.CurrentIndex]
	}

	newIndex := 0
	for i, id := range newOrder {
		if id == prev {
			newIndex = i
			break
		}
	}

	out.Rotation.Order = append([]string(nil), newOrder...)
	out.Rotation.CurrentIndex = newIndex
	out.Participants = append([]string(nil), newOrder...)
	return out
}

// AddParticipant appends a member to the end of the payer cycle without
// changing whose turn it is. A subscription with no rotation yet gets one,
// starting at the new member.
func AddParticipant(sub *models.Subscription, memberID string, now time.Time) *models.Subscription {
	out := sub.Clone()
	if out.Rotation == nil {
		out.Rotation = &models.Rotation{
			Order:        []string{memberID},
			CurrentIndex: 0,
			StartDate:    now.Unix(),
		}
	} else {
		out.Rotation.Order = append(out.Rotation.Order, memberID)
	}
	out.Participants = append(out.Participants, memberID)
	return out
}

// RemoveParticipant drops a member from the payer cycle. Removing the last
// member clears the rotation entirely; otherwise the index is clamped back
// into bounds so the cycle keeps a valid current payer.
func RemoveParticipant(sub *models.Subscription, memberID string) *models.Subscription {
	if sub.Rotation == nil {
		return sub
	}

	out := sub.Clone()
	out.Rotation.Order = remove(out.Rotation.Order, memberID)
	out.Participants = remove(out.Participants, memberID)

	if len(out.Rotation.Order) == 0 {
		out.Rotation = nil
		return out
	}

	if out.Rotation.CurrentIndex > len(out.Rotation.Order)-1 {
		out.Rotation.CurrentIndex = len(out.Rotation.Order) - 1
	}
	return out
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
