// Package scheduler runs the daily reminder sweep. A cron job scans every
// active subscription for charges due in 7, 3 or 0 days, writes a
// payment_reminder message for whoever is due to pay, and publishes an event
// for external consumers.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"

	"github.com/fluxyapp/fluxy/internal/ledger"
	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/notify"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// reminderDays are the lead times, in days before the next charge, at which
// a reminder fires. Zero means the charge is due today.
var reminderDays = map[int]bool{7: true, 3: true, 0: true}

var remindersSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fluxy_reminders_sent_total",
		Help: "Reminders generated by the scheduler.",
	},
	[]string{"days_until"},
)

// Scheduler owns the cron runner and the reminder sweep.
type Scheduler struct {
	cron      *cron.Cron
	store     storage.Store
	publisher *notify.Publisher
	now       func() time.Time
}

// New creates a scheduler. The publisher may be nil, in which case events
// are not published but reminder messages are still written.
func New(store storage.Store, publisher *notify.Publisher) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Register schedules the reminder sweep at the given cron spec
// (six fields, with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("register reminder sweep: %w", err)
	}
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop cancels future runs and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

// RunNow executes the sweep immediately, outside the cron schedule.
func (s *Scheduler) RunNow() {
	s.sweep()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := s.now()
	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		slog.Error("reminder sweep: list subscriptions", "error", err)
		return
	}

	sent := 0
	for i := range subs {
		sub := &subs[i]
		if sub.Paused {
			continue
		}
		days := ledger.DaysUntilNextCharge(sub, now)
		if !reminderDays[days] {
			continue
		}
		if err := s.remind(ctx, sub, days); err != nil {
			slog.Error("reminder sweep: remind",
				"subscription_id", sub.ID, "error", err)
			continue
		}
		sent++
	}
	slog.Info("reminder sweep finished", "subscriptions", len(subs), "reminders", sent)
}

func (s *Scheduler) remind(ctx context.Context, sub *models.Subscription, days int) error {
	payer, ok := ledger.CurrentPayerAt(sub, s.now())
	if !ok {
		// Solo subscription, nobody to address: log and count, no message.
		slog.Info("charge due", "subscription", sub.Name, "days_until", days)
		remindersSent.WithLabelValues(fmt.Sprint(days)).Inc()
		return nil
	}

	msg := &models.Message{
		RecipientID:    payer,
		SubscriptionID: sub.ID,
		Body:           reminderBody(sub, days),
		Type:           models.MessageTypePaymentReminder,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return fmt.Errorf("create reminder message: %w", err)
	}

	event := notify.NewReminderEvent(sub.ID, sub.Name, days, payer)
	if err := s.publisher.PublishReminder(ctx, event); err != nil {
		// Publishing is best-effort; the in-app message already landed.
		slog.Error("publish reminder event", "subscription_id", sub.ID, "error", err)
	}

	remindersSent.WithLabelValues(fmt.Sprint(days)).Inc()
	return nil
}

func reminderBody(sub *models.Subscription, days int) string {
	if days == 0 {
		return fmt.Sprintf("%s charges today: %s %s. It is your turn to pay.",
			sub.Name, sub.Price.StringFixed(2), sub.Currency)
	}
	return fmt.Sprintf("%s charges in %d days: %s %s. It is your turn to pay.",
		sub.Name, days, sub.Price.StringFixed(2), sub.Currency)
}
