package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// CreateSubscription persists a new subscription with all of its
// participant, rotation and history rows in one transaction.
func (s *SQLiteStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt == 0 {
		sub.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSubscriptionRow(ctx, tx, sub); err != nil {
		return err
	}
	if err := insertSubscriptionChildren(ctx, tx, sub); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSubscription retrieves a subscription by ID, including participants,
// rotation state and payment history.
func (s *SQLiteStore) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, provider_id, price, currency, billing, next_charge,
		       category, notes, paused, familial, payment_mode,
		       rotation_index, rotation_start, created_at
		FROM subscriptions WHERE id = ?`, id)

	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subscription %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if err := s.loadSubscriptionChildren(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubscriptions retrieves every subscription, fully hydrated.
func (s *SQLiteStore) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, provider_id, price, currency, billing, next_charge,
		       category, notes, paused, familial, payment_mode,
		       rotation_index, rotation_start, created_at
		FROM subscriptions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	for i := range subs {
		if err := s.loadSubscriptionChildren(ctx, &subs[i]); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

// UpdateSubscription replaces the whole subscription atomically: the row is
// rewritten and all child rows are dropped and reinserted in one transaction.
func (s *SQLiteStore) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET name = ?, provider_id = ?, price = ?, currency = ?, billing = ?,
		    next_charge = ?, category = ?, notes = ?, paused = ?, familial = ?,
		    payment_mode = ?, rotation_index = ?, rotation_start = ?
		WHERE id = ?`,
		sub.Name, sub.ProviderID, sub.Price.String(), sub.Currency, string(sub.Billing),
		sub.NextCharge, sub.Category, sub.Notes, boolInt(sub.Paused), boolInt(sub.Familial),
		string(sub.PaymentMode), rotationIndex(sub), rotationStart(sub), sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("subscription %s: %w", sub.ID, storage.ErrNotFound)
	}

	for _, table := range []string{"subscription_participants", "rotation_members", "rotation_overrides", "payment_history"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE subscription_id = ?", sub.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertSubscriptionChildren(ctx, tx, sub); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSubscription removes a subscription; child rows cascade.
func (s *SQLiteStore) DeleteSubscription(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("subscription %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func insertSubscriptionRow(ctx context.Context, tx *sql.Tx, sub *models.Subscription) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO subscriptions (id, name, provider_id, price, currency, billing,
		    next_charge, category, notes, paused, familial, payment_mode,
		    rotation_index, rotation_start, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.ProviderID, sub.Price.String(), sub.Currency, string(sub.Billing),
		sub.NextCharge, sub.Category, sub.Notes, boolInt(sub.Paused), boolInt(sub.Familial),
		string(sub.PaymentMode), rotationIndex(sub), rotationStart(sub), sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

func insertSubscriptionChildren(ctx context.Context, tx *sql.Tx, sub *models.Subscription) error {
	for i, memberID := range sub.Participants {
		var share interface{}
		if sub.Shares != nil {
			if w, ok := sub.Shares[memberID]; ok {
				share = w
			}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO subscription_participants (subscription_id, member_id, position, share) VALUES (?, ?, ?, ?)",
			sub.ID, memberID, i, share,
		); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if sub.Rotation != nil {
		for i, memberID := range sub.Rotation.Order {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO rotation_members (subscription_id, position, member_id) VALUES (?, ?, ?)",
				sub.ID, i, memberID,
			); err != nil {
				return fmt.Errorf("failed to insert rotation member: %w", err)
			}
		}
		for month, memberID := range sub.Rotation.Overrides {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO rotation_overrides (subscription_id, month, member_id) VALUES (?, ?, ?)",
				sub.ID, month, memberID,
			); err != nil {
				return fmt.Errorf("failed to insert rotation override: %w", err)
			}
		}
	}

	for _, entry := range sub.History {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO payment_history (subscription_id, month, paid_by) VALUES (?, ?, ?)",
			sub.ID, entry.Month, entry.PaidBy,
		); err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var (
		price         string
		billing, mode string
		paused        int
		familial      int
		rotIndex      sql.NullInt64
		rotStart      sql.NullInt64
	)

	err := row.Scan(&sub.ID, &sub.Name, &sub.ProviderID, &price, &sub.Currency, &billing,
		&sub.NextCharge, &sub.Category, &sub.Notes, &paused, &familial, &mode,
		&rotIndex, &rotStart, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}

	sub.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	sub.Billing = models.Cadence(billing)
	sub.PaymentMode = models.PaymentMode(mode)
	sub.Paused = paused != 0
	sub.Familial = familial != 0
	if rotIndex.Valid {
		sub.Rotation = &models.Rotation{
			CurrentIndex: int(rotIndex.Int64),
			StartDate:    rotStart.Int64,
		}
	}
	return sub, nil
}

func (s *SQLiteStore) loadSubscriptionChildren(ctx context.Context, sub *models.Subscription) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, share FROM subscription_participants WHERE subscription_id = ? ORDER BY position",
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		var share sql.NullInt64
		if err := rows.Scan(&memberID, &share); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		sub.Participants = append(sub.Participants, memberID)
		if share.Valid {
			if sub.Shares == nil {
				sub.Shares = make(map[string]int)
			}
			sub.Shares[memberID] = int(share.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	if sub.Rotation != nil {
		orderRows, err := s.db.QueryContext(ctx,
			"SELECT member_id FROM rotation_members WHERE subscription_id = ? ORDER BY position",
			sub.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get rotation members: %w", err)
		}
		defer orderRows.Close()
		for orderRows.Next() {
			var memberID string
			if err := orderRows.Scan(&memberID); err != nil {
				return fmt.Errorf("failed to scan rotation member: %w", err)
			}
			sub.Rotation.Order = append(sub.Rotation.Order, memberID)
		}
		if err := orderRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate rotation members: %w", err)
		}

		overrideRows, err := s.db.QueryContext(ctx,
			"SELECT month, member_id FROM rotation_overrides WHERE subscription_id = ?",
			sub.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get rotation overrides: %w", err)
		}
		defer overrideRows.Close()
		for overrideRows.Next() {
			var month, memberID string
			if err := overrideRows.Scan(&month, &memberID); err != nil {
				return fmt.Errorf("failed to scan rotation override: %w", err)
			}
			if sub.Rotation.Overrides == nil {
				sub.Rotation.Overrides = make(map[string]string)
			}
			sub.Rotation.Overrides[month] = memberID
		}
		if err := overrideRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate rotation overrides: %w", err)
		}
	}

	historyRows, err := s.db.QueryContext(ctx,
		"SELECT month, paid_by FROM payment_history WHERE subscription_id = ? ORDER BY month",
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payment history: %w", err)
	}
	defer historyRows.Close()
	for historyRows.Next() {
		var entry models.PaymentEntry
		if err := historyRows.Scan(&entry.Month, &entry.PaidBy); err != nil {
			return fmt.Errorf("failed to scan history entry: %w", err)
		}
		sub.History = append(sub.History, entry)
	}
	if err := historyRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payment history: %w", err)
	}

	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func rotationIndex(sub *models.Subscription) interface{} {
	if sub.Rotation == nil {
		return nil
	}
	return sub.Rotation.CurrentIndex
}

func rotationStart(sub *models.Subscription) interface{} {
	if sub.Rotation == nil {
		return nil
	}
	return sub.Rotation.StartDate
}
