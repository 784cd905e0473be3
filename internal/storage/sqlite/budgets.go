package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// CreateBudget inserts a new budget.
func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt == 0 {
		budget.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO budgets (id, category, monthly_limit, created_at) VALUES (?, ?, ?, ?)",
		budget.ID, budget.Category, budget.MonthlyLimit.String(), budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListBudgets retrieves all budgets.
func (s *SQLiteStore) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, category, monthly_limit, created_at FROM budgets ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		var limit string
		if err := rows.Scan(&b.ID, &b.Category, &limit, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.MonthlyLimit, err = decimal.NewFromString(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid stored limit %q: %w", limit, err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget updates a budget's scope and limit.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET category = ?, monthly_limit = ? WHERE id = ?",
		budget.Category, budget.MonthlyLimit.String(), budget.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("budget %s: %w", budget.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteBudget removes a budget by ID.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("budget %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
