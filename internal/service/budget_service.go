package service

import (
	"context"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// BudgetService manages monthly spending limits.
type BudgetService struct {
	store storage.Store
}

func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

func (s *BudgetService) Create(ctx context.Context, budget *models.Budget) error {
	if budget.MonthlyLimit.IsNegative() {
		return ErrNegativePrice
	}
	return s.store.CreateBudget(ctx, budget)
}

func (s *BudgetService) List(ctx context.Context) ([]models.Budget, error) {
	return s.store.ListBudgets(ctx)
}

func (s *BudgetService) Update(ctx context.Context, budget *models.Budget) error {
	if budget.MonthlyLimit.IsNegative() {
		return ErrNegativePrice
	}
	return s.store.UpdateBudget(ctx, budget)
}

func (s *BudgetService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteBudget(ctx, id)
}
