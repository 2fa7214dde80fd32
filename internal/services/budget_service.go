package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
)

// budgetService handles budget maintenance and over/under evaluation.
type budgetService struct {
	store ledger.Store
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(store ledger.Store) BudgetServicer {
	return &budgetService{store: store}
}

// SetBudget creates or replaces the monthly limit for a category.
func (s *budgetService) SetBudget(ctx context.Context, category string, limit decimal.Decimal) (*models.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.ErrEmptyCategory
	}
	if !limit.IsPositive() {
		return nil, apperrors.ErrInvalidBudgetLimit
	}

	budget, err := s.store.UpsertBudget(ctx, category, limit)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("budget set", "category", category, "monthly_limit", limit.String())
	return budget, nil
}

// GetBudget returns the limit for category, or zero when none is defined.
func (s *budgetService) GetBudget(ctx context.Context, category string) (decimal.Decimal, error) {
	budget, err := s.store.GetBudget(ctx, strings.TrimSpace(category))
	if err != nil {
		if errors.Is(err, apperrors.ErrBudgetNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return budget.MonthlyLimit, nil
}

// ListBudgets returns every budget ordered by category.
func (s *budgetService) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	budgets, err := s.store.QueryBudgets(ctx)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// RemoveBudget deletes the budget for category and reports whether it existed.
func (s *budgetService) RemoveBudget(ctx context.Context, category string) (bool, error) {
	deleted, err := s.store.DeleteBudget(ctx, strings.TrimSpace(category))
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Get().Infow("budget removed", "category", category)
	}
	return deleted, nil
}

// SpendingSummary returns all-time spending for every budgeted category.
func (s *budgetService) SpendingSummary(ctx context.Context) ([]ledger.SpendingSummary, error) {
	return s.store.SpendingSummary(ctx)
}

// CheckBudget reports whether category has spent past its limit. A category
// without a budget is never over budget and has zero remaining.
func (s *budgetService) CheckBudget(ctx context.Context, category string) (*BudgetStatus, error) {
	category = strings.TrimSpace(category)
	summary, err := s.store.SpendingSummary(ctx)
	if err != nil {
		return nil, err
	}

	status := &BudgetStatus{Category: category, Remaining: decimal.Zero}
	for _, row := range summary {
		if row.Category != category {
			continue
		}
		status.HasBudget = true
		status.Remaining = row.Remaining
		status.IsOverBudget = row.Remaining.IsNegative()
		break
	}
	return status, nil
}

// BudgetAlerts returns the summary rows whose remaining amount is at or
// below threshold, in category order.
func (s *budgetService) BudgetAlerts(ctx context.Context, threshold decimal.Decimal) ([]ledger.SpendingSummary, error) {
	summary, err := s.store.SpendingSummary(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]ledger.SpendingSummary, 0, len(summary))
	for _, row := range summary {
		if row.Remaining.LessThanOrEqual(threshold) {
			alerts = append(alerts, row)
		}
	}
	return alerts, nil
}
