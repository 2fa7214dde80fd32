package services

import (
	"context"

	"expensetracker/internal/ledger"
)

// categoryService exposes the categories known to the ledger. Categories
// are free text; they exist as long as a transaction or budget uses them.
type categoryService struct {
	store ledger.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(store ledger.Store) CategoryServicer {
	return &categoryService{store: store}
}

// ListCategories returns the sorted union of transaction and budget categories.
func (s *categoryService) ListCategories(ctx context.Context) ([]string, error) {
	return s.store.ListCategories(ctx)
}
