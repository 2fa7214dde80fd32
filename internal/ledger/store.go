// Package ledger persists transactions and budgets and answers the range
// and filter queries the reporting layer is built on.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

// Filter narrows a transaction query. Zero values mean "no constraint".
// Dates are YYYY-MM-DD strings compared lexicographically.
type Filter struct {
	From     string // inclusive lower bound
	To       string // inclusive upper bound
	Before   string // exclusive upper bound
	Category string
	Type     models.TransactionType
}

// SpendingSummary is the all-time expense total of one budgeted category.
type SpendingSummary struct {
	Category     string          `json:"category" yaml:"category"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" yaml:"monthly_limit"`
	Expense      decimal.Decimal `json:"expense" yaml:"expense"`
	Remaining    decimal.Decimal `json:"remaining" yaml:"remaining"`
}

// Store is the persistence contract the services depend on. Every method
// runs independently; there is no cross-call transaction.
type Store interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id uint) (*models.Transaction, error)
	// QueryTransactions returns matching rows ordered by date then id.
	QueryTransactions(ctx context.Context, filter Filter) ([]models.Transaction, error)
	QueryTransactionsPage(ctx context.Context, filter Filter, page pagination.PageRequest) ([]models.Transaction, int64, error)
	DeleteTransaction(ctx context.Context, id uint) (bool, error)

	UpsertBudget(ctx context.Context, category string, limit decimal.Decimal) (*models.Budget, error)
	GetBudget(ctx context.Context, category string) (*models.Budget, error)
	// QueryBudgets returns every budget ordered by category.
	QueryBudgets(ctx context.Context) ([]models.Budget, error)
	DeleteBudget(ctx context.Context, category string) (bool, error)

	// SpendingSummary joins every budget with its all-time expense sum,
	// ordered by category. Budgets without expenses report zero.
	SpendingSummary(ctx context.Context) ([]SpendingSummary, error)

	ListCategories(ctx context.Context) ([]string, error)
	ListMonths(ctx context.Context) ([]string, error)

	ExportCSV(ctx context.Context, path string) error
	ExportXLSX(ctx context.Context, path string) error

	Reset(ctx context.Context) error
}
