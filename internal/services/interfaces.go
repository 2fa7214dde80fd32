package services

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

// NewTransaction carries the caller's input for a new ledger entry. Amount
// is re-signed from Type, so either sign is accepted.
type NewTransaction struct {
	Date        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Type        models.TransactionType
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate string
	ToDate   string
	Category string
	Type     models.TransactionType
}

// TransactionServicer defines the contract for recording and reading transactions.
type TransactionServicer interface {
	AddTransaction(ctx context.Context, in NewTransaction) (*models.Transaction, error)
	AddExpense(ctx context.Context, date string, amount decimal.Decimal, category, description string) (*models.Transaction, error)
	AddIncome(ctx context.Context, date string, amount decimal.Decimal, category, description string) (*models.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) (bool, error)
	ExportToFile(ctx context.Context, path, format string) error
	Export(ctx context.Context, w io.Writer, format string) error
	// Reset removes every transaction and budget.
	Reset(ctx context.Context) error
}

// BudgetStatus is the over/under state of one category against its budget.
type BudgetStatus struct {
	Category     string          `json:"category" yaml:"category"`
	HasBudget    bool            `json:"has_budget" yaml:"has_budget"`
	IsOverBudget bool            `json:"is_over_budget" yaml:"is_over_budget"`
	Remaining    decimal.Decimal `json:"remaining" yaml:"remaining"`
}

// BudgetServicer defines the contract for budget maintenance and evaluation.
type BudgetServicer interface {
	SetBudget(ctx context.Context, category string, limit decimal.Decimal) (*models.Budget, error)
	GetBudget(ctx context.Context, category string) (decimal.Decimal, error)
	ListBudgets(ctx context.Context) ([]models.Budget, error)
	RemoveBudget(ctx context.Context, category string) (bool, error)
	SpendingSummary(ctx context.Context) ([]ledger.SpendingSummary, error)
	CheckBudget(ctx context.Context, category string) (*BudgetStatus, error)
	BudgetAlerts(ctx context.Context, threshold decimal.Decimal) ([]ledger.SpendingSummary, error)
}

// MonthlyReport totals one calendar month.
type MonthlyReport struct {
	Month   string          `json:"month" yaml:"month"`
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
	Net     decimal.Decimal `json:"net" yaml:"net"`
}

// CategoryReportRow totals one category within a month.
type CategoryReportRow struct {
	Category string          `json:"category" yaml:"category"`
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Expense  decimal.Decimal `json:"expense" yaml:"expense"`
	Net      decimal.Decimal `json:"net" yaml:"net"`
}

// BudgetReportRow compares one budget with a month's spending.
type BudgetReportRow struct {
	Category  string          `json:"category" yaml:"category"`
	Limit     decimal.Decimal `json:"limit" yaml:"limit"`
	Spent     decimal.Decimal `json:"spent" yaml:"spent"`
	Remaining decimal.Decimal `json:"remaining" yaml:"remaining"`
}

// TrendRow totals one month of a yearly trend.
type TrendRow struct {
	Month   string          `json:"month" yaml:"month"`
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
	Net     decimal.Decimal `json:"net" yaml:"net"`
}

// ReportServicer defines the contract for the derived, read-only reports.
type ReportServicer interface {
	MonthlyReport(ctx context.Context, month string) (*MonthlyReport, error)
	CategoryReport(ctx context.Context, month string) ([]CategoryReportRow, error)
	BudgetReport(ctx context.Context, month string) ([]BudgetReportRow, error)
	MonthlyTrend(ctx context.Context, year string) ([]TrendRow, error)
	AvailableMonths(ctx context.Context) ([]string, error)
}

// CategoryServicer lists the free-text categories in use.
type CategoryServicer interface {
	ListCategories(ctx context.Context) ([]string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceKey, ipAddress string, changes map[string]interface{})
}
