package services

import (
	"gorm.io/gorm"

	"expensetracker/internal/ledger"
)

// Services bundles the service layer shared by the API and the CLI.
type Services struct {
	Transactions TransactionServicer
	Budgets      BudgetServicer
	Reports      ReportServicer
	Categories   CategoryServicer
	Audit        AuditServicer
}

// New wires every service to a ledger store over db.
func New(db *gorm.DB) *Services {
	store := ledger.NewGormStore(db)
	return &Services{
		Transactions: NewTransactionService(store),
		Budgets:      NewBudgetService(store),
		Reports:      NewReportService(store),
		Categories:   NewCategoryService(store),
		Audit:        NewAuditService(db),
	}
}
