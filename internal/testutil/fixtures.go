package testutil

import (
	"testing"

	"expensetracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateTestTransaction inserts a transaction directly. amount is signed
// from txType, so callers may pass the magnitude.
func CreateTestTransaction(t *testing.T, db *gorm.DB, date, amount, category string, txType models.TransactionType) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:     date,
		Amount:   txType.Signed(MustDecimal(t, amount)),
		Category: category,
		Type:     txType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestExpense inserts an expense of the given magnitude.
func CreateTestExpense(t *testing.T, db *gorm.DB, date, amount, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, date, amount, category, models.TransactionTypeExpense)
}

// CreateTestIncome inserts an income entry of the given magnitude.
func CreateTestIncome(t *testing.T, db *gorm.DB, date, amount, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, date, amount, category, models.TransactionTypeIncome)
}

// CreateTestBudget inserts a budget for category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category, limit string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category:     category,
		MonthlyLimit: MustDecimal(t, limit),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// MustDecimal parses s or fails the test.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}
