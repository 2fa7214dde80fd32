package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/ledger"
	"expensetracker/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s %v", want, got.String(), msg)
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_month_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(ledger.NewGormStore(db))

		report, err := svc.MonthlyReport(ctx, "2023-05")
		require.NoError(t, err)
		assertDec(t, "0", report.Income)
		assertDec(t, "0", report.Expense)
		assertDec(t, "0", report.Net)
	})

	t.Run("income_and_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(ledger.NewGormStore(db))

		testutil.CreateTestIncome(t, db, "2023-01-01", "5000", "salary")
		testutil.CreateTestExpense(t, db, "2023-01-05", "100", "food")
		testutil.CreateTestExpense(t, db, "2023-01-10", "50", "food")

		report, err := svc.MonthlyReport(ctx, "2023-01")
		require.NoError(t, err)
		assert.Equal(t, "2023-01", report.Month)
		assertDec(t, "5000", report.Income)
		assertDec(t, "-150", report.Expense)
		assertDec(t, "4850", report.Net)
	})

	t.Run("month_boundaries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(ledger.NewGormStore(db))

		testutil.CreateTestExpense(t, db, "2022-12-31", "1", "food")
		testutil.CreateTestExpense(t, db, "2023-02-01", "2", "food")
		testutil.CreateTestExpense(t, db, "2023-02-28", "4", "food")
		testutil.CreateTestExpense(t, db, "2023-03-01", "8", "food")

		report, err := svc.MonthlyReport(ctx, "2023-02")
		require.NoError(t, err)
		assertDec(t, "-6", report.Expense)
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(ledger.NewGormStore(db))

		_, err := svc.MonthlyReport(ctx, "January")
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("store_error_propagates", func(t *testing.T) {
		svc := NewReportService(failingStore{})

		_, err := svc.MonthlyReport(ctx, "2023-01")
		assert.ErrorIs(t, err, errDiskFull)
	})
}

func TestCategoryReport(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(ledger.NewGormStore(db))

	testutil.CreateTestIncome(t, db, "2023-01-01", "5000", "salary")
	testutil.CreateTestExpense(t, db, "2023-01-05", "100", "food")
	testutil.CreateTestExpense(t, db, "2023-01-10", "50", "food")
	testutil.CreateTestIncome(t, db, "2023-01-15", "20", "food")
	testutil.CreateTestExpense(t, db, "2023-02-01", "75", "transport")

	rows, err := svc.CategoryReport(ctx, "2023-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	food, salary := rows[0], rows[1]
	assert.Equal(t, "food", food.Category)
	assertDec(t, "20", food.Income)
	assertDec(t, "-150", food.Expense)
	assertDec(t, "-130", food.Net)

	assert.Equal(t, "salary", salary.Category)
	assertDec(t, "5000", salary.Income)
	assertDec(t, "0", salary.Expense)

	for _, r := range rows {
		assert.True(t, r.Net.Equal(r.Income.Add(r.Expense)), "net must equal income + expense for %s", r.Category)
	}

	empty, err := svc.CategoryReport(ctx, "2024-01")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBudgetReport(t *testing.T) {
	ctx := context.Background()

	t.Run("one_row_per_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(ledger.NewGormStore(db))

		testutil.CreateTestBudget(t, db, "food", "500")
		testutil.CreateTestBudget(t, db, "transport", "100")
		testutil.CreateTestExpense(t, db, "2023-01-05", "100", "food")
		testutil.CreateTestExpense(t, db, "2023-01-10", "50", "food")
		testutil.CreateTestExpense(t, db, "2023-02-10", "70", "food")
		testutil.CreateTestExpense(t, db, "2023-01-12", "30", "leisure")

		rows, err := svc.BudgetReport(ctx, "2023-01")
		require.NoError(t, err)
		require.Len(t, rows, 2)

		food := rows[0]
		assert.Equal(t, "food", food.Category)
		assertDec(t, "500", food.Limit)
		assertDec(t, "-150", food.Spent)
		assertDec(t, "350", food.Remaining)

		transport := rows[1]
		assert.Equal(t, "transport", transport.Category)
		assertDec(t, "0", transport.Spent)
		assertDec(t, "100", transport.Remaining)
	})

	t.Run("no_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(ledger.NewGormStore(db))

		testutil.CreateTestExpense(t, db, "2023-01-05", "100", "food")

		rows, err := svc.BudgetReport(ctx, "2023-01")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestMonthlyTrend(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(ledger.NewGormStore(db))

	testutil.CreateTestIncome(t, db, "2023-03-01", "1000", "salary")
	testutil.CreateTestIncome(t, db, "2023-01-01", "5000", "salary")
	testutil.CreateTestExpense(t, db, "2023-01-05", "150", "food")
	testutil.CreateTestExpense(t, db, "2022-12-31", "1", "food")
	testutil.CreateTestExpense(t, db, "2024-01-01", "1", "food")

	rows, err := svc.MonthlyTrend(ctx, "2023")
	require.NoError(t, err)
	require.Len(t, rows, 2, "months without transactions are not zero-filled")

	assert.Equal(t, "2023-01", rows[0].Month)
	assertDec(t, "5000", rows[0].Income)
	assertDec(t, "-150", rows[0].Expense)
	assertDec(t, "4850", rows[0].Net)

	assert.Equal(t, "2023-03", rows[1].Month)
	assertDec(t, "1000", rows[1].Net)

	_, err = svc.MonthlyTrend(ctx, "23")
	testutil.AssertAppError(t, err, "INVALID_YEAR")
}

func TestAvailableMonths(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(ledger.NewGormStore(db))

	testutil.CreateTestExpense(t, db, "2023-03-05", "1", "food")
	testutil.CreateTestExpense(t, db, "2023-01-05", "1", "food")
	testutil.CreateTestExpense(t, db, "2023-01-09", "1", "food")

	months, err := svc.AvailableMonths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01", "2023-03"}, months)
}
