package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
)

// reportService derives summaries from stored transactions. Nothing is
// cached; every call reads the ledger again.
type reportService struct {
	store ledger.Store
}

// NewReportService creates a new ReportServicer.
func NewReportService(store ledger.Store) ReportServicer {
	return &reportService{store: store}
}

// totals accumulates income and expense for one group.
type totals struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

func (t *totals) add(tx models.Transaction) {
	switch tx.Type {
	case models.TransactionTypeIncome:
		t.income = t.income.Add(tx.Amount)
	case models.TransactionTypeExpense:
		t.expense = t.expense.Add(tx.Amount)
	}
}

func (t *totals) net() decimal.Decimal {
	return t.income.Add(t.expense)
}

func (s *reportService) monthTransactions(ctx context.Context, month string) ([]models.Transaction, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}
	return s.store.QueryTransactions(ctx, ledger.Filter{From: start, Before: end})
}

// MonthlyReport totals income and expense for month (YYYY-MM).
func (s *reportService) MonthlyReport(ctx context.Context, month string) (*MonthlyReport, error) {
	txs, err := s.monthTransactions(ctx, month)
	if err != nil {
		return nil, err
	}

	t := totals{income: decimal.Zero, expense: decimal.Zero}
	for _, tx := range txs {
		t.add(tx)
	}
	return &MonthlyReport{
		Month:   month,
		Income:  t.income,
		Expense: t.expense,
		Net:     t.net(),
	}, nil
}

// CategoryReport totals each category that had any activity in month.
func (s *reportService) CategoryReport(ctx context.Context, month string) ([]CategoryReportRow, error) {
	txs, err := s.monthTransactions(ctx, month)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*totals)
	for _, tx := range txs {
		t, ok := byCategory[tx.Category]
		if !ok {
			t = &totals{income: decimal.Zero, expense: decimal.Zero}
			byCategory[tx.Category] = t
		}
		t.add(tx)
	}

	rows := make([]CategoryReportRow, 0, len(byCategory))
	for category, t := range byCategory {
		rows = append(rows, CategoryReportRow{
			Category: category,
			Income:   t.income,
			Expense:  t.expense,
			Net:      t.net(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

// BudgetReport compares every budget with the month's expenses in its
// category.
func (s *reportService) BudgetReport(ctx context.Context, month string) ([]BudgetReportRow, error) {
	txs, err := s.monthTransactions(ctx, month)
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.QueryBudgets(ctx)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
	}

	rows := make([]BudgetReportRow, 0, len(budgets))
	for _, b := range budgets {
		sp := spent[b.Category]
		rows = append(rows, BudgetReportRow{
			Category:  b.Category,
			Limit:     b.MonthlyLimit,
			Spent:     sp,
			Remaining: b.MonthlyLimit.Add(sp),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

// MonthlyTrend totals each month of year that has transactions. Months
// without activity are omitted.
func (s *reportService) MonthlyTrend(ctx context.Context, year string) ([]TrendRow, error) {
	start, end, err := yearRange(year)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.QueryTransactions(ctx, ledger.Filter{From: start, Before: end})
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*totals)
	for _, tx := range txs {
		month := tx.Date[:7]
		t, ok := byMonth[month]
		if !ok {
			t = &totals{income: decimal.Zero, expense: decimal.Zero}
			byMonth[month] = t
		}
		t.add(tx)
	}

	rows := make([]TrendRow, 0, len(byMonth))
	for month, t := range byMonth {
		rows = append(rows, TrendRow{
			Month:   month,
			Income:  t.income,
			Expense: t.expense,
			Net:     t.net(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

// AvailableMonths lists the YYYY-MM labels that have at least one
// transaction, oldest first.
func (s *reportService) AvailableMonths(ctx context.Context) ([]string, error) {
	return s.store.ListMonths(ctx)
}
