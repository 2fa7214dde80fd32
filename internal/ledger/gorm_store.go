package ledger

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

// gormStore implements Store on top of a gorm connection. It works with
// both the sqlite and postgres dialectors.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func storageErr(err error) error {
	return apperrors.Wrap(apperrors.ErrStorage, err)
}

func (s *gormStore) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *gormStore) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, storageErr(err)
	}
	return &tx, nil
}

// applyFilter adds the WHERE clauses for f to q.
func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}
	if f.Before != "" {
		q = q.Where("date < ?", f.Before)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return q
}

func (s *gormStore) QueryTransactions(ctx context.Context, filter Filter) ([]models.Transaction, error) {
	var txs []models.Transaction
	q := applyFilter(s.db.WithContext(ctx).Model(&models.Transaction{}), filter)
	if err := q.Order("date ASC").Order("id ASC").Find(&txs).Error; err != nil {
		return nil, storageErr(err)
	}
	return txs, nil
}

func (s *gormStore) QueryTransactionsPage(
	ctx context.Context,
	filter Filter,
	page pagination.PageRequest,
) ([]models.Transaction, int64, error) {
	page.Defaults()
	base := applyFilter(s.db.WithContext(ctx).Model(&models.Transaction{}), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, storageErr(err)
	}

	var txs []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("id DESC").
		Find(&txs).Error; err != nil {
		return nil, 0, storageErr(err)
	}
	return txs, total, nil
}

func (s *gormStore) DeleteTransaction(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return false, storageErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore) UpsertBudget(ctx context.Context, category string, limit decimal.Decimal) (*models.Budget, error) {
	budget := &models.Budget{Category: category, MonthlyLimit: limit}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_limit", "updated_at"}),
	}).Create(budget).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return budget, nil
}

func (s *gormStore) GetBudget(ctx context.Context, category string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("category = ?", category).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, storageErr(err)
	}
	return &budget, nil
}

func (s *gormStore) QueryBudgets(ctx context.Context) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.WithContext(ctx).Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, storageErr(err)
	}
	return budgets, nil
}

func (s *gormStore) DeleteBudget(ctx context.Context, category string) (bool, error) {
	res := s.db.WithContext(ctx).Where("category = ?", category).Delete(&models.Budget{})
	if res.Error != nil {
		return false, storageErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// spendingRow is the scan target of the summary query.
type spendingRow struct {
	Category     string
	MonthlyLimit decimal.Decimal
	Expense      decimal.Decimal
}

const spendingSummaryQuery = `
SELECT b.category AS category,
       b.monthly_limit AS monthly_limit,
       COALESCE(s.expense, 0) AS expense
FROM budgets b
LEFT JOIN (
    SELECT category, SUM(amount) AS expense
    FROM transactions
    WHERE type = ?
    GROUP BY category
) s ON s.category = b.category
ORDER BY b.category ASC`

func (s *gormStore) SpendingSummary(ctx context.Context) ([]SpendingSummary, error) {
	var rows []spendingRow
	if err := s.db.WithContext(ctx).Raw(spendingSummaryQuery, models.TransactionTypeExpense).Scan(&rows).Error; err != nil {
		return nil, storageErr(err)
	}

	summary := make([]SpendingSummary, 0, len(rows))
	for _, r := range rows {
		summary = append(summary, SpendingSummary{
			Category:     r.Category,
			MonthlyLimit: r.MonthlyLimit,
			Expense:      r.Expense.Round(2),
			Remaining:    r.MonthlyLimit.Add(r.Expense.Round(2)),
		})
	}
	return summary, nil
}

func (s *gormStore) ListCategories(ctx context.Context) ([]string, error) {
	db := s.db.WithContext(ctx)

	var fromTx, fromBudgets []string
	if err := db.Model(&models.Transaction{}).Distinct().Pluck("category", &fromTx).Error; err != nil {
		return nil, storageErr(err)
	}
	if err := db.Model(&models.Budget{}).Pluck("category", &fromBudgets).Error; err != nil {
		return nil, storageErr(err)
	}

	seen := make(map[string]struct{}, len(fromTx)+len(fromBudgets))
	categories := make([]string, 0, len(fromTx)+len(fromBudgets))
	for _, c := range append(fromTx, fromBudgets...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *gormStore) ListMonths(ctx context.Context) ([]string, error) {
	months := []string{}
	err := s.db.WithContext(ctx).
		Raw("SELECT DISTINCT SUBSTR(date, 1, 7) AS month FROM transactions ORDER BY month ASC").
		Scan(&months).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return months, nil
}

func (s *gormStore) Reset(ctx context.Context) error {
	db := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := db.Delete(&models.Transaction{}).Error; err != nil {
		return storageErr(err)
	}
	if err := db.Delete(&models.Budget{}).Error; err != nil {
		return storageErr(err)
	}
	return nil
}
