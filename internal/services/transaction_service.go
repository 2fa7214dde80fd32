package services

import (
	"context"
	"io"
	"strings"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"

	"github.com/shopspring/decimal"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	store ledger.Store
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store ledger.Store) TransactionServicer {
	return &transactionService{store: store}
}

// AddTransaction validates in, forces the amount's sign from the type and
// stores the row.
func (s *transactionService) AddTransaction(ctx context.Context, in NewTransaction) (*models.Transaction, error) {
	if !in.Type.IsValid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, apperrors.ErrEmptyCategory
	}

	tx := &models.Transaction{
		Date:        in.Date,
		Amount:      in.Type.Signed(in.Amount),
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
	}
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return nil, err
	}

	logger.Get().Infow("transaction added",
		"id", tx.ID,
		"type", tx.Type,
		"date", tx.Date,
		"category", tx.Category,
		"amount", tx.Amount.String(),
	)
	return tx, nil
}

// AddExpense records an expense; the stored amount is always negative.
func (s *transactionService) AddExpense(ctx context.Context, date string, amount decimal.Decimal, category, description string) (*models.Transaction, error) {
	return s.AddTransaction(ctx, NewTransaction{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
		Type:        models.TransactionTypeExpense,
	})
}

// AddIncome records income; the stored amount is always positive.
func (s *transactionService) AddIncome(ctx context.Context, date string, amount decimal.Decimal, category, description string) (*models.Transaction, error) {
	return s.AddTransaction(ctx, NewTransaction{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
		Type:        models.TransactionTypeIncome,
	})
}

func (s *transactionService) toLedgerFilter(f TransactionFilter) (ledger.Filter, error) {
	if f.FromDate != "" {
		if err := validateDate(f.FromDate); err != nil {
			return ledger.Filter{}, err
		}
	}
	if f.ToDate != "" {
		if err := validateDate(f.ToDate); err != nil {
			return ledger.Filter{}, err
		}
	}
	if f.Type != "" && !f.Type.IsValid() {
		return ledger.Filter{}, apperrors.ErrInvalidTransactionType
	}
	return ledger.Filter{
		From:     f.FromDate,
		To:       f.ToDate,
		Category: strings.TrimSpace(f.Category),
		Type:     f.Type,
	}, nil
}

// GetTransactions returns every matching transaction in date order.
func (s *transactionService) GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	lf, err := s.toLedgerFilter(filter)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.QueryTransactions(ctx, lf)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

// ListTransactions returns one page of matching transactions, newest first.
func (s *transactionService) ListTransactions(
	ctx context.Context,
	filter TransactionFilter,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	lf, err := s.toLedgerFilter(filter)
	if err != nil {
		return nil, err
	}
	txs, total, err := s.store.QueryTransactionsPage(ctx, lf, page)
	if err != nil {
		return nil, err
	}

	resp := pagination.NewPageResponse(txs, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTransactionByID returns a single transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// DeleteTransaction removes a transaction and reports whether it existed.
func (s *transactionService) DeleteTransaction(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.store.DeleteTransaction(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Get().Infow("transaction deleted", "id", id)
	}
	return deleted, nil
}

// ExportToFile writes every transaction to path.
func (s *transactionService) ExportToFile(ctx context.Context, path, format string) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "export path is required")
	}

	var err error
	switch format {
	case ledger.FormatCSV:
		err = s.store.ExportCSV(ctx, path)
	case ledger.FormatXLSX:
		err = s.store.ExportXLSX(ctx, path)
	default:
		return apperrors.ErrInvalidExportFormat
	}
	if err != nil {
		return err
	}

	logger.Get().Infow("transactions exported", "path", path, "format", format)
	return nil
}

// Export streams every transaction to w.
func (s *transactionService) Export(ctx context.Context, w io.Writer, format string) error {
	if format != ledger.FormatCSV && format != ledger.FormatXLSX {
		return apperrors.ErrInvalidExportFormat
	}
	txs, err := s.store.QueryTransactions(ctx, ledger.Filter{})
	if err != nil {
		return err
	}
	if err := ledger.WriteExport(w, format, txs); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Reset clears the ledger.
func (s *transactionService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	logger.Get().Info("ledger reset")
	return nil
}
