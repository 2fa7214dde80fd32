package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
// Amount is the magnitude; the sign is derived from Type.
type CreateTransactionRequest struct {
	Date        string                 `json:"date" binding:"required,iso_date,not_future" example:"2023-01-05"`
	Amount      decimal.Decimal        `json:"amount" swaggertype:"string" example:"150.00"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type" example:"expense"`
	Category    string                 `json:"category" binding:"required,max=100" example:"food"`
	Description string                 `json:"description" binding:"max=255"`
}

// TransactionQuery holds the optional list filters.
type TransactionQuery struct {
	FromDate string `form:"from_date" binding:"omitempty,iso_date"`
	ToDate   string `form:"to_date" binding:"omitempty,iso_date"`
	Category string `form:"category"`
	Type     string `form:"type" binding:"omitempty,transaction_type"`
}

// CreateTransaction handles recording a new income or expense.
// @Summary     Record a transaction
// @Description Record an income or expense. The stored amount is negative for expenses and positive for income.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero"))
		return
	}

	tx, err := h.transactionService.AddTransaction(c.Request.Context(), services.NewTransaction{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", strconv.FormatUint(uint64(tx.ID), 10), c.ClientIP(),
		map[string]interface{}{"type": tx.Type, "amount": tx.Amount.String(), "category": tx.Category})

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// GetTransactions handles listing transactions.
// @Summary     List transactions
// @Description Get a paginated list of transactions, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category  query string false "Category"
// @Param       type      query string false "income or expense"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), services.TransactionFilter{
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Category: query.Category,
		Type:     models.TransactionType(query.Type),
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles retrieving a single transaction.
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction handles deleting a transaction. Deleting an unknown id
// is not an error; the response reports deleted=false.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} DeletedResponse "Whether a transaction was removed"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.transactionService.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if deleted {
		h.auditService.Log("DELETE_TRANSACTION", "transaction", strconv.FormatUint(uint64(id), 10), c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// ExportTransactions streams every transaction as a CSV or XLSX download.
// @Summary     Export transactions
// @Description Download all transactions (id, date, amount, category, type)
// @Tags        export
// @Produce     text/csv
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       format query string false "csv (default) or xlsx"
// @Success     200 {file} file "Export file"
// @Failure     400 {object} ErrorResponse "Unknown format"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/transactions [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	format := c.DefaultQuery("format", ledger.FormatCSV)

	var buf bytes.Buffer
	if err := h.transactionService.Export(c.Request.Context(), &buf, format); err != nil {
		respondWithError(c, err)
		return
	}

	contentType := "text/csv"
	if format == ledger.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	filename := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
