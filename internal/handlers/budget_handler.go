package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting a category budget.
type SetBudgetRequest struct {
	MonthlyLimit decimal.Decimal `json:"monthly_limit" swaggertype:"string" example:"500.00"`
}

// BudgetLimitResponse is the limit of one category; zero when none is set.
type BudgetLimitResponse struct {
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" swaggertype:"string"`
}

// SetBudget handles creating or replacing a category budget.
// @Summary     Set a budget
// @Description Create or replace the monthly limit for a category
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path string           true "Category"
// @Param       request  body SetBudgetRequest true "Monthly limit"
// @Success     200 {object} models.Budget "Budget saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category} [put]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	category, err := pathCategory(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.SetBudget(c.Request.Context(), category, req.MonthlyLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SET_BUDGET", "budget", budget.Category, c.ClientIP(),
		map[string]interface{}{"monthly_limit": budget.MonthlyLimit.String()})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets handles listing every budget.
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Budget "Budgets ordered by category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.budgetService.ListBudgets(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudget handles reading one category's limit.
// @Summary     Get a category budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Category"
// @Success     200 {object} BudgetLimitResponse "Monthly limit, zero when undefined"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	category, err := pathCategory(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit, err := h.budgetService.GetBudget(c.Request.Context(), category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetLimitResponse{Category: category, MonthlyLimit: limit})
}

// DeleteBudget handles removing a category budget.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Category"
// @Success     200 {object} DeletedResponse "Whether a budget was removed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	category, err := pathCategory(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.budgetService.RemoveBudget(c.Request.Context(), category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if deleted {
		h.auditService.Log("DELETE_BUDGET", "budget", category, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// CheckBudget handles the over/under check for a category.
// @Summary     Check a category budget
// @Description Report whether all-time spending in the category exceeds its limit
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Category"
// @Success     200 {object} services.BudgetStatus "Budget status"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category}/status [get]
func (h *BudgetHandler) CheckBudget(c *gin.Context) {
	category, err := pathCategory(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.budgetService.CheckBudget(c.Request.Context(), category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// parseThreshold reads the optional threshold query parameter; it defaults to zero.
func parseThreshold(c *gin.Context) (decimal.Decimal, error) {
	raw := c.Query("threshold")
	if raw == "" {
		return decimal.Zero, nil
	}
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "threshold must be a number")
	}
	return threshold, nil
}
