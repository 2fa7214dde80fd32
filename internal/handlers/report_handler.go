package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/services"
)

// ReportHandler serves the read-only reports.
type ReportHandler struct {
	reportService services.ReportServicer
	budgetService services.BudgetServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, budgetService services.BudgetServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, budgetService: budgetService}
}

// MonthQuery selects a calendar month.
type MonthQuery struct {
	Month string `form:"month" binding:"required,month"`
}

// YearQuery selects a calendar year.
type YearQuery struct {
	Year string `form:"year" binding:"required,year"`
}

// GetMonths lists the months that have transactions.
// @Summary     Months with activity
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  string "YYYY-MM labels, oldest first"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/months [get]
func (h *ReportHandler) GetMonths(c *gin.Context) {
	months, err := h.reportService.AvailableMonths(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}

// GetMonthlyReport totals income and expense for a month.
// @Summary     Monthly report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month (YYYY-MM)"
// @Success     200 {object} services.MonthlyReport "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetCategoryReport totals each category for a month.
// @Summary     Category report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month (YYYY-MM)"
// @Success     200 {array}  services.CategoryReportRow "Rows ordered by category"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryReport(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	rows, err := h.reportService.CategoryReport(c.Request.Context(), q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": q.Month, "categories": rows})
}

// GetBudgetReport compares every budget with a month's spending.
// @Summary     Budget report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month (YYYY-MM)"
// @Success     200 {array}  services.BudgetReportRow "One row per budget"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/budgets [get]
func (h *ReportHandler) GetBudgetReport(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	rows, err := h.reportService.BudgetReport(c.Request.Context(), q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": q.Month, "budgets": rows})
}

// GetMonthlyTrend totals each active month of a year.
// @Summary     Monthly trend
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query string true "Year (YYYY)"
// @Success     200 {array}  services.TrendRow "Months in chronological order"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/trend [get]
func (h *ReportHandler) GetMonthlyTrend(c *gin.Context) {
	var q YearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	rows, err := h.reportService.MonthlyTrend(c.Request.Context(), q.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": q.Year, "trend": rows})
}

// GetSpendingSummary returns all-time spending against every budget.
// @Summary     Spending summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  ledger.SpendingSummary "Rows ordered by category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/spending-summary [get]
func (h *ReportHandler) GetSpendingSummary(c *gin.Context) {
	summary, err := h.budgetService.SpendingSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetBudgetAlerts returns budgets whose remaining amount is at or below a threshold.
// @Summary     Budget alerts
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       threshold query number false "Alert threshold (default 0)"
// @Success     200 {array}  ledger.SpendingSummary "Alerting budgets"
// @Failure     400 {object} ErrorResponse "Invalid threshold"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/alerts [get]
func (h *ReportHandler) GetBudgetAlerts(c *gin.Context) {
	threshold, err := parseThreshold(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alerts, err := h.budgetService.BudgetAlerts(c.Request.Context(), threshold)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threshold": threshold, "alerts": alerts})
}
