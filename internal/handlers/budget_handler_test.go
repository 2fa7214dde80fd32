package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	setBudgetFn       func(category string, limit decimal.Decimal) (*models.Budget, error)
	getBudgetFn       func(category string) (decimal.Decimal, error)
	listBudgetsFn     func() ([]models.Budget, error)
	removeBudgetFn    func(category string) (bool, error)
	spendingSummaryFn func() ([]ledger.SpendingSummary, error)
	checkBudgetFn     func(category string) (*services.BudgetStatus, error)
	budgetAlertsFn    func(threshold decimal.Decimal) ([]ledger.SpendingSummary, error)
}

func (m *mockBudgetService) SetBudget(_ context.Context, category string, limit decimal.Decimal) (*models.Budget, error) {
	if m.setBudgetFn != nil {
		return m.setBudgetFn(category, limit)
	}
	return &models.Budget{Category: category, MonthlyLimit: limit}, nil
}

func (m *mockBudgetService) GetBudget(_ context.Context, category string) (decimal.Decimal, error) {
	if m.getBudgetFn != nil {
		return m.getBudgetFn(category)
	}
	return decimal.Zero, nil
}

func (m *mockBudgetService) ListBudgets(_ context.Context) ([]models.Budget, error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn()
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) RemoveBudget(_ context.Context, category string) (bool, error) {
	if m.removeBudgetFn != nil {
		return m.removeBudgetFn(category)
	}
	return true, nil
}

func (m *mockBudgetService) SpendingSummary(_ context.Context) ([]ledger.SpendingSummary, error) {
	if m.spendingSummaryFn != nil {
		return m.spendingSummaryFn()
	}
	return []ledger.SpendingSummary{}, nil
}

func (m *mockBudgetService) CheckBudget(_ context.Context, category string) (*services.BudgetStatus, error) {
	if m.checkBudgetFn != nil {
		return m.checkBudgetFn(category)
	}
	return &services.BudgetStatus{Category: category}, nil
}

func (m *mockBudgetService) BudgetAlerts(_ context.Context, threshold decimal.Decimal) ([]ledger.SpendingSummary, error) {
	if m.budgetAlertsFn != nil {
		return m.budgetAlertsFn(threshold)
	}
	return []ledger.SpendingSummary{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	r.GET("/budgets", handler.GetBudgets)
	r.PUT("/budgets/:category", handler.SetBudget)
	r.GET("/budgets/:category", handler.GetBudget)
	r.DELETE("/budgets/:category", handler.DeleteBudget)
	r.GET("/budgets/:category/status", handler.CheckBudget)
	return r
}

func TestBudgetHandler_SetBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, audit))

		rec := doRequest(r, "PUT", "/budgets/food", `{"monthly_limit":"500.50"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["category"] != "food" {
			t.Errorf("expected food, got %v", budget["category"])
		}
		if budget["monthly_limit"] != "500.5" {
			t.Errorf("expected 500.5, got %v", budget["monthly_limit"])
		}
		if len(audit.actions) != 1 || audit.actions[0] != "SET_BUDGET" {
			t.Errorf("expected SET_BUDGET audit entry, got %v", audit.actions)
		}
	})

	t.Run("returns 400 on non-positive limit", func(t *testing.T) {
		svc := &mockBudgetService{
			setBudgetFn: func(string, decimal.Decimal) (*models.Budget, error) {
				return nil, apperrors.ErrInvalidBudgetLimit
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/food", `{"monthly_limit":"-5"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_BUDGET_LIMIT")
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/food", `{"monthly_limit":"lots"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns zero when undefined", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets/travel", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["category"] != "travel" || result["monthly_limit"] != "0" {
			t.Errorf("unexpected body %v", result)
		}
	})

	t.Run("returns the stored limit", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetFn: func(string) (decimal.Decimal, error) { return decimal.NewFromInt(300), nil },
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets/food", "")

		if parseJSON(t, rec)["monthly_limit"] != "300" {
			t.Errorf("expected 300, got %s", rec.Body.String())
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	svc := &mockBudgetService{
		listBudgetsFn: func() ([]models.Budget, error) {
			return []models.Budget{
				{Category: "food", MonthlyLimit: decimal.NewFromInt(500)},
				{Category: "rent", MonthlyLimit: decimal.NewFromInt(1200)},
			}, nil
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/budgets", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	budgets := parseJSON(t, rec)["budgets"].([]interface{})
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("reports deleted", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, audit))

		rec := doRequest(r, "DELETE", "/budgets/food", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["deleted"] != true {
			t.Error("expected deleted=true")
		}
		if len(audit.actions) != 1 {
			t.Errorf("expected one audit entry, got %v", audit.actions)
		}
	})

	t.Run("absent budget reports false", func(t *testing.T) {
		svc := &mockBudgetService{
			removeBudgetFn: func(string) (bool, error) { return false, nil },
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/budgets/none", "")

		if parseJSON(t, rec)["deleted"] != false {
			t.Error("expected deleted=false")
		}
	})
}

func TestBudgetHandler_CheckBudget(t *testing.T) {
	svc := &mockBudgetService{
		checkBudgetFn: func(category string) (*services.BudgetStatus, error) {
			return &services.BudgetStatus{
				Category:     category,
				HasBudget:    true,
				IsOverBudget: true,
				Remaining:    decimal.NewFromInt(-50),
			}, nil
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/budgets/food/status", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	status := parseJSON(t, rec)["status"].(map[string]interface{})
	if status["is_over_budget"] != true {
		t.Errorf("expected over budget, got %v", status)
	}
	if status["remaining"] != "-50" {
		t.Errorf("expected remaining -50, got %v", status["remaining"])
	}
}
