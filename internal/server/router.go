// Package server assembles the HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"expensetracker/internal/config"
	_ "expensetracker/internal/docs" // Import swagger docs
	"expensetracker/internal/handlers"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc *services.Services, cfg *config.Config) *gin.Engine {
	validator.Register()

	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	reportHandler := handlers.NewReportHandler(svc.Reports, svc.Budgets)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	if cfg.AuthEnabled() {
		v1.Use(middleware.AuthMiddleware(cfg.AuthSecret))
	}

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Category routes
	v1.GET("/categories", categoryHandler.GetCategories)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("/:category", budgetHandler.SetBudget)
	budgets.GET("/:category", budgetHandler.GetBudget)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)
	budgets.GET("/:category/status", budgetHandler.CheckBudget)

	// Report routes
	reports := v1.Group("/reports")
	reports.GET("/months", reportHandler.GetMonths)
	reports.GET("/monthly", reportHandler.GetMonthlyReport)
	reports.GET("/categories", reportHandler.GetCategoryReport)
	reports.GET("/budgets", reportHandler.GetBudgetReport)
	reports.GET("/trend", reportHandler.GetMonthlyTrend)
	reports.GET("/spending-summary", reportHandler.GetSpendingSummary)
	reports.GET("/alerts", reportHandler.GetBudgetAlerts)

	// Export routes
	v1.GET("/export/transactions", transactionHandler.ExportTransactions)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
