package server

import (
	"net/http"
	"strings"

	"finance-tracker/internal/handlers"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

type routeHandlers struct {
	health      *handlers.HealthCheckHandler
	auth        *handlers.AuthHandler
	transaction *handlers.TransactionHandler
	budget      *handlers.BudgetHandler
	report      *handlers.ReportHandler
	upload      *handlers.UploadHandler
}

func registerRoutes(e *echo.Echo, h *routeHandlers, requireAuth, rateLimit echo.MiddlewareFunc, metrics http.Handler, uploadDir string) {
	e.GET("/health", h.health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics))
	e.Static(strings.TrimSuffix(services.ReceiptURLPrefix, "/"), uploadDir)

	api := e.Group("/api", rateLimit)

	auth := api.Group("/auth")
	auth.POST("/register", h.auth.Register)
	auth.POST("/login", h.auth.Login)
	auth.GET("/me", h.auth.Me, requireAuth)
	auth.POST("/logout", h.auth.Logout, requireAuth)
	auth.GET("/activity", h.auth.Activity, requireAuth)

	transactions := api.Group("/transactions", requireAuth)
	transactions.POST("", h.transaction.CreateTransaction)
	transactions.GET("", h.transaction.ListTransactions)
	transactions.GET("/:id", h.transaction.GetTransaction)
	transactions.PUT("/:id", h.transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.transaction.DeleteTransaction)

	budgets := api.Group("/budgets", requireAuth)
	budgets.POST("", h.budget.UpsertBudget)
	budgets.GET("", h.budget.ListBudgets)
	budgets.DELETE("/:id", h.budget.DeleteBudget)

	reports := api.Group("/reports", requireAuth)
	reports.GET("/summary", h.report.GetSummary)
	reports.GET("/monthly", h.report.GetMonthly)
	reports.GET("/monthly/export", h.report.ExportMonthly)

	api.POST("/upload", h.upload.UploadReceipt, requireAuth)
}
