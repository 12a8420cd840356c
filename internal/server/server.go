package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

// multipartOverhead is the body allowance on top of the upload size for
// multipart boundaries and headers.
const multipartOverhead = 64 << 10

const maintenanceTimeout = 5 * time.Minute

// Server owns the HTTP router and the maintenance scheduler
type Server struct {
	echo        *echo.Echo
	scheduler   *cron.Cron
	maintenance services.MaintenanceServiceInterface
	cfg         *config.Config
	logger      *slog.Logger
}

// New wires repositories, services and handlers over db and registers every
// route. ctx bounds background work started by middleware.
func New(ctx context.Context, cfg *config.Config, db *database.DB, registry *prometheus.Registry, logger *slog.Logger) (*Server, error) {
	userRepo := repositories.NewUserRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	auditLogRepo := repositories.NewAuditLogRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	budgetRepo := repositories.NewBudgetRepository(db.DB)

	metrics := services.NewPrometheusMetrics(registry)
	auditLogger := services.NewAuditLogger(logger)
	auditService := services.NewAuditService(auditLogRepo)
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(&cfg.Security)

	authService := services.NewAuthService(userRepo, blacklistedTokenRepo, auditService, passwordService,
		tokenService, metrics, &cfg.Security, logger)
	transactionService := services.NewTransactionService(transactionRepo, auditService, auditLogger, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, auditService, auditLogger, metrics, logger)
	reportService := services.NewReportService(transactionRepo, services.NewExportService(), auditLogger, metrics, logger)
	uploadService := services.NewUploadService(&cfg.Upload, auditService, auditLogger, metrics, logger)
	maintenanceService := services.NewMaintenanceService(blacklistedTokenRepo, auditLogRepo,
		cfg.Maintenance.AuditLogRetention, auditLogger, metrics)

	ipExtractor, err := middleware.NewIPExtractor(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.IPExtractor = ipExtractor
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(registry)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(logger, registry))
	e.Use(requestLogger(logger))
	e.Use(middleware.SecurityHeaders(services.ReceiptURLPrefix))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dB", cfg.Upload.MaxBytes+multipartOverhead)))

	routes := &routeHandlers{
		health:      handlers.NewHealthCheckHandler(db),
		auth:        handlers.NewAuthHandler(authService, tokenService, auditService),
		transaction: handlers.NewTransactionHandler(transactionService),
		budget:      handlers.NewBudgetHandler(budgetService),
		report:      handlers.NewReportHandler(reportService),
		upload:      handlers.NewUploadHandler(uploadService),
	}
	registerRoutes(e, routes,
		middleware.RequireAuth(tokenService, blacklistedTokenRepo),
		middleware.RateLimiter(ctx, cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		cfg.Upload.Dir,
	)

	scheduler := cron.New()
	s := &Server{
		echo:        e,
		scheduler:   scheduler,
		maintenance: maintenanceService,
		cfg:         cfg,
		logger:      logger,
	}

	if _, err := scheduler.AddFunc(cfg.Maintenance.TokenCleanupSchedule, s.runMaintenance); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", cfg.Maintenance.TokenCleanupSchedule, err)
	}

	return s, nil
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the scheduler and serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.scheduler.Start()

	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("HTTP server listening", "addr", addr, "environment", s.cfg.Server.Environment)

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight work, including
// a running maintenance job, until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	cronDone := s.scheduler.Stop().Done()

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	select {
	case <-cronDone:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("maintenance job still running: %w", ctx.Err())
	}
}

func (s *Server) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	if err := s.maintenance.RunCleanup(ctx); err != nil {
		s.logger.Error("maintenance run failed", "error", err)
	}
}
