package services

import (
	"context"
	"io"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// ReportServiceInterface computes derived reports over one owner's transactions
type ReportServiceInterface interface {
	GetSummary(ctx context.Context, ownerID uuid.UUID, month, year *int) (*models.SummaryReport, error)
	GetMonthlyRollup(ctx context.Context, ownerID uuid.UUID) ([]models.MonthlyReportEntry, error)
	ExportMonthlyRollup(ctx context.Context, ownerID uuid.UUID, format string) (*dto.ExportFile, error)
}

// ExportServiceInterface renders report rows into downloadable files
type ExportServiceInterface interface {
	RenderMonthlyRollup(entries []models.MonthlyReportEntry, format string) (*dto.ExportFile, error)
}

// TransactionServiceInterface defines owner-scoped transaction operations
type TransactionServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, kind string) ([]models.Transaction, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// BudgetServiceInterface defines owner-scoped budget operations
type BudgetServiceInterface interface {
	Upsert(ctx context.Context, ownerID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error)
	List(ctx context.Context, ownerID uuid.UUID, month, year *int) ([]models.Budget, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// UploadServiceInterface stores receipt files and returns their public URL
type UploadServiceInterface interface {
	SaveReceipt(ctx context.Context, ownerID uuid.UUID, filename string, content io.Reader) (string, error)
}

// MaintenanceServiceInterface purges data that no longer serves a purpose
type MaintenanceServiceInterface interface {
	RunCleanup(ctx context.Context) error
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Logout(ctx context.Context, accessToken, ipAddress, userAgent string) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

type AuditServiceInterface interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	LogSecurityEvent(ctx context.Context, userID *uuid.UUID, action, ipAddress, userAgent string, metadata models.JSONBMap) error
	LogResourceEvent(ctx context.Context, userID uuid.UUID, action, resource, resourceID string, metadata models.JSONBMap) error
	GetUserActivity(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
}

type AuditLoggerInterface interface {
	LogTransactionCreated(ctx context.Context, ownerID, transactionID uuid.UUID, kind, amount string)
	LogTransactionUpdated(ctx context.Context, ownerID, transactionID uuid.UUID)
	LogTransactionDeleted(ctx context.Context, ownerID, transactionID uuid.UUID)
	LogBudgetUpserted(ctx context.Context, ownerID, budgetID uuid.UUID, category string, month, year int)
	LogBudgetDeleted(ctx context.Context, ownerID, budgetID uuid.UUID)
	LogReportGenerated(ctx context.Context, ownerID uuid.UUID, report string, transactionsScanned int, durationMs int64)
	LogReceiptUploaded(ctx context.Context, ownerID uuid.UUID, fileName string, sizeBytes int64)
	LogMaintenanceRun(ctx context.Context, task string, rowsAffected int64, errorMsg string)
}
