package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying the request's trace id so
// domain events can be joined with access logs.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogTransactionCreated(ctx context.Context, ownerID, transactionID uuid.UUID, kind, amount string) {
	al.logger.InfoContext(ctx, "transaction created",
		slog.String("event_type", "transaction_created"),
		slog.String("owner_id", ownerID.String()),
		slog.String("transaction_id", transactionID.String()),
		slog.String("type", kind),
		slog.String("amount", amount),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogTransactionUpdated(ctx context.Context, ownerID, transactionID uuid.UUID) {
	al.logger.InfoContext(ctx, "transaction updated",
		slog.String("event_type", "transaction_updated"),
		slog.String("owner_id", ownerID.String()),
		slog.String("transaction_id", transactionID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogTransactionDeleted(ctx context.Context, ownerID, transactionID uuid.UUID) {
	al.logger.InfoContext(ctx, "transaction deleted",
		slog.String("event_type", "transaction_deleted"),
		slog.String("owner_id", ownerID.String()),
		slog.String("transaction_id", transactionID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogBudgetUpserted(ctx context.Context, ownerID, budgetID uuid.UUID, category string, month, year int) {
	al.logger.InfoContext(ctx, "budget upserted",
		slog.String("event_type", "budget_upserted"),
		slog.String("owner_id", ownerID.String()),
		slog.String("budget_id", budgetID.String()),
		slog.String("category", category),
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogBudgetDeleted(ctx context.Context, ownerID, budgetID uuid.UUID) {
	al.logger.InfoContext(ctx, "budget deleted",
		slog.String("event_type", "budget_deleted"),
		slog.String("owner_id", ownerID.String()),
		slog.String("budget_id", budgetID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogReportGenerated(ctx context.Context, ownerID uuid.UUID, report string, transactionsScanned int, durationMs int64) {
	al.logger.DebugContext(ctx, "report generated",
		slog.String("event_type", "report_generated"),
		slog.String("owner_id", ownerID.String()),
		slog.String("report", report),
		slog.Int("transactions_scanned", transactionsScanned),
		slog.Int64("duration_ms", durationMs),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogReceiptUploaded(ctx context.Context, ownerID uuid.UUID, fileName string, sizeBytes int64) {
	al.logger.InfoContext(ctx, "receipt uploaded",
		slog.String("event_type", "receipt_uploaded"),
		slog.String("owner_id", ownerID.String()),
		slog.String("file_name", fileName),
		slog.Int64("size_bytes", sizeBytes),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogMaintenanceRun(ctx context.Context, task string, rowsAffected int64, errorMsg string) {
	attrs := []any{
		slog.String("event_type", "maintenance_run"),
		slog.String("task", task),
		slog.Int64("rows_affected", rowsAffected),
		slog.Time("timestamp", time.Now()),
	}

	if errorMsg != "" {
		al.logger.WarnContext(ctx, "maintenance task failed", append(attrs, slog.String("error", errorMsg))...)
		return
	}
	al.logger.InfoContext(ctx, "maintenance task completed", attrs...)
}

// CorrelationID returns the trace id stored by WithCorrelationID, or ""
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if correlationID, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return correlationID
	}

	return ""
}
