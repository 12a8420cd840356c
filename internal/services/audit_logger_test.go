package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureAuditLogger(level slog.Level) (AuditLoggerInterface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))
	return NewAuditLogger(logger), buf
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestAuditLogger_CarriesCorrelationID(t *testing.T) {
	logger, buf := captureAuditLogger(slog.LevelInfo)
	ownerID, txID := uuid.New(), uuid.New()
	ctx := WithCorrelationID(context.Background(), "trace-123")

	logger.LogTransactionCreated(ctx, ownerID, txID, "expense", "12.50")

	entry := decodeLogLine(t, buf)
	assert.Equal(t, "transaction created", entry["msg"])
	assert.Equal(t, "transaction_created", entry["event_type"])
	assert.Equal(t, ownerID.String(), entry["owner_id"])
	assert.Equal(t, txID.String(), entry["transaction_id"])
	assert.Equal(t, "12.50", entry["amount"])
	assert.Equal(t, "trace-123", entry["correlation_id"])
}

func TestAuditLogger_ReportEventsAreDebug(t *testing.T) {
	logger, buf := captureAuditLogger(slog.LevelInfo)

	logger.LogReportGenerated(context.Background(), uuid.New(), ReportSummary, 10, 3)
	assert.Empty(t, buf.String())

	logger, buf = captureAuditLogger(slog.LevelDebug)
	logger.LogReportGenerated(context.Background(), uuid.New(), ReportSummary, 10, 3)

	entry := decodeLogLine(t, buf)
	assert.Equal(t, "summary", entry["report"])
	assert.Equal(t, float64(10), entry["transactions_scanned"])
	assert.Equal(t, "", entry["correlation_id"])
}

func TestAuditLogger_MaintenanceFailureIsWarning(t *testing.T) {
	logger, buf := captureAuditLogger(slog.LevelInfo)

	logger.LogMaintenanceRun(context.Background(), TaskAuditLogCleanup, 0, "disk full")

	entry := decodeLogLine(t, buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
}
