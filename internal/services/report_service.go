package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/reports"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

const (
	ReportSummary = "summary"
	ReportMonthly = "monthly"
)

// ReportService loads one snapshot of an owner's transactions per call and
// hands it to the pure aggregation functions in package reports.
type ReportService struct {
	repo          repositories.TransactionRepositoryInterface
	exportService ExportServiceInterface
	auditLogger   AuditLoggerInterface
	metrics       MetricsRecorderInterface
	logger        *slog.Logger
}

func NewReportService(
	repo repositories.TransactionRepositoryInterface,
	exportService ExportServiceInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	return &ReportService{
		repo:          repo,
		exportService: exportService,
		auditLogger:   auditLogger,
		metrics:       metrics,
		logger:        logger,
	}
}

// GetSummary aggregates the owner's transactions. The month filter applies
// only when both month and year are given.
func (s *ReportService) GetSummary(ctx context.Context, ownerID uuid.UUID, month, year *int) (*models.SummaryReport, error) {
	dateRange, err := reports.ResolveRange(month, year)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	transactions, err := s.repo.FindByOwner(ctx, ownerID, dateRange)
	if err != nil {
		s.recordFailure(ReportSummary)
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}

	report := reports.Summarize(transactions)
	s.recordSuccess(ctx, ownerID, ReportSummary, len(transactions), time.Since(start))

	return report, nil
}

// GetMonthlyRollup returns up to reports.MonthlyWindow months, oldest first
func (s *ReportService) GetMonthlyRollup(ctx context.Context, ownerID uuid.UUID) ([]models.MonthlyReportEntry, error) {
	start := time.Now()
	transactions, err := s.repo.FindByOwner(ctx, ownerID, nil)
	if err != nil {
		s.recordFailure(ReportMonthly)
		return nil, fmt.Errorf("failed to load transactions for monthly report: %w", err)
	}

	entries := reports.Rollup(transactions, reports.MonthlyWindow)
	s.recordSuccess(ctx, ownerID, ReportMonthly, len(transactions), time.Since(start))

	return entries, nil
}

func (s *ReportService) ExportMonthlyRollup(ctx context.Context, ownerID uuid.UUID, format string) (*dto.ExportFile, error) {
	entries, err := s.GetMonthlyRollup(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	file, err := s.exportService.RenderMonthlyRollup(entries, format)
	if err != nil {
		return nil, fmt.Errorf("failed to export monthly report: %w", err)
	}
	return file, nil
}

func (s *ReportService) recordSuccess(ctx context.Context, ownerID uuid.UUID, report string, scanned int, elapsed time.Duration) {
	s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"report": report})
	s.metrics.RecordProcessingTime(MetricReportDuration, elapsed)
	s.metrics.RecordGauge(MetricReportRowsScanned, float64(scanned), map[string]string{"report": report})
	s.auditLogger.LogReportGenerated(ctx, ownerID, report, scanned, elapsed.Milliseconds())
}

func (s *ReportService) recordFailure(report string) {
	s.metrics.IncrementCounter(MetricReportFailed, map[string]string{"report": report})
}
