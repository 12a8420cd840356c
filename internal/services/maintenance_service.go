package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/repositories"
)

const (
	TaskBlacklistCleanup = "blacklisted_tokens"
	TaskAuditLogCleanup  = "audit_logs"
)

// MaintenanceService purges revoked tokens past their expiry and audit rows
// past the retention window.
type MaintenanceService struct {
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	auditRepo            repositories.AuditLogRepositoryInterface
	auditRetention       time.Duration
	auditLogger          AuditLoggerInterface
	metrics              MetricsRecorderInterface
}

func NewMaintenanceService(
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	auditRetention time.Duration,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		blacklistedTokenRepo: blacklistedTokenRepo,
		auditRepo:            auditRepo,
		auditRetention:       auditRetention,
		auditLogger:          auditLogger,
		metrics:              metrics,
	}
}

// RunCleanup runs every task even when an earlier one fails and returns the
// joined errors. A non-positive retention keeps audit rows forever.
func (s *MaintenanceService) RunCleanup(ctx context.Context) error {
	var errs []error

	errs = append(errs, s.runTask(ctx, TaskBlacklistCleanup, func() (int64, error) {
		return s.blacklistedTokenRepo.DeleteExpired(ctx)
	}))

	if s.auditRetention > 0 {
		errs = append(errs, s.runTask(ctx, TaskAuditLogCleanup, func() (int64, error) {
			return s.auditRepo.DeleteOlderThan(ctx, s.auditRetention)
		}))
	}

	return errors.Join(errs...)
}

func (s *MaintenanceService) runTask(ctx context.Context, task string, purge func() (int64, error)) error {
	rows, err := purge()
	if err != nil {
		s.auditLogger.LogMaintenanceRun(ctx, task, 0, err.Error())
		return fmt.Errorf("%s cleanup failed: %w", task, err)
	}

	s.metrics.RecordGauge(MetricMaintenanceRowsPurged, float64(rows), map[string]string{"task": task})
	s.auditLogger.LogMaintenanceRun(ctx, task, rows, "")
	return nil
}
