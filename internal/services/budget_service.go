package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

var ErrBudgetNotFound = errors.New("budget not found")

type BudgetService struct {
	repo         repositories.BudgetRepositoryInterface
	auditService AuditServiceInterface
	auditLogger  AuditLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewBudgetService(
	repo repositories.BudgetRepositoryInterface,
	auditService AuditServiceInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		repo:         repo,
		auditService: auditService,
		auditLogger:  auditLogger,
		metrics:      metrics,
		logger:       logger,
	}
}

// Upsert stores the budget for (owner, category, month, year), replacing the
// amount of an existing one.
func (s *BudgetService) Upsert(ctx context.Context, ownerID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	budget, err := s.repo.Upsert(ctx, req.ToModel(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.auditLogger.LogBudgetUpserted(ctx, ownerID, budget.ID, budget.Category, budget.Month, budget.Year)
	s.recordMutation(ctx, ownerID, budget.ID, "upsert", models.AuditActionBudgetUpsert, models.JSONBMap{
		"category": budget.Category,
		"month":    budget.Month,
		"year":     budget.Year,
		"amount":   budget.Amount.StringFixed(2),
	})

	return budget, nil
}

// List returns the owner's budgets. Month and year filter independently.
func (s *BudgetService) List(ctx context.Context, ownerID uuid.UUID, month, year *int) ([]models.Budget, error) {
	budgets, err := s.repo.List(ctx, ownerID, models.BudgetFilters{Month: month, Year: year})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *BudgetService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	s.auditLogger.LogBudgetDeleted(ctx, ownerID, id)
	s.recordMutation(ctx, ownerID, id, "delete", models.AuditActionBudgetDelete, nil)

	return nil
}

func (s *BudgetService) recordMutation(ctx context.Context, ownerID, id uuid.UUID, operation, action string, metadata models.JSONBMap) {
	s.metrics.IncrementCounter(MetricBudgetMutation, map[string]string{"operation": operation})

	if err := s.auditService.LogResourceEvent(ctx, ownerID, action, "budget", id.String(), metadata); err != nil {
		s.logger.WarnContext(ctx, "failed to persist budget audit log",
			"error", err,
			"budget_id", id,
			"action", action)
	}
}
