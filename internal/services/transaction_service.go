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

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionService struct {
	repo         repositories.TransactionRepositoryInterface
	auditService AuditServiceInterface
	auditLogger  AuditLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewTransactionService(
	repo repositories.TransactionRepositoryInterface,
	auditService AuditServiceInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		repo:         repo,
		auditService: auditService,
		auditLogger:  auditLogger,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	transaction := req.ToModel(ownerID)

	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.auditLogger.LogTransactionCreated(ctx, ownerID, transaction.ID, transaction.Kind, transaction.Amount.StringFixed(2))
	s.recordMutation(ctx, ownerID, transaction.ID, "create", models.AuditActionTransactionCreate, models.JSONBMap{
		"type":     transaction.Kind,
		"amount":   transaction.Amount.StringFixed(2),
		"category": transaction.Category,
	})

	return transaction, nil
}

// List returns the owner's transactions newest first. An empty kind lists both kinds.
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, kind string) ([]models.Transaction, error) {
	if kind != "" && !models.IsValidTransactionKind(kind) {
		return nil, models.ErrInvalidTransactionKind
	}

	transactions, err := s.repo.List(ctx, ownerID, models.TransactionFilters{
		Kind:  kind,
		Limit: models.MaxTransactionListSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// Update replaces every editable field of an owned transaction
func (s *TransactionService) Update(ctx context.Context, ownerID, id uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	existing, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	replacement := req.ToModel(ownerID)
	existing.Kind = replacement.Kind
	existing.Amount = replacement.Amount
	existing.Category = replacement.Category
	existing.Description = replacement.Description
	existing.Date = replacement.Date
	existing.ReceiptURL = replacement.ReceiptURL

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.auditLogger.LogTransactionUpdated(ctx, ownerID, existing.ID)
	s.recordMutation(ctx, ownerID, existing.ID, "update", models.AuditActionTransactionUpdate, nil)

	return existing, nil
}

func (s *TransactionService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.auditLogger.LogTransactionDeleted(ctx, ownerID, id)
	s.recordMutation(ctx, ownerID, id, "delete", models.AuditActionTransactionDelete, nil)

	return nil
}

func (s *TransactionService) recordMutation(ctx context.Context, ownerID, id uuid.UUID, operation, action string, metadata models.JSONBMap) {
	s.metrics.IncrementCounter(MetricTransactionMutation, map[string]string{"operation": operation})

	if err := s.auditService.LogResourceEvent(ctx, ownerID, action, "transaction", id.String(), metadata); err != nil {
		s.logger.WarnContext(ctx, "failed to persist transaction audit log",
			"error", err,
			"transaction_id", id,
			"action", action)
	}
}
