package services

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

const (
	DefaultActivityPageSize = 20
	MaxActivityPageSize     = 100
)

// AuditService persists audit trail rows
type AuditService struct {
	repo repositories.AuditLogRepositoryInterface
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface) AuditServiceInterface {
	return &AuditService{
		repo: repo,
	}
}

var (
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidAuditLog = errors.New("invalid audit log")
)

var validAuditActions = map[string]bool{
	models.AuditActionLogin:             true,
	models.AuditActionLogout:            true,
	models.AuditActionRegister:          true,
	models.AuditActionFailedLogin:       true,
	models.AuditActionAccountLocked:     true,
	models.AuditActionTransactionCreate: true,
	models.AuditActionTransactionUpdate: true,
	models.AuditActionTransactionDelete: true,
	models.AuditActionBudgetUpsert:      true,
	models.AuditActionBudgetDelete:      true,
	models.AuditActionReceiptUpload:     true,
}

// ValidateActivityType validates that the activity type is one of the allowed types
func ValidateActivityType(action string) error {
	if !validAuditActions[action] {
		return fmt.Errorf("invalid activity type: %s", action)
	}
	return nil
}

// CreateAuditLog creates a new audit log entry with validation
func (s *AuditService) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log == nil {
		return ErrInvalidAuditLog
	}

	if err := ValidateActivityType(log.Action); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// LogSecurityEvent records an authentication event. userID is nil when the
// actor could not be identified, e.g. a login for an unknown email.
func (s *AuditService) LogSecurityEvent(ctx context.Context, userID *uuid.UUID, action, ipAddress, userAgent string, metadata models.JSONBMap) error {
	log := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  "auth",
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Metadata:  metadata,
	}
	if userID != nil {
		log.ResourceID = userID.String()
	}
	return s.CreateAuditLog(ctx, log)
}

// LogResourceEvent records a change made by an owner to one of their records
func (s *AuditService) LogResourceEvent(ctx context.Context, userID uuid.UUID, action, resource, resourceID string, metadata models.JSONBMap) error {
	if userID == uuid.Nil {
		return ErrInvalidUserID
	}

	log := &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   metadata,
	}
	return s.CreateAuditLog(ctx, log)
}

// GetUserActivity returns one page of a user's audit trail, newest first
func (s *AuditService) GetUserActivity(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrInvalidUserID
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	if limit > MaxActivityPageSize {
		limit = MaxActivityPageSize
	}

	logs, total, err := s.repo.GetByUserID(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user activity: %w", err)
	}
	return logs, total, nil
}
