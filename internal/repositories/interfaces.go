package repositories

import (
	"context"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations.
// Every read and write is scoped to the owning user.
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Transaction, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, dateRange *models.DateRange) ([]models.Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, error)
	Update(ctx context.Context, transaction *models.Transaction) error
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	List(ctx context.Context, ownerID uuid.UUID, filters models.BudgetFilters) ([]models.Budget, error)
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFailedLoginAttempts(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(ctx context.Context, log *models.AuditLog) error
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.BlacklistedToken) error
	GetByJTI(ctx context.Context, jti string) (*models.BlacklistedToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
