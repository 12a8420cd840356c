package repositories

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByIDForOwner retrieves a transaction only if it belongs to ownerID.
// A transaction owned by someone else is reported as not found.
func (r *transactionRepository) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// FindByOwner returns every transaction of ownerID, optionally restricted to
// dates inside dateRange. Rows come back in date order.
func (r *transactionRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, dateRange *models.DateRange) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if dateRange != nil {
		query = query.Where("date >= ? AND date < ?", dateRange.Start, dateRange.End)
	}

	transactions := []models.Transaction{}
	if err := query.Order("date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions for owner: %w", err)
	}
	return transactions, nil
}

// List returns the owner's transactions newest first, filtered by kind and
// date range and capped at models.MaxTransactionListSize rows.
func (r *transactionRepository) List(ctx context.Context, ownerID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filters.Kind != "" {
		query = query.Where("type = ?", filters.Kind)
	}
	if filters.Range != nil {
		query = query.Where("date >= ? AND date < ?", filters.Range.Start, filters.Range.End)
	}

	limit := filters.Limit
	if limit <= 0 || limit > models.MaxTransactionListSize {
		limit = models.MaxTransactionListSize
	}

	transactions := []models.Transaction{}
	if err := query.Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// Update saves every field of an owned transaction
func (r *transactionRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	result := r.db.WithContext(ctx).
		Model(transaction).
		Where("user_id = ?", transaction.UserID).
		Select("type", "amount", "category", "description", "date", "receipt_url", "updated_at").
		Updates(transaction)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteForOwner removes a transaction only if it belongs to ownerID
func (r *transactionRepository) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
