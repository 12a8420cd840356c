package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: db}
}

// Upsert stores budget under its (owner, category, month, year) key. An
// existing budget keeps its id and gets the new amount. A concurrent insert
// losing the unique-index race is retried once as an update.
func (r *budgetRepository) Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	if budget == nil {
		return nil, errors.New("budget cannot be nil")
	}

	stored, err := r.upsertOnce(ctx, budget)
	if err != nil && isDuplicateKeyError(err) {
		stored, err = r.upsertOnce(ctx, budget)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	return stored, nil
}

func (r *budgetRepository) upsertOnce(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	var stored models.Budget

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND category = ? AND month = ? AND year = ?",
			budget.UserID, budget.Category, budget.Month, budget.Year).
			First(&stored).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			stored = models.Budget{
				UserID:   budget.UserID,
				Category: budget.Category,
				Month:    budget.Month,
				Year:     budget.Year,
				Amount:   budget.Amount,
			}
			return tx.Create(&stored).Error
		case err != nil:
			return err
		}

		stored.Amount = budget.Amount
		stored.UpdatedAt = time.Now()
		return tx.Model(&stored).
			Select("amount", "updated_at").
			Updates(&stored).Error
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// List returns the owner's budgets. Month and year filters apply independently.
func (r *budgetRepository) List(ctx context.Context, ownerID uuid.UUID, filters models.BudgetFilters) ([]models.Budget, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filters.Month != nil {
		query = query.Where("month = ?", *filters.Month)
	}
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}

	budgets := []models.Budget{}
	if err := query.Order("year DESC, month DESC, category ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// DeleteForOwner removes a budget only if it belongs to ownerID
func (r *budgetRepository) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Budget{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
