package dto

import (
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetRequest creates or replaces the budget for one category and month
type BudgetRequest struct {
	Month    int             `json:"month" validate:"required,min=1,max=12"`
	Year     int             `json:"year" validate:"required,min=1,max=9999"`
	Category string          `json:"category" validate:"required,min=1,max=100"`
	Amount   decimal.Decimal `json:"amount" validate:"money_amount"`
}

// ToModel builds an owned budget from the request
func (r *BudgetRequest) ToModel(ownerID uuid.UUID) *models.Budget {
	return &models.Budget{
		UserID:   ownerID,
		Category: r.Category,
		Month:    r.Month,
		Year:     r.Year,
		Amount:   r.Amount.Round(2),
	}
}
