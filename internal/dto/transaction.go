package dto

import (
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of transaction create and update calls.
// Update replaces every field.
type TransactionRequest struct {
	Type        string          `json:"type" validate:"required,transaction_kind"`
	Amount      decimal.Decimal `json:"amount" validate:"money_amount"`
	Category    string          `json:"category" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=1000"`
	Date        string          `json:"date" validate:"required,calendar_date"`
	ReceiptURL  *string         `json:"receipt_url,omitempty" validate:"omitempty,max=255"`
}

// ToModel builds an owned transaction from the request
func (r *TransactionRequest) ToModel(ownerID uuid.UUID) *models.Transaction {
	return &models.Transaction{
		UserID:      ownerID,
		Kind:        r.Type,
		Amount:      r.Amount.Round(2),
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		ReceiptURL:  r.ReceiptURL,
	}
}

// TransactionListQuery holds the optional filters of a transaction listing
type TransactionListQuery struct {
	Type string `query:"type" validate:"omitempty,transaction_kind"`
}
