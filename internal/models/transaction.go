package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionKindIncome  = "income"
	TransactionKindExpense = "expense"

	// DateLayout is the canonical layout of Transaction.Date.
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidTransactionKind = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("transaction amount must not be negative")
)

func init() {
	// Amounts are money values and must reach clients as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is a single income or expense entry recorded by its owner.
// Amount is always a magnitude; the sign is implied by Kind.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1" json:"user_id"`
	Kind        string          `gorm:"column:type;type:varchar(10);not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Date        string          `gorm:"type:varchar(10);not null;index:idx_transactions_user_date,priority:2" json:"date"`
	ReceiptURL  *string         `gorm:"type:varchar(255)" json:"receipt_url"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidTransactionKind(t.Kind) {
		return ErrInvalidTransactionKind
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if t.Category == "" {
		return errors.New("category is required")
	}

	if t.Date == "" {
		return errors.New("date is required")
	}

	return nil
}

func (t *Transaction) IsIncome() bool {
	return t.Kind == TransactionKindIncome
}

func (t *Transaction) IsExpense() bool {
	return t.Kind == TransactionKindExpense
}

func (t *Transaction) TableName() string {
	return "transactions"
}

func IsValidTransactionKind(kind string) bool {
	return kind == TransactionKindIncome || kind == TransactionKindExpense
}
