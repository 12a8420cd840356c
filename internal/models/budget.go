package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBudgetMonth = errors.New("budget month must be between 1 and 12")
	ErrInvalidBudgetYear  = errors.New("budget year must be between 1 and 9999")
)

// Budget is a spending limit for one category in one calendar month.
// At most one budget exists per (user, category, month, year).
type Budget struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_owner_period,priority:1" json:"user_id"`
	Category  string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_budgets_owner_period,priority:2" json:"category"`
	Month     int             `gorm:"not null;uniqueIndex:idx_budgets_owner_period,priority:3" json:"month"`
	Year      int             `gorm:"not null;uniqueIndex:idx_budgets_owner_period,priority:4" json:"year"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if b.Category == "" {
		return errors.New("category is required")
	}

	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidBudgetMonth
	}

	if b.Year < 1 || b.Year > 9999 {
		return ErrInvalidBudgetYear
	}

	if b.Amount.IsNegative() {
		return errors.New("budget amount must not be negative")
	}

	return nil
}

func (b *Budget) TableName() string {
	return "budgets"
}

// BudgetFilters narrows a budget listing. Month and Year apply independently.
type BudgetFilters struct {
	Month *int
	Year  *int
}
