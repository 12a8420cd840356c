package models

import "github.com/shopspring/decimal"

// CategoryAmount is one ranked entry of a summary's top categories.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SummaryReport aggregates an owner's transactions, optionally for a single month.
// CategoryBreakdown holds expense totals only.
type SummaryReport struct {
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpense      decimal.Decimal            `json:"total_expense"`
	TotalSavings      decimal.Decimal            `json:"total_savings"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	TopCategories     []CategoryAmount           `json:"top_categories"`
}

// MonthlyReportEntry is the rollup of one calendar month, keyed YYYY-MM.
type MonthlyReportEntry struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}
