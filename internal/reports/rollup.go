package reports

import (
	"slices"
	"strings"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// MonthlyWindow is the number of most recent months a rollup returns.
const MonthlyWindow = 6

// Rollup buckets transactions by calendar month and returns the most recent
// limit months, oldest first. Transactions whose date has no month part are
// skipped.
func Rollup(txns []models.Transaction, limit int) []models.MonthlyReportEntry {
	buckets := make(map[string]*models.MonthlyReportEntry)

	for i := range txns {
		txn := &txns[i]

		key, ok := MonthKey(txn.Date)
		if !ok {
			continue
		}

		entry, exists := buckets[key]
		if !exists {
			entry = &models.MonthlyReportEntry{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = entry
		}

		switch txn.Kind {
		case models.TransactionKindIncome:
			entry.Income = entry.Income.Add(txn.Amount)
		case models.TransactionKindExpense:
			entry.Expense = entry.Expense.Add(txn.Amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int { return strings.Compare(b, a) })
	if limit >= 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	slices.Reverse(keys)

	entries := make([]models.MonthlyReportEntry, 0, len(keys))
	for _, key := range keys {
		entry := buckets[key]
		entry.Savings = entry.Income.Sub(entry.Expense)
		entries = append(entries, *entry)
	}
	return entries
}
