package reports

import (
	"cmp"
	"slices"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// TopCategoryLimit is the number of ranked expense categories in a summary.
const TopCategoryLimit = 5

// categoryTotals accumulates expense amounts per category and remembers
// first-seen order so iteration never depends on map ordering.
type categoryTotals struct {
	order  []string
	totals map[string]decimal.Decimal
}

func newCategoryTotals() *categoryTotals {
	return &categoryTotals{totals: make(map[string]decimal.Decimal)}
}

func (ct *categoryTotals) add(category string, amount decimal.Decimal) {
	current, seen := ct.totals[category]
	if !seen {
		ct.order = append(ct.order, category)
	}
	ct.totals[category] = current.Add(amount)
}

// ranked returns categories by amount descending, ties by category name ascending.
func (ct *categoryTotals) ranked(limit int) []models.CategoryAmount {
	ranked := make([]models.CategoryAmount, 0, len(ct.order))
	for _, category := range ct.order {
		ranked = append(ranked, models.CategoryAmount{Category: category, Amount: ct.totals[category]})
	}

	slices.SortStableFunc(ranked, func(a, b models.CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Summarize folds a transaction snapshot into a SummaryReport. Any date
// filtering has already been applied by the caller. An empty input yields
// zero totals with empty, non-nil collections.
func Summarize(txns []models.Transaction) *models.SummaryReport {
	income := decimal.Zero
	expense := decimal.Zero
	breakdown := newCategoryTotals()

	for i := range txns {
		txn := &txns[i]

		switch txn.Kind {
		case models.TransactionKindIncome:
			income = income.Add(txn.Amount)
		case models.TransactionKindExpense:
			expense = expense.Add(txn.Amount)
			breakdown.add(txn.Category, txn.Amount)
		}
	}

	return &models.SummaryReport{
		TotalIncome:       income,
		TotalExpense:      expense,
		TotalSavings:      income.Sub(expense),
		CategoryBreakdown: breakdown.totals,
		TopCategories:     breakdown.ranked(TopCategoryLimit),
	}
}
