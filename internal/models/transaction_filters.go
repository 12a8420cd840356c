package models

// MaxTransactionListSize caps a single transaction listing.
const MaxTransactionListSize = 1000

// DateRange is a half-open interval [Start, End) over YYYY-MM-DD date strings.
// Bounds compare lexicographically, which matches calendar order for that layout.
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether date falls inside the range.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date < r.End
}

// TransactionFilters narrows a transaction listing for one owner.
type TransactionFilters struct {
	Kind  string
	Range *DateRange
	Limit int
}
