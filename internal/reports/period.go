package reports

import (
	"errors"
	"fmt"
	"strings"

	"finance-tracker/internal/models"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// MaxYear is the last year whose December still ends on a four-digit date.
// Range bounds compare as strings, so "10000-01-01" would sort before 9999.
const MaxYear = 9998

// MonthRange returns the half-open date range covering one calendar month.
// December rolls over into January of the following year.
func MonthRange(month, year int) (models.DateRange, error) {
	if month < 1 || month > 12 || year < 1 || year > MaxYear {
		return models.DateRange{}, fmt.Errorf("%w: month=%d year=%d", ErrInvalidPeriod, month, year)
	}

	nextMonth, nextYear := month+1, year
	if month == 12 {
		nextMonth, nextYear = 1, year+1
	}

	return models.DateRange{
		Start: fmt.Sprintf("%04d-%02d-01", year, month),
		End:   fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth),
	}, nil
}

// ResolveRange turns optional month/year query values into a filter. The
// filter only applies when both are present; one alone means no filter.
func ResolveRange(month, year *int) (*models.DateRange, error) {
	if month == nil || year == nil {
		return nil, nil
	}

	r, err := MonthRange(*month, *year)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// MonthKey derives the YYYY-MM bucket key from a transaction date using its
// first two dash-separated parts. ok is false when the date has fewer than two.
func MonthKey(date string) (key string, ok bool) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) < 2 {
		return "", false
	}
	return parts[0] + "-" + parts[1], true
}
