package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"finance-tracker/internal/reports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// errOutOfRange marks a query value that parsed but is outside its bounds
var errOutOfRange = fmt.Errorf("out of range")

// getUserIDFromContext returns the owner id RequireAuth resolved from the token.
// Handlers never derive the owner from request input.
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}

// getOptionalIntParam parses an optional integer query parameter bounded by
// [min, max]. An absent parameter yields nil.
func getOptionalIntParam(c echo.Context, name string, min, max int) (*int, error) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}

	if value < min || value > max {
		return nil, fmt.Errorf("%w: %s must be between %d and %d", errOutOfRange, name, min, max)
	}

	return &value, nil
}

// getPeriodParams reads the optional month and year query parameters
func getPeriodParams(c echo.Context) (month, year *int, err error) {
	month, err = getOptionalIntParam(c, "month", 1, 12)
	if err != nil {
		return nil, nil, err
	}

	year, err = getOptionalIntParam(c, "year", 1, 9999)
	if err != nil {
		return nil, nil, err
	}

	return month, year, nil
}

// getSummaryPeriod reads the month/year pair that narrows the summary. The
// pair is validated only when both values are supplied and non-zero; a lone
// value or a zero means no filter.
func getSummaryPeriod(c echo.Context) (month, year *int, err error) {
	rawMonth := strings.TrimSpace(c.QueryParam("month"))
	rawYear := strings.TrimSpace(c.QueryParam("year"))
	if rawMonth == "" || rawYear == "" {
		return nil, nil, nil
	}

	m, err := strconv.Atoi(rawMonth)
	if err != nil {
		return nil, nil, fmt.Errorf("month must be an integer")
	}
	y, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, nil, fmt.Errorf("year must be an integer")
	}

	if m == 0 || y == 0 {
		return nil, nil, nil
	}
	if m < 1 || m > 12 {
		return nil, nil, fmt.Errorf("%w: month must be between 1 and 12", errOutOfRange)
	}
	if y < 1 || y > reports.MaxYear {
		return nil, nil, fmt.Errorf("%w: year must be between 1 and %d", errOutOfRange, reports.MaxYear)
	}

	return &m, &y, nil
}

// getClientIP resolves the caller address through the Echo IPExtractor, so
// forwarding headers are honoured only from trusted proxies.
func getClientIP(c echo.Context) string {
	return c.RealIP()
}
