package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/errors"
	"finance-tracker/internal/reports"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the derived report endpoints. Responses are the bare
// report shapes.
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetSummary returns income, expense and savings totals with the expense breakdown
// @Summary Spending summary
// @Description Month and year filter only when both are given and non-zero; a lone value is ignored.
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year (1-9998)"
// @Success 200 {object} models.SummaryReport
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 or VALIDATION_004"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002"
// @Router /api/reports/summary [get]
func (h *ReportHandler) GetSummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	month, year, err := getSummaryPeriod(c)
	if err != nil {
		return sendPeriodError(c, err)
	}

	report, err := h.reportService.GetSummary(c.Request().Context(), userID, month, year)
	if err != nil {
		if stderrors.Is(err, reports.ErrInvalidPeriod) {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendDatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

// GetMonthly returns up to six most recent months, oldest first
// @Summary Monthly rollup
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.MonthlyReportEntry
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002"
// @Router /api/reports/monthly [get]
func (h *ReportHandler) GetMonthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entries, err := h.reportService.GetMonthlyRollup(c.Request().Context(), userID)
	if err != nil {
		return SendDatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, entries)
}

// ExportMonthly downloads the monthly rollup as CSV or XLSX
// @Summary Export monthly rollup
// @Tags Reports
// @Security BearerAuth
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse "REPORT_001"
// @Router /api/reports/monthly/export [get]
func (h *ReportHandler) ExportMonthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	query := dto.ExportQuery{Format: c.QueryParam("format")}
	if err := c.Validate(query); err != nil {
		return SendError(c, errors.ReportUnsupportedFormat, errors.WithDetails("format must be csv or xlsx"))
	}

	file, err := h.reportService.ExportMonthlyRollup(c.Request().Context(), userID, query.Format)
	if err != nil {
		if stderrors.Is(err, services.ErrUnsupportedExportFormat) {
			return SendError(c, errors.ReportUnsupportedFormat)
		}
		return SendDatabaseError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
