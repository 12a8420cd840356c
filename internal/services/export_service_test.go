package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func rollupEntries() []models.MonthlyReportEntry {
	return []models.MonthlyReportEntry{
		{Month: "2024-01", Income: decimal.NewFromInt(1000), Expense: decimal.NewFromInt(200), Savings: decimal.NewFromInt(800)},
		{Month: "2024-02", Income: decimal.NewFromInt(1000), Expense: decimal.RequireFromString("50.5"), Savings: decimal.RequireFromString("949.5")},
	}
}

func TestExportService_CSV(t *testing.T) {
	file, err := NewExportService().RenderMonthlyRollup(rollupEntries(), "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "monthly-report.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"month", "income", "expense", "savings"},
		{"2024-01", "1000.00", "200.00", "800.00"},
		{"2024-02", "1000.00", "50.50", "949.50"},
	}, records)
}

func TestExportService_DefaultsToCSV(t *testing.T) {
	file, err := NewExportService().RenderMonthlyRollup(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "month,income,expense,savings\n", string(file.Data))
}

func TestExportService_XLSX(t *testing.T) {
	file, err := NewExportService().RenderMonthlyRollup(rollupEntries(), "XLSX")
	require.NoError(t, err)
	assert.Equal(t, "monthly-report.xlsx", file.Filename)

	workbook, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(monthlySheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"month", "income", "expense", "savings"}, rows[0])
	assert.Equal(t, "2024-01", rows[1][0])
	assert.Equal(t, "800", rows[1][3])
	assert.Equal(t, "949.5", rows[2][3])
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	_, err := NewExportService().RenderMonthlyRollup(rollupEntries(), "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedExportFormat)
}
