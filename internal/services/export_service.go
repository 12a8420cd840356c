package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"

	monthlySheetName = "Monthly"
)

var ErrUnsupportedExportFormat = errors.New("unsupported export format")

var monthlyExportHeader = []string{"month", "income", "expense", "savings"}

type ExportService struct{}

func NewExportService() ExportServiceInterface {
	return &ExportService{}
}

// RenderMonthlyRollup writes one row per month in the order given.
// format is matched case-insensitively; empty means CSV.
func (s *ExportService) RenderMonthlyRollup(entries []models.MonthlyReportEntry, format string) (*dto.ExportFile, error) {
	switch strings.ToLower(format) {
	case "", ExportFormatCSV:
		return s.renderCSV(entries)
	case ExportFormatXLSX:
		return s.renderXLSX(entries)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, format)
	}
}

func (s *ExportService) renderCSV(entries []models.MonthlyReportEntry) (*dto.ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(monthlyExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.Month,
			entry.Income.StringFixed(2),
			entry.Expense.StringFixed(2),
			entry.Savings.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return &dto.ExportFile{
		Filename:    "monthly-report.csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func (s *ExportService) renderXLSX(entries []models.MonthlyReportEntry) (*dto.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), monthlySheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range monthlyExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(monthlySheetName, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, entry := range entries {
		row := i + 2
		values := []interface{}{
			entry.Month,
			entry.Income.InexactFloat64(),
			entry.Expense.InexactFloat64(),
			entry.Savings.InexactFloat64(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(monthlySheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return &dto.ExportFile{
		Filename:    "monthly-report.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
