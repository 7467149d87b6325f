package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"watch-analytics/models"
)

// ExcelWriter exports the pivot tables of a summary report as one workbook,
// one sheet per report, mirroring the tables the dashboard reads.
type ExcelWriter struct {
	path string
}

// NewExcelWriter creates an ExcelWriter targeting the given path.
// Intermediate directories are created automatically.
func NewExcelWriter(path string) (*ExcelWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("excel: create output dir: %w", err)
	}
	return &ExcelWriter{path: path}, nil
}

// Write renders the six brand × price-band sheets and saves the workbook.
func (w *ExcelWriter) Write(report *models.SummaryReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name  string
		pivot models.PivotTable
	}{
		{"Men - Product Count", report.MenProducts},
		{"Women - Product Count", report.WomenProducts},
		{"Men - SKU Count", report.MenSKUs},
		{"Women - SKU Count", report.WomenSKUs},
		{"All - Product Count", report.AllProducts},
		{"All - SKU Count", report.AllSKUs},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("excel: create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("excel: rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("excel: create sheet %q: %w", sheet.name, err)
			}
		}
		if err := writePivotSheet(f, sheet.name, sheet.pivot, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("excel: save %q: %w", w.path, err)
	}
	return nil
}

func writePivotSheet(f *excelize.File, sheet string, pivot models.PivotTable, headerStyle int) error {
	headers := append([]string{"brand"}, pivot.Columns...)
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("excel: write header on %q: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("excel: style header on %q: %w", sheet, err)
		}
	}

	for rowIdx, row := range pivot.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetCellValue(sheet, cell, row.Brand); err != nil {
			return fmt.Errorf("excel: write brand on %q: %w", sheet, err)
		}
		for colIdx, col := range pivot.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+2, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, row.Counts[col]); err != nil {
				return fmt.Errorf("excel: write cell on %q: %w", sheet, err)
			}
		}
	}

	col, _ := excelize.ColumnNumberToName(1)
	return f.SetColWidth(sheet, col, col, 24)
}
