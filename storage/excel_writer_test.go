package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"watch-analytics/models"
)

func samplePivot() models.PivotTable {
	columns := []string{"<10k", "10k–15k", "15k–25k", "25k–40k", "40k+"}
	return models.PivotTable{
		Columns: columns,
		Rows: []models.PivotRow{
			{Brand: "Fossil", Counts: map[string]int{"<10k": 0, "10k–15k": 3, "15k–25k": 1, "25k–40k": 0, "40k+": 0}},
			{Brand: "Titan", Counts: map[string]int{"<10k": 5, "10k–15k": 2, "15k–25k": 0, "25k–40k": 0, "40k+": 1}},
		},
	}
}

func TestExcelWriterWritesOneSheetPerReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "brand_summary.xlsx")
	writer, err := NewExcelWriter(path)
	require.NoError(t, err)

	pivot := samplePivot()
	report := &models.SummaryReport{
		AllProducts:   pivot,
		MenProducts:   pivot,
		WomenProducts: pivot,
		AllSKUs:       pivot,
		MenSKUs:       pivot,
		WomenSKUs:     pivot,
	}
	require.NoError(t, writer.Write(report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		"Men - Product Count", "Women - Product Count",
		"Men - SKU Count", "Women - SKU Count",
		"All - Product Count", "All - SKU Count",
	}, f.GetSheetList())
}

func TestExcelWriterSheetLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand_summary.xlsx")
	writer, err := NewExcelWriter(path)
	require.NoError(t, err)

	pivot := samplePivot()
	report := &models.SummaryReport{
		AllProducts:   pivot,
		MenProducts:   pivot,
		WomenProducts: pivot,
		AllSKUs:       pivot,
		MenSKUs:       pivot,
		WomenSKUs:     pivot,
	}
	require.NoError(t, writer.Write(report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("All - Product Count")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"brand", "<10k", "10k–15k", "15k–25k", "25k–40k", "40k+"}, rows[0])
	assert.Equal(t, "Fossil", rows[1][0])
	assert.Equal(t, "3", rows[1][2])
	assert.Equal(t, "Titan", rows[2][0])
	assert.Equal(t, "5", rows[2][1])
}
