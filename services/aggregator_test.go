package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watch-analytics/models"
	"watch-analytics/utils"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(utils.NewLogger())
}

func record(brand string, gender models.Gender, price float64, code string) *models.CatalogRecord {
	rec := &models.CatalogRecord{
		ProductName: brand + " watch " + code,
		Price:       price,
		PriceOK:     true,
		Code:        code,
		HasCode:     code != "",
		Brand:       models.KnownBrand(brand),
		Gender:      gender,
	}
	rec.Band = CategorizePrice(price, true)
	return rec
}

func unbandedRecord(brand string, gender models.Gender) *models.CatalogRecord {
	return &models.CatalogRecord{
		ProductName: brand + " watch",
		Brand:       models.KnownBrand(brand),
		Gender:      gender,
		Band:        models.BandUnknown,
	}
}

func pivotCell(t *testing.T, p models.PivotTable, brand, column string) int {
	t.Helper()
	for _, row := range p.Rows {
		if row.Brand == brand {
			count, ok := row.Counts[column]
			require.True(t, ok, "column %q missing from pivot", column)
			return count
		}
	}
	t.Fatalf("brand %q missing from pivot", brand)
	return 0
}

func TestGenerateExcludesUnknownBand(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		record("Titan", models.GenderMen, 9999, "1802KM01"),
		unbandedRecord("Titan", models.GenderMen),
		unbandedRecord("Casio", models.GenderMen),
	})

	// The unbanded rows vanish entirely: no Unknown column, no Casio row.
	require.Len(t, report.AllProducts.Rows, 1)
	assert.Equal(t, "Titan", report.AllProducts.Rows[0].Brand)
	assert.NotContains(t, report.AllProducts.Columns, "Unknown")
	require.Len(t, report.BrandTotals, 1)
	assert.Equal(t, 1, report.BrandTotals[0].Products)
}

func TestGeneratePivotsAreZeroFilled(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		record("Titan", models.GenderMen, 9999, "1802KM01"),
	})

	p := report.AllProducts
	assert.Equal(t, []string{"<10k", "10k–15k", "15k–25k", "25k–40k", "40k+"}, p.Columns)
	assert.Equal(t, 1, pivotCell(t, p, "Titan", "<10k"))
	assert.Equal(t, 0, pivotCell(t, p, "Titan", "40k+"))
}

func TestGenerateCountsProductsAndDistinctSKUs(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		record("Titan", models.GenderMen, 9500, "1802KM01"),
		record("Titan", models.GenderMen, 9600, "1802KM01"),
		record("Titan", models.GenderMen, 9700, "1803KM02"),
		record("Titan", models.GenderMen, 9800, ""),
	})

	assert.Equal(t, 4, pivotCell(t, report.AllProducts, "Titan", "<10k"))
	// SKU counts are distinct codes; the codeless row contributes nothing.
	assert.Equal(t, 2, pivotCell(t, report.AllSKUs, "Titan", "<10k"))
}

func TestGenerateSplitsByGender(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		record("Titan", models.GenderMen, 9500, "1802KM01"),
		record("Fossil", models.GenderWomen, 11495, "ES5218"),
		record("Casio", models.GenderUnisex, 3495, "MTP1374"),
	})

	require.Len(t, report.MenProducts.Rows, 1)
	assert.Equal(t, "Titan", report.MenProducts.Rows[0].Brand)
	require.Len(t, report.WomenProducts.Rows, 1)
	assert.Equal(t, "Fossil", report.WomenProducts.Rows[0].Brand)
	// Unisex rows appear only in the All tables.
	assert.Len(t, report.AllProducts.Rows, 3)
}

func TestGenerateFineSKUPivot(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		record("Titan", models.GenderMen, 10500, "1802KM01"),
		record("Titan", models.GenderMen, 10900, "1803KM02"),
		record("Titan", models.GenderMen, 23000, "1804KM03"),
		record("Fossil", models.GenderMen, 16000, "FS5304"),
		// The fine report never includes non-target brands.
		record("Casio", models.GenderMen, 12000, "MTP1374"),
		// Prices outside the 10k-25k window carry no bin.
		record("Titan", models.GenderMen, 9999, "1805KM04"),
	})

	p := report.FineSKUMen
	assert.Equal(t, models.FineBinLabels, p.Columns)

	// All three target brands appear even when empty.
	require.Len(t, p.Rows, 3)
	assert.Equal(t, 2, pivotCell(t, p, "Titan", "10 - 11k"))
	assert.Equal(t, 1, pivotCell(t, p, "Titan", "22.5-25k"))
	assert.Equal(t, 1, pivotCell(t, p, "Fossil", "15k-17.5k"))
	assert.Equal(t, 0, pivotCell(t, p, "Titan Edge", "10 - 11k"))
	for _, row := range p.Rows {
		assert.NotEqual(t, "Casio", row.Brand)
	}
}

func TestGenerateBestRankIsFirstAppearance(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		unbandedRecord("Casio", models.GenderMen),
		record("Titan", models.GenderMen, 9500, "1802KM01"),
		record("Fossil", models.GenderWomen, 11495, "ES5218"),
		record("Titan", models.GenderMen, 9600, "1803KM02"),
	})

	// Ranks are positions in the banded ordering, so the unbanded Casio row
	// neither ranks nor shifts the others.
	require.Len(t, report.BestRank, 2)
	assert.Equal(t, models.BrandRank{Brand: "Fossil", Rank: 2}, report.BestRank[1])
	assert.Equal(t, models.BrandRank{Brand: "Titan", Rank: 1}, report.BestRank[0])
}

func TestGenerateTopThousandTruncates(t *testing.T) {
	agg := newTestAggregator()

	records := make([]*models.CatalogRecord, 0, 1200)
	for i := 0; i < 1200; i++ {
		records = append(records, record("Titan", models.GenderMen, 9500, fmt.Sprintf("C%04d", i)))
	}

	report := agg.Generate(records)

	require.Len(t, report.Top1000, 1)
	assert.Equal(t, 1000, report.Top1000[0].Products)
	assert.Equal(t, 1000, report.Top1000[0].SKUs)
	// The full totals still see every row.
	require.Len(t, report.BrandTotals, 1)
	assert.Equal(t, 1200, report.BrandTotals[0].Products)
}

func TestBrandTotalsSortedByBrand(t *testing.T) {
	agg := newTestAggregator()

	report := agg.Generate([]*models.CatalogRecord{
		record("Titan", models.GenderMen, 9500, "1802KM01"),
		record("Casio", models.GenderMen, 3495, "MTP1374"),
		record("Fossil", models.GenderWomen, 11495, "ES5218"),
	})

	got := make([]string, 0, len(report.BrandTotals))
	for _, bt := range report.BrandTotals {
		got = append(got, bt.Brand)
	}
	assert.Equal(t, []string{"Casio", "Fossil", "Titan"}, got)
}
