package services

import (
	"fmt"
	"sort"
	"strings"

	"watch-analytics/models"
	"watch-analytics/utils"
)

// targetBrands are the brands broken out in the fine-grained SKU report.
var targetBrands = []string{"Titan", "Titan Edge", "Fossil"}

// Aggregator groups classified catalog records into the summary tables the
// dashboard reads.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Generate computes every aggregate table from the classified records.
// Records with an unknown price band are excluded up front; the report never
// carries an "Unknown" bucket.
func (a *Aggregator) Generate(records []*models.CatalogRecord) *models.SummaryReport {
	banded := make([]*models.CatalogRecord, 0, len(records))
	for _, rec := range records {
		if rec.Band != models.BandUnknown {
			banded = append(banded, rec)
		}
	}
	a.logger.Info("[aggregator] %d of %d records carry a price band", len(banded), len(records))

	men := filterGender(banded, models.GenderMen)
	women := filterGender(banded, models.GenderWomen)

	report := &models.SummaryReport{
		AllProducts:   bandPivot(banded, countProducts),
		MenProducts:   bandPivot(men, countProducts),
		WomenProducts: bandPivot(women, countProducts),

		AllSKUs:   bandPivot(banded, countSKUs),
		MenSKUs:   bandPivot(men, countSKUs),
		WomenSKUs: bandPivot(women, countSKUs),

		FineSKUMen:   fineSKUPivot(men),
		FineSKUWomen: fineSKUPivot(women),

		BrandTotals: brandTotals(banded),

		BestRank: bestRanks(banded),
	}

	top := banded
	if len(top) > 1000 {
		top = top[:1000]
	}
	report.Top1000 = brandTotals(top)
	report.Top1000Men = brandTotals(filterGender(top, models.GenderMen))
	report.Top1000Women = brandTotals(filterGender(top, models.GenderWomen))

	return report
}

func filterGender(records []*models.CatalogRecord, g models.Gender) []*models.CatalogRecord {
	var out []*models.CatalogRecord
	for _, rec := range records {
		if rec.Gender == g {
			out = append(out, rec)
		}
	}
	return out
}

// cellCounter fills one pivot cell set for a brand's records in a band.
type cellCounter func(records []*models.CatalogRecord) int

func countProducts(records []*models.CatalogRecord) int {
	return len(records)
}

func countSKUs(records []*models.CatalogRecord) int {
	codes := make(map[string]struct{})
	for _, rec := range records {
		if rec.HasCode {
			codes[rec.Code] = struct{}{}
		}
	}
	return len(codes)
}

// bandPivot builds a brand × price-band table with every cell zero-filled.
func bandPivot(records []*models.CatalogRecord, count cellCounter) models.PivotTable {
	columns := make([]string, 0, len(models.PriceBandOrder))
	for _, b := range models.PriceBandOrder {
		columns = append(columns, b.String())
	}

	grouped := make(map[string]map[string][]*models.CatalogRecord)
	for _, rec := range records {
		brand := rec.Brand.Label()
		if grouped[brand] == nil {
			grouped[brand] = make(map[string][]*models.CatalogRecord)
		}
		band := rec.Band.String()
		grouped[brand][band] = append(grouped[brand][band], rec)
	}

	return buildPivot(columns, grouped, count)
}

// fineSKUPivot builds the fine-bin distinct-SKU table for the target brands.
// Every fine bin appears in order even when empty.
func fineSKUPivot(records []*models.CatalogRecord) models.PivotTable {
	grouped := make(map[string]map[string][]*models.CatalogRecord)
	for _, brand := range targetBrands {
		grouped[brand] = make(map[string][]*models.CatalogRecord)
	}

	for _, rec := range records {
		brand := rec.Brand.Label()
		if _, ok := grouped[brand]; !ok {
			continue
		}
		bin, ok := FinePriceBin(rec.Price, rec.PriceOK)
		if !ok {
			continue
		}
		grouped[brand][bin] = append(grouped[brand][bin], rec)
	}

	return buildPivot(models.FineBinLabels, grouped, countSKUs)
}

func buildPivot(columns []string, grouped map[string]map[string][]*models.CatalogRecord, count cellCounter) models.PivotTable {
	brands := make([]string, 0, len(grouped))
	for brand := range grouped {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	rows := make([]models.PivotRow, 0, len(brands))
	for _, brand := range brands {
		counts := make(map[string]int, len(columns))
		for _, col := range columns {
			counts[col] = count(grouped[brand][col])
		}
		rows = append(rows, models.PivotRow{Brand: brand, Counts: counts})
	}

	return models.PivotTable{Columns: append([]string(nil), columns...), Rows: rows}
}

func brandTotals(records []*models.CatalogRecord) []models.BrandTotal {
	byBrand := make(map[string][]*models.CatalogRecord)
	for _, rec := range records {
		brand := rec.Brand.Label()
		byBrand[brand] = append(byBrand[brand], rec)
	}

	brands := make([]string, 0, len(byBrand))
	for brand := range byBrand {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	totals := make([]models.BrandTotal, 0, len(brands))
	for _, brand := range brands {
		totals = append(totals, models.BrandTotal{
			Brand:    brand,
			Products: len(byBrand[brand]),
			SKUs:     countSKUs(byBrand[brand]),
		})
	}
	return totals
}

// bestRanks records each brand's first appearance in the banded ordering,
// 1-based.
func bestRanks(records []*models.CatalogRecord) []models.BrandRank {
	best := make(map[string]int)
	for i, rec := range records {
		brand := rec.Brand.Label()
		if _, seen := best[brand]; !seen {
			best[brand] = i + 1
		}
	}

	brands := make([]string, 0, len(best))
	for brand := range best {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	ranks := make([]models.BrandRank, 0, len(brands))
	for _, brand := range brands {
		ranks = append(ranks, models.BrandRank{Brand: brand, Rank: best[brand]})
	}
	return ranks
}

// Print writes a console summary of the report in the same banner style the
// rest of the tooling uses.
func (a *Aggregator) Print(r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  WATCH MARKET SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Products and SKUs by Brand\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, t := range r.BrandTotals {
		fmt.Printf("  %-36s %5d products %5d SKUs\n", truncate(t.Brand, 34), t.Products, t.SKUs)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Best Rank (First Appearance)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, br := range r.BestRank {
		fmt.Printf("  %-36s #%d\n", truncate(br.Brand, 34), br.Rank)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
