package models

// PivotTable is a brand × column count matrix. Columns is the display order;
// every row carries a count for every column (zero-filled).
type PivotTable struct {
	Columns []string
	Rows    []PivotRow
}

// PivotRow is one brand's counts across the pivot columns.
type PivotRow struct {
	Brand  string
	Counts map[string]int
}

// BrandTotal is a per-brand pair of product count and unique SKU count.
type BrandTotal struct {
	Brand    string
	Products int
	SKUs     int
}

// BrandRank records a brand's best (minimum) 1-based position in the input
// ordering.
type BrandRank struct {
	Brand string
	Rank  int
}

// SummaryReport bundles every aggregate table produced by one pipeline run.
type SummaryReport struct {
	// Product-count pivots, brand × price band.
	AllProducts   PivotTable
	MenProducts   PivotTable
	WomenProducts PivotTable

	// Distinct-SKU pivots, brand × price band.
	AllSKUs   PivotTable
	MenSKUs   PivotTable
	WomenSKUs PivotTable

	// Fine-grained SKU report for the target brands, brand × fine bin.
	FineSKUMen   PivotTable
	FineSKUWomen PivotTable

	BrandTotals []BrandTotal

	Top1000      []BrandTotal
	Top1000Men   []BrandTotal
	Top1000Women []BrandTotal

	BestRank []BrandRank
}
