package storage

import "watch-analytics/models"

// ListingSource is the read side of the pipeline: primary listing tables and
// the secondary "filled" fallback tables.
type ListingSource interface {
	FetchListings(table string) ([]*models.RawListing, error)
	FetchFallbackRows(table string) ([]map[string]string, error)
}

// TableWriter is the write side: full-table replacement of pipeline outputs.
type TableWriter interface {
	ReplaceRawListings(table string, listings []*models.RawListing) error
	ReplaceCatalogTable(table string, records []*models.CatalogRecord) error
	ReplaceAttributeTable(table string, rows []models.AttributeRow) error
	ReplacePivotTable(table string, pivot models.PivotTable) error
	ReplaceBrandTotals(table string, totals []models.BrandTotal, productsCol, skusCol string) error
	ReplaceBrandRanks(table string, ranks []models.BrandRank, rankCol string) error
}

// RawListingWriter is the interface for persisting unprocessed scraped data.
type RawListingWriter interface {
	WriteRaw(listings []*models.RawListing) error
	Close() error
}
