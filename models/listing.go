package models

import "time"

// RawListing holds one scraped product listing before any cleaning or
// transformation. This is what the scraper emits and what the ingestion
// tables in PostgreSQL contain.
type RawListing struct {
	URL         string
	ProductName string
	BrandName   string
	ModelNumber string
	RawPrice    string
	Ratings     string
	Discount    string
	ImageURL    string
	Specs       string
	ScrapedAt   time.Time
}

// CatalogRecord is a cleaned, classified listing used by the catalog
// analysis pipeline (brand/price-band/gender reporting).
type CatalogRecord struct {
	URL         string
	ProductName string
	RawPrice    string

	// Price holds the parsed numeric price; PriceOK is false when the raw
	// value could not be parsed.
	Price   float64
	PriceOK bool

	// Code holds the extracted product code; HasCode is false when no
	// qualifying token was found in the product name.
	Code    string
	HasCode bool

	Brand  Brand
	Gender Gender
	Band   PriceBand

	// Position is the 1-based ordinal of the record in the cleaned input
	// ordering. Used for the best-rank-per-brand table.
	Position int
}
