package services

import (
	"watch-analytics/models"
	"watch-analytics/utils"
)

// rawColumnMapping maps raw listing fields to their canonical attribute
// column names. These identity columns come from the listing itself, never
// from the parsed spec blob or the fallback source.
var rawColumnMapping = map[string]func(*models.RawListing) string{
	"URL":          func(r *models.RawListing) string { return r.URL },
	"Brand":        func(r *models.RawListing) string { return r.BrandName },
	"Product Name": func(r *models.RawListing) string { return r.ProductName },
	"Model Number": func(r *models.RawListing) string { return r.ModelNumber },
	"Price":        func(r *models.RawListing) string { return r.RawPrice },
	"Ratings":      func(r *models.RawListing) string { return r.Ratings },
	"Discount":     func(r *models.RawListing) string { return r.Discount },
	"ImageURL":     func(r *models.RawListing) string { return r.ImageURL },
}

// dimensionColumns are unit-normalized after reconciliation.
var dimensionColumns = []string{"Band Width", "Case Diameter", "Case Thickness"}

// AttributeBuilder reshapes raw listings into the fixed 20-column
// normalized attribute schema.
type AttributeBuilder struct {
	logger *utils.Logger
}

// NewAttributeBuilder creates an AttributeBuilder with the given logger.
func NewAttributeBuilder(logger *utils.Logger) *AttributeBuilder {
	return &AttributeBuilder{logger: logger}
}

// Build produces one attribute row per listing. Each column is filled, in
// priority order, from the mapped raw field and then from the parsed spec
// blob; columns with no source stay as empty strings so the row shape is
// always complete.
func (b *AttributeBuilder) Build(listings []*models.RawListing) []models.AttributeRow {
	rows := make([]models.AttributeRow, 0, len(listings))

	for _, l := range listings {
		specs := ParseSpecs(l.Specs)

		row := models.NewAttributeRow()
		for col, get := range rawColumnMapping {
			row[col] = get(l)
		}
		for _, col := range models.AttributeColumns {
			if row[col] == "" {
				if v, ok := specs[col]; ok {
					row[col] = v
				}
			}
		}
		rows = append(rows, row)
	}

	b.logger.Info("[attributes] Built %d attribute rows", len(rows))
	return rows
}

// NormalizeDimensions canonicalizes the physical measurement columns of
// every row in place and returns the same slice.
func (b *AttributeBuilder) NormalizeDimensions(rows []models.AttributeRow) []models.AttributeRow {
	for _, row := range rows {
		for _, col := range dimensionColumns {
			row[col] = NormalizeDimension(row[col])
		}
	}
	return rows
}
