package services

import (
	"strings"

	"watch-analytics/models"
	"watch-analytics/utils"
)

// fallbackRenameMap translates the fallback source's snake_case (and
// occasionally typo'd) column names to the canonical attribute columns.
var fallbackRenameMap = map[string]string{
	"url":                    "URL",
	"brand":                  "Brand",
	"model_number":           "Model Number",
	"product_name":           "Product Name",
	"ratings":                "Ratings",
	"rating(out_of_5)":       "Ratings",
	"price":                  "Price",
	"discount":               "Discount",
	"band_colour":            "Band Colour",
	"band_material":          "Band Material",
	"band_width":             "Band Width",
	"case_diameter":          "Case Diameter",
	"case_material":          "Case Material",
	"case_thickness":         "Case Thickness",
	"dial_colour":            "Dial Colour",
	"crystal_material":       "Crystal Material",
	"case_shape":             "Case Shape",
	"movement":               "Movement",
	"water_resistance_depth": "Water Resistance Depth",
	"special_features":       "Special Features",
	"imageurl":               "ImageURL",
}

// Reconciler fills gaps in primary attribute rows from a secondary
// ("filled") source keyed by URL.
type Reconciler struct {
	logger *utils.Logger
}

// NewReconciler creates a Reconciler with the given logger.
func NewReconciler(logger *utils.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Apply merges primary rows with fallback rows on URL. Every primary row is
// kept; fallback rows without a primary match are dropped. A spec column is
// substituted from the fallback only when the primary value is empty, so
// re-applying the same fallback is a no-op. Identity columns are never
// touched and no fallback-only columns leak into the output.
func (r *Reconciler) Apply(primary []models.AttributeRow, fallback []map[string]string) []models.AttributeRow {
	byURL := make(map[string]map[string]string, len(fallback))
	for _, raw := range fallback {
		renamed := renameFallbackColumns(raw)
		if url := renamed["URL"]; url != "" {
			byURL[url] = renamed
		}
	}

	filled := 0
	out := make([]models.AttributeRow, 0, len(primary))
	for _, row := range primary {
		merged := row.Clone()
		if fb, ok := byURL[merged["URL"]]; ok {
			for _, col := range models.SpecColumns() {
				if merged[col] == "" && fb[col] != "" {
					merged[col] = fb[col]
					filled++
				}
			}
		}
		out = append(out, merged)
	}

	r.logger.Info("[reconciler] Reconciled %d rows against %d fallback rows (%d values filled)",
		len(primary), len(fallback), filled)
	return out
}

// renameFallbackColumns maps a raw fallback row onto canonical column names,
// discarding columns with no canonical counterpart.
func renameFallbackColumns(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for col, val := range raw {
		key := strings.ToLower(strings.TrimSpace(col))
		if canonical, ok := fallbackRenameMap[key]; ok {
			if out[canonical] == "" {
				out[canonical] = val
			}
		}
	}
	return out
}
