package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watch-analytics/models"
	"watch-analytics/utils"
)

func newTestReconciler() *Reconciler {
	return NewReconciler(utils.NewLogger())
}

func primaryRow(url string, cols map[string]string) models.AttributeRow {
	row := models.NewAttributeRow()
	row["URL"] = url
	for col, val := range cols {
		row[col] = val
	}
	return row
}

func TestApplyFillsOnlyEmptySpecColumns(t *testing.T) {
	rec := newTestReconciler()

	primary := []models.AttributeRow{
		primaryRow("https://example.com/1", map[string]string{
			"Band Colour": "Brown",
			"Movement":    "",
		}),
	}
	fallback := []map[string]string{
		{
			"url":         "https://example.com/1",
			"band_colour": "Black",
			"movement":    "Quartz",
			"dial_colour": "White",
		},
	}

	out := rec.Apply(primary, fallback)
	require.Len(t, out, 1)

	// The already-present value wins; only gaps are filled.
	assert.Equal(t, "Brown", out[0]["Band Colour"])
	assert.Equal(t, "Quartz", out[0]["Movement"])
	assert.Equal(t, "White", out[0]["Dial Colour"])
}

func TestApplyIsIdempotent(t *testing.T) {
	rec := newTestReconciler()

	primary := []models.AttributeRow{
		primaryRow("https://example.com/1", nil),
	}
	fallback := []map[string]string{
		{"url": "https://example.com/1", "case_material": "Stainless Steel"},
	}

	once := rec.Apply(primary, fallback)
	twice := rec.Apply(once, fallback)
	assert.Equal(t, once, twice)
}

func TestApplyNeverTouchesIdentityColumns(t *testing.T) {
	rec := newTestReconciler()

	primary := []models.AttributeRow{
		primaryRow("https://example.com/1", map[string]string{
			"Product Name": "Titan Men Watch 1802KM01",
			"Price":        "",
		}),
	}
	fallback := []map[string]string{
		{
			"url":          "https://example.com/1",
			"product_name": "Different Name",
			"price":        "₹9,999",
		},
	}

	out := rec.Apply(primary, fallback)
	require.Len(t, out, 1)
	assert.Equal(t, "Titan Men Watch 1802KM01", out[0]["Product Name"])
	assert.Equal(t, "", out[0]["Price"])
}

func TestApplyDropsUnmatchedFallbackRows(t *testing.T) {
	rec := newTestReconciler()

	primary := []models.AttributeRow{
		primaryRow("https://example.com/1", nil),
	}
	fallback := []map[string]string{
		{"url": "https://example.com/other", "movement": "Automatic"},
	}

	out := rec.Apply(primary, fallback)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0]["Movement"])
}

func TestApplyPreservesColumnSet(t *testing.T) {
	rec := newTestReconciler()

	primary := []models.AttributeRow{
		primaryRow("https://example.com/1", nil),
	}
	fallback := []map[string]string{
		{
			"url":           "https://example.com/1",
			"movement":      "Quartz",
			"unknown_extra": "noise",
		},
	}

	out := rec.Apply(primary, fallback)
	require.Len(t, out, 1)
	// No fallback-only columns leak into the fixed schema.
	assert.Len(t, out[0], len(models.AttributeColumns))
	_, present := out[0]["unknown_extra"]
	assert.False(t, present)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rec := newTestReconciler()

	primary := []models.AttributeRow{
		primaryRow("https://example.com/1", nil),
	}
	fallback := []map[string]string{
		{"url": "https://example.com/1", "movement": "Quartz"},
	}

	rec.Apply(primary, fallback)
	assert.Equal(t, "", primary[0]["Movement"])
}

func TestRenameFallbackColumns(t *testing.T) {
	renamed := renameFallbackColumns(map[string]string{
		"URL":              "https://example.com/1",
		"rating(out_of_5)": "4.2",
		"band_width":       "22 Millimeters",
		"junk_column":      "dropped",
	})

	assert.Equal(t, "https://example.com/1", renamed["URL"])
	assert.Equal(t, "4.2", renamed["Ratings"])
	assert.Equal(t, "22 Millimeters", renamed["Band Width"])
	_, junk := renamed["junk_column"]
	assert.False(t, junk)
}
