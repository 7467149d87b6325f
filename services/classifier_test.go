package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watch-analytics/models"
)

func TestCategorizeGender(t *testing.T) {
	tests := []struct {
		name string
		want models.Gender
	}{
		// Couple is checked before any men/women keyword logic.
		{"Couple Watch Set for Him and Her", models.GenderCouple},
		{"Unisex Analog Watch", models.GenderUnisex},
		{"Titan Edge Men's Slim Watch", models.GenderMen},
		{"Fossil Women Bracelet Watch", models.GenderWomen},
		{"Watch for Boys with silicone strap", models.GenderMen},
		{"Ladies analog watch rose gold", models.GenderWomen},
		// swarovski is a women keyword by contract.
		{"Swarovski crystal analog watch", models.GenderWomen},
		// Whole-word matching: "women" inside "womens" must not match bare sets.
		{"Charming analog timepiece", models.GenderUnknown},
		{"", models.GenderUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeGender(tt.name), "gender for %q", tt.name)
	}
}

func TestCategorizeGenderTieBreak(t *testing.T) {
	// Both sets match and the raw substring counts of "men" vs "women"
	// decide. "women" itself contains "men", so "men and women" counts
	// men=2 women=1 and lands on Men — the documented coarseness of the
	// substring re-check.
	assert.Equal(t, models.GenderMen, CategorizeGender("watch for men and women"))
	// Here the only "men" occurrence sits inside "women": counts tie 1-1.
	assert.Equal(t, models.GenderUnisex, CategorizeGender("women watch for male"))
}

func TestCategorizePrice(t *testing.T) {
	tests := []struct {
		price float64
		ok    bool
		want  models.PriceBand
	}{
		{9999, true, models.BandUnder10k},
		// Boundary values land in the upper band.
		{10000, true, models.Band10to15k},
		{14999, true, models.Band10to15k},
		{15000, true, models.Band15to25k},
		{24999, true, models.Band15to25k},
		{25000, true, models.Band25to40k},
		{39999.99, true, models.Band25to40k},
		{40000, true, models.Band40kPlus},
		{250000, true, models.Band40kPlus},
		{0, false, models.BandUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizePrice(tt.price, tt.ok), "price %.2f", tt.price)
	}
}

func TestCategorizePriceLabels(t *testing.T) {
	assert.Equal(t, "<10k", CategorizePrice(9999, true).String())
	assert.Equal(t, "10k–15k", CategorizePrice(10000, true).String())
	assert.Equal(t, "Unknown", CategorizePrice(0, false).String())
}

func TestFinePriceBin(t *testing.T) {
	tests := []struct {
		price float64
		ok    bool
		want  string
		found bool
	}{
		{10000, true, "10 - 11k", true},
		{10999, true, "10 - 11k", true},
		{11000, true, "11k-12k", true},
		{14999, true, "14k-15k", true},
		{15000, true, "15k-17.5k", true},
		{17500, true, "17.5-20k", true},
		{24999, true, "22.5-25k", true},
		// Outside the 10k–25k window there is no fine bin.
		{9999, true, "", false},
		{25000, true, "", false},
		{0, false, "", false},
	}

	for _, tt := range tests {
		got, found := FinePriceBin(tt.price, tt.ok)
		assert.Equal(t, tt.found, found, "found for %.0f", tt.price)
		assert.Equal(t, tt.want, got, "bin for %.0f", tt.price)
	}
}
