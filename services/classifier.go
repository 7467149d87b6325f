package services

import (
	"regexp"
	"strings"

	"watch-analytics/models"
)

// Keyword sets for the gender classifier. Matching is whole-word; the raw
// substring tie-break below is intentionally coarser (it also counts "men"
// inside "women") and is kept as shipped.
var (
	menKeywords   = []string{"boy", "boys", "man", "men", "male", "mens"}
	womenKeywords = []string{"girl", "girls", "woman", "women", "female", "womens", "ladies", "swarovski", "women_"}

	menPatterns   = compileWordPatterns(menKeywords)
	womenPatterns = compileWordPatterns(womenKeywords)
)

func compileWordPatterns(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return out
}

// CategorizeGender assigns an audience segment based on keywords in the
// product name. Couple and unisex mentions pre-empt the men/women keyword
// sets; when both sets match, raw occurrence counts of "men" and "women"
// break the tie.
func CategorizeGender(name string) models.Gender {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return models.GenderUnknown
	}

	if strings.Contains(lower, "couple") {
		return models.GenderCouple
	}
	if strings.Contains(lower, "unisex") {
		return models.GenderUnisex
	}

	hasMen := anyMatch(menPatterns, lower)
	hasWomen := anyMatch(womenPatterns, lower)

	switch {
	case hasMen && hasWomen:
		menCount := strings.Count(lower, "men")
		womenCount := strings.Count(lower, "women")
		if menCount > womenCount {
			return models.GenderMen
		}
		if womenCount > menCount {
			return models.GenderWomen
		}
		return models.GenderUnisex
	case hasWomen:
		return models.GenderWomen
	case hasMen:
		return models.GenderMen
	default:
		return models.GenderUnknown
	}
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// CategorizePrice maps a parsed price to its reporting band. Lower bounds
// are inclusive; an unparseable price lands in BandUnknown and is excluded
// from pivot aggregates.
func CategorizePrice(price float64, ok bool) models.PriceBand {
	if !ok {
		return models.BandUnknown
	}
	switch {
	case price < 10000:
		return models.BandUnder10k
	case price < 15000:
		return models.Band10to15k
	case price < 25000:
		return models.Band15to25k
	case price < 40000:
		return models.Band25to40k
	default:
		return models.Band40kPlus
	}
}

// fineBins are the half-open [low, high) intervals of the narrower SKU-count
// report, aligned index-for-index with models.FineBinLabels.
var fineBins = []struct {
	low, high float64
}{
	{10000, 11000}, {11000, 12000}, {12000, 13000}, {13000, 14000}, {14000, 15000},
	{15000, 17500}, {17500, 20000}, {20000, 22500}, {22500, 25000},
}

// FinePriceBin maps a price to its fine-grained bin label. Prices outside
// the 10k–25k window carry no bin.
func FinePriceBin(price float64, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	for i, bin := range fineBins {
		if price >= bin.low && price < bin.high {
			return models.FineBinLabels[i], true
		}
	}
	return "", false
}
