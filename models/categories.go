package models

// Gender is the audience segment derived from a product name.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMen
	GenderWomen
	GenderUnisex
	GenderCouple
)

func (g Gender) String() string {
	switch g {
	case GenderMen:
		return "Men"
	case GenderWomen:
		return "Women"
	case GenderUnisex:
		return "Unisex"
	case GenderCouple:
		return "Couple"
	default:
		return "Unknown"
	}
}

// PriceBand is a labeled half-open price interval, lower bound inclusive.
// BandUnknown marks an unparseable price and is excluded from pivot reports.
type PriceBand int

const (
	BandUnknown PriceBand = iota
	BandUnder10k
	Band10to15k
	Band15to25k
	Band25to40k
	Band40kPlus
)

func (b PriceBand) String() string {
	switch b {
	case BandUnder10k:
		return "<10k"
	case Band10to15k:
		return "10k–15k"
	case Band15to25k:
		return "15k–25k"
	case Band25to40k:
		return "25k–40k"
	case Band40kPlus:
		return "40k+"
	default:
		return "Unknown"
	}
}

// PriceBandOrder is the reporting column order for price-band pivots.
var PriceBandOrder = []PriceBand{
	BandUnder10k,
	Band10to15k,
	Band15to25k,
	Band25to40k,
	Band40kPlus,
}

// FineBinLabels is the column order for the narrower SKU-count report that
// buckets the 10k–25k range into finer intervals.
var FineBinLabels = []string{
	"10 - 11k", "11k-12k", "12k-13k", "13k-14k", "14k-15k",
	"15k-17.5k", "17.5-20k", "20k-22.5k", "22.5-25k",
}
