package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"watch-analytics/models"
	"watch-analytics/utils"
)

// priceDigitsRegexp captures the first plausible rupee amount: a run of 3 to
// 6 digits once currency symbols and thousands separators are stripped.
var priceDigitsRegexp = regexp.MustCompile(`\d{3,6}`)

// unwantedKeywords mark accessory and tooling listings that pollute the
// watch catalog and are dropped outright.
var unwantedKeywords = []string{
	"pocket watch", "repair tool", "watch bezel", "watch band", "tool", "watch winder", "watch case",
}

// Cleaner transforms RawListings into classified CatalogRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean validates, deduplicates and classifies raw listings. Rows missing a
// product name or price are dropped silently (reflected only in the final
// count), as are duplicate URLs, accessory listings, and repeated
// (product name, product code) pairs.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.CatalogRecord {
	seenURL := make(map[string]struct{})
	seenPair := make(map[string]struct{})
	result := make([]*models.CatalogRecord, 0, len(raw))

	for _, r := range raw {
		name := normaliseText(r.ProductName)
		if name == "" || strings.TrimSpace(r.RawPrice) == "" {
			c.logger.Debug("[cleaner] Dropping listing missing name or price: %s", r.URL)
			continue
		}

		url := strings.TrimSpace(r.URL)
		if url != "" {
			if _, dup := seenURL[url]; dup {
				c.logger.Debug("[cleaner] Duplicate URL skipped: %s", url)
				continue
			}
			seenURL[url] = struct{}{}
		}

		if hasUnwantedKeyword(name) {
			c.logger.Debug("[cleaner] Accessory listing skipped: %s", name)
			continue
		}

		code, hasCode := ExtractProductCode(name)

		// Visually similar names can collide on the same code; only the
		// first (name, code) pair survives.
		pairKey := name + "\x00" + code
		if _, dup := seenPair[pairKey]; dup {
			continue
		}
		seenPair[pairKey] = struct{}{}

		price, priceOK := c.parsePrice(r.RawPrice)

		rec := &models.CatalogRecord{
			URL:         url,
			ProductName: name,
			RawPrice:    r.RawPrice,
			Price:       price,
			PriceOK:     priceOK,
			Code:        code,
			HasCode:     hasCode,
			Brand:       ExtractBrand(name),
			Gender:      CategorizeGender(name),
		}
		rec.Band = CategorizePrice(price, priceOK)
		rec.Position = len(result) + 1

		result = append(result, rec)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts a numeric price from a currency-formatted string such
// as "₹12,495.00". Returns ok=false when no plausible amount is present.
func (c *Cleaner) parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, "₹", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	match := priceDigitsRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

func hasUnwantedKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range unwantedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
