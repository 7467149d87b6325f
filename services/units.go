package services

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	firstNumberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
	bareNumberRegexp  = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

const millimetersSuffix = " Millimeters"

// NormalizeDimension rewrites a raw dimension string ("2.2 Centimeters",
// "22 millimetres", "22") into the canonical "<number> Millimeters" form.
// Values it cannot confidently normalize — qualitative text, "N/A", already
// canonical strings — pass through unchanged, which also makes the function
// idempotent.
func NormalizeDimension(raw string) string {
	if raw == "" {
		return raw
	}

	lower := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.Contains(lower, "centimeter"):
		num := firstNumberRegexp.FindString(lower)
		if num == "" {
			return raw
		}
		val, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return raw
		}
		return formatNumber(val*10) + millimetersSuffix

	case strings.Contains(lower, "millimeter"), strings.Contains(lower, "millimetre"):
		num := firstNumberRegexp.FindString(lower)
		if num == "" {
			return raw
		}
		return num + millimetersSuffix

	case bareNumberRegexp.MatchString(lower):
		return lower + millimetersSuffix

	default:
		return raw
	}
}

// formatNumber renders an integral float without the trailing ".0".
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
