package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"watch-analytics/models"
)

var (
	// tokenRegexp captures maximal runs of letters, digits, underscores,
	// dashes, slashes and periods — codes like "CDL.0006" or "ES/5218"
	// survive as single tokens.
	tokenRegexp = regexp.MustCompile(`\b[\w.\-/]+\b`)
	// measurementRegexp matches a trailing dash segment like "22mm" or
	// "4 cm" that is a physical measurement rather than part of the code.
	measurementRegexp = regexp.MustCompile(`(?i)^\d+\s*(mm|cm|in)$`)
)

// noisePrefixes are marketing fragments that get glued onto a code token by
// the tokenizer and must be stripped before the code is emitted.
var noisePrefixes = []string{
	"watch-",
	"women-",
	"men-",
	"strap-",
	"collection-",
	"couple-",
}

// ExtractProductCode derives a SKU/model code from a free-text product name.
// The returned code is upper-cased; ok is false when no qualifying token
// exists. The function is pure: equal inputs always yield equal outputs.
func ExtractProductCode(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	tokens := tokenRegexp.FindAllString(name, -1)

	candidates := filterCandidates(tokens)
	if len(candidates) == 0 {
		return "", false
	}

	// Tokens glued together with underscores or slashes hide the real code;
	// split them and re-test the halves.
	refined := make([]string, 0, len(candidates))
	for _, tok := range candidates {
		switch {
		case strings.Contains(tok, "_"):
			refined = append(refined, strings.Split(tok, "_")...)
		case strings.Contains(tok, "/"):
			refined = append(refined, strings.Split(tok, "/")...)
		default:
			refined = append(refined, tok)
		}
	}

	final := filterCandidates(refined)
	if len(final) == 0 {
		return "", false
	}

	// The code almost always trails the descriptive text, so pick the
	// candidate whose last occurrence sits closest to the end of the name.
	// On an exact index tie the first-seen candidate wins.
	var selected string
	lastIndex := -1
	for _, tok := range final {
		if idx := strings.LastIndex(name, tok); idx > lastIndex {
			lastIndex = idx
			selected = tok
		}
	}

	cleaned := cleanToken(selected)
	if cleaned == "" {
		return "", false
	}
	return strings.ToUpper(cleaned), true
}

// filterCandidates keeps tokens that are either all digits with length >= 4
// or contain at least one letter and one digit.
func filterCandidates(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if isAllDigits(tok) {
			if len(tok) >= 4 {
				out = append(out, tok)
			}
			continue
		}
		if containsLetter(tok) && containsDigit(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// cleanToken strips noise prefixes and a trailing measurement segment
// ("-22mm") from a candidate code.
func cleanToken(token string) string {
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(strings.ToLower(token), prefix) {
			token = token[len(prefix):]
		}
	}

	if strings.Contains(token, "-") {
		parts := strings.Split(token, "-")
		if measurementRegexp.MatchString(parts[len(parts)-1]) {
			token = strings.Join(parts[:len(parts)-1], "-")
		}
	}
	return token
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// brandMapping maps a lower-case keyword found in a product name to the
// canonical brand label. Longer keywords are tried first so "titan edge"
// beats "titan" and "tommy hilfiger" beats "tommy".
var brandMapping = map[string]string{
	"tommy hilfiger":        "Tommy Hilfiger",
	"tommy":                 "Tommy Hilfiger",
	"armani exchange":       "Armani Exchange",
	"diesel":                "Diesel",
	"fossil":                "Fossil",
	"titan edge":            "Titan Edge",
	"titan":                 "Titan",
	"casio":                 "Casio",
	"michael kors":          "Michael Kors",
	"maserati":              "Maserati",
	"luminox":               "Luminox",
	"zeppelin":              "Zeppelin",
	"seiko":                 "Seiko",
	"ted baker":             "Ted Baker",
	"invicta":               "Invicta",
	"citizen":               "Citizen",
	"emporio armani":        "Emporio Armani",
	"guess":                 "Guess",
	"fiece":                 "Fiece",
	"just cavalli":          "Just Cavalli",
	"earnshaw":              "Earnshaw",
	"alba":                  "Alba",
	"daniel wellington":     "Daniel Wellington",
	"police":                "Police",
	"olevs":                 "Olevs",
	"ducati":                "Ducati",
	"mathey-tissot":         "Mathey-Tissot",
	"timex":                 "Timex",
	"swarovski":             "Swarovski",
	"nautica":               "Nautica",
	"swiss military hanowa": "Swiss Military Hanowa",
	"lacoste":               "Lacoste",
	"boss":                  "Boss",
	"anne klein":            "Anne Klein",
	"calvin klein":          "Calvin Klein",
	"pierre cardin":         "Pierre Cardin",
	"coach":                 "Coach",
	"p philip":              "P Philip",
	"tag heuer":             "Tag Heuer",
	"kenneth cole":          "Kenneth Cole",
	"philipp plein":         "Philipp Plein",
	"guy laroche":           "Guy Laroche",
	"carlos philip":         "Carlos Philip",
	"adidas":                "Adidas",
	"movado":                "Movado",
	"daniel klein":          "Daniel Klein",
	"sonata":                "Sonata",
	"d1 milano":             "D1 Milano",
	"alexandre christie":    "Alexandre Christie",
	"santa barbara":         "Santa Barbara Polo & Racquet Club",
	"mini cooper":           "MINI Cooper",
	"hanowa":                "Hanowa",
	"charles-hubert":        "Charles-Hubert",
	"gc":                    "GC",
}

// brandKeywords holds the mapping keys in descending length order, computed
// once so ExtractBrand stays deterministic on overlapping keywords.
var brandKeywords = func() []string {
	keys := make([]string, 0, len(brandMapping))
	for k := range brandMapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// ExtractBrand resolves a product name to a canonical brand label via
// case-insensitive substring matching against the brand vocabulary.
func ExtractBrand(name string) models.Brand {
	lower := strings.ToLower(name)

	// "xylys" always implies the Titan sub-brand even though "titan" alone
	// maps to a different label.
	if strings.Contains(lower, "xylys") {
		return models.KnownBrand("Titan XYLYS")
	}

	for _, key := range brandKeywords {
		if strings.Contains(lower, key) {
			return models.KnownBrand(brandMapping[key])
		}
	}
	return models.Brand{}
}
