package models

// OtherBrand is the display label used at the storage boundary for product
// names matching no known brand keyword.
const OtherBrand = "Others"

// Brand is a canonical brand label. The zero value means "no brand keyword
// matched", which is distinct from any real label and only becomes the
// "Others" sentinel when serialized.
type Brand struct {
	label   string
	matched bool
}

// KnownBrand wraps a canonical label from the brand vocabulary.
func KnownBrand(label string) Brand {
	return Brand{label: label, matched: true}
}

// Matched reports whether a brand keyword matched the product name.
func (b Brand) Matched() bool { return b.matched }

// Label returns the display label, "Others" for the no-match state.
func (b Brand) Label() string {
	if !b.matched {
		return OtherBrand
	}
	return b.label
}
