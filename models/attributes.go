package models

// AttributeColumns is the fixed ordered schema of the normalized attribute
// tables. Every output row carries all of these columns, possibly as empty
// strings — a column is never omitted.
var AttributeColumns = []string{
	"URL", "Brand", "Product Name", "Model Number", "Price", "Ratings", "Discount",
	"Band Colour", "Band Material", "Band Width", "Case Diameter",
	"Case Material", "Case Thickness", "Dial Colour", "Crystal Material",
	"Case Shape", "Movement", "Water Resistance Depth", "Special Features",
	"ImageURL",
}

// IdentityColumns are populated from the raw listing itself and are never
// overwritten by fallback reconciliation.
var IdentityColumns = []string{
	"URL", "Brand", "Product Name", "Model Number", "Price", "Ratings", "Discount", "ImageURL",
}

// SpecColumns returns the attribute columns that are eligible for fallback
// substitution (everything outside IdentityColumns), in schema order.
func SpecColumns() []string {
	identity := make(map[string]struct{}, len(IdentityColumns))
	for _, c := range IdentityColumns {
		identity[c] = struct{}{}
	}
	cols := make([]string, 0, len(AttributeColumns)-len(IdentityColumns))
	for _, c := range AttributeColumns {
		if _, ok := identity[c]; !ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// AttributeRow is one normalized attribute record keyed by canonical column
// name. Use NewAttributeRow so every column is present from the start.
type AttributeRow map[string]string

// NewAttributeRow returns a row with every attribute column set to "".
func NewAttributeRow() AttributeRow {
	row := make(AttributeRow, len(AttributeColumns))
	for _, c := range AttributeColumns {
		row[c] = ""
	}
	return row
}

// Clone returns a deep copy of the row.
func (r AttributeRow) Clone() AttributeRow {
	out := make(AttributeRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
