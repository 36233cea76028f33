package models

// Tier is one of the three pricing profiles attached to every item
type Tier string

const (
	TierHigh       Tier = "high"
	TierMedium     Tier = "medium"
	TierEconomical Tier = "economical"
)

// Field is one of the editable cost components of a tier
type Field string

const (
	FieldPacking      Field = "packing"
	FieldProfitMargin Field = "profit_margin"
	FieldDiscount     Field = "discount"
)

// Tiers is the closed tier set in display order
var Tiers = [3]Tier{TierHigh, TierMedium, TierEconomical}

// Fields is the closed field set in display order
var Fields = [3]Field{FieldPacking, FieldProfitMargin, FieldDiscount}

// Index returns the position of t in Tiers, or -1 for an unknown tier
func (t Tier) Index() int {
	for i, v := range Tiers {
		if v == t {
			return i
		}
	}
	return -1
}

// Label is the capitalised name used in tables ("High", "Medium", "Economical")
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "High"
	case TierMedium:
		return "Medium"
	case TierEconomical:
		return "Economical"
	}
	return string(t)
}

// Index returns the position of f in Fields, or -1 for an unknown field
func (f Field) Index() int {
	for i, v := range Fields {
		if v == f {
			return i
		}
	}
	return -1
}

// Label is the display name of a field ("Profit margin")
func (f Field) Label() string {
	switch f {
	case FieldPacking:
		return "Packing"
	case FieldProfitMargin:
		return "Profit margin"
	case FieldDiscount:
		return "Discount"
	}
	return string(f)
}

// IsValidTier checks if a tier name is one of high, medium, economical
func IsValidTier(name string) bool {
	return Tier(name).Index() >= 0
}

// ParseTier converts a path segment into a Tier
func ParseTier(name string) (Tier, error) {
	if !IsValidTier(name) {
		return "", ErrInvalidTier
	}
	return Tier(name), nil
}

// ParseField converts a field name into a Field
func ParseField(name string) (Field, error) {
	f := Field(name)
	if f.Index() < 0 {
		return "", ErrInvalidField
	}
	return f, nil
}

// ColumnName returns the flattened key of a tier field, e.g. "high_packing".
// It is used both as the JSON key of Item and as the items table column.
func ColumnName(t Tier, f Field) string {
	return string(t) + "_" + string(f)
}
