package models

import (
	"github.com/shopspring/decimal"
)

// Item represents a single quotation line with its fixed costs and three pricing tiers.
// Tier fields are kept as text: an empty string means the column is unset.
type Item struct {
	QuotationNumber string `json:"quotation_number"`
	ItemCode        string `json:"item_code"`
	Description     string `json:"description"`
	Qty             int    `json:"qty"`
	Pcs             int    `json:"pcs"`

	// Server-computed totals, never recomputed by clients
	PricesHigh       decimal.Decimal `json:"prices_high"`
	PricesMedium     decimal.Decimal `json:"prices_medium"`
	PricesEconomical decimal.Decimal `json:"prices_economical"`

	// Fixed cost components
	Rod         decimal.Decimal `json:"rod"`
	Coating     decimal.Decimal `json:"coating"`
	PreProcess  decimal.Decimal `json:"pre_process"`
	PostProcess decimal.Decimal `json:"post_process"`

	HighPacking            string `json:"high_packing"`
	HighProfitMargin       string `json:"high_profit_margin"`
	HighDiscount           string `json:"high_discount"`
	MediumPacking          string `json:"medium_packing"`
	MediumProfitMargin     string `json:"medium_profit_margin"`
	MediumDiscount         string `json:"medium_discount"`
	EconomicalPacking      string `json:"economical_packing"`
	EconomicalProfitMargin string `json:"economical_profit_margin"`
	EconomicalDiscount     string `json:"economical_discount"`
}

// TierValues is the editable part of one tier; it is also the PUT body sent per tier
type TierValues struct {
	Packing      string `json:"packing"`
	ProfitMargin string `json:"profit_margin"`
	Discount     string `json:"discount"`
}

// Get returns the value of one field
func (v TierValues) Get(f Field) string {
	switch f {
	case FieldPacking:
		return v.Packing
	case FieldProfitMargin:
		return v.ProfitMargin
	case FieldDiscount:
		return v.Discount
	}
	return ""
}

// tierFields returns pointers to the three fields of tier t in Fields order
func (i *Item) tierFields(t Tier) [3]*string {
	switch t {
	case TierHigh:
		return [3]*string{&i.HighPacking, &i.HighProfitMargin, &i.HighDiscount}
	case TierMedium:
		return [3]*string{&i.MediumPacking, &i.MediumProfitMargin, &i.MediumDiscount}
	case TierEconomical:
		return [3]*string{&i.EconomicalPacking, &i.EconomicalProfitMargin, &i.EconomicalDiscount}
	}
	return [3]*string{}
}

// Tier returns the current values of tier t. Unknown tiers yield empty values.
func (i Item) Tier(t Tier) TierValues {
	p := i.tierFields(t)
	if p[0] == nil {
		return TierValues{}
	}
	return TierValues{Packing: *p[0], ProfitMargin: *p[1], Discount: *p[2]}
}

// SetTier overwrites the three fields of tier t. Unknown tiers are ignored.
func (i *Item) SetTier(t Tier, v TierValues) {
	p := i.tierFields(t)
	if p[0] == nil {
		return
	}
	*p[0], *p[1], *p[2] = v.Packing, v.ProfitMargin, v.Discount
}

// Total returns the stored total price of tier t
func (i Item) Total(t Tier) decimal.Decimal {
	switch t {
	case TierHigh:
		return i.PricesHigh
	case TierMedium:
		return i.PricesMedium
	case TierEconomical:
		return i.PricesEconomical
	}
	return decimal.Zero
}

// FixedCost is one read-only cost row shown above the editable tier fields
type FixedCost struct {
	Name  string
	Value decimal.Decimal
}

// FixedCosts returns rod, coating, pre process and post process in display order
func (i Item) FixedCosts() []FixedCost {
	return []FixedCost{
		{Name: "Rod", Value: i.Rod},
		{Name: "Coating", Value: i.Coating},
		{Name: "Pre process", Value: i.PreProcess},
		{Name: "Post process", Value: i.PostProcess},
	}
}

// TierAmounts is a validated tier update as stored; an invalid NullDecimal is NULL
type TierAmounts struct {
	Packing      decimal.NullDecimal
	ProfitMargin decimal.NullDecimal
	Discount     decimal.NullDecimal
}
