// Package pricing holds the editable three-tier snapshot of one quotation item.
//
// A Record always has exactly three tiers with exactly three fields each. Values
// are live-editing buffers: SetField accepts partial input such as "12." and
// silently keeps the previous value for anything that is not a non-negative
// decimal in progress.
package pricing

import (
	"errors"
	"regexp"

	"quotation-backend/internal/models"
)

// ErrValidationRejected is returned by SetField when the keystroke is discarded
var ErrValidationRejected = errors.New("value rejected: only digits and one decimal point allowed")

var numericInput = regexp.MustCompile(`^\d*\.?\d*$`)

// Accepts reports whether raw may be stored in a Record
func Accepts(raw string) bool {
	return raw == "" || numericInput.MatchString(raw)
}

// Record is the editable snapshot of an item's nine tier fields
type Record struct {
	values [3][3]string
}

// Initialize projects the tier fields of item into a Record.
// Unset fields become empty strings.
func Initialize(item models.Item) Record {
	var r Record
	for ti, t := range models.Tiers {
		v := item.Tier(t)
		for fi, f := range models.Fields {
			r.values[ti][fi] = v.Get(f)
		}
	}
	return r
}

// Get returns the current value of one field; unknown keys read as empty
func (r Record) Get(t models.Tier, f models.Field) string {
	ti, fi := t.Index(), f.Index()
	if ti < 0 || fi < 0 {
		return ""
	}
	return r.values[ti][fi]
}

// SetField stores raw if it passes the numeric filter. On rejection the previous
// value is kept and ErrValidationRejected is returned. Unknown tiers or fields
// are never introduced.
func (r *Record) SetField(t models.Tier, f models.Field, raw string) error {
	ti, fi := t.Index(), f.Index()
	if ti < 0 {
		return models.ErrInvalidTier
	}
	if fi < 0 {
		return models.ErrInvalidField
	}
	if !Accepts(raw) {
		return ErrValidationRejected
	}
	r.values[ti][fi] = raw
	return nil
}

// Tier returns the three values of tier t as a PUT body
func (r Record) Tier(t models.Tier) models.TierValues {
	return models.TierValues{
		Packing:      r.Get(t, models.FieldPacking),
		ProfitMargin: r.Get(t, models.FieldProfitMargin),
		Discount:     r.Get(t, models.FieldDiscount),
	}
}

// Apply returns item with its nine tier fields overwritten by the record.
// Every other field, including prices_<tier>, is left as is.
func (r Record) Apply(item models.Item) models.Item {
	for _, t := range models.Tiers {
		item.SetTier(t, r.Tier(t))
	}
	return item
}

// Len is the number of values held, always 9
func (r Record) Len() int {
	return len(r.values) * len(r.values[0])
}
