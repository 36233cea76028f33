package pricing

import (
	"errors"
	"testing"

	"quotation-backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestAccepts(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"12", true},
		{"12.5", true},
		{"12.", true},
		{".5", true},
		{"0", true},
		{"12.5.3", false},
		{"abc", false},
		{"-1", false},
		{"+1", false},
		{"1e5", false},
		{" 1", false},
		{"1,5", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Accepts(tt.raw); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSetFieldEveryTierAndField(t *testing.T) {
	for _, tier := range models.Tiers {
		for _, field := range models.Fields {
			t.Run(string(tier)+"/"+string(field), func(t *testing.T) {
				var r Record

				if err := r.SetField(tier, field, "12.5"); err != nil {
					t.Fatalf("SetField 12.5: %v", err)
				}
				if got := r.Get(tier, field); got != "12.5" {
					t.Fatalf("after 12.5 got %q", got)
				}

				for _, bad := range []string{"12.5.3", "abc"} {
					err := r.SetField(tier, field, bad)
					if !errors.Is(err, ErrValidationRejected) {
						t.Fatalf("SetField(%q) error = %v, want ErrValidationRejected", bad, err)
					}
					if got := r.Get(tier, field); got != "12.5" {
						t.Fatalf("after rejected %q got %q, want previous value", bad, got)
					}
				}

				if err := r.SetField(tier, field, ""); err != nil {
					t.Fatalf("SetField empty: %v", err)
				}
				if got := r.Get(tier, field); got != "" {
					t.Fatalf("after empty got %q", got)
				}
			})
		}
	}
}

func TestSetFieldOnlyTouchesOneValue(t *testing.T) {
	r := Initialize(models.Item{HighPacking: "1", MediumDiscount: "2"})
	if err := r.SetField(models.TierEconomical, models.FieldProfitMargin, "7"); err != nil {
		t.Fatal(err)
	}
	if r.Get(models.TierHigh, models.FieldPacking) != "1" || r.Get(models.TierMedium, models.FieldDiscount) != "2" {
		t.Fatalf("unrelated fields changed: %+v", r)
	}
}

func TestSetFieldUnknownKeys(t *testing.T) {
	var r Record
	if err := r.SetField("premium", models.FieldPacking, "1"); !errors.Is(err, models.ErrInvalidTier) {
		t.Errorf("unknown tier error = %v", err)
	}
	if err := r.SetField(models.TierHigh, "freight", "1"); !errors.Is(err, models.ErrInvalidField) {
		t.Errorf("unknown field error = %v", err)
	}
	if r.Len() != 9 {
		t.Errorf("Len() = %d, want 9", r.Len())
	}
	if got := r.Get("premium", models.FieldPacking); got != "" {
		t.Errorf("unknown tier read %q", got)
	}
}

func TestInitialize(t *testing.T) {
	item := models.Item{
		ItemCode:          "X72-02-00",
		HighPacking:       "10",
		HighProfitMargin:  "5.5",
		MediumDiscount:    "3",
		EconomicalPacking: "0",
	}
	r := Initialize(item)

	if r.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", r.Len())
	}

	want := map[string]string{
		"high_packing":             "10",
		"high_profit_margin":       "5.5",
		"high_discount":            "",
		"medium_packing":           "",
		"medium_profit_margin":     "",
		"medium_discount":          "3",
		"economical_packing":       "0",
		"economical_profit_margin": "",
		"economical_discount":      "",
	}
	count := 0
	for _, tier := range models.Tiers {
		for _, field := range models.Fields {
			key := models.ColumnName(tier, field)
			if got := r.Get(tier, field); got != want[key] {
				t.Errorf("%s = %q, want %q", key, got, want[key])
			}
			count++
		}
	}
	if count != 9 {
		t.Fatalf("visited %d values", count)
	}
}

func TestInitializeEmptyItem(t *testing.T) {
	r := Initialize(models.Item{})
	for _, tier := range models.Tiers {
		for _, field := range models.Fields {
			if got := r.Get(tier, field); got != "" {
				t.Errorf("%s/%s = %q, want empty", tier, field, got)
			}
		}
	}
}

func TestApplyKeepsNonTierFields(t *testing.T) {
	item := models.Item{
		ItemCode:    "IT-1",
		Description: "SC End mill",
		Qty:         5,
		Pcs:         21,
		PricesHigh:  decimal.RequireFromString("3664.18"),
		HighPacking: "1",
	}
	r := Initialize(item)
	_ = r.SetField(models.TierHigh, models.FieldPacking, "4")
	_ = r.SetField(models.TierMedium, models.FieldDiscount, "2.5")

	got := r.Apply(item)
	if got.HighPacking != "4" || got.MediumDiscount != "2.5" {
		t.Fatalf("tier fields not applied: %+v", got)
	}
	if got.Description != item.Description || got.Qty != 5 || got.Pcs != 21 {
		t.Fatalf("descriptive fields changed: %+v", got)
	}
	if !got.PricesHigh.Equal(item.PricesHigh) {
		t.Fatalf("prices_high changed to %s", got.PricesHigh)
	}
	if item.HighPacking != "1" {
		t.Fatalf("Apply mutated its input")
	}
}
