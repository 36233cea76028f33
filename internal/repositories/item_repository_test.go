package repositories

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"quotation-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func TestNullString(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.NullDecimal
		want string
	}{
		{"null", decimal.NullDecimal{}, ""},
		{"zero", decimal.NewNullDecimal(decimal.Zero), "0"},
		{"integer", decimal.NewNullDecimal(decimal.NewFromInt(4)), "4"},
		{"fraction", decimal.NewNullDecimal(decimal.RequireFromString("12.50")), "12.5"},
		{"negative", decimal.NewNullDecimal(decimal.RequireFromString("-0.75")), "-0.75"},
		{"invalid with value", decimal.NullDecimal{Decimal: decimal.NewFromInt(7)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nullString(tt.in); got != tt.want {
				t.Fatalf("nullString = %q, want %q", got, tt.want)
			}
		})
	}
}

// columnRow answers Scan from values keyed by column name, in itemColumns order
type columnRow struct {
	values map[string]any
	err    error
}

func (r columnRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	cols := strings.Split(itemColumns, ",")
	if len(cols) != len(dest) {
		return fmt.Errorf("%d columns selected, %d scanned", len(cols), len(dest))
	}
	for i, col := range cols {
		col = strings.TrimSpace(col)
		v, ok := r.values[col]
		if !ok {
			continue
		}
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *decimal.Decimal:
			*d = v.(decimal.Decimal)
		case *decimal.NullDecimal:
			*d = v.(decimal.NullDecimal)
		default:
			return fmt.Errorf("column %s: unexpected destination %T", col, dest[i])
		}
	}
	return nil
}

func TestScanItemMapsTierColumns(t *testing.T) {
	values := map[string]any{
		"quotation_number": "Q100",
		"item_code":        "IT-1",
		"description":      "Rod assembly",
		"qty":              5,
		"pcs":              21,
		"prices_high":      decimal.RequireFromString("3664.18"),
		"prices_medium":    decimal.RequireFromString("2559.39"),
		"rod":              decimal.NewFromInt(10),
		"post_process":     decimal.NewFromInt(3),
	}
	// a distinct amount per tier column, except one left NULL
	want := map[string]string{}
	n := 1
	for _, tier := range models.Tiers {
		for _, field := range models.Fields {
			col := models.ColumnName(tier, field)
			if col == "medium_discount" {
				values[col] = decimal.NullDecimal{}
				want[col] = ""
				continue
			}
			values[col] = decimal.NewNullDecimal(decimal.NewFromInt(int64(n)))
			want[col] = fmt.Sprint(n)
			n++
		}
	}

	item, err := scanItem(columnRow{values: values})
	if err != nil {
		t.Fatalf("scanItem: %v", err)
	}

	for _, tier := range models.Tiers {
		got := item.Tier(tier)
		for _, field := range models.Fields {
			col := models.ColumnName(tier, field)
			if got.Get(field) != want[col] {
				t.Errorf("%s = %q, want %q", col, got.Get(field), want[col])
			}
		}
	}
	if item.ItemCode != "IT-1" || item.Qty != 5 || item.Pcs != 21 {
		t.Errorf("descriptive fields = %+v", item)
	}
	if item.PricesHigh.String() != "3664.18" || !item.PricesEconomical.IsZero() {
		t.Errorf("totals = %s / %s", item.PricesHigh, item.PricesEconomical)
	}
	if !item.Rod.Equal(decimal.NewFromInt(10)) || !item.PostProcess.Equal(decimal.NewFromInt(3)) {
		t.Errorf("fixed costs = %s / %s", item.Rod, item.PostProcess)
	}
}

func TestScanItemPassesErrorsThrough(t *testing.T) {
	_, err := scanItem(columnRow{err: pgx.ErrNoRows})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("error = %v, want pgx.ErrNoRows", err)
	}
}
