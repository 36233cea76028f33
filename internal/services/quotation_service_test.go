package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quotation-backend/internal/models"

	"github.com/shopspring/decimal"
)

type memStore struct {
	mu         sync.Mutex
	quotations map[string]*models.Quotation
	updates    int
}

func newMemStore() *memStore {
	return &memStore{quotations: map[string]*models.Quotation{
		"Q100": {
			QuotationNumber: "Q100",
			Date:            models.NewDate(2023, time.December, 23),
			Items: []models.Item{{
				QuotationNumber: "Q100",
				ItemCode:        "IT-1",
				Description:     "Rod assembly",
				Qty:             2,
				Pcs:             4,
				Rod:             decimal.NewFromInt(10),
				Coating:         decimal.NewFromInt(5),
				PreProcess:      decimal.NewFromInt(2),
				PostProcess:     decimal.NewFromInt(3),
			}},
		},
	}}
}

func (m *memStore) List(ctx context.Context) ([]models.QuotationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.QuotationSummary
	for _, q := range m.quotations {
		out = append(out, models.QuotationSummary{QuotationNumber: q.QuotationNumber, Date: q.Date})
	}
	return out, nil
}

func (m *memStore) Get(ctx context.Context, number string) (*models.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotations[number]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.Quotation{QuotationNumber: q.QuotationNumber, Date: q.Date}, nil
}

func (m *memStore) ListByQuotation(ctx context.Context, number string) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotations[number]
	if !ok {
		return []models.Item{}, nil
	}
	return append([]models.Item(nil), q.Items...), nil
}

func (m *memStore) UpdateTier(ctx context.Context, number, itemCode string, tier models.Tier, amounts models.TierAmounts) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotations[number]
	if !ok {
		return nil, models.ErrNotFound
	}
	idx := q.IndexOf(itemCode)
	if idx < 0 {
		return nil, models.ErrNotFound
	}
	m.updates++
	q.Items[idx].SetTier(tier, models.TierValues{
		Packing:      nullString(amounts.Packing),
		ProfitMargin: nullString(amounts.ProfitMargin),
		Discount:     nullString(amounts.Discount),
	})
	item := q.Items[idx]
	return &item, nil
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

type recordingPublisher struct {
	events []models.ItemUpdatedEvent
}

func (p *recordingPublisher) PublishItemUpdated(e models.ItemUpdatedEvent) {
	p.events = append(p.events, e)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		null  bool
		valid bool
	}{
		{raw: "", null: true, valid: true},
		{raw: "  ", null: true, valid: true},
		{raw: "12", want: "12", valid: true},
		{raw: "12.5", want: "12.5", valid: true},
		{raw: "12.", want: "12", valid: true},
		{raw: ".5", want: "0.5", valid: true},
		{raw: "1.234", want: "1.23", valid: true},
		{raw: "99999999.99", want: "99999999.99", valid: true},
		{raw: "100000000", valid: false},
		{raw: ".", valid: false},
		{raw: "-1", valid: false},
		{raw: "abc", valid: false},
		{raw: "1.2.3", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if !tt.valid {
				if !errors.Is(err, models.ErrInvalidAmount) {
					t.Fatalf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.raw, err)
			}
			if tt.null {
				if got.Valid {
					t.Fatalf("ParseAmount(%q) = %v, want NULL", tt.raw, got.Decimal)
				}
				return
			}
			if !got.Valid || got.Decimal.String() != tt.want {
				t.Fatalf("ParseAmount(%q) = %v, want %s", tt.raw, got.Decimal, tt.want)
			}
		})
	}
}

func TestUpdateTier(t *testing.T) {
	store := newMemStore()
	events := &recordingPublisher{}
	svc := NewQuotationService(store, store, events, 0)
	ctx := context.Background()

	req := models.TierUpdateRequest{Packing: "4", ProfitMargin: "1", Discount: "0"}
	item, err := svc.UpdateTier(ctx, "Q100", "IT-1", "high", req)
	if err != nil {
		t.Fatalf("UpdateTier: %v", err)
	}
	if got := item.Tier(models.TierHigh); got != (models.TierValues{Packing: "4", ProfitMargin: "1", Discount: "0"}) {
		t.Fatalf("high tier = %+v", got)
	}
	if len(events.events) != 1 {
		t.Fatalf("published %d events, want 1", len(events.events))
	}
	e := events.events[0]
	if e.Type != models.EventItemUpdated || e.Tier != models.TierHigh || e.ItemCode != "IT-1" {
		t.Fatalf("event = %+v", e)
	}
}

func TestUpdateTierErrors(t *testing.T) {
	ctx := context.Background()
	valid := models.TierUpdateRequest{Packing: "1"}

	tests := []struct {
		name    string
		number  string
		code    string
		tier    string
		req     models.TierUpdateRequest
		wantErr error
	}{
		{"unknown tier", "Q100", "IT-1", "premium", valid, models.ErrInvalidTier},
		{"negative amount", "Q100", "IT-1", "high", models.TierUpdateRequest{Discount: "-2"}, models.ErrInvalidAmount},
		{"letters", "Q100", "IT-1", "medium", models.TierUpdateRequest{Packing: "ten"}, models.ErrInvalidAmount},
		{"unknown item", "Q100", "IT-9", "economical", valid, models.ErrNotFound},
		{"unknown quotation", "Q999", "IT-1", "high", valid, models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			events := &recordingPublisher{}
			svc := NewQuotationService(store, store, events, 0)

			_, err := svc.UpdateTier(ctx, tt.number, tt.code, tt.tier, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if len(events.events) != 0 {
				t.Fatal("failed update published an event")
			}
			if tt.wantErr != models.ErrNotFound && store.updates != 0 {
				t.Fatal("invalid request reached the store")
			}
		})
	}
}

func TestUpdateTierClearsWithEmptyValues(t *testing.T) {
	store := newMemStore()
	svc := NewQuotationService(store, store, nil, 0)
	ctx := context.Background()

	if _, err := svc.UpdateTier(ctx, "Q100", "IT-1", "medium", models.TierUpdateRequest{Packing: "3"}); err != nil {
		t.Fatal(err)
	}
	item, err := svc.UpdateTier(ctx, "Q100", "IT-1", "medium", models.TierUpdateRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if item.MediumPacking != "" {
		t.Fatalf("medium_packing = %q, want cleared", item.MediumPacking)
	}
}

func TestGetQuotation(t *testing.T) {
	store := newMemStore()
	svc := NewQuotationService(store, store, nil, time.Minute)
	ctx := context.Background()

	q, err := svc.GetQuotation(ctx, "Q100")
	if err != nil {
		t.Fatalf("GetQuotation: %v", err)
	}
	if len(q.Items) != 1 || q.Items[0].ItemCode != "IT-1" {
		t.Fatalf("items = %+v", q.Items)
	}

	if _, err := svc.GetQuotation(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing quotation error = %v, want ErrNotFound", err)
	}
}

func TestGenerateQuotationPDF(t *testing.T) {
	store := newMemStore()
	q := store.quotations["Q100"]
	q.Items[0].HighPacking = "4"

	data, err := GenerateQuotationPDF(q)
	if err != nil {
		t.Fatalf("GenerateQuotationPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:8])
	}
}

func TestFormatRupees(t *testing.T) {
	if got := FormatRupees(decimal.RequireFromString("12.5")); got != "Rs. 12.50" {
		t.Fatalf("FormatRupees = %q", got)
	}
}
