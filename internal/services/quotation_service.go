package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"quotation-backend/internal/cache"
	"quotation-backend/internal/metrics"
	"quotation-backend/internal/models"
	"quotation-backend/internal/pricing"
	"quotation-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// maxAmount is the first value that no longer fits DECIMAL(10,2)
var maxAmount = decimal.New(1, 8)

// QuotationStore reads quotation headers
type QuotationStore interface {
	List(ctx context.Context) ([]models.QuotationSummary, error)
	Get(ctx context.Context, number string) (*models.Quotation, error)
}

// ItemStore reads and writes quotation items
type ItemStore interface {
	ListByQuotation(ctx context.Context, number string) ([]models.Item, error)
	UpdateTier(ctx context.Context, number, itemCode string, tier models.Tier, amounts models.TierAmounts) (*models.Item, error)
}

// EventPublisher receives stored tier updates for live subscribers
type EventPublisher interface {
	PublishItemUpdated(event models.ItemUpdatedEvent)
}

type QuotationService struct {
	Quotations QuotationStore
	Items      ItemStore
	Events     EventPublisher
	CacheTTL   time.Duration
}

func NewQuotationService(quotations QuotationStore, items ItemStore, events EventPublisher, cacheTTL time.Duration) *QuotationService {
	return &QuotationService{
		Quotations: quotations,
		Items:      items,
		Events:     events,
		CacheTTL:   cacheTTL,
	}
}

// ListQuotations returns every quotation, newest first
func (s *QuotationService) ListQuotations(ctx context.Context) ([]models.QuotationSummary, error) {
	var list []models.QuotationSummary
	if s.readCache(ctx, "list", cache.QuotationListKey, &list) {
		return list, nil
	}

	list, err := s.Quotations.List(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, cache.QuotationListKey, list)
	return list, nil
}

// GetQuotation returns a quotation with its items. Returns models.ErrNotFound
// for an unknown number.
func (s *QuotationService) GetQuotation(ctx context.Context, number string) (*models.Quotation, error) {
	key := cache.QuotationKey(number)
	var cached models.Quotation
	if s.readCache(ctx, "quotation", key, &cached) {
		return &cached, nil
	}

	q, err := s.Quotations.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	items, err := s.Items.ListByQuotation(ctx, number)
	if err != nil {
		return nil, err
	}
	q.Items = items

	s.writeCache(ctx, key, q)
	return q, nil
}

// UpdateTier validates and stores the three fields of one tier and returns the
// updated item. Empty values clear the stored field.
func (s *QuotationService) UpdateTier(ctx context.Context, number, itemCode, tierName string, req models.TierUpdateRequest) (*models.Item, error) {
	tier, err := models.ParseTier(tierName)
	if err != nil {
		metrics.TierUpdatesTotal.WithLabelValues("unknown", "invalid").Inc()
		return nil, err
	}

	amounts, err := ParseTierAmounts(req.Values())
	if err != nil {
		metrics.TierUpdatesTotal.WithLabelValues(string(tier), "invalid").Inc()
		return nil, err
	}

	item, err := s.Items.UpdateTier(ctx, number, itemCode, tier, amounts)
	if err != nil {
		outcome := "error"
		if errors.Is(err, models.ErrNotFound) {
			outcome = "not_found"
		}
		metrics.TierUpdatesTotal.WithLabelValues(string(tier), outcome).Inc()
		return nil, err
	}

	cache.InvalidateQuotationCaches(ctx, number)
	metrics.TierUpdatesTotal.WithLabelValues(string(tier), "ok").Inc()

	if s.Events != nil {
		s.Events.PublishItemUpdated(models.ItemUpdatedEvent{
			Type:            models.EventItemUpdated,
			QuotationNumber: number,
			ItemCode:        itemCode,
			Tier:            tier,
			Item:            *item,
			At:              timeutil.Now(),
		})
	}
	return item, nil
}

// ParseTierAmounts converts wire values to stored amounts
func ParseTierAmounts(v models.TierValues) (models.TierAmounts, error) {
	var out models.TierAmounts
	var err error
	if out.Packing, err = ParseAmount(v.Packing); err != nil {
		return out, fmt.Errorf("%w: packing", err)
	}
	if out.ProfitMargin, err = ParseAmount(v.ProfitMargin); err != nil {
		return out, fmt.Errorf("%w: profit_margin", err)
	}
	if out.Discount, err = ParseAmount(v.Discount); err != nil {
		return out, fmt.Errorf("%w: discount", err)
	}
	return out, nil
}

// ParseAmount parses a non-negative decimal that fits DECIMAL(10,2). Blank input
// is NULL. Partial input the editor accepts ("12.", ".5") is completed here.
func ParseAmount(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	if !pricing.Accepts(raw) || raw == "." {
		return decimal.NullDecimal{}, models.ErrInvalidAmount
	}

	raw = strings.TrimSuffix(raw, ".")
	if strings.HasPrefix(raw, ".") {
		raw = "0" + raw
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, models.ErrInvalidAmount
	}
	d = d.Round(2)
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.NullDecimal{}, models.ErrInvalidAmount
	}
	return decimal.NewNullDecimal(d), nil
}

func (s *QuotationService) readCache(ctx context.Context, kind, key string, dst interface{}) bool {
	data, ok := cache.GetCached(ctx, key)
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[Redis] Dropping unreadable cache entry %s: %v", key, err)
		cache.InvalidateKeys(ctx, key)
		metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false
	}
	metrics.CacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
	return true
}

func (s *QuotationService) writeCache(ctx context.Context, key string, v interface{}) {
	if s.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	cache.SetCached(ctx, key, data, s.CacheTTL)
}
