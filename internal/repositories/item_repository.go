package repositories

import (
	"context"
	"errors"
	"fmt"

	"quotation-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const itemColumns = `
	quotation_number, item_code, description, qty, pcs,
	prices_high, prices_medium, prices_economical,
	rod, coating, pre_process, post_process,
	high_packing, high_profit_margin, high_discount,
	medium_packing, medium_profit_margin, medium_discount,
	economical_packing, economical_profit_margin, economical_discount`

type ItemRepository struct {
	DB *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{DB: db}
}

// ListByQuotation returns the items of a quotation in insertion order
func (r *ItemRepository) ListByQuotation(ctx context.Context, number string) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE quotation_number = $1 ORDER BY id`

	rows, err := r.DB.Query(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", number, err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateTier stores the three fields of one tier and returns the updated row.
// Returns models.ErrNotFound when no item matches.
func (r *ItemRepository) UpdateTier(ctx context.Context, number, itemCode string, tier models.Tier, amounts models.TierAmounts) (*models.Item, error) {
	if !models.IsValidTier(string(tier)) {
		return nil, models.ErrInvalidTier
	}

	// Column names come from the fixed tier/field sets, never from input
	query := fmt.Sprintf(`
		UPDATE items
		SET %s = $1, %s = $2, %s = $3
		WHERE quotation_number = $4 AND item_code = $5
		RETURNING %s`,
		models.ColumnName(tier, models.FieldPacking),
		models.ColumnName(tier, models.FieldProfitMargin),
		models.ColumnName(tier, models.FieldDiscount),
		itemColumns,
	)

	row := r.DB.QueryRow(ctx, query,
		amounts.Packing, amounts.ProfitMargin, amounts.Discount,
		number, itemCode,
	)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s tier of %s/%s: %w", tier, number, itemCode, err)
	}
	return item, nil
}

// ResetTiers clears every tier column, optionally for one quotation only
func (r *ItemRepository) ResetTiers(ctx context.Context, number string) (int64, error) {
	query := `
		UPDATE items SET
			high_packing = NULL, high_profit_margin = NULL, high_discount = NULL,
			medium_packing = NULL, medium_profit_margin = NULL, medium_discount = NULL,
			economical_packing = NULL, economical_profit_margin = NULL, economical_discount = NULL
		WHERE $1 = '' OR quotation_number = $1
	`
	tag, err := r.DB.Exec(ctx, query, number)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanItem(row pgx.Row) (*models.Item, error) {
	var (
		item  models.Item
		tiers [9]decimal.NullDecimal
	)
	err := row.Scan(
		&item.QuotationNumber, &item.ItemCode, &item.Description, &item.Qty, &item.Pcs,
		&item.PricesHigh, &item.PricesMedium, &item.PricesEconomical,
		&item.Rod, &item.Coating, &item.PreProcess, &item.PostProcess,
		&tiers[0], &tiers[1], &tiers[2],
		&tiers[3], &tiers[4], &tiers[5],
		&tiers[6], &tiers[7], &tiers[8],
	)
	if err != nil {
		return nil, err
	}

	for i, t := range models.Tiers {
		item.SetTier(t, models.TierValues{
			Packing:      nullString(tiers[i*3]),
			ProfitMargin: nullString(tiers[i*3+1]),
			Discount:     nullString(tiers[i*3+2]),
		})
	}
	return &item, nil
}

// nullString renders a stored amount; NULL becomes ""
func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
