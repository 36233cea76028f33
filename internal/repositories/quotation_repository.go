package repositories

import (
	"context"
	"errors"
	"fmt"

	"quotation-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuotationRepository struct {
	DB *pgxpool.Pool
}

func NewQuotationRepository(db *pgxpool.Pool) *QuotationRepository {
	return &QuotationRepository{DB: db}
}

// List returns every quotation, newest first
func (r *QuotationRepository) List(ctx context.Context) ([]models.QuotationSummary, error) {
	query := `
		SELECT quotation_number, date
		FROM quotations
		ORDER BY date DESC, quotation_number DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()

	list := []models.QuotationSummary{}
	for rows.Next() {
		var q models.QuotationSummary
		if err := rows.Scan(&q.QuotationNumber, &q.Date.Time); err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Get returns the quotation header without items
func (r *QuotationRepository) Get(ctx context.Context, number string) (*models.Quotation, error) {
	query := `SELECT quotation_number, date FROM quotations WHERE quotation_number = $1`

	var q models.Quotation
	err := r.DB.QueryRow(ctx, query, number).Scan(&q.QuotationNumber, &q.Date.Time)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quotation %s: %w", number, err)
	}
	return &q, nil
}
