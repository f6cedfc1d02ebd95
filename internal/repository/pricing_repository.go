package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yunboheater/piano-studio-api/internal/models"
)

// PricingRepository reads the stored price sheet rows.
type PricingRepository struct {
	db *sqlx.DB
}

// NewPricingRepository constructs the repository.
func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// List returns the stored pricing rows in sheet order.
func (r *PricingRepository) List(ctx context.Context) ([]models.PricingRow, error) {
	const query = `SELECT price, rate FROM pricing ORDER BY price ASC`
	var rows []models.PricingRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list pricing rows: %w", err)
	}
	return rows, nil
}
