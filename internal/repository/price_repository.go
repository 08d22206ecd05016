package repository

import (
	"context"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const (
	pricesRange  = "prices!A2:H"
	priceColumns = 8
)

// PriceRepo reads the public price list.
type PriceRepo struct {
	store sheets.RangeStore
}

// NewPriceRepo returns a PriceRepo bound to the given store.
func NewPriceRepo(store sheets.RangeStore) *PriceRepo { return &PriceRepo{store: store} }

// ListActive returns active price rows, optionally filtered by
// category.  An empty category means all categories.
func (r *PriceRepo) ListActive(ctx context.Context, category string) ([]model.Price, error) {
	rows, err := r.store.ReadRange(ctx, pricesRange)
	if err != nil {
		return nil, err
	}
	var prices []model.Price
	for _, row := range rows {
		if len(row) < priceColumns {
			continue
		}
		if !parseFlag(row[7]) {
			continue
		}
		if category != "" && row[1] != category {
			continue
		}
		prices = append(prices, model.Price{
			ID:          row[0],
			Category:    row[1],
			Name:        row[2],
			Description: row[3],
			Price:       row[4],
			Unit:        row[5],
			MinQty:      row[6],
			Active:      true,
		})
	}
	return prices, nil
}
