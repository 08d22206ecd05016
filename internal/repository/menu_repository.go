package repository

import (
	"context"
	"strconv"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const (
	menuRange   = "menu!A2:F"
	menuColumns = 6
)

// MenuRepo reads the orderable menu.  Unlike prices, menu rows carry a
// numeric price so order lines can be totalled.
type MenuRepo struct {
	store sheets.RangeStore
}

// NewMenuRepo returns a MenuRepo bound to the given store.
func NewMenuRepo(store sheets.RangeStore) *MenuRepo { return &MenuRepo{store: store} }

// ListActive returns active menu items, optionally filtered by
// category.  Rows whose price does not parse are skipped; an item
// without a price cannot be ordered.
func (r *MenuRepo) ListActive(ctx context.Context, category string) ([]model.MenuItem, error) {
	rows, err := r.store.ReadRange(ctx, menuRange)
	if err != nil {
		return nil, err
	}
	var items []model.MenuItem
	for _, row := range rows {
		if len(row) < menuColumns {
			continue
		}
		if !parseFlag(row[5]) {
			continue
		}
		if category != "" && row[0] != category {
			continue
		}
		price, err := strconv.Atoi(row[3])
		if err != nil {
			continue
		}
		items = append(items, model.MenuItem{
			Category:    row[0],
			Name:        row[1],
			Description: row[2],
			Price:       price,
			Unit:        row[4],
			Active:      true,
		})
	}
	return items, nil
}
