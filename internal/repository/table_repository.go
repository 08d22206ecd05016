package repository

import (
	"context"
	"strconv"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const tablesRange = "tables!A2:E"

// TableRepo reads the venue's tables.  Tables are never written by this
// service.
type TableRepo struct {
	store sheets.RangeStore
}

// NewTableRepo returns a TableRepo bound to the given store.
func NewTableRepo(store sheets.RangeStore) *TableRepo { return &TableRepo{store: store} }

// ListActive returns active tables in sheet order.  The availability
// engine relies on that order for its first-fit scan.  Rows shorter
// than five columns or with a non-positive capacity are skipped.
func (r *TableRepo) ListActive(ctx context.Context) ([]model.Table, error) {
	rows, err := r.store.ReadRange(ctx, tablesRange)
	if err != nil {
		return nil, err
	}
	tables := make([]model.Table, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		if !parseFlag(row[4]) {
			continue
		}
		capacity, err := strconv.Atoi(row[2])
		if err != nil || capacity <= 0 {
			continue
		}
		tables = append(tables, model.Table{
			ID:       row[0],
			Name:     row[1],
			Capacity: capacity,
			Zone:     row[3],
			Active:   true,
		})
	}
	return tables, nil
}
