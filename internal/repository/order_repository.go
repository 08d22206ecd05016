package repository

import (
	"context"
	"time"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const (
	ordersReadRange   = "orders!A2:G"
	ordersAppendRange = "orders!A:G"
)

// OrderRepo appends pre-order lines to the orders sheet.  Order status
// is advanced by staff in the sheet, never by this service.
type OrderRepo struct {
	store sheets.RangeStore
	now   func() time.Time
}

// NewOrderRepo returns an OrderRepo bound to the given store.
func NewOrderRepo(store sheets.RangeStore) *OrderRepo {
	return &OrderRepo{store: store, now: time.Now}
}

// Create assigns the next "O" id and appends one order line priced at
// the resolved menu price times quantity.  The new id is returned.
func (r *OrderRepo) Create(ctx context.Context, bookingID, itemName string, quantity, price int) (string, error) {
	rows, err := r.store.ReadRange(ctx, ordersReadRange)
	if err != nil {
		return "", err
	}
	id := nextSequenceID(rows, "O")
	row := []any{
		id,
		bookingID,
		itemName,
		quantity,
		price,
		r.now().Format("2006-01-02 15:04"),
		model.OrderStatusPending,
	}
	if err := r.store.AppendRow(ctx, ordersAppendRange, row); err != nil {
		return "", err
	}
	return id, nil
}
