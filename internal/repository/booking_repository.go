package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const (
	bookingsReadRange   = "bookings!A2:J"
	bookingsAppendRange = "bookings!A:J"
	// bookingsHeaderRows is the offset between a row's position in the
	// read range and its 1-based sheet row: row 0 of the range is sheet
	// row 2 because row 1 holds the header.
	bookingsHeaderRows = 1
	bookingColumns     = 10
)

// Single-cell columns targeted by updates.
const (
	bookingTimeColumn   = "C"
	bookingGuestsColumn = "D"
	bookingStatusColumn = "I"
)

// BookingRepo owns all reads and writes of the bookings sheet: filtered
// scans, id generation, row appends and targeted cell updates.  It
// keeps no cached state; every call round-trips to the store.
type BookingRepo struct {
	store sheets.RangeStore
	now   func() time.Time
}

// NewBookingRepo returns a BookingRepo bound to the given store.
func NewBookingRepo(store sheets.RangeStore) *BookingRepo {
	return &BookingRepo{store: store, now: time.Now}
}

// BookingUpdate lists the mutable booking fields.  Empty values are
// left untouched.
type BookingUpdate struct {
	Time   string
	Guests string
}

// parseBooking maps a fixed-position row to a Booking.  Rows shorter
// than the expected column count are treated as absent, not as errors.
func parseBooking(row []string) (model.Booking, bool) {
	if len(row) < bookingColumns {
		return model.Booking{}, false
	}
	guests, _ := strconv.Atoi(row[3])
	return model.Booking{
		ID:        row[0],
		Date:      row[1],
		Time:      row[2],
		Guests:    guests,
		TableID:   row[4],
		Name:      row[5],
		Phone:     row[6],
		Source:    row[7],
		Status:    row[8],
		CreatedAt: row[9],
	}, true
}

// ListByDate returns every booking on the given date, any status.
// Callers filter out cancelled rows themselves where it matters.
func (r *BookingRepo) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	rows, err := r.store.ReadRange(ctx, bookingsReadRange)
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	for _, row := range rows {
		b, ok := parseBooking(row)
		if !ok || b.Date != date {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// FindConfirmedByPhone returns the confirmed bookings for a phone
// number in sheet order.  The first element is therefore the oldest
// stored booking, which is the one order resolution acts on.
func (r *BookingRepo) FindConfirmedByPhone(ctx context.Context, phone string) ([]model.Booking, error) {
	rows, err := r.store.ReadRange(ctx, bookingsReadRange)
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	for _, row := range rows {
		b, ok := parseBooking(row)
		if !ok || b.Phone != phone || b.Status != model.BookingStatusConfirmed {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// HasConfirmed reports whether a confirmed booking already exists for
// the phone/date pair.  The dialogue flow runs this before any
// availability check to reject duplicates early.
func (r *BookingRepo) HasConfirmed(ctx context.Context, phone, date string) (bool, error) {
	rows, err := r.store.ReadRange(ctx, bookingsReadRange)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		b, ok := parseBooking(row)
		if !ok {
			continue
		}
		if b.Phone == phone && b.Date == date && b.Status == model.BookingStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

// Create assigns the next "B" id, appends the booking row and returns
// the id.  Source, status and creation time are filled here.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (string, error) {
	rows, err := r.store.ReadRange(ctx, bookingsReadRange)
	if err != nil {
		return "", err
	}
	id := nextSequenceID(rows, "B")
	createdAt := r.now().Format("2006-01-02 15:04")
	row := []any{
		id,
		b.Date,
		b.Time,
		b.Guests,
		b.TableID,
		b.Name,
		b.Phone,
		model.BookingSourceTelegram,
		model.BookingStatusConfirmed,
		createdAt,
	}
	if err := r.store.AppendRow(ctx, bookingsAppendRange, row); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateFields overwrites the time and/or guests cells of the booking
// row matching id.  Each non-empty field becomes one cell update
// addressed by the matched row's sheet index.
func (r *BookingRepo) UpdateFields(ctx context.Context, id string, upd BookingUpdate) error {
	rowNum, err := r.findRow(ctx, id)
	if err != nil {
		return err
	}
	if upd.Time != "" {
		a1 := fmt.Sprintf("bookings!%s%d", bookingTimeColumn, rowNum)
		if err := r.store.UpdateCell(ctx, a1, upd.Time); err != nil {
			return err
		}
	}
	if upd.Guests != "" {
		a1 := fmt.Sprintf("bookings!%s%d", bookingGuestsColumn, rowNum)
		if err := r.store.UpdateCell(ctx, a1, upd.Guests); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus overwrites only the status cell of the booking row
// matching id.
func (r *BookingRepo) SetStatus(ctx context.Context, id, status string) error {
	rowNum, err := r.findRow(ctx, id)
	if err != nil {
		return err
	}
	a1 := fmt.Sprintf("bookings!%s%d", bookingStatusColumn, rowNum)
	return r.store.UpdateCell(ctx, a1, status)
}

// findRow locates the 1-based sheet row of a booking id, accounting for
// the header row.  ErrBookingNotFound is returned when no row matches.
func (r *BookingRepo) findRow(ctx context.Context, id string) (int, error) {
	rows, err := r.store.ReadRange(ctx, bookingsReadRange)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			return i + bookingsHeaderRows + 1, nil
		}
	}
	return 0, ErrBookingNotFound
}
