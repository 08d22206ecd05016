// Package availability finds a free table for a requested date, time
// and party size.  The search is a first-fit linear scan over the
// venue's tables with a fixed turnover buffer between bookings on the
// same table; at venue scale that is all the scheduling this system
// needs.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/KoponovVadim/qrim/internal/model"
)

// BufferMinutes is the minimum separation between two bookings on the
// same table.  A difference of exactly BufferMinutes does NOT conflict;
// the check is a strict less-than.
const BufferMinutes = 120

// timeLayout is the wall-clock format bookings are stored in.
const timeLayout = "15:04"

// TableSource supplies the active tables in their stored order.
type TableSource interface {
	ListActive(ctx context.Context) ([]model.Table, error)
}

// BookingSource supplies all bookings on a date, any status.
type BookingSource interface {
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
}

// Result is the outcome of an availability check.  TableID is set only
// when Available is true.
type Result struct {
	Date      string
	Time      string
	Guests    int
	Available bool
	TableID   string
}

// Service implements the availability check against the record store.
type Service struct {
	tables   TableSource
	bookings BookingSource
}

// NewService returns a Service reading tables and bookings from the
// given sources.
func NewService(tables TableSource, bookings BookingSource) *Service {
	return &Service{tables: tables, bookings: bookings}
}

// Check walks the active tables in stored order and returns the first
// one whose capacity covers the party and whose confirmed bookings on
// that date all sit at least BufferMinutes away from the requested
// time.  Cancelled bookings never count as occupying.  When no table
// qualifies the result is simply not available; that is a business
// outcome, not an error.
func (s *Service) Check(ctx context.Context, date, timeStr string, guests int) (Result, error) {
	requested, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return Result{}, fmt.Errorf("availability: bad time %q: %w", timeStr, err)
	}
	tables, err := s.tables.ListActive(ctx)
	if err != nil {
		return Result{}, err
	}
	bookings, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return Result{}, err
	}

	res := Result{Date: date, Time: timeStr, Guests: guests}
	for _, table := range tables {
		if table.Capacity < guests {
			continue
		}
		if tableOccupied(table.ID, requested, bookings) {
			continue
		}
		res.Available = true
		res.TableID = table.ID
		return res, nil
	}
	return res, nil
}

// tableOccupied reports whether any confirmed booking on the table
// falls inside the buffer window around the requested time.  Bookings
// with an unparseable time are skipped rather than treated as
// conflicts.
func tableOccupied(tableID string, requested time.Time, bookings []model.Booking) bool {
	for _, b := range bookings {
		if b.TableID != tableID || b.Status == model.BookingStatusCancelled {
			continue
		}
		existing, err := time.Parse(timeLayout, b.Time)
		if err != nil {
			continue
		}
		diff := requested.Sub(existing)
		if diff < 0 {
			diff = -diff
		}
		if diff < BufferMinutes*time.Minute {
			return true
		}
	}
	return false
}
