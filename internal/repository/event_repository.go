package repository

import (
	"context"
	"time"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const (
	eventsRange  = "events!A2:J"
	eventColumns = 10
)

// EventRepo reads the events sheet.  Events are curated externally and
// read-only here.
type EventRepo struct {
	store sheets.RangeStore
	now   func() time.Time
}

// NewEventRepo returns an EventRepo bound to the given store.
func NewEventRepo(store sheets.RangeStore) *EventRepo {
	return &EventRepo{store: store, now: time.Now}
}

// ListUpcoming returns up to limit events that are active and whose end
// date has not passed, in sheet order.  Dates compare lexicographically
// because the sheet uses YYYY-MM-DD.
func (r *EventRepo) ListUpcoming(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := r.store.ReadRange(ctx, eventsRange)
	if err != nil {
		return nil, err
	}
	today := r.now().Format("2006-01-02")
	var events []model.Event
	for _, row := range rows {
		if len(row) < eventColumns {
			continue
		}
		if !parseFlag(row[9]) || row[4] < today {
			continue
		}
		events = append(events, model.Event{
			ID:          row[0],
			Title:       row[1],
			Description: row[2],
			DateFrom:    row[3],
			DateTo:      row[4],
			TimeFrom:    row[5],
			TimeTo:      row[6],
			ImageURL:    row[7],
			BookingCTA:  parseFlag(row[8]),
			Active:      true,
		})
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}
