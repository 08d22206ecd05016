package repository

import (
	"context"

	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/sheets"
)

const venueRange = "venue!A2:B"

// VenueRepo reads the venue profile.  The sheet stores one key/value
// pair per row; unknown keys are ignored and missing keys fall back to
// defaults so a half-filled sheet still yields a usable profile.
type VenueRepo struct {
	store sheets.RangeStore
}

// NewVenueRepo returns a VenueRepo bound to the given store.
func NewVenueRepo(store sheets.RangeStore) *VenueRepo { return &VenueRepo{store: store} }

// Get folds the key/value rows into a Venue.  Rows with fewer than two
// columns are skipped.
func (r *VenueRepo) Get(ctx context.Context) (model.Venue, error) {
	rows, err := r.store.ReadRange(ctx, venueRange)
	if err != nil {
		return model.Venue{}, err
	}
	kv := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		kv[row[0]] = row[1]
	}
	v := model.Venue{
		Name:       kv["name"],
		City:       kv["city"],
		Address:    kv["address"],
		Phone:      kv["phone"],
		Timezone:   kv["timezone"],
		WorkSunThu: kv["work_sun_thu"],
		WorkFriSat: kv["work_fri_sat"],
	}
	if v.Name == "" {
		v.Name = "QRIM Lounge"
	}
	if v.Timezone == "" {
		v.Timezone = "Europe/Moscow"
	}
	return v, nil
}
