package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableListActiveFiltersAndKeepsOrder(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		tablesRange: {
			{"T1", "У окна", "2", "main", "TRUE"},
			{"T2", "Диван", "6", "main", "false"},
			{"T3", "Бар", "0", "bar", "true"},
			{"T4", "VIP", "8", "vip", "true"},
			{"T5", "short"},
		},
	}}
	repo := NewTableRepo(store)

	tables, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "T1", tables[0].ID)
	assert.Equal(t, "T4", tables[1].ID)
	assert.Equal(t, 8, tables[1].Capacity)
}

func TestMenuListActiveByCategory(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		menuRange: {
			{"cocktails", "Мохито", "классика", "450", "шт", "true"},
			{"cocktails", "Негрони", "", "550", "шт", "false"},
			{"snacks", "Орешки", "", "200", "порция", "true"},
			{"cocktails", "Спритц", "", "по запросу", "шт", "true"}, // unparseable price
		},
	}}
	repo := NewMenuRepo(store)

	all, err := repo.ListActive(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	cocktails, err := repo.ListActive(context.Background(), "cocktails")
	require.NoError(t, err)
	require.Len(t, cocktails, 1)
	assert.Equal(t, "Мохито", cocktails[0].Name)
	assert.Equal(t, 450, cocktails[0].Price)
}

func TestEventListUpcomingCutsOffPastAndLimit(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		eventsRange: {
			{"E1", "Прошедшее", "", "2026-01-01", "2026-01-02", "20:00", "23:00", "", "false", "true"},
			{"E2", "Сегодня", "", "2026-02-10", "2026-02-10", "20:00", "23:00", "", "true", "true"},
			{"E3", "Скрытое", "", "2026-02-20", "2026-02-20", "20:00", "23:00", "", "false", "false"},
			{"E4", "Позже", "", "2026-03-01", "2026-03-02", "19:00", "23:00", "http://img", "false", "true"},
			{"E5", "Ещё позже", "", "2026-04-01", "2026-04-01", "19:00", "23:00", "", "false", "true"},
		},
	}}
	repo := NewEventRepo(store)
	repo.now = func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) }

	events, err := repo.ListUpcoming(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "E2", events[0].ID)
	assert.True(t, events[0].BookingCTA)
	assert.Equal(t, "E4", events[1].ID)
	assert.Equal(t, "http://img", events[1].ImageURL)
}

func TestVenueGetDefaults(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		venueRange: {
			{"address", "ул. Пушкина, 1"},
			{"unknown_key", "ignored"},
			{"short"},
		},
	}}
	repo := NewVenueRepo(store)

	v, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "QRIM Lounge", v.Name)
	assert.Equal(t, "Europe/Moscow", v.Timezone)
	assert.Equal(t, "ул. Пушкина, 1", v.Address)
}

func TestOrderCreateAssignsSequentialID(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		ordersReadRange: {
			{"O0007", "B0001", "Мохито", "2", "900", "2026-02-01 19:00", "pending"},
		},
	}}
	repo := NewOrderRepo(store)
	repo.now = func() time.Time { return time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC) }

	id, err := repo.Create(context.Background(), "B0002", "Орешки", 3, 600)
	require.NoError(t, err)
	assert.Equal(t, "O0008", id)

	require.Len(t, store.appends, 1)
	assert.Equal(t, ordersAppendRange, store.appends[0].a1)
	assert.Equal(t, []any{"O0008", "B0002", "Орешки", 3, 600, "2026-02-10 18:00", "pending"}, store.appends[0].row)
}
