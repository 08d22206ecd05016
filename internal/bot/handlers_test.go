package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoponovVadim/qrim/internal/availability"
	"github.com/KoponovVadim/qrim/internal/dialogue"
	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/repository"
	"github.com/KoponovVadim/qrim/internal/session"
)

// fakeStore is an in-memory sheets.RangeStore recording writes.
type fakeStore struct {
	rows    map[string][][]string
	appends []fakeAppend
	updates []fakeUpdate
}

type fakeAppend struct {
	a1  string
	row []any
}

type fakeUpdate struct {
	a1    string
	value any
}

func (f *fakeStore) ReadRange(_ context.Context, a1 string) ([][]string, error) {
	return f.rows[a1], nil
}

func (f *fakeStore) AppendRow(_ context.Context, a1 string, row []any) error {
	f.appends = append(f.appends, fakeAppend{a1: a1, row: row})
	return nil
}

func (f *fakeStore) UpdateCell(_ context.Context, a1 string, value any) error {
	f.updates = append(f.updates, fakeUpdate{a1: a1, value: value})
	return nil
}

// memDialogueStore satisfies dialogue.Store for handler tests.
type memDialogueStore struct{ states map[int64]*dialogue.State }

func newMemDialogueStore() *memDialogueStore {
	return &memDialogueStore{states: map[int64]*dialogue.State{}}
}

func (m *memDialogueStore) Get(_ context.Context, userID int64) (*dialogue.State, error) {
	st, ok := m.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *memDialogueStore) Save(_ context.Context, userID int64, st *dialogue.State) error {
	cp := *st
	m.states[userID] = &cp
	return nil
}

func (m *memDialogueStore) Clear(_ context.Context, userID int64) error {
	delete(m.states, userID)
	return nil
}

// stubClassifier satisfies the Classifier interface; handler tests call
// the handlers directly and never reach it.
type stubClassifier struct{ intent model.Intent }

func (s stubClassifier) Classify(context.Context, string, []session.Turn) model.Intent {
	return s.intent
}

func newTestBot(store *fakeStore) *Bot {
	repos := Repos{
		Venue:    repository.NewVenueRepo(store),
		Bookings: repository.NewBookingRepo(store),
		Events:   repository.NewEventRepo(store),
		Prices:   repository.NewPriceRepo(store),
		Menu:     repository.NewMenuRepo(store),
		Orders:   repository.NewOrderRepo(store),
	}
	avail := availability.NewService(repository.NewTableRepo(store), repos.Bookings)
	dlg := dialogue.NewManager(newMemDialogueStore(), repos.Bookings, avail)
	return New(nil, stubClassifier{}, dlg, nil, repos)
}

func confirmedBookingRow(id, date, timeStr, guests, tableID, name, phone string) []string {
	return []string{id, date, timeStr, guests, tableID, name, phone, "telegram", "confirmed", "2026-01-01 12:00"}
}

func TestHandleBookFullFlowCreatesBooking(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		"tables!A2:E":   {{"T1", "У окна", "4", "main", "true"}},
		"bookings!A2:J": {},
	}}
	b := newTestBot(store)

	replies := b.handleBook(context.Background(), 42, model.Slots{
		Date: "2026-03-02", Time: "19:00", Guests: "2",
		Name: "Анна", Phone: "+79991112233",
	})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].text, "Столик забронирован")
	assert.Contains(t, replies[0].text, "B0001")

	require.Len(t, store.appends, 1)
	assert.Equal(t, "bookings!A:J", store.appends[0].a1)
}

func TestHandleBookPromptsForMissingField(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{}}
	b := newTestBot(store)

	replies := b.handleBook(context.Background(), 42, model.Slots{Date: "2026-03-02"})
	require.Len(t, replies, 1)
	assert.Equal(t, "Укажите время (например, 19:00)", replies[0].text)
	assert.Empty(t, store.appends)
}

func TestHandleCancelDisambiguatesWithoutWriting(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		"bookings!A2:J": {
			confirmedBookingRow("B0001", "2026-03-02", "19:00", "2", "T1", "Анна", "+7999"),
			confirmedBookingRow("B0002", "2026-03-05", "20:00", "4", "T2", "Анна", "+7999"),
		},
	}}
	b := newTestBot(store)

	replies := b.handleCancel(context.Background(), model.Slots{Phone: "+7999"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].text, "несколько активных броней")
	assert.Contains(t, replies[0].text, "B0001")
	assert.Contains(t, replies[0].text, "B0002")
	assert.Empty(t, store.updates, "no cancellation may happen before disambiguation")
}

func TestHandleCancelByExplicitID(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		"bookings!A2:J": {
			confirmedBookingRow("B0001", "2026-03-02", "19:00", "2", "T1", "Анна", "+7999"),
			confirmedBookingRow("B0002", "2026-03-05", "20:00", "4", "T2", "Анна", "+7999"),
		},
	}}
	b := newTestBot(store)

	replies := b.handleCancel(context.Background(), model.Slots{Phone: "+7999", BookingID: "b0002"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].text, "Бронь отменена")

	require.Len(t, store.updates, 1)
	assert.Equal(t, "bookings!I3", store.updates[0].a1)
	assert.Equal(t, model.BookingStatusCancelled, store.updates[0].value)
}

func TestHandleCancelNeedsPhone(t *testing.T) {
	b := newTestBot(&fakeStore{rows: map[string][][]string{}})

	replies := b.handleCancel(context.Background(), model.Slots{})
	require.Len(t, replies, 1)
	assert.Equal(t, replyPhoneNeeded, replies[0].text)
}

func TestHandleOrderPartialMatch(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		"bookings!A2:J": {
			confirmedBookingRow("B0001", "2026-03-02", "19:00", "2", "T1", "Анна", "+7999"),
		},
		"menu!A2:F": {
			{"cocktails", "Мохито", "", "450", "шт", "true"},
			{"snacks", "Орешки", "", "200", "порция", "true"},
		},
		"orders!A2:G": {},
	}}
	b := newTestBot(store)

	replies := b.handleOrder(context.Background(), model.Slots{
		Phone: "+7999",
		Items: []model.RequestedItem{
			{Name: "мохито", Quantity: 2},
			{Name: "пицца", Quantity: 1},
		},
	})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].text, "Заказ оформлен к брони B0001")
	assert.Contains(t, replies[0].text, "Мохито x2 — 900 ₽")
	assert.Contains(t, replies[0].text, "Итого: 900 ₽")
	assert.Contains(t, replies[0].text, "Не нашли в меню: пицца")

	require.Len(t, store.appends, 1)
	assert.Equal(t, "orders!A:G", store.appends[0].a1)
	assert.Equal(t, "O0001", store.appends[0].row[0])
}

func TestHandleOrderWithoutBooking(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{"bookings!A2:J": {}}}
	b := newTestBot(store)

	replies := b.handleOrder(context.Background(), model.Slots{
		Phone: "+7999",
		Items: []model.RequestedItem{{Name: "Мохито", Quantity: 1}},
	})
	require.Len(t, replies, 1)
	assert.Equal(t, "Сначала забронируйте столик! 😊", replies[0].text)
	assert.Empty(t, store.appends)
}

func TestHandleModifyUpdatesCells(t *testing.T) {
	store := &fakeStore{rows: map[string][][]string{
		"bookings!A2:J": {
			confirmedBookingRow("B0001", "2026-03-02", "19:00", "2", "T1", "Анна", "+7999"),
		},
	}}
	b := newTestBot(store)

	replies := b.handleModify(context.Background(), model.Slots{Phone: "+7999", Time: "21:00"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].text, "Бронь обновлена")
	assert.Contains(t, replies[0].text, "21:00")

	require.Len(t, store.updates, 1)
	assert.Equal(t, "bookings!C2", store.updates[0].a1)
}

func TestDispatchOtherFallsBackToReply(t *testing.T) {
	b := newTestBot(&fakeStore{rows: map[string][][]string{}})

	replies := b.dispatch(context.Background(), 1, model.Intent{Kind: model.IntentOther, Reply: "Добро пожаловать!"})
	require.Len(t, replies, 1)
	assert.Equal(t, "Добро пожаловать!", replies[0].text)

	replies = b.dispatch(context.Background(), 1, model.Intent{Kind: model.IntentOther})
	require.Len(t, replies, 1)
	assert.Equal(t, "Чем могу помочь? 😊", replies[0].text)
}
