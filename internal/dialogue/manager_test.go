package dialogue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoponovVadim/qrim/internal/availability"
	"github.com/KoponovVadim/qrim/internal/model"
)

// memStore keeps dialogue state in a map, mirroring the redis contract:
// Get on a missing key returns (nil, nil).
type memStore struct {
	states map[int64]*State
	getErr error
}

func newMemStore() *memStore { return &memStore{states: map[int64]*State{}} }

func (m *memStore) Get(_ context.Context, userID int64) (*State, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	st, ok := m.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *memStore) Save(_ context.Context, userID int64, st *State) error {
	cp := *st
	m.states[userID] = &cp
	return nil
}

func (m *memStore) Clear(_ context.Context, userID int64) error {
	delete(m.states, userID)
	return nil
}

// fakeBookings records the calls the pipeline makes so tests can assert
// their order and arguments.
type fakeBookings struct {
	duplicate    bool
	createErr    error
	createdID    string
	calls        []string
	created      []model.Booking
	dupCheckArgs [][2]string
}

func (f *fakeBookings) HasConfirmed(_ context.Context, phone, date string) (bool, error) {
	f.calls = append(f.calls, "dup")
	f.dupCheckArgs = append(f.dupCheckArgs, [2]string{phone, date})
	return f.duplicate, nil
}

func (f *fakeBookings) Create(_ context.Context, b model.Booking) (string, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, b)
	return f.createdID, nil
}

type fakeAvailability struct {
	available bool
	tableID   string
	calls     int
}

func (f *fakeAvailability) Check(_ context.Context, date, timeStr string, guests int) (availability.Result, error) {
	f.calls++
	return availability.Result{
		Date: date, Time: timeStr, Guests: guests,
		Available: f.available, TableID: f.tableID,
	}, nil
}

func fullSlots() model.Slots {
	return model.Slots{
		Date: "2026-03-02", Time: "19:00", Guests: "4",
		Name: "Анна", Phone: "+79991112233",
	}
}

func TestAdvancePromptsInFixedOrder(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, &fakeBookings{}, &fakeAvailability{})

	// Time and phone are missing; date comes first in the prompt order
	// only when absent, so here time is the first gap.
	act, err := m.Advance(context.Background(), 1, model.Slots{Date: "2026-03-02", Guests: "2", Name: "Анна"})
	require.NoError(t, err)
	assert.Equal(t, ActionPrompt, act.Kind)
	assert.Equal(t, FieldTime, act.Field)

	// The partial state must be saved for the next turn.
	st, _ := store.Get(context.Background(), 1)
	require.NotNil(t, st)
	assert.Equal(t, "2026-03-02", st.Date)
}

func TestAdvanceMergeNeverErases(t *testing.T) {
	store := newMemStore()
	store.states[7] = &State{Date: "2026-03-02", Time: "19:00", Guests: "2"}
	m := NewManager(store, &fakeBookings{}, &fakeAvailability{})

	// A turn that only adds the name must keep everything collected so far.
	act, err := m.Advance(context.Background(), 7, model.Slots{Name: "Олег"})
	require.NoError(t, err)
	assert.Equal(t, ActionPrompt, act.Kind)
	assert.Equal(t, FieldPhone, act.Field)

	st, _ := store.Get(context.Background(), 7)
	assert.Equal(t, "2026-03-02", st.Date)
	assert.Equal(t, "19:00", st.Time)
	assert.Equal(t, "2", st.Guests)
	assert.Equal(t, "Олег", st.Name)
}

func TestAdvanceBadGuestsReprompts(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, &fakeBookings{}, &fakeAvailability{})

	slots := fullSlots()
	slots.Guests = "двое"
	act, err := m.Advance(context.Background(), 1, slots)
	require.NoError(t, err)
	assert.Equal(t, ActionPrompt, act.Kind)
	assert.Equal(t, FieldGuests, act.Field)

	st, _ := store.Get(context.Background(), 1)
	assert.Empty(t, st.Guests)
	assert.Equal(t, "Анна", st.Name)
}

func TestAdvanceBadTimeReprompts(t *testing.T) {
	store := newMemStore()
	avail := &fakeAvailability{available: true, tableID: "T1"}
	m := NewManager(store, &fakeBookings{}, avail)

	slots := fullSlots()
	slots.Time = "вечером"
	act, err := m.Advance(context.Background(), 1, slots)
	require.NoError(t, err)
	assert.Equal(t, ActionPrompt, act.Kind)
	assert.Equal(t, FieldTime, act.Field)
	assert.Zero(t, avail.calls, "the pipeline must not run with an unusable time")

	// The bad value is dropped, everything else survives, so the next
	// turn only needs a valid time instead of looping on the same error.
	st, _ := store.Get(context.Background(), 1)
	assert.Empty(t, st.Time)
	assert.Equal(t, "Анна", st.Name)

	slots = model.Slots{Time: "19:00"}
	act, err = m.Advance(context.Background(), 1, slots)
	require.NoError(t, err)
	assert.Equal(t, ActionBooked, act.Kind)
}

func TestAdvanceDuplicateCheckedBeforeAvailability(t *testing.T) {
	store := newMemStore()
	bookings := &fakeBookings{duplicate: true}
	avail := &fakeAvailability{available: true, tableID: "T1"}
	m := NewManager(store, bookings, avail)

	act, err := m.Advance(context.Background(), 1, fullSlots())
	require.NoError(t, err)
	assert.Equal(t, ActionDuplicate, act.Kind)
	assert.Equal(t, [2]string{"+79991112233", "2026-03-02"}, bookings.dupCheckArgs[0])
	assert.Zero(t, avail.calls, "availability must not run after a duplicate hit")

	st, _ := store.Get(context.Background(), 1)
	assert.Nil(t, st, "terminal outcomes clear the state")
}

func TestAdvanceUnavailableClearsState(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, &fakeBookings{}, &fakeAvailability{available: false})

	act, err := m.Advance(context.Background(), 1, fullSlots())
	require.NoError(t, err)
	assert.Equal(t, ActionUnavailable, act.Kind)
	assert.Equal(t, "2026-03-02", act.State.Date)

	st, _ := store.Get(context.Background(), 1)
	assert.Nil(t, st)
}

func TestAdvanceCompleteFlowBooks(t *testing.T) {
	store := newMemStore()
	bookings := &fakeBookings{createdID: "B0042"}
	m := NewManager(store, bookings, &fakeAvailability{available: true, tableID: "T3"})

	act, err := m.Advance(context.Background(), 1, fullSlots())
	require.NoError(t, err)
	assert.Equal(t, ActionBooked, act.Kind)
	assert.Equal(t, "B0042", act.BookingID)
	assert.Equal(t, "T3", act.TableID)
	assert.Equal(t, []string{"dup", "create"}, bookings.calls)

	require.Len(t, bookings.created, 1)
	created := bookings.created[0]
	assert.Equal(t, 4, created.Guests)
	assert.Equal(t, "T3", created.TableID)

	st, _ := store.Get(context.Background(), 1)
	assert.Nil(t, st)
}

func TestAdvanceCreateFailureStillClears(t *testing.T) {
	store := newMemStore()
	bookings := &fakeBookings{createErr: errors.New("append failed")}
	m := NewManager(store, bookings, &fakeAvailability{available: true, tableID: "T1"})

	act, err := m.Advance(context.Background(), 1, fullSlots())
	require.NoError(t, err)
	assert.Equal(t, ActionCreateFailed, act.Kind)

	st, _ := store.Get(context.Background(), 1)
	assert.Nil(t, st, "a failed create is terminal; the user starts over")
}

func TestAdvanceStoreErrorKeepsState(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("redis down")
	m := NewManager(store, &fakeBookings{}, &fakeAvailability{})

	_, err := m.Advance(context.Background(), 1, fullSlots())
	assert.Error(t, err)
}
