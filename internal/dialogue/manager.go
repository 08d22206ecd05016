package dialogue

import (
	"context"
	"strconv"
	"time"

	"github.com/KoponovVadim/qrim/internal/availability"
	"github.com/KoponovVadim/qrim/internal/logger"
	"github.com/KoponovVadim/qrim/internal/model"
)

// ActionKind tags the outcome of one dialogue turn.
type ActionKind int

const (
	// ActionPrompt asks the user for the next missing field.
	ActionPrompt ActionKind = iota
	// ActionDuplicate rejects the request because a confirmed booking
	// for the same phone and date already exists.  State is cleared.
	ActionDuplicate
	// ActionUnavailable rejects the request because no table fits.
	// State is cleared.
	ActionUnavailable
	// ActionBooked confirms a created booking.  State is cleared.
	ActionBooked
	// ActionCreateFailed reports a failed store write after all checks
	// passed.  State is cleared; the user must start over.
	ActionCreateFailed
)

// Field names used by ActionPrompt, in the exact order they are asked.
const (
	FieldDate   = "date"
	FieldTime   = "time"
	FieldGuests = "guests"
	FieldName   = "name"
	FieldPhone  = "phone"
)

// timeLayout is the wall-clock format a completed state must carry
// before the pipeline runs; the availability engine parses the same
// layout.
const timeLayout = "15:04"

// requiredFields fixes the prompt priority: the first missing field in
// this order is the one the user is asked for, regardless of the order
// extractions arrive in.  This ordering is part of the conversational
// contract, not an accident.
var requiredFields = []string{FieldDate, FieldTime, FieldGuests, FieldName, FieldPhone}

// Action is the tagged result of Advance.  Which extra fields are set
// depends on Kind: Field for prompts, BookingID for ActionBooked, and
// State carries the collected fields for every terminal outcome.
type Action struct {
	Kind      ActionKind
	Field     string
	BookingID string
	TableID   string
	State     State
}

// BookingWriter is the slice of the booking repository the dialogue
// needs: the duplicate check and the final create.
type BookingWriter interface {
	HasConfirmed(ctx context.Context, phone, date string) (bool, error)
	Create(ctx context.Context, b model.Booking) (string, error)
}

// AvailabilityChecker finds a table for the completed request.
type AvailabilityChecker interface {
	Check(ctx context.Context, date, timeStr string, guests int) (availability.Result, error)
}

// Manager advances per-user slot-filling dialogues.
type Manager struct {
	store        Store
	bookings     BookingWriter
	availability AvailabilityChecker
}

// NewManager wires a Manager from its collaborators.
func NewManager(store Store, bookings BookingWriter, avail AvailabilityChecker) *Manager {
	return &Manager{store: store, bookings: bookings, availability: avail}
}

// merge folds newly extracted slots into the stored state.  Only
// non-empty extractions overwrite; an extraction that did not mention a
// field never erases what earlier turns collected.
func merge(st *State, slots model.Slots) {
	if slots.Date != "" {
		st.Date = slots.Date
	}
	if slots.Time != "" {
		st.Time = slots.Time
	}
	if slots.Guests != "" {
		st.Guests = slots.Guests
	}
	if slots.Name != "" {
		st.Name = slots.Name
	}
	if slots.Phone != "" {
		st.Phone = slots.Phone
	}
}

// missingField returns the first unfilled required field in prompt
// order, or "" when the state is complete.
func missingField(st *State) string {
	for _, f := range requiredFields {
		switch f {
		case FieldDate:
			if st.Date == "" {
				return f
			}
		case FieldTime:
			if st.Time == "" {
				return f
			}
		case FieldGuests:
			if st.Guests == "" {
				return f
			}
		case FieldName:
			if st.Name == "" {
				return f
			}
		case FieldPhone:
			if st.Phone == "" {
				return f
			}
		}
	}
	return ""
}

// Advance merges the turn's extracted slots into the user's state and
// either prompts for the next missing field or, once complete, runs the
// booking pipeline: duplicate check first, then availability, then the
// actual create.  Every terminal outcome clears the state — including a
// failed create, which is not retried automatically.  Store-level
// failures are returned as errors with the state left intact so the
// user can simply try again.
func (m *Manager) Advance(ctx context.Context, userID int64, slots model.Slots) (Action, error) {
	st, err := m.store.Get(ctx, userID)
	if err != nil {
		return Action{}, err
	}
	if st == nil {
		st = &State{}
	}
	merge(st, slots)

	if f := missingField(st); f != "" {
		if err := m.store.Save(ctx, userID, st); err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionPrompt, Field: f, State: *st}, nil
	}

	if _, err := time.Parse(timeLayout, st.Time); err != nil {
		// The extracted time cannot be scheduled; drop it and ask again.
		st.Time = ""
		if err := m.store.Save(ctx, userID, st); err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionPrompt, Field: FieldTime, State: *st}, nil
	}

	guests, err := strconv.Atoi(st.Guests)
	if err != nil || guests <= 0 {
		// The extracted party size is unusable; drop it and ask again.
		st.Guests = ""
		if err := m.store.Save(ctx, userID, st); err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionPrompt, Field: FieldGuests, State: *st}, nil
	}

	// Duplicate check strictly precedes availability: an existing
	// confirmed booking rejects the request even if tables are open.
	dup, err := m.bookings.HasConfirmed(ctx, st.Phone, st.Date)
	if err != nil {
		return Action{}, err
	}
	if dup {
		m.clear(ctx, userID)
		return Action{Kind: ActionDuplicate, State: *st}, nil
	}

	res, err := m.availability.Check(ctx, st.Date, st.Time, guests)
	if err != nil {
		return Action{}, err
	}
	if !res.Available {
		m.clear(ctx, userID)
		return Action{Kind: ActionUnavailable, State: *st}, nil
	}

	id, createErr := m.bookings.Create(ctx, model.Booking{
		Date:    st.Date,
		Time:    st.Time,
		Guests:  guests,
		TableID: res.TableID,
		Name:    st.Name,
		Phone:   st.Phone,
	})
	m.clear(ctx, userID)
	if createErr != nil {
		logger.Error.Errorf("dialogue: create booking failed for user %d: %v", userID, createErr)
		return Action{Kind: ActionCreateFailed, State: *st}, nil
	}
	return Action{Kind: ActionBooked, BookingID: id, TableID: res.TableID, State: *st}, nil
}

// Reset clears the user's dialogue state; bound to the /reset command.
func (m *Manager) Reset(ctx context.Context, userID int64) error {
	return m.store.Clear(ctx, userID)
}

// clear drops state on terminal paths.  A failed delete only shortens
// nothing — the key still expires via TTL — so it is logged, not
// propagated.
func (m *Manager) clear(ctx context.Context, userID int64) {
	if err := m.store.Clear(ctx, userID); err != nil {
		logger.Error.Errorf("dialogue: clear state for user %d: %v", userID, err)
	}
}
