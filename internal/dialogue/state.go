// Package dialogue drives the multi-turn slot-filling flow that builds
// a booking from conversational fragments.  Partial state lives in
// redis under a per-user key with a TTL, so abandoned dialogues expire
// on their own.
package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// State is a booking under construction.  Fields are kept as entered;
// guests are validated when the booking is finalized.
type State struct {
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`
	Guests string `json:"guests,omitempty"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// GuestsInt returns the party size as a number, 0 when the field is
// empty or malformed.  Advance validates the value before any terminal
// outcome, so terminal actions always see a positive count.
func (s *State) GuestsInt() int {
	n, err := strconv.Atoi(s.Guests)
	if err != nil {
		return 0
	}
	return n
}

// Store persists per-user dialogue state.  Get returns nil when no
// state exists, which callers treat as an empty dialogue.
type Store interface {
	Get(ctx context.Context, userID int64) (*State, error)
	Save(ctx context.Context, userID int64, st *State) error
	Clear(ctx context.Context, userID int64) error
}

// RedisStore keeps dialogue state in redis under "state:<user_id>",
// JSON-encoded, expiring after the configured TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore with the given expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func stateKey(userID int64) string { return fmt.Sprintf("state:%d", userID) }

// Get loads the user's state.  A missing key yields (nil, nil).
func (s *RedisStore) Get(ctx context.Context, userID int64) (*State, error) {
	data, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dialogue: load state: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("dialogue: decode state: %w", err)
	}
	return &st, nil
}

// Save stores the state and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, userID int64, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("dialogue: encode state: %w", err)
	}
	if err := s.client.SetEx(ctx, stateKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("dialogue: save state: %w", err)
	}
	return nil
}

// Clear removes the state immediately instead of waiting for expiry.
func (s *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("dialogue: clear state: %w", err)
	}
	return nil
}
