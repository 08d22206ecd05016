// Package session keeps a short rolling window of conversation turns
// per user.  The window is passed to the classifier as context and has
// a lifecycle independent from the dialogue state: it is appended on
// every turn and simply expires when the user goes quiet.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxTurns caps the stored window; older turns are evicted FIFO.
const maxTurns = 10

// Turn roles as the classifier expects them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one utterance of the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store persists conversation windows in redis under
// "context:<user_id>" with a TTL refreshed on every append.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns a Store with the given expiry.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func contextKey(userID int64) string { return fmt.Sprintf("context:%d", userID) }

// History returns the stored window, oldest first.  A missing key
// yields an empty history.
func (s *Store) History(ctx context.Context, userID int64) ([]Turn, error) {
	data, err := s.client.Get(ctx, contextKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load context: %w", err)
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("session: decode context: %w", err)
	}
	return turns, nil
}

// Append adds one turn to the window, evicting the oldest entries past
// the cap, and refreshes the TTL.
func (s *Store) Append(ctx context.Context, userID int64, t Turn) error {
	turns, err := s.History(ctx, userID)
	if err != nil {
		return err
	}
	turns = appendTurn(turns, t, maxTurns)
	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("session: encode context: %w", err)
	}
	if err := s.client.SetEx(ctx, contextKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save context: %w", err)
	}
	return nil
}

// appendTurn implements the bounded FIFO window.
func appendTurn(turns []Turn, t Turn, max int) []Turn {
	turns = append(turns, t)
	if len(turns) > max {
		turns = turns[len(turns)-max:]
	}
	return turns
}
