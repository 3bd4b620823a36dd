// Package session keeps the short-term conversational memory of each chat session.
package session

import (
	"context"
	"time"
)

// DefaultRetention is the number of most recent exchanges a store keeps per session.
const DefaultRetention = 10

// Exchange is one user message paired with the assistant's reply. Values are
// never mutated once appended.
type Exchange struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	CreatedAt time.Time `json:"created_at"`
}

// NewExchange stamps a user/assistant pair with the current time.
func NewExchange(user, assistant string) Exchange {
	return Exchange{User: user, Assistant: assistant, CreatedAt: time.Now().UTC()}
}

// Store maps a session id to its bounded, append-only exchange log.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the session's exchanges oldest first, creating an empty
	// log when the session is unknown.
	Get(ctx context.Context, sessionID string) ([]Exchange, error)
	// Append adds an exchange and drops the oldest entries beyond the retention window.
	Append(ctx context.Context, sessionID string, ex Exchange) error
	// Clear removes all state for the session. Clearing an unknown session is a no-op.
	Clear(ctx context.Context, sessionID string) error
}

// Last returns at most n of the most recent exchanges, oldest first.
func Last(history []Exchange, n int) []Exchange {
	if n <= 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
