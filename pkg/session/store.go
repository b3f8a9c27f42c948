package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence.
type Store interface {
	// Create stores a new session with the given TTL.
	Create(ctx context.Context, session *Session, ttl time.Duration) error

	// Get retrieves a session by token. Returns ErrSessionNotFound for
	// unknown tokens.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Deleting an unknown token is not
	// an error.
	Delete(ctx context.Context, token string) error
}
