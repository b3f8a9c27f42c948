package auth

import (
	"context"

	"github.com/google/uuid"
)

// Storage is the credential store. Implementations hash passwords before
// persisting them; plaintext never reaches the database.
type Storage interface {
	// Create persists a new user. The password is hashed before storage.
	// A duplicate email returns ErrEmailAlreadyExists; concurrent creates
	// for the same email leave exactly one record.
	Create(ctx context.Context, email, password string, confirmed bool) (*User, error)

	// GetByEmail looks a user up by email. An empty or malformed email
	// returns ErrInvalidEmail, a missing user ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID looks a user up by ID. A missing user returns ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// SetEmailConfirmed marks the user's email as confirmed. This is the
	// only operation that flips the flag to true.
	SetEmailConfirmed(ctx context.Context, id uuid.UUID) error

	// SetPassword re-hashes and persists a new password.
	SetPassword(ctx context.Context, id uuid.UUID, password string) error

	// UpdateEmail changes the user's email and resets the confirmed flag,
	// since the new address has not been verified.
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
}
