package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a catalog administrator account.
type User struct {
	ID             uuid.UUID `bson:"_id"`
	Email          string    `bson:"email"`
	PasswordHash   string    `bson:"password_hash"`
	EmailConfirmed bool      `bson:"email_confirmed"`
	Roles          []string  `bson:"roles"`
	CreatedAt      time.Time `bson:"created_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// VerifyPassword checks a candidate password against the stored hash.
// A user without a stored hash never matches.
func VerifyPassword(u *User, candidate string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}
