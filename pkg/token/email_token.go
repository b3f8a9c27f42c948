package token

import (
	"time"
)

// Token purposes. The purpose acts as a salt: it is mixed into the signing
// key and embedded in the payload, so tokens minted for one purpose cannot
// be replayed for another.
const (
	PurposeConfirmEmail  = "confirm-email"
	PurposeResetPassword = "reset-password"
)

// EmailClaims is the payload of a purpose-scoped email token.
type EmailClaims struct {
	Email    string `json:"email"`
	Purpose  string `json:"purpose"`
	IssuedAt int64  `json:"iat"` // Unix timestamp
}

// Issue mints a signed token binding email to purpose, stamped with the
// current time.
func Issue(email, purpose, secret string) (string, error) {
	return IssueAt(email, purpose, secret, time.Now())
}

// IssueAt is Issue with an explicit issue time. Exposed for callers that
// need deterministic tokens, primarily tests.
func IssueAt(email, purpose, secret string, issuedAt time.Time) (string, error) {
	claims := EmailClaims{
		Email:    email,
		Purpose:  purpose,
		IssuedAt: issuedAt.Unix(),
	}
	return Generate(claims, deriveKey(secret, purpose))
}

// Verify checks the token's signature, purpose and age, returning the
// embedded email on success. A token older than maxAge fails with
// ErrTokenExpired; a token aged exactly maxAge is still accepted.
func Verify(tok, purpose, secret string, maxAge time.Duration) (string, error) {
	return VerifyAt(tok, purpose, secret, maxAge, time.Now())
}

// VerifyAt is Verify against an explicit reference time.
func VerifyAt(tok, purpose, secret string, maxAge time.Duration, now time.Time) (string, error) {
	claims, err := Parse[EmailClaims](tok, deriveKey(secret, purpose))
	if err != nil {
		return "", err
	}

	if claims.Purpose != purpose {
		return "", ErrSignatureInvalid
	}

	age := now.Sub(time.Unix(claims.IssuedAt, 0))
	if age > maxAge {
		return "", ErrTokenExpired
	}

	return claims.Email, nil
}

// deriveKey mixes the purpose salt into the signing secret. The separator
// keeps distinct (secret, purpose) pairs from colliding.
func deriveKey(secret, purpose string) string {
	return secret + "\x00" + purpose
}
