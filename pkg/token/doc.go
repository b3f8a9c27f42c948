// Package token provides compact, signed tokens for embedding JSON payloads,
// plus a purpose-scoped, time-limited layer for email confirmation and
// password recovery links.
//
// Tokens use HMAC-SHA256 with truncated 8-byte signatures for balance between
// security and compactness. Verification is stateless: nothing is stored
// server-side, so tokens cannot be revoked before they expire. That trade-off
// is acceptable for short-lived email links; do not use this package for
// high-value or long-lived credentials.
//
// Token format: base64url(payload).base64url(signature)
//
// The purpose-scoped layer mixes a purpose salt into the signing key and
// embeds the purpose in the payload, so a token minted to confirm an email
// address can never verify as a password-reset token:
//
//	tok, err := token.Issue("user@example.org", token.PurposeConfirmEmail, secret)
//	...
//	email, err := token.Verify(tok, token.PurposeConfirmEmail, secret, 24*time.Hour)
//
// Expiry boundary: a token whose age equals maxAge exactly is still accepted;
// verification fails only once the age is strictly greater than maxAge. The
// issue instant is stored as Unix seconds, so the boundary holds at whole-
// second granularity and a token can expire up to a second before its
// fractional wall-clock deadline.
package token
