// Package sanitizer normalizes untrusted input before validation and storage.
package sanitizer

import (
	"regexp"
	"strings"
)

// Apply runs the transforms over value in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower lowercases the string.
func ToLower(s string) string {
	return strings.ToLower(s)
}

var (
	dotRegex        = regexp.MustCompile(`\.{2,}`)
	whitespaceRegex = regexp.MustCompile(`\s{2,}`)
)

// CollapseWhitespace replaces runs of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// NormalizeEmail lowercases and trims an email address and consolidates
// consecutive dots in the local part. Strings without exactly one "@" are
// returned lowercased as-is; format validation is the validator's job.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}
