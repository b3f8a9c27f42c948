// Package validator provides composable validation rules with typed,
// translatable errors.
//
// Rules are plain values combining a predicate and the error to report when
// it fails; Apply runs a set of rules and collects every failure:
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", email),
//	    validator.StrongPassword("password", password, validator.DefaultPasswordStrength()),
//	    validator.NotCommonPassword("password", password),
//	)
//
// A non-nil error is always a ValidationErrors value; use
// ExtractValidationErrors to recover per-field messages for rendering.
package validator
