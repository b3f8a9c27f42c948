// Package auth implements the identity lifecycle of catalog administrators:
// registration, email confirmation, password authentication, and password
// recovery.
//
// Credentials live behind the Storage interface (MongoStorage in production)
// and email delivery behind the Notifier interface, so the workflow in
// Service can be tested with in-memory fakes.
//
// Confirmation and reset links carry stateless signed tokens from pkg/token;
// nothing is stored server-side per token, which also means a token cannot be
// revoked before it expires.
package auth
