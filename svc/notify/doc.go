// Package notify renders and dispatches account lifecycle emails.
//
// The dispatcher reports delivery outcome as a (sent, reason) pair instead
// of an error: the workflows that trigger these emails must complete even
// when the mail transport is down, so a failure is information for the
// caller, not a reason to abort.
package notify
