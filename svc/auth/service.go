package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/citelab/bibcat/pkg/logger"
	"github.com/citelab/bibcat/pkg/sanitizer"
	"github.com/citelab/bibcat/pkg/token"
	"github.com/citelab/bibcat/pkg/validator"
)

// Notifier delivers account lifecycle emails. Implementations report
// transport failures as (false, reason) instead of returning an error,
// because a failed email must not abort the workflow that triggered it.
type Notifier interface {
	SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) (sent bool, reason string)
	SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) (sent bool, reason string)
}

// RegistrationResult reports a completed registration. The user is always
// persisted; Sent and SendReason describe the confirmation email outcome.
type RegistrationResult struct {
	User       *User
	Sent       bool
	SendReason string
}

// NotificationResult reports the outcome of an email dispatch.
type NotificationResult struct {
	Sent   bool
	Reason string
}

// Service drives the identity workflows: registration, authentication,
// email confirmation, and password recovery.
type Service struct {
	storage          Storage
	notifier         Notifier
	secret           string
	tokenMaxAge      time.Duration
	baseURL          string
	logger           *slog.Logger
	passwordStrength validator.PasswordStrengthConfig
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithTokenMaxAge sets how long confirmation and reset tokens stay valid.
func WithTokenMaxAge(d time.Duration) Option {
	if d <= 0 {
		panic("WithTokenMaxAge: duration must be > 0")
	}
	return func(s *Service) { s.tokenMaxAge = d }
}

// WithBaseURL sets the public base URL used when building confirmation and
// reset links.
func WithBaseURL(u string) Option {
	if u == "" {
		panic("WithBaseURL: url cannot be empty")
	}
	return func(s *Service) { s.baseURL = u }
}

// WithPasswordStrength sets custom password strength requirements.
func WithPasswordStrength(cfg validator.PasswordStrengthConfig) Option {
	return func(s *Service) { s.passwordStrength = cfg }
}

// NewService creates the identity workflow service. The secret signs
// confirmation and reset tokens and must stay stable across restarts,
// otherwise outstanding links break.
func NewService(storage Storage, notifier Notifier, secret string, opts ...Option) *Service {
	s := &Service{
		storage:          storage,
		notifier:         notifier,
		secret:           secret,
		tokenMaxAge:      24 * time.Hour,
		baseURL:          "http://localhost:8080",
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		passwordStrength: validator.DefaultPasswordStrength(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) confirmURL(tok string) string {
	return s.baseURL + "/confirm/" + tok
}

func (s *Service) resetURL(tok string) string {
	return s.baseURL + "/reset/" + tok
}

// Register creates an unconfirmed user and dispatches the confirmation
// email. A dispatch failure does not roll the user back; the outcome is
// reported in the result so the caller can offer a re-send.
func (s *Service) Register(ctx context.Context, email, password string) (*RegistrationResult, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.StrongPassword("password", password, s.passwordStrength),
		validator.NotCommonPassword("password", password),
	); err != nil {
		return nil, err
	}

	user, err := s.storage.Create(ctx, email, password, false)
	if err != nil {
		return nil, err
	}

	tok, err := token.Issue(user.Email, token.PurposeConfirmEmail, s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue confirmation token: %w", err)
	}

	sent, reason := s.notifier.SendConfirmationEmail(ctx, user.Email, s.confirmURL(tok))
	if !sent {
		s.logger.WarnContext(ctx, "Confirmation email not sent",
			logger.UserID(user.ID.String()),
			slog.String("reason", reason),
			logger.Component("auth"),
		)
	}

	return &RegistrationResult{User: user, Sent: sent, SendReason: reason}, nil
}

// Authenticate verifies the credentials and requires a confirmed email.
// Failures are reported in order: unknown user, wrong password,
// unconfirmed email.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !VerifyPassword(user, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	return user, nil
}

// ConfirmEmail validates a confirmation token and marks the account's
// email as confirmed. Confirming an already confirmed account is a no-op.
func (s *Service) ConfirmEmail(ctx context.Context, tok string) (*User, error) {
	email, err := s.verifyToken(tok, token.PurposeConfirmEmail)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.EmailConfirmed {
		if err := s.storage.SetEmailConfirmed(ctx, user.ID); err != nil {
			return nil, err
		}
		user.EmailConfirmed = true
	}

	return user, nil
}

// RequestPasswordReset issues a reset token and emails the reset link.
// Unconfirmed accounts are refused before any token is issued; they must
// finish the confirmation flow first.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*NotificationResult, error) {
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	tok, err := token.Issue(user.Email, token.PurposeResetPassword, s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue reset token: %w", err)
	}

	sent, reason := s.notifier.SendPasswordResetEmail(ctx, user.Email, s.resetURL(tok))
	if !sent {
		s.logger.WarnContext(ctx, "Password reset email not sent",
			logger.UserID(user.ID.String()),
			slog.String("reason", reason),
			logger.Component("auth"),
		)
	}

	return &NotificationResult{Sent: sent, Reason: reason}, nil
}

// ResetPassword validates a reset token and stores the new password.
func (s *Service) ResetPassword(ctx context.Context, tok, newPassword string) (*User, error) {
	if err := validator.Apply(
		validator.StrongPassword("password", newPassword, s.passwordStrength),
		validator.NotCommonPassword("password", newPassword),
	); err != nil {
		return nil, err
	}

	email, err := s.verifyToken(tok, token.PurposeResetPassword)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	if err := s.storage.SetPassword(ctx, user.ID, newPassword); err != nil {
		return nil, err
	}

	return user, nil
}

// ResendConfirmation re-issues the confirmation token for an unconfirmed
// account and dispatches it again.
func (s *Service) ResendConfirmation(ctx context.Context, email string) (*NotificationResult, error) {
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.EmailConfirmed {
		return nil, ErrEmailAlreadyConfirmed
	}

	tok, err := token.Issue(user.Email, token.PurposeConfirmEmail, s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue confirmation token: %w", err)
	}

	sent, reason := s.notifier.SendConfirmationEmail(ctx, user.Email, s.confirmURL(tok))
	return &NotificationResult{Sent: sent, Reason: reason}, nil
}

// verifyToken maps token verification failures onto the package sentinels.
func (s *Service) verifyToken(tok, purpose string) (string, error) {
	email, err := token.Verify(tok, purpose, s.secret, s.tokenMaxAge)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	return email, nil
}
