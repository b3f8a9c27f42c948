package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citelab/bibcat/pkg/email"
	"github.com/citelab/bibcat/svc/notify"
)

type fakeSender struct {
	err  error
	sent []email.SendEmailParams
}

func (f *fakeSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, params)
	return nil
}

func TestDispatcher_SendConfirmationEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("renders and sends in default locale", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		d := notify.NewDispatcher(sender, notify.WithAppName("Biblat"))

		sent, reason := d.SendConfirmationEmail(ctx, "user@example.org", "https://app.example.org/confirm/abc")
		assert.True(t, sent)
		assert.Empty(t, reason)

		require.Len(t, sender.sent, 1)
		msg := sender.sent[0]
		assert.Equal(t, "user@example.org", msg.SendTo)
		assert.Equal(t, "Confirma tu correo electrónico", msg.Subject)
		assert.Contains(t, msg.BodyHTML, "https://app.example.org/confirm/abc")
		assert.Contains(t, msg.BodyHTML, "Biblat")
		assert.Equal(t, "confirm-email", msg.Tag)
	})

	t.Run("english locale", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		d := notify.NewDispatcher(sender, notify.WithLocale("en"))

		sent, _ := d.SendConfirmationEmail(ctx, "user@example.org", "https://app.example.org/confirm/abc")
		assert.True(t, sent)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, "Confirm your email address", sender.sent[0].Subject)
	})

	t.Run("transport failure reported, not returned", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{err: errors.New("postmark: 503")}
		d := notify.NewDispatcher(sender)

		sent, reason := d.SendConfirmationEmail(ctx, "user@example.org", "https://app.example.org/confirm/abc")
		assert.False(t, sent)
		assert.Equal(t, "postmark: 503", reason)
	})
}

func TestDispatcher_SendPasswordResetEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("renders and sends", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		d := notify.NewDispatcher(sender)

		sent, reason := d.SendPasswordResetEmail(ctx, "user@example.org", "https://app.example.org/reset/xyz")
		assert.True(t, sent)
		assert.Empty(t, reason)

		require.Len(t, sender.sent, 1)
		msg := sender.sent[0]
		assert.Equal(t, "Restablece tu contraseña", msg.Subject)
		assert.Contains(t, msg.BodyHTML, "https://app.example.org/reset/xyz")
		assert.Equal(t, "password-reset", msg.Tag)
	})

	t.Run("transport failure reported, not returned", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{err: errors.New("connection refused")}
		d := notify.NewDispatcher(sender)

		sent, reason := d.SendPasswordResetEmail(ctx, "user@example.org", "https://app.example.org/reset/xyz")
		assert.False(t, sent)
		assert.Equal(t, "connection refused", reason)
	})
}

func TestDispatcher_UnsupportedLocalePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		notify.WithLocale("fr")
	})
}
