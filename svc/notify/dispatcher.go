package notify

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"

	"github.com/citelab/bibcat/pkg/email"
	"github.com/citelab/bibcat/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultLocale is used when no locale option is supplied.
const DefaultLocale = "es"

const (
	tagConfirmEmail  = "confirm-email"
	tagPasswordReset = "password-reset"
)

type mailData struct {
	Lang     string
	AppName  string
	URL      string
	Intro    string
	Action   string
	AltIntro string
	Ignore   string
}

// Dispatcher renders account emails from embedded templates and hands them
// to an email.EmailSender.
type Dispatcher struct {
	sender  email.EmailSender
	appName string
	locale  string
	logger  *slog.Logger
	tmpl    *template.Template
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLocale sets the language the emails are written in ("es" or "en").
func WithLocale(locale string) DispatcherOption {
	if _, ok := confirmStrings[locale]; !ok {
		panic("WithLocale: unsupported locale " + locale)
	}
	return func(d *Dispatcher) { d.locale = locale }
}

// WithAppName sets the application name shown in email headers and copy.
func WithAppName(name string) DispatcherOption {
	if name == "" {
		panic("WithAppName: name cannot be empty")
	}
	return func(d *Dispatcher) { d.appName = name }
}

// WithLogger sets the dispatcher logger.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.logger = log
		}
	}
}

// NewDispatcher creates a Dispatcher over the given transport.
func NewDispatcher(sender email.EmailSender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		appName: "Bibcat",
		locale:  DefaultLocale,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendConfirmationEmail emails the account activation link.
// A transport or render failure is reported as (false, reason).
func (d *Dispatcher) SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) (bool, string) {
	strs := confirmStrings[d.locale]
	return d.send(ctx, "confirm.html", recipient, confirmURL, strs, tagConfirmEmail)
}

// SendPasswordResetEmail emails the password recovery link.
// A transport or render failure is reported as (false, reason).
func (d *Dispatcher) SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) (bool, string) {
	strs := resetStrings[d.locale]
	return d.send(ctx, "reset.html", recipient, resetURL, strs, tagPasswordReset)
}

func (d *Dispatcher) send(ctx context.Context, tmplName, recipient, url string, strs mailStrings, tag string) (bool, string) {
	var body bytes.Buffer
	err := d.tmpl.ExecuteTemplate(&body, tmplName, mailData{
		Lang:     d.locale,
		AppName:  d.appName,
		URL:      url,
		Intro:    strs.Intro,
		Action:   strs.Action,
		AltIntro: strs.AltIntro,
		Ignore:   strs.Ignore,
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to render email body",
			slog.String("template", tmplName),
			logger.Error(err),
			logger.Component("notify"),
		)
		return false, "failed to render email body: " + err.Error()
	}

	err = d.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   recipient,
		Subject:  strs.Subject,
		BodyHTML: body.String(),
		Tag:      tag,
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to send email",
			slog.String("tag", tag),
			logger.Error(err),
			logger.Component("notify"),
		)
		return false, err.Error()
	}

	return true, ""
}
