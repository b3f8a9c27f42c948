// Package account serves the public identity pages: sign in and out,
// registration, email confirmation, and password recovery.
package account

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/citelab/bibcat/pkg/i18n"
	"github.com/citelab/bibcat/pkg/logger"
	"github.com/citelab/bibcat/pkg/session"
	"github.com/citelab/bibcat/pkg/validator"
	"github.com/citelab/bibcat/svc/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed locales/*.yaml
var localeFS embed.FS

const langCookie = "bibcat_lang"

// LoadLocales merges the module's embedded message catalogs into the
// translator.
func LoadLocales(tr *i18n.Translator) error {
	for _, lang := range []string{"es", "en"} {
		data, err := localeFS.ReadFile("locales/" + lang + ".yaml")
		if err != nil {
			return err
		}
		if err := tr.LoadYAML(lang, data); err != nil {
			return err
		}
	}
	return nil
}

// Validator translation keys mapped onto this module's message catalog.
var validationMessages = map[string]string{
	"validation.email":             "validation.invalid_email",
	"validation.password_strength": "validation.weak_password",
	"validation.password_common":   "validation.common_password",
}

// Handler renders the account pages and drives the identity workflows.
type Handler struct {
	svc      *auth.Service
	sessions *session.Manager
	tr       *i18n.Translator
	logger   *slog.Logger
	basePath string
	homePath string
	tmpl     *template.Template
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// WithBasePath sets the URL prefix the handler is mounted under.
func WithBasePath(p string) Option {
	return func(h *Handler) { h.basePath = p }
}

// WithHomePath sets where a successful login redirects to.
func WithHomePath(p string) Option {
	if p == "" {
		panic("WithHomePath: path cannot be empty")
	}
	return func(h *Handler) { h.homePath = p }
}

// NewHandler creates the account page handler.
func NewHandler(svc *auth.Service, sessions *session.Manager, tr *i18n.Translator, opts ...Option) *Handler {
	h := &Handler{
		svc:      svc,
		sessions: sessions,
		tr:       tr,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		basePath: "/account",
		homePath: "/admin",
		tmpl:     template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router returns the account routes, relative to the mount point.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.sessions.Middleware)

	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/register", h.registerPage)
	r.Post("/register", h.register)
	r.Get("/confirm/{token}", h.confirm)
	r.Post("/resend", h.resend)
	r.Get("/forgot", h.forgotPage)
	r.Post("/forgot", h.forgot)
	r.Get("/reset/{token}", h.resetPage)
	r.Post("/reset/{token}", h.reset)
	r.Get("/lang/{code}", h.switchLang)

	return r
}

// viewData is the template context. Templates translate through T, so every
// page renders in the request's negotiated language.
type viewData struct {
	tr *i18n.Translator

	Lang       string
	Title      string
	Error      string
	Flash      string
	BasePath   string
	Email      string
	Token      string
	ShowResend bool
}

func (v viewData) T(key string, args ...any) string {
	return v.tr.T(v.Lang, key, args...)
}

func (h *Handler) view(r *http.Request, titleKey string) viewData {
	lang := h.lang(r)
	v := viewData{tr: h.tr, Lang: lang, BasePath: h.basePath}
	v.Title = v.T(titleKey)
	return v
}

// lang picks the request language: explicit cookie, then the login session's
// locale, then Accept-Language negotiation.
func (h *Handler) lang(r *http.Request) string {
	supported := h.tr.Languages()
	if c, err := r.Cookie(langCookie); err == nil {
		for _, s := range supported {
			if s == c.Value {
				return c.Value
			}
		}
	}
	if sess, ok := session.FromContext(r.Context()); ok && sess.Locale != "" {
		return sess.Locale
	}
	return i18n.NegotiateLanguage(r, supported, h.tr.DefaultLanguage())
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Failed to render page",
			slog.String("template", name),
			logger.Error(err),
			logger.Component("account"),
		)
	}
}

// firstValidationMessage translates the first validation failure.
func (v viewData) firstValidationMessage(err error) string {
	for _, ve := range validator.ExtractValidationErrors(err) {
		if key, ok := validationMessages[ve.TranslationKey]; ok {
			return v.T(key)
		}
	}
	return v.T("validation.invalid_email")
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", h.view(r, "login.title"))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "login.title")
	v.Email = r.PostFormValue("email")

	user, err := h.svc.Authenticate(r.Context(), v.Email, r.PostFormValue("password"))
	switch {
	case err == nil:
		if _, err := h.sessions.Start(r.Context(), w, user.ID, user.Email, v.Lang); err != nil {
			h.logger.Error("Failed to start session", logger.Error(err), logger.Component("account"))
			h.render(w, http.StatusInternalServerError, "login", v)
			return
		}
		http.Redirect(w, r, h.homePath, http.StatusSeeOther)
	case errors.Is(err, auth.ErrEmailNotConfirmed):
		v.Error = v.T("login.email_not_confirmed")
		v.ShowResend = true
		h.render(w, http.StatusForbidden, "login", v)
	default:
		// Unknown user and wrong password render the same message.
		v.Error = v.T("login.invalid_credentials")
		h.render(w, http.StatusUnauthorized, "login", v)
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("Failed to destroy session", logger.Error(err), logger.Component("account"))
	}
	http.Redirect(w, r, h.basePath+"/login", http.StatusSeeOther)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "register", h.view(r, "register.title"))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "register.title")
	v.Email = r.PostFormValue("email")

	password := r.PostFormValue("password")
	if password != r.PostFormValue("password_confirm") {
		v.Error = v.T("register.password_mismatch")
		h.render(w, http.StatusUnprocessableEntity, "register", v)
		return
	}

	res, err := h.svc.Register(r.Context(), v.Email, password)
	switch {
	case err == nil:
		v.Title = v.T("register.done_title")
		v.Email = res.User.Email
		if res.Sent {
			v.Flash = v.T("register.done_sent")
		} else {
			v.Error = v.T("register.done_not_sent")
			v.ShowResend = true
		}
		h.render(w, http.StatusOK, "message", v)
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		v.Error = v.T("register.email_taken")
		h.render(w, http.StatusConflict, "register", v)
	case validator.IsValidationError(err):
		v.Error = v.firstValidationMessage(err)
		h.render(w, http.StatusUnprocessableEntity, "register", v)
	default:
		h.logger.Error("Registration failed", logger.Error(err), logger.Component("account"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "confirm.success")

	user, err := h.svc.ConfirmEmail(r.Context(), chi.URLParam(r, "token"))
	switch {
	case err == nil:
		v.Flash = v.T("confirm.success")
		v.Email = user.Email
		h.render(w, http.StatusOK, "message", v)
	case errors.Is(err, auth.ErrTokenExpired):
		v.Title = v.T("confirm.expired")
		v.Error = v.T("confirm.expired")
		h.render(w, http.StatusGone, "message", v)
	case errors.Is(err, auth.ErrUserNotFound):
		v.Title = v.T("confirm.unknown_user")
		v.Error = v.T("confirm.unknown_user")
		h.render(w, http.StatusNotFound, "message", v)
	default:
		v.Title = v.T("confirm.invalid")
		v.Error = v.T("confirm.invalid")
		h.render(w, http.StatusBadRequest, "message", v)
	}
}

func (h *Handler) resend(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "confirm.resend")
	v.Email = r.PostFormValue("email")

	res, err := h.svc.ResendConfirmation(r.Context(), v.Email)
	switch {
	case err == nil && res.Sent:
		v.Flash = v.T("confirm.resent")
		h.render(w, http.StatusOK, "message", v)
	case err == nil:
		v.Error = v.T("forgot.not_sent")
		v.ShowResend = true
		h.render(w, http.StatusBadGateway, "message", v)
	case errors.Is(err, auth.ErrEmailAlreadyConfirmed):
		v.Flash = v.T("confirm.already_confirmed")
		h.render(w, http.StatusOK, "message", v)
	case errors.Is(err, auth.ErrUserNotFound):
		v.Error = v.T("forgot.unknown_user")
		h.render(w, http.StatusNotFound, "message", v)
	default:
		h.logger.Error("Failed to resend confirmation", logger.Error(err), logger.Component("account"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) forgotPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "forgot", h.view(r, "forgot.title"))
}

func (h *Handler) forgot(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "forgot.title")
	v.Email = r.PostFormValue("email")

	res, err := h.svc.RequestPasswordReset(r.Context(), v.Email)
	switch {
	case err == nil && res.Sent:
		v.Flash = v.T("forgot.sent")
		h.render(w, http.StatusOK, "message", v)
	case err == nil:
		v.Error = v.T("forgot.not_sent")
		h.render(w, http.StatusBadGateway, "message", v)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidEmail):
		v.Error = v.T("forgot.unknown_user")
		h.render(w, http.StatusNotFound, "forgot", v)
	case errors.Is(err, auth.ErrEmailNotConfirmed):
		v.Error = v.T("forgot.not_confirmed")
		v.ShowResend = true
		h.render(w, http.StatusForbidden, "message", v)
	default:
		h.logger.Error("Password reset request failed", logger.Error(err), logger.Component("account"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) resetPage(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "reset.title")
	v.Token = chi.URLParam(r, "token")
	h.render(w, http.StatusOK, "reset", v)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	v := h.view(r, "reset.title")
	v.Token = chi.URLParam(r, "token")

	password := r.PostFormValue("password")
	if password != r.PostFormValue("password_confirm") {
		v.Error = v.T("reset.password_mismatch")
		h.render(w, http.StatusUnprocessableEntity, "reset", v)
		return
	}

	_, err := h.svc.ResetPassword(r.Context(), v.Token, password)
	switch {
	case err == nil:
		v.Flash = v.T("reset.success")
		h.render(w, http.StatusOK, "message", v)
	case errors.Is(err, auth.ErrTokenExpired):
		v.Error = v.T("reset.expired")
		h.render(w, http.StatusGone, "message", v)
	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrUserNotFound):
		v.Error = v.T("reset.invalid")
		h.render(w, http.StatusBadRequest, "message", v)
	case errors.Is(err, auth.ErrEmailNotConfirmed):
		v.Error = v.T("forgot.not_confirmed")
		h.render(w, http.StatusForbidden, "message", v)
	case validator.IsValidationError(err):
		v.Error = v.firstValidationMessage(err)
		h.render(w, http.StatusUnprocessableEntity, "reset", v)
	default:
		h.logger.Error("Password reset failed", logger.Error(err), logger.Component("account"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// switchLang stores the language choice in a cookie and goes back to login.
func (h *Handler) switchLang(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	for _, s := range h.tr.Languages() {
		if s == code {
			http.SetCookie(w, &http.Cookie{
				Name:     langCookie,
				Value:    code,
				Path:     "/",
				MaxAge:   365 * 24 * 3600,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			break
		}
	}
	http.Redirect(w, r, h.basePath+"/login", http.StatusSeeOther)
}
