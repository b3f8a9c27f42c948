package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Config holds session manager configuration.
type Config struct {
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"bibcat_session"`
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SecureCookies bool          `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
}

// Manager issues, resolves and destroys login sessions.
type Manager struct {
	store  Store
	config Config
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, cfg Config) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "bibcat_session"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &Manager{store: store, config: cfg}
}

// Start creates a session for the user and sets the cookie on the response.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID uuid.UUID, email, locale string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		Locale:    locale,
		ExpiresAt: now.Add(m.config.TTL),
		CreatedAt: now,
	}

	if err := m.store.Create(ctx, session, m.config.TTL); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.config.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return session, nil
}

// Get resolves the session referenced by the request cookie.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil {
		return nil, ErrNoToken
	}

	session, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		_ = m.store.Delete(ctx, session.Token)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Destroy removes the session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil {
		return nil // nothing to destroy
	}

	if err := m.store.Delete(ctx, cookie.Value); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware resolves the request session, if any, and stores it in the
// request context. Handlers decide whether an absent session is an error.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, err := m.Get(r.Context(), r); err == nil {
			r = r.WithContext(WithSession(r.Context(), session))
		}
		next.ServeHTTP(w, r)
	})
}

// generateToken returns 32 bytes of cryptographic randomness, URL-safe encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
