package account_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/citelab/bibcat/modules/account"
	"github.com/citelab/bibcat/pkg/i18n"
	"github.com/citelab/bibcat/pkg/session"
	"github.com/citelab/bibcat/svc/auth"
)

// memStorage is a minimal in-memory auth.Storage for handler tests.
type memStorage struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[string]*auth.User)}
}

func (s *memStorage) Create(ctx context.Context, email, password string, confirmed bool) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, auth.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	u := &auth.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		EmailConfirmed: confirmed,
		CreatedAt:      time.Now(),
	}
	s.users[email] = u
	clone := *u
	return &clone, nil
}

func (s *memStorage) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memStorage) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) SetEmailConfirmed(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u.EmailConfirmed = true
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (s *memStorage) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
			if err != nil {
				return err
			}
			u.PasswordHash = string(hash)
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (s *memStorage) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for old, u := range s.users {
		if u.ID == id {
			delete(s.users, old)
			u.Email = email
			u.EmailConfirmed = false
			s.users[email] = u
			return nil
		}
	}
	return auth.ErrUserNotFound
}

// fakeNotifier captures dispatched links.
type fakeNotifier struct {
	mu       sync.Mutex
	confirms []string
	resets   []string
}

func (n *fakeNotifier) SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) (bool, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirms = append(n.confirms, confirmURL)
	return true, ""
}

func (n *fakeNotifier) SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) (bool, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets = append(n.resets, resetURL)
	return true, ""
}

func (n *fakeNotifier) lastConfirm(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.confirms)
	return n.confirms[len(n.confirms)-1]
}

func (n *fakeNotifier) lastReset(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.resets)
	return n.resets[len(n.resets)-1]
}

const testBase = "https://cat.example.org"

type env struct {
	server   *httptest.Server
	storage  *memStorage
	notifier *fakeNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()

	storage := newMemStorage()
	notifier := &fakeNotifier{}
	svc := auth.NewService(storage, notifier, "test-secret", auth.WithBaseURL(testBase))

	tr := i18n.NewTranslator("es")
	require.NoError(t, account.LoadLocales(tr))

	sessions := session.NewManager(session.NewMemoryStore(), session.Config{
		CookieName: "bibcat_session",
		TTL:        time.Hour,
	})

	h := account.NewHandler(svc, sessions, tr)

	r := chi.NewRouter()
	r.Mount("/account", h.Router())
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &env{server: server, storage: storage, notifier: notifier}
}

func (e *env) client() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *env) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.client().Post(e.server.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// pathFromURL strips the service base URL so the link can be requested
// against the test server.
func pathFromURL(t *testing.T, full string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(full, testBase))
	// Links are built against the app root; the module is mounted at /account.
	return "/account" + strings.TrimPrefix(full, testBase)
}

func registerUser(t *testing.T, e *env, email, password string) {
	t.Helper()
	resp := e.postForm(t, "/account/register", url.Values{
		"email":            {email},
		"password":         {password},
		"password_confirm": {password},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func confirmUser(t *testing.T, e *env) {
	t.Helper()
	resp, err := e.client().Get(e.server.URL + pathFromURL(t, e.notifier.lastConfirm(t)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginPage(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	t.Run("renders spanish by default", func(t *testing.T) {
		resp, err := e.client().Get(e.server.URL + "/account/login")
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Iniciar sesión")
	})

	t.Run("negotiates english", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, e.server.URL+"/account/login", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := e.client().Do(req)
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Contains(t, body, "Sign in")
	})
}

func TestRegisterFlow(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	t.Run("register shows confirmation notice", func(t *testing.T) {
		resp := e.postForm(t, "/account/register", url.Values{
			"email":            {"admin@biblat.example"},
			"password":         {"Secr3t!23"},
			"password_confirm": {"Secr3t!23"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "correo de confirmación")
	})

	t.Run("password mismatch rejected", func(t *testing.T) {
		resp := e.postForm(t, "/account/register", url.Values{
			"email":            {"other@biblat.example"},
			"password":         {"Secr3t!23"},
			"password_confirm": {"Different1!"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "no coinciden")
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp := e.postForm(t, "/account/register", url.Values{
			"email":            {"admin@biblat.example"},
			"password":         {"Secr3t!23"},
			"password_confirm": {"Secr3t!23"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body, "Ya existe una cuenta")
	})

	t.Run("weak password rejected", func(t *testing.T) {
		resp := e.postForm(t, "/account/register", url.Values{
			"email":            {"weak@biblat.example"},
			"password":         {"short"},
			"password_confirm": {"short"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "al menos 8 caracteres")
	})
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	registerUser(t, e, "admin@biblat.example", "Secr3t!23")

	t.Run("unconfirmed login blocked", func(t *testing.T) {
		resp := e.postForm(t, "/account/login", url.Values{
			"email":    {"admin@biblat.example"},
			"password": {"Secr3t!23"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, body, "no ha sido confirmado")
	})

	t.Run("confirmed login sets session and redirects", func(t *testing.T) {
		confirmUser(t, e)

		resp := e.postForm(t, "/account/login", url.Values{
			"email":    {"admin@biblat.example"},
			"password": {"Secr3t!23"},
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin", resp.Header.Get("Location"))

		var found bool
		for _, c := range resp.Cookies() {
			if c.Name == "bibcat_session" && c.Value != "" {
				found = true
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found, "session cookie not set")
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := e.postForm(t, "/account/login", url.Values{
			"email":    {"admin@biblat.example"},
			"password": {"Wrong1!pass"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "incorrectos")
	})

	t.Run("unknown user gets same message as wrong password", func(t *testing.T) {
		resp := e.postForm(t, "/account/login", url.Values{
			"email":    {"ghost@biblat.example"},
			"password": {"Secr3t!23"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "incorrectos")
	})
}

func TestConfirmEdgeCases(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	t.Run("garbage token", func(t *testing.T) {
		resp, err := e.client().Get(e.server.URL + "/account/confirm/not-a-token")
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "no es válido")
	})
}

func TestPasswordRecoveryFlow(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	registerUser(t, e, "admin@biblat.example", "Secr3t!23")

	t.Run("unconfirmed account refused", func(t *testing.T) {
		resp := e.postForm(t, "/account/forgot", url.Values{"email": {"admin@biblat.example"}})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, body, "no ha sido confirmado")
	})

	t.Run("unknown user reported", func(t *testing.T) {
		resp := e.postForm(t, "/account/forgot", url.Values{"email": {"ghost@biblat.example"}})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "no registrado")
	})

	t.Run("full reset flow", func(t *testing.T) {
		confirmUser(t, e)

		resp := e.postForm(t, "/account/forgot", url.Values{"email": {"admin@biblat.example"}})
		readBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resetPath := pathFromURL(t, e.notifier.lastReset(t))

		// Form renders.
		pageResp, err := e.client().Get(e.server.URL + resetPath)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, pageResp.StatusCode)
		pageResp.Body.Close()

		// New password accepted.
		resp = e.postForm(t, resetPath, url.Values{
			"password":         {"N3w!password"},
			"password_confirm": {"N3w!password"},
		})
		body := readBody(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "actualizada")

		// Old password no longer works, new one does.
		resp = e.postForm(t, "/account/login", url.Values{
			"email":    {"admin@biblat.example"},
			"password": {"Secr3t!23"},
		})
		readBody(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = e.postForm(t, "/account/login", url.Values{
			"email":    {"admin@biblat.example"},
			"password": {"N3w!password"},
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})
}

func TestResendConfirmation(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	registerUser(t, e, "admin@biblat.example", "Secr3t!23")

	resp := e.postForm(t, "/account/resend", url.Values{"email": {"admin@biblat.example"}})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "reenviado")

	// The re-sent link works.
	confirmUser(t, e)
}
