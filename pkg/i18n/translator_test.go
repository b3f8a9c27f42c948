package i18n_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citelab/bibcat/pkg/i18n"
)

const esCatalog = `
login:
  invalid_credentials: "Usuario o contraseña incorrectos"
  email_not_confirmed: "Debe confirmar su correo electrónico"
greeting: "Hola %s"
`

const enCatalog = `
login:
  invalid_credentials: "Invalid email or password"
`

func newTestTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr := i18n.NewTranslator("es")
	require.NoError(t, tr.LoadYAML("es", []byte(esCatalog)))
	require.NoError(t, tr.LoadYAML("en", []byte(enCatalog)))
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	t.Run("nested key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Usuario o contraseña incorrectos", tr.T("es", "login.invalid_credentials"))
		assert.Equal(t, "Invalid email or password", tr.T("en", "login.invalid_credentials"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Debe confirmar su correo electrónico", tr.T("en", "login.email_not_confirmed"))
	})

	t.Run("falls back to key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "missing.key", tr.T("es", "missing.key"))
	})

	t.Run("formatting args", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hola Ana", tr.T("es", "greeting", "Ana"))
	})
}

func TestTranslator_LoadYAML_Invalid(t *testing.T) {
	t.Parallel()
	tr := i18n.NewTranslator("es")
	err := tr.LoadYAML("es", []byte(":\nnot yaml: ["))
	assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
}

func TestNegotiateLanguage(t *testing.T) {
	t.Parallel()

	supported := []string{"es", "en"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "exact match", header: "en", want: "en"},
		{name: "regional variant", header: "es-MX,es;q=0.9", want: "es"},
		{name: "quality ordering", header: "en;q=0.8,es;q=0.9", want: "es"},
		{name: "no header", header: "", want: "es"},
		{name: "unsupported", header: "fr", want: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			assert.Equal(t, tt.want, i18n.NegotiateLanguage(req, supported, "es"))
		})
	}

	t.Run("unparseable supported code does not shift the match", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept-Language", "en")
		assert.Equal(t, "en", i18n.NegotiateLanguage(req, []string{"**", "es", "en"}, "es"))
	})
}
