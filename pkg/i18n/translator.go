// Package i18n provides message translation with YAML catalogs and
// Accept-Language negotiation.
//
// Catalogs are flat YAML maps per language:
//
//	login:
//	  invalid_credentials: "Usuario o contraseña incorrectos"
//
// Nested keys are addressed with dots: "login.invalid_credentials".
package i18n

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Translator resolves message keys against per-language catalogs.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

// NewTranslator creates a translator with the given default language.
func NewTranslator(defaultLang string) *Translator {
	return &Translator{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}
}

// LoadYAML parses a YAML catalog for the given language and merges it into
// the translator. Nested maps are flattened into dot-separated keys.
func (t *Translator) LoadYAML(lang string, data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	flat := make(map[string]string)
	flatten("", raw, flat)

	t.mu.Lock()
	defer t.mu.Unlock()
	existing, ok := t.translations[lang]
	if !ok {
		existing = make(map[string]string, len(flat))
		t.translations[lang] = existing
	}
	for k, v := range flat {
		existing[k] = v
	}
	return nil
}

// Languages returns the languages with loaded catalogs.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	return langs
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// T translates a key for the given language, falling back to the default
// language and finally to the key itself. Optional args are applied with
// fmt.Sprintf when the message contains verbs.
func (t *Translator) T(lang, key string, args ...any) string {
	t.mu.RLock()
	msg, ok := t.lookup(lang, key)
	if !ok {
		msg, ok = t.lookup(t.defaultLang, key)
	}
	t.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	catalog, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	msg, ok := catalog[key]
	return msg, ok
}

func flatten(prefix string, raw map[string]any, out map[string]string) {
	for k, v := range raw {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprintf("%v", val)
		}
	}
}
