package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

// NegotiateLanguage picks the best supported language for the request's
// Accept-Language header. Falls back to defaultLang when nothing matches or
// the header is absent/malformed.
func NegotiateLanguage(r *http.Request, supported []string, defaultLang string) string {
	if len(supported) == 0 {
		return defaultLang
	}

	// codes stays parallel to tags so the match index maps back to the
	// original code even when some supported entries fail to parse.
	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, lang := range supported {
		tag, err := language.Parse(lang)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, lang)
	}
	if len(tags) == 0 {
		return defaultLang
	}

	matcher := language.NewMatcher(tags)

	accepted, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(accepted) == 0 {
		return defaultLang
	}

	_, index, confidence := matcher.Match(accepted...)
	if confidence == language.No {
		return defaultLang
	}
	return codes[index]
}
