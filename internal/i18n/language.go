package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LanguageCookie names the cookie carrying the visitor's language.
	LanguageCookie = "language"

	// DefaultLanguage is used when no usable language cookie is present.
	DefaultLanguage = "en-US"
)

// ResolveLanguage returns the canonical BCP 47 tag from the language cookie
// of r. A cookie that is missing or does not parse yields fallback; an empty
// fallback means DefaultLanguage.
func ResolveLanguage(r *http.Request, fallback string) string {
	if fallback == "" {
		fallback = DefaultLanguage
	}
	if r == nil {
		return fallback
	}
	cookie, err := r.Cookie(LanguageCookie)
	if err != nil {
		return fallback
	}
	tag, ok := ParseLanguage(cookie.Value)
	if !ok {
		return fallback
	}
	return tag
}

// ParseLanguage canonicalizes a language tag. It reports false for blank or
// undetermined values and for malformed tags.
func ParseLanguage(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil || tag.String() == "und" {
		return "", false
	}
	return tag.String(), true
}
