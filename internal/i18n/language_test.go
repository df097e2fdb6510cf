package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name     string
		cookie   *http.Cookie
		fallback string
		want     string
	}{
		{"no cookie", nil, "", "en-US"},
		{"no cookie custom fallback", nil, "de-DE", "de-DE"},
		{"exact tag", &http.Cookie{Name: "language", Value: "de-DE"}, "", "de-DE"},
		{"canonicalized", &http.Cookie{Name: "language", Value: "en-us"}, "", "en-US"},
		{"language only", &http.Cookie{Name: "language", Value: "fr"}, "", "fr"},
		{"empty value", &http.Cookie{Name: "language", Value: ""}, "", "en-US"},
		{"garbage", &http.Cookie{Name: "language", Value: "!!"}, "", "en-US"},
		{"undetermined", &http.Cookie{Name: "language", Value: "und"}, "", "en-US"},
		{"other cookie", &http.Cookie{Name: "session", Value: "de-DE"}, "", "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/news", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			assert.Equal(t, tt.want, ResolveLanguage(r, tt.fallback))
		})
	}
}

func TestResolveLanguage_NilRequest(t *testing.T) {
	assert.Equal(t, "en-US", ResolveLanguage(nil, ""))
}

func TestParseLanguage(t *testing.T) {
	got, ok := ParseLanguage("  de-de ")
	assert.True(t, ok)
	assert.Equal(t, "de-DE", got)

	_, ok = ParseLanguage("   ")
	assert.False(t, ok)
}
