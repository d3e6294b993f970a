package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "de", "pt-BR"}
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en"},
		{"exact match", "de", "de"},
		{"quality ordering", "fr;q=0.9, de;q=0.8, en;q=0.5", "de"},
		{"regional falls back to base", "de-AT", "de"},
		{"regional supported", "pt-BR,en;q=0.1", "pt-BR"},
		{"no match", "ja, zh", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.ParseAcceptLanguage(tt.header, supported, "en"))
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "de", i18n.MatchLanguage("de-CH", []string{"en", "de"}, ""))
	assert.Equal(t, "", i18n.MatchLanguage("ja", []string{"en", "de"}, ""))
	assert.Equal(t, "en", i18n.MatchLanguage("!!", []string{"en"}, "en"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	handler := i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages("en", "de")))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = i18n.Language(r.Context())
		}),
	)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		want    string
	}{
		{"default", func(r *http.Request) {}, "en"},
		{"accept-language", func(r *http.Request) { r.Header.Set("Accept-Language", "de-DE,de;q=0.9") }, "de"},
		{"query param", func(r *http.Request) { r.URL.RawQuery = "lang=de" }, "de"},
		{"cookie wins", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
			r.URL.RawQuery = "lang=de"
		}, "en"},
		{"unsupported query ignored", func(r *http.Request) {
			r.URL.RawQuery = "lang=ja"
			r.Header.Set("Accept-Language", "de")
		}, "de"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		tt.prepare(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.want, rec.Header().Get("Content-Language"), tt.name)
		assert.Equal(t, "Accept-Language", rec.Header().Get("Vary"), tt.name)
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.Language(context.Background()))
	assert.Equal(t, "de", i18n.Language(i18n.WithLanguage(context.Background(), "de")))
	assert.Equal(t, i18n.DefaultLanguage, i18n.Language(i18n.WithLanguage(context.Background(), "")))
}

func TestDefaultLangExtractor_Unrestricted(t *testing.T) {
	t.Parallel()

	extract := i18n.DefaultLangExtractor(i18n.WithCookieName("locale"), i18n.WithQueryParamName("l"))

	req := httptest.NewRequest(http.MethodGet, "/?l=FR", nil)
	assert.Equal(t, "fr", extract(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "it-IT;q=0.8, en")
	assert.Equal(t, "en", extract(req), "highest quality first")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, extract(req))
}
