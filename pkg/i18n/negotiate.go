package i18n

import (
	"context"
	"net/http"
)

type languageKey struct{}

// WithLanguage returns a copy of ctx carrying lang.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// Language returns the language stored by WithLanguage or Middleware,
// DefaultLanguage when there is none.
func Language(ctx context.Context) string {
	if lang, _ := ctx.Value(languageKey{}).(string); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Middleware negotiates the request language with extr (DefaultLangExtractor
// when nil), stores it in the request context and announces it in the
// Content-Language response header.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = DefaultLanguage
			}
			w.Header().Set("Content-Language", lang)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}
