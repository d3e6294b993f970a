package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// maxLangCodeLength is the maximum accepted length for an explicit language code.
const maxLangCodeLength = 35

// LangExtractor extracts a language code from a request. An empty result
// means no preference was found.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie name to check for language preference
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter name to check for language
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order, the "lang" cookie, the "lang" query
// parameter and the Accept-Language header. With supported languages set,
// explicit codes are matched against them and unsupported ones are skipped.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	explicit := func(lang string) string {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || len(lang) > maxLangCodeLength {
			return ""
		}
		if len(cfg.SupportedLangs) == 0 {
			return lang
		}
		return MatchLanguage(lang, cfg.SupportedLangs, "")
	}

	return func(r *http.Request) string {
		if cookie, err := r.Cookie(cfg.CookieName); err == nil {
			if lang := explicit(cookie.Value); lang != "" {
				return lang
			}
		}

		if lang := explicit(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
			return lang
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		if len(cfg.SupportedLangs) > 0 {
			return ParseAcceptLanguage(header, cfg.SupportedLangs, "")
		}
		tags, _, err := language.ParseAcceptLanguage(header)
		if err != nil || len(tags) == 0 {
			return ""
		}
		return explicit(tags[0].String())
	}
}
