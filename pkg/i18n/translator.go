package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Option is a function that configures a Translator instance.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when a key is missing in the
// requested language.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger sets the logger. If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Translator holds catalogs keyed by language.
type Translator struct {
	translations Catalogs
	defaultLang  string
	logger       *slog.Logger
	mu           sync.RWMutex
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, catalog := range translations {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrNoTranslations)
		}
		if catalog == nil {
			return nil, fmt.Errorf("%w: nil catalog for language %s", ErrNoTranslations, lang)
		}
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded", "languages", t.supportedLanguages())
	return t, nil
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Lookup finds key in lang, then in the default language. A key is first
// matched literally, then as a dot-separated path into nested maps.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if v, ok := lookup(t.translations[lang], key); ok {
		return v, true
	}
	if lang != t.defaultLang {
		if v, ok := lookup(t.translations[t.defaultLang], key); ok {
			return v, true
		}
	}
	t.logger.Debug("translation not found", "lang", lang, "key", key)
	return "", false
}

// T translates key for lang with named %{param} substitution from
// key/value pairs in args. A missing key is returned as is.
func (t *Translator) T(lang, key string, args ...string) string {
	msg, ok := t.Lookup(lang, key)
	if !ok {
		msg = key
	}
	return substitute(msg, args)
}

// Tc is T with the language taken from ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(Language(ctx), key, args...)
}

// For returns a translator bound to one language.
func (t *Translator) For(lang string) Locale {
	return Locale{translator: t, lang: lang}
}

// Locale is a Translator bound to a language.
type Locale struct {
	translator *Translator
	lang       string
}

// Lang returns the bound language.
func (l Locale) Lang() string {
	return l.lang
}

// Translate resolves key in the bound language.
func (l Locale) Translate(key string) (string, bool) {
	if l.translator == nil {
		return "", false
	}
	return l.translator.Lookup(l.lang, key)
}

func lookup(catalog map[string]any, key string) (string, bool) {
	if catalog == nil {
		return "", false
	}
	if v, ok := catalog[key]; ok {
		return asString(v)
	}

	current := catalog
	parts := strings.Split(key, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			return asString(v)
		}
		next, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	case int, int64, float64, bool:
		return fmt.Sprint(s), true
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
