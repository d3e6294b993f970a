// Package i18n loads translation catalogs and negotiates the request language.
//
// Catalogs are maps keyed by language, then by message key. They are loaded
// from JSON or YAML files through a TranslationAdapter (MapAdapter,
// FileAdapter, DirectoryAdapter):
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewDirectoryAdapter("./translations"),
//	    i18n.WithDefaultLanguage("en"))
//
// Keys are looked up literally first, then as dot-separated paths into nested
// maps. A key missing in the requested language falls back to the default
// language.
//
// Translator.For binds a language and returns a Locale, whose Translate
// method satisfies form.Translator:
//
//	f := form.New("contact", form.WithTranslator(tr.For("de")))
//
// Middleware detects the language from a cookie, a query parameter or the
// Accept-Language header (matched with golang.org/x/text/language) and stores
// it in the request context; Language reads it back.
package i18n
