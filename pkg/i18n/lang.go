package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is the default language code used when no language is detected
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header size that is parsed.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the supported language that best matches an
// Accept-Language header. Quality values are honored and regional variants
// fall back to their base language (en-US matches en). defaultLang is
// returned when nothing matches.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return defaultLang
	}
	return match(desired, supportedLangs, defaultLang)
}

// MatchLanguage returns the supported language closest to lang, or defaultLang.
func MatchLanguage(lang string, supportedLangs []string, defaultLang string) string {
	tag, err := language.Parse(lang)
	if err != nil || len(supportedLangs) == 0 {
		return defaultLang
	}
	return match([]language.Tag{tag}, supportedLangs, defaultLang)
}

func match(desired []language.Tag, supportedLangs []string, defaultLang string) string {
	supported := make([]language.Tag, 0, len(supportedLangs))
	names := make([]string, 0, len(supportedLangs))
	for _, s := range supportedLangs {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		names = append(names, s)
	}
	if len(supported) == 0 {
		return defaultLang
	}

	_, idx, conf := language.NewMatcher(supported).Match(desired...)
	if conf == language.No {
		return defaultLang
	}
	return names[idx]
}
