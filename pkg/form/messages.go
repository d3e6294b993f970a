package form

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// Translator resolves an upper-cased message key.
type Translator interface {
	Translate(key string) (string, bool)
}

// MapTranslator is a Translator over a static map. Keys are matched upper-cased.
type MapTranslator map[string]string

// Translate implements Translator.
func (m MapTranslator) Translate(key string) (string, bool) {
	v, ok := m[strings.ToUpper(key)]
	if !ok {
		v, ok = m[key]
	}
	return v, ok && v != ""
}

// Default message keys.
const (
	KeyRequired     = "ERROR_FORM_FIELD_REQUIRED"
	KeyValidate     = "ERROR_FORM_FIELD_VALIDATE"
	KeyUnknownError = "UNKNOWN_ERROR"
)

var defaultMessages = MapTranslator{
	KeyRequired:     "This field is required",
	KeyValidate:     "Invalid value",
	KeyUnknownError: "Unknown error",
}

// Messages resolves labels, descriptions and error messages through the
// translation fallback chains. ns is the form namespace (see Form.Context).
type Messages struct {
	translator Translator
	update     bool
}

// NewMessages creates a resolver. A nil translator only knows the default messages.
func NewMessages(tr Translator, update bool) *Messages {
	return &Messages{translator: tr, update: update}
}

func (m *Messages) t(key string) (string, bool) {
	key = strings.ToUpper(key)
	if m.translator != nil {
		if v, ok := m.translator.Translate(key); ok && v != "" {
			return v, true
		}
	}
	return defaultMessages.Translate(key)
}

// Lookup resolves a single key, upper-cased, without fallbacks.
func (m *Messages) Lookup(key string) (string, bool) {
	return m.t(key)
}

func (m *Messages) first(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m.t(k); ok {
			return v, true
		}
	}
	return "", false
}

// explicit resolves an override value: tried as a key, then used verbatim.
func (m *Messages) explicit(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	if v, ok := m.t(value); ok {
		return v, true
	}
	return value, true
}

// key joins the non-empty parts with underscores, upper-cased.
func key(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.ToUpper(strings.Join(out, "_"))
}

// Label resolves FIELD_{NS}_{NAME}_LABEL, then FIELD_{NAME}_LABEL, falling
// back to the first key itself.
func (m *Messages) Label(value, ns, name string) string {
	if v, ok := m.explicit(value); ok {
		return v
	}
	if v, ok := m.first(key("FIELD", ns, name, "LABEL"), key("FIELD", name, "LABEL")); ok {
		return v
	}
	return key("FIELD", ns, name, "LABEL")
}

// Header resolves the _HEADER keys and falls back to the label.
func (m *Messages) Header(value, ns, name string) string {
	if v, ok := m.explicit(value); ok {
		return v
	}
	if v, ok := m.first(key("FIELD", ns, name, "HEADER"), key("FIELD", name, "HEADER")); ok {
		return v
	}
	return m.Label("", ns, name)
}

// Description resolves the _DESC keys, or _DESC_UPDATE in update mode.
func (m *Messages) Description(value, ns, name string) string {
	if v, ok := m.explicit(value); ok {
		return v
	}
	suffix := "DESC"
	if m.update {
		suffix = "DESC_UPDATE"
	}
	v, _ := m.first(key("FIELD", ns, name, suffix), key("FIELD", name, suffix))
	return v
}

// FieldsetLegend resolves FIELDSET_{NS}_{NAME}_LEGEND then FIELDSET_{NAME}_LEGEND.
func (m *Messages) FieldsetLegend(value, ns, name string) string {
	if v, ok := m.explicit(value); ok {
		return v
	}
	v, _ := m.first(key("FIELDSET", ns, name, "LEGEND"), key("FIELDSET", name, "LEGEND"))
	return v
}

// FieldsetDescription resolves FIELDSET_{NS}_{NAME}_DESC then FIELDSET_{NAME}_DESC.
func (m *Messages) FieldsetDescription(value, ns, name string) string {
	if v, ok := m.explicit(value); ok {
		return v
	}
	v, _ := m.first(key("FIELDSET", ns, name, "DESC"), key("FIELDSET", name, "DESC"))
	return v
}

// RequiredError resolves the message of a required failure.
func (m *Messages) RequiredError(value, ns, name string) string {
	if v, ok := m.explicit(value); ok {
		return v
	}
	if v, ok := m.first(key("ERROR_FORM_FIELD", ns, name, "REQUIRED"), key("ERROR_FORM_FIELD", name, "REQUIRED")); ok {
		return v
	}
	generic, _ := m.t(KeyRequired)
	return generic + " : " + m.Label("", ns, name)
}

// RuleError resolves the message of a failed rule.
func (m *Messages) RuleError(ns, name, rule string) string {
	if v, ok := m.first(
		key("ERROR_FORM_FIELD", ns, name, rule, "VALIDATE"),
		key("ERROR_FORM_FIELD", name, rule, "VALIDATE"),
		key("ERROR_FORM_FIELD", ns, name, "VALIDATE"),
		key("ERROR_FORM_FIELD", name, "VALIDATE"),
	); ok {
		return v
	}
	generic, _ := m.t(KeyValidate)
	return generic + " : " + m.Label("", ns, name)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// FormatStaticValue joins lists with <br /> and trims the result.
func FormatStaticValue(v any) string {
	return strings.TrimSpace(stringValue(v, "<br />"))
}

// FormatHiddenValue joins lists with commas, strips tags and collapses whitespace.
func FormatHiddenValue(v any) string {
	s := sanitizer.StripTags(stringValue(v, ","))
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
