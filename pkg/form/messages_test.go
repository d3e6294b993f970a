package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestMessages(t *testing.T) {
	t.Parallel()

	tr := form.MapTranslator{
		"FIELD_USER_EMAIL_LABEL":  "Your e-mail",
		"FIELD_NAME_LABEL":        "Name",
		"FIELD_NAME_HEADER":       "Full name",
		"FIELD_EMAIL_DESC":        "We never share it",
		"FIELD_EMAIL_DESC_UPDATE": "Changing it needs confirmation",
		"FIELDSET_MAIN_LEGEND":    "Main",
		"FIELDSET_USER_MAIN_DESC": "Basics",
		"MY_LABEL":                "Translated label",
		"EMPTY":                   "",
		"ERROR_FORM_FIELD_USER_EMAIL_EMAIL_VALIDATE": "Bad e-mail",
		"ERROR_FORM_FIELD_NAME_VALIDATE":             "Bad name",
		"ERROR_FORM_FIELD_REQUIRED":                  "Required",
	}
	m := form.NewMessages(tr, false)
	update := form.NewMessages(tr, true)

	t.Run("label", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Your e-mail", m.Label("", "user", "email"))
		assert.Equal(t, "Name", m.Label("", "user", "name"))
		assert.Equal(t, "FIELD_USER_CITY_LABEL", m.Label("", "user", "city"))
		assert.Equal(t, "FIELD_CITY_LABEL", m.Label("", "", "city"))
		assert.Equal(t, "Translated label", m.Label("my_label", "user", "email"))
		assert.Equal(t, "Plain text", m.Label("Plain text", "user", "email"))
	})

	t.Run("header", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Full name", m.Header("", "user", "name"))
		assert.Equal(t, "Your e-mail", m.Header("", "user", "email"))
	})

	t.Run("description", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "We never share it", m.Description("", "user", "email"))
		assert.Equal(t, "Changing it needs confirmation", update.Description("", "user", "email"))
		assert.Empty(t, m.Description("", "user", "city"))
	})

	t.Run("fieldset", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Main", m.FieldsetLegend("", "user", "main"))
		assert.Equal(t, "Basics", m.FieldsetDescription("", "user", "main"))
		assert.Empty(t, m.FieldsetLegend("", "user", "other"))
		assert.Equal(t, "Custom", m.FieldsetLegend("Custom", "user", "other"))
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Required : Your e-mail", m.RequiredError("", "user", "email"))
		assert.Equal(t, "Fill it", m.RequiredError("Fill it", "user", "email"))
		assert.Equal(t, "Bad e-mail", m.RuleError("user", "email", "email"))
		assert.Equal(t, "Bad name", m.RuleError("user", "name", "url"))
		assert.Equal(t, "Invalid value : FIELD_USER_CITY_LABEL", m.RuleError("user", "city", "url"))
	})

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()
		v, ok := m.Lookup("my_label")
		assert.True(t, ok)
		assert.Equal(t, "Translated label", v)

		_, ok = m.Lookup("empty")
		assert.False(t, ok, "empty translations are missing")

		v, ok = form.NewMessages(nil, false).Lookup(form.KeyUnknownError)
		assert.True(t, ok)
		assert.Equal(t, "Unknown error", v)
	})
}

func TestFormatValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a<br />b", form.FormatStaticValue([]string{"a", "b"}))
	assert.Equal(t, "x", form.FormatStaticValue("  x "))
	assert.Equal(t, "a,b", form.FormatHiddenValue([]any{"a", "<i>b</i>"}))
	assert.Equal(t, "a b", form.FormatHiddenValue("a \n\t b"))
}
