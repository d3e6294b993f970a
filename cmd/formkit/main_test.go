package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactXML = `<form>
	<fieldset name="main">
		<field name="email" type="email" required="true" validate="email"/>
		<field name="age" type="number" filter="int"/>
	</fieldset>
	<fields name="address">
		<field name="city" type="text"/>
	</fields>
</form>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the command tree with an isolated environment.
func execute(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd(env)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig("", map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, time.Hour, cfg.CSRFTTL)
		assert.Equal(t, "csForm", cfg.Form.Control)
		assert.Equal(t, "vertical", cfg.Form.Layout)
		assert.Zero(t, cfg.SubmitBurst)
		assert.Equal(t, time.Second, cfg.SubmitInterval)
	})

	t.Run("prefixed variables", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig("", map[string]string{
			"FORMKIT_CSRF_TTL":     "5m",
			"FORMKIT_FORM_CONTROL": "jform",
			"FORMKIT_FORM_UPDATE":  "true",
			"FORMKIT_SUBMIT_BURST": "5",
			"CSRF_TTL":             "1s",
		})
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, cfg.CSRFTTL)
		assert.Equal(t, "jform", cfg.Form.Control)
		assert.True(t, cfg.Form.Update)
		assert.Equal(t, 5, cfg.SubmitBurst)
	})

	t.Run("env file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "test.env", "FORMKIT_LANG=de\n")
		cfg, err := loadConfig(path, map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "de", cfg.Lang)
	})
}

func TestLoadData(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	data, err := loadData(writeFile(t, dir, "d.json", `{"email":"a@example.com","address":{"city":"Oslo"}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "a@example.com", "address": map[string]any{"city": "Oslo"}}, data)

	data, err = loadData(writeFile(t, dir, "d.yaml", "email: a@example.com\naddress:\n  city: Oslo\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "a@example.com", "address": map[string]any{"city": "Oslo"}}, data)

	data, err = loadData("")
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = loadData(writeFile(t, dir, "d.txt", "x"))
	assert.ErrorIs(t, err, errUnsupportedData)
}

func TestLintCommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	t.Run("clean definition", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, nil, "lint", writeFile(t, dir, "ok.xml", contactXML))
		require.NoError(t, err)
		assert.Equal(t, "ok: 3 field(s)\n", out)
	})

	t.Run("problems", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "bad.xml", `<form>
			<field name="a" type="slider"/>
			<field name="b" validate="email|nope"/>
			<field type="text"/>
		</form>`)
		out, err := execute(t, nil, "lint", path)
		assert.ErrorIs(t, err, errLintFailed)
		assert.Contains(t, out, "a@type:")
		assert.Contains(t, out, "b@validate:")
		assert.Contains(t, out, "#3@name:")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	def := writeFile(t, dir, "contact.xml", contactXML)

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		data := writeFile(t, dir, "valid.json", `{"email":"a@example.com"}`)
		out, err := execute(t, nil, "validate", def, "--data", data)
		require.NoError(t, err)

		var res struct {
			Valid  bool  `json:"valid"`
			Errors []any `json:"errors"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		data := writeFile(t, dir, "invalid.yaml", "email: nope\n")
		out, err := execute(t, nil, "validate", def, "-d", data)
		assert.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, out, `"kind": "invalid"`)
		assert.Contains(t, out, `"field": "email"`)
	})

	t.Run("unknown group", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, nil, "validate", def, "--group", "missing")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, errValidationFailed)
	})
}

func TestFilterCommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	def := writeFile(t, dir, "contact.xml", contactXML)
	data := writeFile(t, dir, "data.json", `{"email":" a@example.com ","age":"42","address":{"city":"<b>Oslo</b>"}}`)

	out, err := execute(t, nil, "filter", def, "--data", data, "--group", "address")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, map[string]any{"address": map[string]any{"city": "Oslo"}}, res)
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	def := writeFile(t, dir, "contact.xml", contactXML)
	translations := writeFile(t, dir, "t.yaml", "en:\n  FIELD_EMAIL_LABEL: Mail\n")

	out, err := execute(t, map[string]string{
		"FORMKIT_TRANSLATIONS": translations,
		"FORMKIT_CSRF_SECRET":  "secret",
	}, "render", def, "--layout", "tabs")
	require.NoError(t, err)

	var doc struct {
		Form string `json:"form"`
		Tabs struct {
			Contents []struct {
				Fields []struct {
					Label struct {
						Text string `json:"text"`
					} `json:"label"`
				} `json:"fields"`
			} `json:"contents"`
		} `json:"tabs"`
		Token struct {
			Attrs map[string]string `json:"attrs"`
		} `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "contact", doc.Form)
	require.Len(t, doc.Tabs.Contents, 1)
	assert.Equal(t, "Mail", doc.Tabs.Contents[0].Fields[0].Label.Text)
	assert.Equal(t, "_csrf", doc.Token.Attrs["name"])
	assert.NotEmpty(t, doc.Token.Attrs["value"])
}

func TestRootCommand_BadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	def := writeFile(t, dir, "contact.xml", contactXML)

	_, err := execute(t, map[string]string{"FORMKIT_LOG_FORMAT": "xml"}, "lint", def)
	assert.Error(t, err)

	_, err = execute(t, map[string]string{"FORMKIT_LOG_LEVEL": "loud"}, "lint", def)
	assert.Error(t, err)
}
