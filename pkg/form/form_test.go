package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func newForm(t *testing.T, src string, opts ...form.Option) *form.Form {
	t.Helper()
	f := form.New("com_demo.user", opts...)
	require.NoError(t, f.LoadXML(src, false))
	return f
}

func fieldKeys(fields []*form.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Key())
	}
	return out
}

func TestForm_Load(t *testing.T) {
	t.Parallel()

	const base = `<form><fields name="user"><field name="email" label="OLD"/></fields></form>`
	const ext = `<form><fields name="user"><field name="email" label="NEW"/><field name="phone"/></fields></form>`

	t.Run("first document must be a form", func(t *testing.T) {
		t.Parallel()
		f := form.New("demo")
		err := f.LoadXML(`<fields name="x"/>`, false)
		require.ErrorIs(t, err, form.ErrInvalidDefinition)
		assert.Nil(t, f.Definition())

		require.ErrorIs(t, f.Load(nil, false), form.ErrInvalidDefinition)
		require.ErrorIs(t, f.Lint(), form.ErrInvalidDefinition)
	})

	t.Run("existing fields are kept without replace", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, base)
		require.NoError(t, f.LoadXML(ext, false))

		email, err := f.Field("email", "user")
		require.NoError(t, err)
		assert.Equal(t, "OLD", email.Attr("label"))

		_, err = f.Field("phone", "user")
		require.NoError(t, err)

		fields, err := f.Group("user", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"user.email", "user.phone"}, fieldKeys(fields))
	})

	t.Run("existing fields are replaced in place", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, base)
		require.NoError(t, f.LoadXML(ext, true))

		email, err := f.Field("email", "user")
		require.NoError(t, err)
		assert.Equal(t, "NEW", email.Attr("label"))

		fields, err := f.Group("user", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"user.email", "user.phone"}, fieldKeys(fields))
	})

	t.Run("root level fields", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, `<form><field name="title" label="OLD"/></form>`)
		require.NoError(t, f.LoadXML(`<form><field name="title" label="NEW"/></form>`, true))

		title, err := f.Field("title", "")
		require.NoError(t, err)
		assert.Equal(t, "NEW", title.Attr("label"))
	})

	t.Run("later documents not rooted at form are ignored", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, base)
		require.NoError(t, f.LoadXML(`<fields name="other"><field name="x"/></fields>`, false))
		_, err := f.Field("x", "other")
		require.ErrorIs(t, err, form.ErrFieldNotFound)
	})
}

func TestForm_Merge(t *testing.T) {
	t.Parallel()

	f := newForm(t, `<form><fields name="user"><field name="email" label="OLD"/></fields></form>`)
	patch := definition.MustParse(`<form><fields name="user"><field name="email" label="NEW" required="true"/><field name="nick"/></fields></form>`)
	require.NoError(t, f.Merge(patch))

	email, err := f.Field("email", "user")
	require.NoError(t, err)
	assert.Equal(t, "NEW", email.Attr("label"))
	assert.True(t, email.Required())

	_, err = f.Field("nick", "user")
	require.NoError(t, err)

	empty := form.New("demo")
	require.NoError(t, empty.Merge(patch))
	assert.NotNil(t, empty.Definition())
}

func TestForm_Bind(t *testing.T) {
	t.Parallel()

	f := newForm(t, `<form>
		<field name="email"/>
		<fields name="address">
			<field name="city"/>
			<fields name="geo"><field name="lat"/></fields>
		</fields>
	</form>`)

	f.Bind(map[string]any{
		"email":   "a@b.c",
		"unknown": "dropped",
		"address": map[string]any{
			"city":  "Berlin",
			"extra": "dropped",
			"geo":   map[string]any{"lat": "52.5"},
		},
	})

	data := f.Data()
	assert.Equal(t, "a@b.c", data.Get("email"))
	assert.Equal(t, "Berlin", data.Get("address.city"))
	assert.Equal(t, "52.5", data.Get("address.geo.lat"))
	assert.False(t, data.Has("unknown"))
	assert.False(t, data.Has("address.extra"))

	city, err := f.Field("city", "address")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", city.Value())

	data.Set("email", "changed")
	assert.Equal(t, "a@b.c", f.Value("email", ""), "Data returns a copy")

	assert.True(t, f.SetValue("lat", "address.geo", "13.4"))
	assert.Equal(t, "13.4", f.Value("lat", "address.geo"))
	assert.False(t, f.SetValue("lat", "address", "1"))

	f.Reset(false)
	assert.Empty(t, f.Data())
	_, err = f.Field("email", "")
	require.NoError(t, err, "definition survives a data reset")
}

func TestForm_FieldIdentifiers(t *testing.T) {
	t.Parallel()

	const src = `<form>
		<fields name="a">
			<fields name="b">
				<field name="f"/>
				<field name="m" type="select" multiple="true"/>
				<field name="own" id="custom-id"/>
			</fields>
		</fields>
		<field name="root"/>
	</form>`

	tests := []struct {
		name     string
		opts     []form.Option
		field    string
		group    string
		wantID   string
		wantName string
	}{
		{name: "nested", field: "f", group: "a.b", wantID: "csForm_contact_edit_a_b_f", wantName: "csForm[a][b][f]"},
		{name: "multiple", field: "m", group: "a.b", wantID: "csForm_contact_edit_a_b_m", wantName: "csForm[a][b][m][]"},
		{name: "explicit id", field: "own", group: "a.b", wantID: "custom-id", wantName: "csForm[a][b][own]"},
		{name: "root", field: "root", wantID: "csForm_contact_edit_root", wantName: "csForm[root]"},
		{name: "no control nested", opts: []form.Option{form.WithControl("")}, field: "f", group: "a.b", wantID: "contact_edit_a_b_f", wantName: "a[b][f]"},
		{name: "no control root", opts: []form.Option{form.WithControl("")}, field: "root", wantID: "contact_edit_root", wantName: "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := form.New("Contact.Edit", tt.opts...)
			require.NoError(t, f.LoadXML(src, false))

			field, err := f.Field(tt.field, tt.group)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, field.ID())
			assert.Equal(t, tt.wantName, field.Name())
		})
	}
}

func TestForm_EditDefinition(t *testing.T) {
	t.Parallel()

	const src = `<form>
		<fields name="a"><field name="x" label="old"/></fields>
		<fields name="opts"><field name="first"/></fields>
		<fields name="opts"><field name="second"/></fields>
	</form>`

	t.Run("set field", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, src)

		node := definition.NewNode(definition.TagField, definition.Attr{Name: "name", Value: "added"})
		require.NoError(t, f.SetField(node, "a", false))
		_, err := f.Field("added", "a")
		require.NoError(t, err)

		require.ErrorIs(t, f.SetField(node, "missing", false), form.ErrGroupNotFound)
		require.ErrorIs(t, f.SetField(definition.NewNode(definition.TagField), "", false), form.ErrMissingFieldName)
		require.ErrorIs(t, f.SetFields([]*definition.Node{node, definition.NewNode(definition.TagField)}, "", false), form.ErrMissingFieldName)

		require.NoError(t, f.SetFields([]*definition.Node{node}, "", false))
		_, err = f.Field("added", "")
		require.NoError(t, err)
	})

	t.Run("set field keeps or replaces", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, src)
		repl := definition.NewNode(definition.TagField,
			definition.Attr{Name: "name", Value: "x"},
			definition.Attr{Name: "label", Value: "new"})

		require.NoError(t, f.SetField(repl, "a", false))
		x, err := f.Field("x", "a")
		require.NoError(t, err)
		assert.Equal(t, "old", x.Attr("label"))

		require.NoError(t, f.SetField(repl, "a", true))
		x, err = f.Field("x", "a")
		require.NoError(t, err)
		assert.Equal(t, "new", x.Attr("label"))

		fields, err := f.Group("a", false)
		require.NoError(t, err)
		assert.Len(t, fields, 1)
	})

	t.Run("attributes", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, src)

		require.NoError(t, f.SetFieldAttributes("x", map[string]string{"required": "true", "class": "wide"}, "a"))
		x, err := f.Field("x", "a")
		require.NoError(t, err)
		assert.True(t, x.Required())
		assert.Equal(t, "wide", f.FieldAttribute("x", "class", "narrow", "a"))
		assert.Equal(t, "narrow", f.FieldAttribute("x", "missing", "narrow", "a"))
		assert.Equal(t, "narrow", f.FieldAttribute("nope", "class", "narrow", "a"))

		require.ErrorIs(t, f.SetFieldAttribute("nope", "class", "x", "a"), form.ErrFieldNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, src)

		assert.True(t, f.RemoveField("x", "a"))
		assert.False(t, f.RemoveField("x", "a"))
		assert.Equal(t, 2, f.RemoveGroup("opts"))
		assert.Equal(t, 0, f.RemoveGroup("opts"))

		fields, err := f.Fieldset("")
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("reset definition", func(t *testing.T) {
		t.Parallel()
		f := newForm(t, src)
		f.Reset(true)

		fields, err := f.Fieldset("")
		require.NoError(t, err)
		assert.Empty(t, fields)

		require.NoError(t, f.LoadXML(`<form><field name="fresh"/></form>`, false))
		_, err = f.Field("fresh", "")
		require.NoError(t, err)
	})
}

func TestForm_Options(t *testing.T) {
	t.Parallel()

	f := form.New("com_demo.user")
	assert.Equal(t, "csForm", f.Option("control"))
	assert.Equal(t, form.LayoutVertical, f.Option("layout"))
	assert.Empty(t, f.Option("labelCols"), "columns only apply to the horizontal layout")
	assert.Equal(t, "false", f.Option("update"))
	assert.Empty(t, f.Option("unknown"))
	assert.Equal(t, "user", f.Context())
	assert.Equal(t, "com_demo.user", f.Name())
	assert.Equal(t, "plain", form.New("plain").Context())

	h := form.NewFromConfig("demo", form.Config{
		Control:   "ctl",
		Layout:    form.LayoutHorizontal,
		LabelCols: "col-sm-4",
		FieldCols: "col-sm-8",
		Buttons:   "save,cancel",
		Update:    true,
	})
	assert.Equal(t, "ctl", h.Option("control"))
	assert.Equal(t, "col-sm-4", h.Option("labelCols"))
	assert.Equal(t, "col-sm-8", h.Option("fieldCols"))
	assert.Equal(t, "save,cancel", h.Option("buttons"))
	assert.Equal(t, "true", h.Option("update"))
}

func TestForm_Fieldsets(t *testing.T) {
	t.Parallel()

	f := newForm(t, `<form>
		<fieldset name="main" label="L" description="D" class="x"><field name="a"/></fieldset>
		<fields name="g"><field name="b" fieldset="side"/></fields>
		<fieldset name="side"><field name="c"/></fieldset>
	</form>`)

	assert.Equal(t, []form.FieldsetInfo{
		{Name: "main", Label: "L", Description: "D", Attrs: map[string]string{"class": "x"}},
		{Name: "side"},
	}, f.Fieldsets(""))
	assert.Equal(t, []form.FieldsetInfo{{Name: "side"}}, f.Fieldsets("g"))
	assert.Empty(t, f.Fieldsets("missing"))

	side, err := f.Fieldset("side")
	require.NoError(t, err)
	assert.Equal(t, []string{"g.b", "c"}, fieldKeys(side))

	all, err := f.Fieldset("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "g.b", "c"}, fieldKeys(all))

	ungrouped, err := f.Ungrouped()
	require.NoError(t, err)
	assert.Empty(t, ungrouped, "fieldsets directly under form are not in an unnamed fields element")

	assert.Nil(t, form.New("empty").Fieldsets(""))
}

func TestForm_UnknownFieldType(t *testing.T) {
	t.Parallel()

	f := newForm(t, `<form><field name="x" type="slider"/></form>`)
	_, err := f.Field("x", "")
	require.ErrorIs(t, err, form.ErrUnknownFieldType)

	_, err = f.Validate(form.Data{}, "")
	require.ErrorIs(t, err, form.ErrUnknownFieldType)
}

func TestForm_SameNameAcrossGroups(t *testing.T) {
	t.Parallel()

	f := newForm(t, `<form>
		<fields name="a">
			<field name="x" label="OUTER" required="true" validate="email"/>
			<fields name="b">
				<field name="x" label="INNER"/>
			</fields>
		</fields>
	</form>`)
	before := f.XML()

	outer, err := f.Field("x", "a")
	require.NoError(t, err)
	inner, err := f.Field("x", "a.b")
	require.NoError(t, err)

	assert.Equal(t, "a.x", outer.Key())
	assert.Equal(t, "a.b.x", inner.Key())
	assert.Equal(t, "OUTER", outer.Attr("label"))
	assert.Equal(t, "INNER", inner.Attr("label"))
	assert.True(t, outer.Required())
	assert.False(t, inner.Required())
	assert.Equal(t, []string{"email"}, outer.Rules())
	assert.Empty(t, inner.Rules())

	again, err := f.Field("x", "a")
	require.NoError(t, err)
	assert.Equal(t, "OUTER", again.Attr("label"), "cached entry stays per group")

	ok, err := f.Validate(form.Data{"a": map[string]any{"b": map[string]any{"x": "anything"}}}, "")
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, f.Errors(), 1)
	assert.Equal(t, "a.x", f.Errors()[0].FieldKey())

	assert.Equal(t, before, f.XML(), "resolving fields leaves the definition untouched")
}
