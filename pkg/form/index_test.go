package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
)

const nestedDoc = `<form>
	<fields>
		<field name="title"/>
		<fieldset name="meta"><field name="slug"/></fieldset>
	</fields>
	<fields name="a">
		<field name="x" label="A_X"/>
		<fields name="b">
			<field name="x" label="AB_X"/>
			<field name="y"/>
		</fields>
	</fields>
	<fields name="opts"><field name="first"/></fields>
	<fields name="opts"><field name="second"/></fields>
</form>`

func newIndex(t *testing.T, src string) *form.Index {
	t.Helper()
	root, err := definition.ParseString(src)
	require.NoError(t, err)
	return form.NewIndex(root)
}

func names(nodes []*definition.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name())
	}
	return out
}

func TestIndex_FindField(t *testing.T) {
	t.Parallel()
	idx := newIndex(t, nestedDoc)

	tests := []struct {
		name  string
		field string
		group form.Path
		label string
		found bool
	}{
		{name: "outer group", field: "x", group: form.ParsePath("a"), label: "A_X", found: true},
		{name: "inner group", field: "x", group: form.ParsePath("a.b"), label: "AB_X", found: true},
		{name: "no prefix match", field: "y", group: form.ParsePath("a"), found: false},
		{name: "root only matches ungrouped", field: "x", found: false},
		{name: "root field", field: "title", found: true},
		{name: "unknown group", field: "x", group: form.ParsePath("b"), found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := idx.FindField(tt.field, tt.group)
			if !tt.found {
				assert.Nil(t, n)
				return
			}
			require.NotNil(t, n)
			assert.Equal(t, tt.label, n.AttrOr("label", ""))
		})
	}
}

func TestIndex_Groups(t *testing.T) {
	t.Parallel()
	idx := newIndex(t, nestedDoc)

	t.Run("sibling groups with the same name", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, idx.FindGroup(form.ParsePath("opts")), 2)
		assert.Equal(t, []string{"first", "second"}, names(idx.FieldsByGroup(form.GroupScope("opts"), false)))
		assert.NotNil(t, idx.FindField("second", form.ParsePath("opts")))
	})

	t.Run("nested flag", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"x"}, names(idx.FieldsByGroup(form.GroupScope("a"), false)))
		assert.Equal(t, []string{"x", "x", "y"}, names(idx.FieldsByGroup(form.GroupScope("a"), true)))
		assert.Equal(t, []string{"x", "y"}, names(idx.FieldsByGroup(form.GroupScope("a.b"), false)))
	})

	t.Run("ungrouped and all", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"title", "slug"}, names(idx.FieldsByGroup(form.Ungrouped(), false)))
		assert.Len(t, idx.FieldsByGroup(form.AllFields(), false), 7)
		assert.Len(t, idx.FieldsByGroup(form.GroupScope(""), false), 7)
	})

	t.Run("chains", func(t *testing.T) {
		t.Parallel()
		inner := idx.FindField("y", form.ParsePath("a.b"))
		require.NotNil(t, inner)
		assert.Equal(t, form.Path{"a", "b"}, idx.Chain(inner))
		assert.Equal(t, "a.b.y", idx.Chain(inner).Key("y"))
	})

	t.Run("fieldset", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"slug"}, names(idx.FieldsByFieldset("meta")))
		assert.Empty(t, idx.FieldsByFieldset("missing"))
	})
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	assert.True(t, form.ParsePath("").IsRoot())
	assert.Equal(t, form.Path{"a", "b"}, form.ParsePath("a..b."))
	assert.Equal(t, "a.b", form.ParsePath("a.b").String())
	assert.Equal(t, "f", form.Path(nil).Key("f"))
	assert.True(t, form.ParsePath("a.b").Equal(form.Path{"a"}.Child("b")))
	assert.Equal(t, "<all>", form.GroupScope("").String())
	assert.Equal(t, "<ungrouped>", form.Ungrouped().String())
	assert.Equal(t, "a.b", form.GroupScope("a.b").String())
}
