package definition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
)

const nestedDoc = `<form>
	<fields>
		<field name="title" type="text"/>
	</fields>
	<fields name="a">
		<field name="x" type="text" label="A_X"/>
		<fields name="b">
			<field name="x" type="text" label="AB_X"/>
		</fields>
	</fields>
</form>`

func TestNodeAttributes(t *testing.T) {
	t.Parallel()

	n := definition.NewNode(definition.TagField,
		definition.Attr{Name: "name", Value: "email"},
		definition.Attr{Name: "type", Value: "email"},
	)

	t.Run("present and absent", func(t *testing.T) {
		t.Parallel()

		v, ok := n.Attr("type")
		assert.True(t, ok)
		assert.Equal(t, "email", v)

		_, ok = n.Attr("missing")
		assert.False(t, ok)
		assert.Equal(t, "fallback", n.AttrOr("missing", "fallback"))
		assert.Equal(t, "email", n.Name())
	})

	t.Run("set keeps position", func(t *testing.T) {
		t.Parallel()

		c := n.Clone()
		c.SetAttr("name", "login")
		c.SetAttr("required", "true")

		attrs := c.Attrs()
		require.Len(t, attrs, 3)
		assert.Equal(t, definition.Attr{Name: "name", Value: "login"}, attrs[0])
		assert.Equal(t, "required", attrs[2].Name)

		c.RemoveAttr("type")
		assert.False(t, c.HasAttr("type"))
		assert.True(t, n.HasAttr("type"), "clone must not share attributes")
	})

	t.Run("empty value is present", func(t *testing.T) {
		t.Parallel()

		c := definition.NewNode(definition.TagField, definition.Attr{Name: "default", Value: ""})
		assert.True(t, c.HasAttr("default"))
	})
}

func TestNodeTree(t *testing.T) {
	t.Parallel()

	root := definition.MustParse(nestedDoc)

	fields := root.Descendants(definition.TagField)
	require.Len(t, fields, 3)

	t.Run("group paths", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fields[0].GroupPath())
		assert.False(t, fields[0].InGroup())
		assert.Equal(t, []string{"a"}, fields[1].GroupPath())
		assert.Equal(t, []string{"a", "b"}, fields[2].GroupPath())
		assert.True(t, fields[2].InGroup())
	})

	t.Run("root and parent", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, root, fields[2].Root())
		assert.True(t, fields[2].Parent().IsGroup())
		assert.False(t, fields[0].Parent().IsGroup(), "unnamed fields element is not a group")
	})

	t.Run("child lookup needs a name", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, root.Child(definition.TagFields, "a"))
		assert.Nil(t, root.Child(definition.TagFields, ""))
	})
}

func TestNodeMutation(t *testing.T) {
	t.Parallel()

	root := definition.MustParse(nestedDoc)
	a := root.Child(definition.TagFields, "a")
	require.NotNil(t, a)

	x := a.Child(definition.TagField, "x")
	require.NotNil(t, x)

	repl := definition.NewNode(definition.TagField, definition.Attr{Name: "name", Value: "y"})
	require.True(t, a.ReplaceChild(x, repl))
	assert.Nil(t, x.Parent())
	assert.Same(t, a, repl.Parent())
	assert.Nil(t, a.Child(definition.TagField, "x"))

	repl.Remove()
	assert.Nil(t, a.Child(definition.TagField, "y"))
	assert.False(t, a.ReplaceChild(x, repl))

	other := definition.NewNode(definition.TagFields)
	other.AppendChild(a)
	assert.Nil(t, root.Child(definition.TagFields, "a"), "append must detach from previous parent")
	assert.Same(t, other, a.Parent())
}

func TestWalkSkipsSubtree(t *testing.T) {
	t.Parallel()

	root := definition.MustParse(nestedDoc)

	var names []string
	root.Walk(func(n *definition.Node) bool {
		if n.Tag == definition.TagField {
			names = append(names, n.Name())
		}
		return n.Name() != "b"
	})
	assert.Equal(t, []string{"title", "x"}, names)
}
