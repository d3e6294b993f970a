package definition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
)

func TestAddNode(t *testing.T) {
	t.Parallel()

	dst := definition.NewNode(definition.TagForm)
	src := definition.MustParse(`<fields name="g"><field name="a"/></fields>`)

	added := definition.AddNode(dst, src)
	assert.NotSame(t, src, added)
	assert.Nil(t, src.Parent())
	require.NotNil(t, dst.Child(definition.TagFields, "g"))

	added.Child(definition.TagField, "a").SetAttr("type", "email")
	assert.False(t, src.Child(definition.TagField, "a").HasAttr("type"))
}

func TestMergeNodes(t *testing.T) {
	t.Parallel()

	dst := definition.MustParse(`<form name="f">
	<fields name="g">
		<field name="a" type="text" required="false"/>
		<fields name="sub"><field name="deep"/></fields>
	</fields>
	<fields><field name="loose"/></fields>
</form>`)

	src := definition.MustParse(`<form name="f2" method="post">
	<fields name="g">
		<field name="a" required="true"/>
		<field name="b"/>
		<fields name="sub"><field name="deeper"/></fields>
	</fields>
	<fields><field name="other"/></fields>
</form>`)

	definition.MergeNodes(dst, src)

	assert.Equal(t, "f2", dst.AttrOr("name", ""))
	assert.Equal(t, "post", dst.AttrOr("method", ""))

	g := dst.Child(definition.TagFields, "g")
	require.NotNil(t, g)

	a := g.Child(definition.TagField, "a")
	require.NotNil(t, a)
	assert.Equal(t, "true", a.AttrOr("required", ""))
	assert.Equal(t, "text", a.AttrOr("type", ""))

	assert.NotNil(t, g.Child(definition.TagField, "b"))

	sub := g.Child(definition.TagFields, "sub")
	require.NotNil(t, sub)
	assert.Len(t, sub.ChildrenByTag(definition.TagField), 2)

	assert.Len(t, dst.ChildrenByTag(definition.TagFields), 3, "unnamed children are appended, never matched")
}
