package definition

import "slices"

// Element tags understood by the form package.
const (
	TagForm     = "form"
	TagFields   = "fields"
	TagFieldset = "fieldset"
	TagField    = "field"
	TagOption   = "option"
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the definition tree. Attribute order is preserved so
// documents round-trip through Encode without reshuffling.
type Node struct {
	Tag  string
	Text string

	attrs    []Attr
	children []*Node
	parent   *Node
}

// NewNode creates a detached node with the given attributes.
func NewNode(tag string, attrs ...Attr) *Node {
	n := &Node{Tag: tag}
	for _, a := range attrs {
		n.SetAttr(a.Name, a.Value)
	}
	return n
}

// Attr returns the attribute value and whether it is present.
// A present attribute may hold the empty string.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or def when the attribute is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets or overwrites an attribute, keeping its original position.
func (n *Node) SetAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	n.attrs = slices.DeleteFunc(n.attrs, func(a Attr) bool { return a.Name == name })
}

// Attrs returns a copy of the attributes in document order.
func (n *Node) Attrs() []Attr {
	return slices.Clone(n.attrs)
}

// Name is shorthand for the name attribute.
func (n *Node) Name() string {
	v, _ := n.Attr("name")
	return v
}

// Parent returns the enclosing node or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up to the top of the tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildrenByTag returns the direct children with the given tag.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child with the given tag whose name
// attribute equals name. Children without a name attribute never match.
func (n *Node) Child(tag, name string) *Node {
	for _, c := range n.children {
		if c.Tag != tag {
			continue
		}
		if v, ok := c.Attr("name"); ok && v == name {
			return c
		}
	}
	return nil
}

// AppendChild attaches c as the last child, detaching it from any previous parent.
func (n *Node) AppendChild(c *Node) {
	if c.parent != nil {
		c.Remove()
	}
	c.parent = n
	n.children = append(n.children, c)
}

// ReplaceChild swaps old for repl in place. It reports false when old is not a
// direct child of n.
func (n *Node) ReplaceChild(old, repl *Node) bool {
	idx := slices.Index(n.children, old)
	if idx < 0 {
		return false
	}
	if repl.parent != nil {
		repl.Remove()
		idx = slices.Index(n.children, old)
	}
	old.parent = nil
	repl.parent = n
	n.children[idx] = repl
	return true
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

// Clone returns a deep, detached copy of n.
func (n *Node) Clone() *Node {
	c := &Node{
		Tag:   n.Tag,
		Text:  n.Text,
		attrs: slices.Clone(n.attrs),
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Walk visits every descendant of n in document order. Returning false from fn
// skips the visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	for _, c := range n.children {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// Descendants returns every descendant with the given tag in document order.
func (n *Node) Descendants(tag string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Tag == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

// IsGroup reports whether n is a fields element establishing a named group.
func (n *Node) IsGroup() bool {
	return n.Tag == TagFields && n.Name() != ""
}

// GroupPath returns the names of the enclosing named fields elements,
// outermost first. n itself is not included.
func (n *Node) GroupPath() []string {
	var path []string
	for p := n.parent; p != nil; p = p.parent {
		if p.IsGroup() {
			path = append(path, p.Name())
		}
	}
	slices.Reverse(path)
	return path
}

// InGroup reports whether any ancestor of n is a named fields element.
func (n *Node) InGroup() bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.IsGroup() {
			return true
		}
	}
	return false
}
