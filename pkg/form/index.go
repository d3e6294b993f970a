package form

import (
	"slices"

	"github.com/dmitrymomot/formkit/pkg/definition"
)

// Scope selects which fields FieldsByGroup returns.
type Scope struct {
	kind scopeKind
	path Path
}

type scopeKind uint8

const (
	scopeAll scopeKind = iota
	scopeUngrouped
	scopeGroup
)

// AllFields selects every field of the document.
func AllFields() Scope { return Scope{kind: scopeAll} }

// Ungrouped selects fields placed directly in an unnamed fields element, or in
// a fieldset directly inside one.
func Ungrouped() Scope { return Scope{kind: scopeUngrouped} }

// InGroup selects the fields of a group. An empty path selects every field.
func InGroup(p Path) Scope {
	if p.IsRoot() {
		return AllFields()
	}
	return Scope{kind: scopeGroup, path: p}
}

// GroupScope is InGroup over a dot separated path.
func GroupScope(group string) Scope {
	return InGroup(ParsePath(group))
}

// String describes the scope for logs and errors.
func (s Scope) String() string {
	switch s.kind {
	case scopeUngrouped:
		return "<ungrouped>"
	case scopeGroup:
		return s.path.String()
	default:
		return "<all>"
	}
}

// Index answers group and field lookups over a definition tree. It caches the
// group chain of every field and named fields element; Rebuild must be called
// after the tree is mutated.
type Index struct {
	root   *definition.Node
	fields []*definition.Node
	groups []*definition.Node
	chains map[*definition.Node]Path
}

// NewIndex builds an index over root.
func NewIndex(root *definition.Node) *Index {
	idx := &Index{root: root}
	idx.Rebuild()
	return idx
}

// Rebuild recomputes the lookup structures from the current tree.
func (idx *Index) Rebuild() {
	idx.fields = nil
	idx.groups = nil
	idx.chains = make(map[*definition.Node]Path)
	if idx.root == nil {
		return
	}

	var walk func(n *definition.Node, chain Path)
	walk = func(n *definition.Node, chain Path) {
		for _, c := range n.Children() {
			switch {
			case c.Tag == definition.TagField:
				idx.fields = append(idx.fields, c)
				idx.chains[c] = chain
				walk(c, chain)
			case c.IsGroup():
				own := chain.Child(c.Name())
				idx.groups = append(idx.groups, c)
				idx.chains[c] = own
				walk(c, own)
			default:
				walk(c, chain)
			}
		}
	}
	walk(idx.root, nil)
}

// Root returns the indexed tree.
func (idx *Index) Root() *definition.Node {
	return idx.root
}

// Chain returns the names of the named fields elements enclosing n, outermost
// first. For a group node the chain includes the node itself.
func (idx *Index) Chain(n *definition.Node) Path {
	if p, ok := idx.chains[n]; ok {
		return p
	}
	p := Path(n.GroupPath())
	if n.IsGroup() {
		p = p.Child(n.Name())
	}
	return p
}

// FindField returns the field named name whose group chain equals group
// exactly. Without a group only root level fields qualify. The first match in
// document order wins; nil means not found.
func (idx *Index) FindField(name string, group Path) *definition.Node {
	if group.IsRoot() {
		for _, f := range idx.fields {
			if f.Name() == name && idx.Chain(f).IsRoot() {
				return f
			}
		}
		return nil
	}

	for _, g := range idx.FindGroup(group) {
		for _, f := range g.Descendants(definition.TagField) {
			if f.Name() == name && idx.Chain(f).Equal(group) {
				return f
			}
		}
	}
	return nil
}

// FindGroup resolves a group path level by level. Level 0 matches top level
// groups named path[0]; each following level matches descendants of the
// previous matches whose full chain equals the path prefix. Several nodes may
// satisfy the same path; all of them are returned in document order.
func (idx *Index) FindGroup(path Path) []*definition.Node {
	if path.IsRoot() {
		return nil
	}

	var current []*definition.Node
	for _, g := range idx.groups {
		if g.Name() == path[0] && idx.Chain(g).Equal(path[:1]) {
			current = append(current, g)
		}
	}

	for i := 1; i < len(path) && len(current) > 0; i++ {
		want := path[:i+1]
		var next []*definition.Node
		for _, parent := range current {
			for _, g := range parent.Descendants(definition.TagFields) {
				if g.Name() == path[i] && idx.Chain(g).Equal(want) {
					next = append(next, g)
				}
			}
		}
		current = next
	}
	return current
}

// FieldsByGroup returns the fields selected by scope in document order. For a
// group scope only fields whose chain equals the group are returned unless
// nested is set, in which case every field below the group qualifies.
func (idx *Index) FieldsByGroup(scope Scope, nested bool) []*definition.Node {
	switch scope.kind {
	case scopeUngrouped:
		var out []*definition.Node
		for _, f := range idx.fields {
			if isUngrouped(f) {
				out = append(out, f)
			}
		}
		return out
	case scopeGroup:
		var out []*definition.Node
		for _, g := range idx.FindGroup(scope.path) {
			for _, f := range g.Descendants(definition.TagField) {
				if nested || idx.Chain(f).Equal(scope.path) {
					out = append(out, f)
				}
			}
		}
		return out
	default:
		return slices.Clone(idx.fields)
	}
}

// FieldsByFieldset returns fields nested under fieldset elements named name
// and fields referencing it through their fieldset attribute, in document
// order and without duplicates.
func (idx *Index) FieldsByFieldset(name string) []*definition.Node {
	var out []*definition.Node
	for _, f := range idx.fields {
		if v, ok := f.Attr("fieldset"); ok && v == name {
			out = append(out, f)
			continue
		}
		for p := f.Parent(); p != nil; p = p.Parent() {
			if p.Tag == definition.TagFieldset && p.Name() == name {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func isUngrouped(f *definition.Node) bool {
	p := f.Parent()
	if p == nil {
		return false
	}
	if p.Tag == definition.TagFieldset {
		p = p.Parent()
		if p == nil {
			return false
		}
	}
	return p.Tag == definition.TagFields && !p.HasAttr("name")
}
