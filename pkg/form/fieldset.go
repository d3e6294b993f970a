package form

import "github.com/dmitrymomot/formkit/pkg/definition"

// FieldsetInfo describes a fieldset: its name and the label and description
// keys declared on the fieldset element.
type FieldsetInfo struct {
	Name        string            `json:"name"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
}

// Fieldsets lists the fieldsets referenced in the definition, or below group
// when it is not empty. Fieldsets come from named fieldset elements and from
// field fieldset attributes, in document order and without duplicates.
func (f *Form) Fieldsets(group string) []FieldsetInfo {
	if f.root == nil {
		return nil
	}

	scopes := []*definition.Node{f.root}
	if path := ParsePath(group); !path.IsRoot() {
		scopes = f.index.FindGroup(path)
	}

	var (
		out  []FieldsetInfo
		seen = map[string]bool{}
	)
	add := func(info FieldsetInfo) {
		if info.Name == "" || seen[info.Name] {
			return
		}
		seen[info.Name] = true
		out = append(out, info)
	}

	for _, scope := range scopes {
		scope.Walk(func(n *definition.Node) bool {
			switch n.Tag {
			case definition.TagFieldset:
				add(fieldsetInfo(n))
			case definition.TagField:
				if ref := n.AttrOr("fieldset", ""); ref != "" && !seen[ref] {
					add(f.lookupFieldset(ref))
				}
			}
			return true
		})
	}
	return out
}

func (f *Form) lookupFieldset(name string) FieldsetInfo {
	for _, n := range f.root.Descendants(definition.TagFieldset) {
		if n.Name() == name {
			return fieldsetInfo(n)
		}
	}
	return FieldsetInfo{Name: name}
}

func fieldsetInfo(n *definition.Node) FieldsetInfo {
	info := FieldsetInfo{
		Name:        n.Name(),
		Label:       n.AttrOr("label", ""),
		Description: n.AttrOr("description", ""),
	}
	for _, a := range n.Attrs() {
		switch a.Name {
		case "name", "label", "description":
		default:
			if info.Attrs == nil {
				info.Attrs = make(map[string]string)
			}
			info.Attrs[a.Name] = a.Value
		}
	}
	return info
}
