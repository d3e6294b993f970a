package definition

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// DefaultFieldset is the fieldset used by AddField when none is given.
const DefaultFieldset = "main"

// Field is a generator entry describing one field element.
type Field struct {
	Name    string
	Type    string
	Attrs   map[string]any
	Options []Option
}

// Option is a select option rendered as an option child element.
type Option struct {
	Value    string `yaml:"value"`
	Text     string `yaml:"text"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

type generatorFieldset struct {
	name        string
	label       string
	description string
	fields      []Field
}

// Generator builds fieldset oriented definition documents programmatically.
// Fieldsets keep insertion order.
type Generator struct {
	fieldsets []*generatorFieldset
}

// NewGenerator returns an empty generator.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) fieldset(name string) *generatorFieldset {
	for _, fs := range g.fieldsets {
		if fs.name == name {
			return fs
		}
	}
	fs := &generatorFieldset{name: name}
	g.fieldsets = append(g.fieldsets, fs)
	return fs
}

// AddFieldset ensures the fieldset exists and adds the given fields to it.
func (g *Generator) AddFieldset(name string, fields ...Field) error {
	g.fieldset(name)
	for _, f := range fields {
		if err := g.AddField(f, name); err != nil {
			return err
		}
	}
	return nil
}

// AddField adds f to the named fieldset (DefaultFieldset when empty). A field
// with the same name already present in any fieldset is updated in place:
// attributes are merged, a non-empty type and option list replace the old ones.
func (g *Generator) AddField(f Field, fieldset string) error {
	if f.Name == "" {
		return ErrMissingFieldName
	}
	if fieldset == "" {
		fieldset = DefaultFieldset
	}
	target := g.fieldset(fieldset)

	for _, fs := range g.fieldsets {
		for i := range fs.fields {
			existing := &fs.fields[i]
			if existing.Name != f.Name {
				continue
			}
			if f.Type != "" {
				existing.Type = f.Type
			}
			if len(f.Attrs) > 0 {
				if existing.Attrs == nil {
					existing.Attrs = make(map[string]any, len(f.Attrs))
				}
				maps.Copy(existing.Attrs, f.Attrs)
			}
			if len(f.Options) > 0 {
				existing.Options = slices.Clone(f.Options)
			}
			return nil
		}
	}

	f.Attrs = maps.Clone(f.Attrs)
	f.Options = slices.Clone(f.Options)
	target.fields = append(target.fields, f)
	return nil
}

// RemoveField deletes the first field with the given name. It reports whether
// a field was removed.
func (g *Generator) RemoveField(name string) bool {
	for _, fs := range g.fieldsets {
		for i, f := range fs.fields {
			if f.Name == name {
				fs.fields = slices.Delete(fs.fields, i, i+1)
				return true
			}
		}
	}
	return false
}

// SetFieldsetLabel sets the label key of a fieldset, creating it if needed.
func (g *Generator) SetFieldsetLabel(name, label string) {
	g.fieldset(name).label = label
}

// SetFieldsetDescription sets the description key of a fieldset, creating it if needed.
func (g *Generator) SetFieldsetDescription(name, description string) {
	g.fieldset(name).description = description
}

// Node builds the definition tree.
func (g *Generator) Node() *Node {
	root := NewNode(TagForm)
	for _, fs := range g.fieldsets {
		fsNode := NewNode(TagFieldset, Attr{Name: "name", Value: fs.name})
		if fs.label != "" {
			fsNode.SetAttr("label", fs.label)
		}
		if fs.description != "" {
			fsNode.SetAttr("description", fs.description)
		}
		for _, f := range fs.fields {
			fsNode.AppendChild(f.node())
		}
		root.AppendChild(fsNode)
	}
	return root
}

// XML returns the encoded definition document.
func (g *Generator) XML() string {
	return g.Node().XML()
}

func (f Field) node() *Node {
	typ := f.Type
	if typ == "" {
		typ = "text"
	}
	n := NewNode(TagField, Attr{Name: "type", Value: typ}, Attr{Name: "name", Value: f.Name})

	for _, k := range slices.Sorted(maps.Keys(f.Attrs)) {
		if k == "name" || k == "type" {
			continue
		}
		n.SetAttr(k, attrString(f.Attrs[k]))
	}

	for _, o := range f.Options {
		opt := NewNode(TagOption, Attr{Name: "value", Value: o.Value})
		if o.Disabled {
			opt.SetAttr("disabled", "true")
		}
		opt.Text = o.Text
		n.AppendChild(opt)
	}
	return n
}

func attrString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, attrString(p))
		}
		return strings.Join(parts, "|")
	case []string:
		return strings.Join(t, "|")
	default:
		return fmt.Sprint(t)
	}
}
