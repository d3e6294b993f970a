package form

import (
	"strings"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// Kind tags the render strategy family of a field type.
type Kind string

const (
	KindInput     Kind = "input"
	KindSelect    Kind = "select"
	KindTextarea  Kind = "textarea"
	KindContainer Kind = "container"
	KindCustom    Kind = "custom"
)

// RenderData is the plain record handed to rendering collaborators.
type RenderData struct {
	Type    string            `json:"type"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Content string            `json:"content,omitempty"`
	Value   any               `json:"value,omitempty"`
	Options []RenderOption    `json:"options,omitempty"`
}

// RenderOption is one option of a select-like field.
type RenderOption struct {
	Value    string `json:"value"`
	Text     string `json:"text"`
	Disabled bool   `json:"disabled,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// Strategy is the type specific part of a field. A fresh strategy is created
// for every materialized field, so implementations may keep per-field state.
type Strategy interface {
	// Kind reports the strategy family.
	Kind() Kind
	// Schema lists the type specific attributes and their defaults.
	Schema() []AttrSpec
	// Overrides lists attribute values forced regardless of the declaration.
	Overrides() []definition.Attr
	// CheckValue normalizes the bound value after it is set.
	CheckValue(f *Field)
	// IsEmpty reports whether the current value counts as empty.
	IsEmpty(f *Field) bool
	// Render returns the render-ready record of the control itself.
	Render(f *Field) RenderData
	// StaticValue formats the value for read-only display.
	StaticValue(f *Field) string
	// HiddenValue formats the value for a hidden input.
	HiddenValue(f *Field) (string, error)
}

// Base implements the default value handling shared by all strategies.
// Custom strategies embed it and override what they need.
type Base struct{}

func (Base) Kind() Kind                   { return KindCustom }
func (Base) Schema() []AttrSpec           { return nil }
func (Base) Overrides() []definition.Attr { return nil }
func (Base) CheckValue(f *Field)          { f.checkValue() }
func (Base) IsEmpty(f *Field) bool        { return stringValue(f.value, ",") == "" }
func (Base) StaticValue(f *Field) string  { return FormatStaticValue(f.value) }
func (Base) Render(f *Field) RenderData {
	return RenderData{Type: string(KindCustom), Attrs: f.ControlAttributes()}
}
func (Base) HiddenValue(f *Field) (string, error) {
	return FormatHiddenValue(f.value), nil
}

// InputStrategy renders a single line input control.
type InputStrategy struct {
	Base
	// InputType is the value of the rendered type attribute.
	InputType string
	// Hidden forces the hidden state (used by the hidden type).
	Hidden bool
}

func (s *InputStrategy) Kind() Kind { return KindInput }

func (s *InputStrategy) Schema() []AttrSpec {
	return []AttrSpec{
		{Name: "size", Kind: AttrInt, Default: "0"},
		{Name: "maxlength", Kind: AttrInt, Default: "0"},
		{Name: "placeholder"},
		{Name: "pattern"},
	}
}

func (s *InputStrategy) Overrides() []definition.Attr {
	out := []definition.Attr{{Name: "canBeStatic", Value: "true"}}
	if s.Hidden {
		out = append(out, definition.Attr{Name: "hidden", Value: "true"})
	}
	return out
}

func (s *InputStrategy) Render(f *Field) RenderData {
	attrs := f.ControlAttributes()
	attrs["type"] = s.InputType
	if n := f.attrs.Int("size"); n > 0 {
		attrs["size"] = f.attrs.String("size")
	}
	if n := f.attrs.Int("maxlength"); n > 0 {
		attrs["maxlength"] = f.attrs.String("maxlength")
	}
	if v := f.attrs.String("pattern"); v != "" {
		attrs["pattern"] = v
	}
	if v := f.attrs.String("placeholder"); v != "" {
		attrs["placeholder"] = v
	}
	attrs["value"] = sanitizer.EscapeHTML(stringValue(f.value, ","))
	return RenderData{Type: string(KindInput), Attrs: attrs}
}

// SelectStrategy renders a control choosing among option children.
// Emptiness is defined by the selection set, not by the raw value.
type SelectStrategy struct {
	Base
	// Widget names the rendered control: select, list, radio or checkboxes.
	Widget string

	selection []string
}

func (s *SelectStrategy) Kind() Kind { return KindSelect }

func (s *SelectStrategy) Schema() []AttrSpec {
	return []AttrSpec{
		{Name: "size", Kind: AttrInt, Default: "0"},
		{Name: "defaultOption", Kind: AttrBool, Default: "true"},
	}
}

func (s *SelectStrategy) CheckValue(f *Field) {
	if stringValue(f.value, ",") == "" {
		f.value = f.attrs.String("default")
	}
	value := stringValue(f.value, ",")
	f.value = value

	s.selection = nil
	switch {
	case value == "":
	case f.multiple:
		s.selection = strings.Split(value, ",")
	default:
		s.selection = []string{value}
	}
}

func (s *SelectStrategy) IsEmpty(*Field) bool {
	return len(s.selection) == 0
}

func (s *SelectStrategy) Render(f *Field) RenderData {
	attrs := f.ControlAttributes()
	if n := f.attrs.Int("size"); n > 0 {
		attrs["size"] = f.attrs.String("size")
	}
	if f.multiple {
		attrs["multiple"] = "multiple"
	}

	opts := make([]RenderOption, 0, len(f.options)+1)
	if f.attrs.Bool("defaultOption") && !f.multiple && s.Widget == "select" {
		opts = append(opts, RenderOption{Value: "", Text: ""})
	}
	for _, o := range f.options {
		opts = append(opts, RenderOption{
			Value:    o.Value,
			Text:     o.Text,
			Disabled: o.Disabled,
			Selected: s.isSelected(o.Value),
		})
	}
	return RenderData{Type: s.Widget, Attrs: attrs, Options: opts}
}

func (s *SelectStrategy) StaticValue(f *Field) string {
	texts := make([]string, 0, len(s.selection))
	for _, o := range f.options {
		if s.isSelected(o.Value) {
			texts = append(texts, o.Text)
		}
	}
	if len(texts) == 0 {
		return FormatStaticValue(s.selection)
	}
	return FormatStaticValue(texts)
}

func (s *SelectStrategy) isSelected(v string) bool {
	for _, sel := range s.selection {
		if sel == v {
			return true
		}
	}
	return false
}

// TextareaStrategy renders a multi line text control. Its filter is always the
// textarea cleaner and it cannot be carried in a hidden input.
type TextareaStrategy struct {
	Base
	// Editor marks rich text areas.
	Editor bool
}

func (s *TextareaStrategy) Kind() Kind { return KindTextarea }

func (s *TextareaStrategy) Schema() []AttrSpec {
	return []AttrSpec{
		{Name: "size", Kind: AttrInt, Default: "0"},
		{Name: "maxlength", Kind: AttrInt, Default: "0"},
		{Name: "cols", Kind: AttrInt, Default: "0"},
		{Name: "rows", Kind: AttrInt, Default: "0"},
		{Name: "placeholder"},
	}
}

func (s *TextareaStrategy) Overrides() []definition.Attr {
	return []definition.Attr{{Name: "filter", Value: FilterTextarea}}
}

func (s *TextareaStrategy) Render(f *Field) RenderData {
	attrs := f.ControlAttributes()
	for _, k := range []string{"size", "maxlength", "cols", "rows"} {
		if f.attrs.Int(k) > 0 {
			attrs[k] = f.attrs.String(k)
		}
	}
	if v := f.attrs.String("placeholder"); v != "" {
		attrs["placeholder"] = v
	}
	typ := string(KindTextarea)
	if s.Editor {
		typ = "editor"
	}
	return RenderData{Type: typ, Attrs: attrs, Content: stringValue(f.value, ",")}
}

func (s *TextareaStrategy) StaticValue(f *Field) string {
	return FormatStaticValue(strings.ReplaceAll(stringValue(f.value, ","), "\n", "<br />"))
}

func (s *TextareaStrategy) HiddenValue(*Field) (string, error) {
	return "", ErrHiddenValueForbidden
}

// ContainerStrategy renders fixed content. Containers are never filtered or validated.
type ContainerStrategy struct {
	Base
	// Widget names the rendered record: container, html or spacer.
	Widget string
}

func (s *ContainerStrategy) Kind() Kind { return KindContainer }

func (s *ContainerStrategy) Schema() []AttrSpec {
	return []AttrSpec{{Name: "content"}}
}

func (s *ContainerStrategy) Render(f *Field) RenderData {
	return RenderData{
		Type:    s.Widget,
		Attrs:   map[string]string{"data-id": f.id},
		Content: f.attrs.String("content"),
	}
}
