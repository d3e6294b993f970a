package form

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/definition"
)

var nonWordRe = regexp.MustCompile(`\W`)

// fieldContext is the read-only form information a field needs to build its
// identifiers.
type fieldContext struct {
	formName string
	control  string
}

// Field is the materialized, stateful view of one declared field.
//
// Fields are created by the form from a cached attribute snapshot; mutating a
// Field never changes the definition tree.
type Field struct {
	fieldName string
	group     Path
	typ       string
	strategy  Strategy
	attrs     Attributes
	options   []definition.Option

	id    string
	name  string
	value any
	rules []string

	required      bool
	readonly      bool
	disabled      bool
	multiple      bool
	autofocus     bool
	hidden        bool
	hideWhenEmpty bool
	canBeStatic   bool
	labelHide     bool
	static        bool
	width         int
}

func newField(ctx fieldContext, res *resolved, group Path, strategy Strategy, value any) *Field {
	f := &Field{
		fieldName: res.name,
		group:     group,
		typ:       res.typ,
		strategy:  strategy,
		attrs:     res.attrs,
		options:   res.options,
	}

	f.required = f.attrs.Bool("required")
	f.readonly = f.attrs.Bool("readonly")
	f.disabled = f.attrs.Bool("disabled")
	f.multiple = f.attrs.Bool("multiple")
	f.autofocus = f.attrs.Bool("autofocus")
	f.hidden = f.attrs.Bool("hidden")
	f.hideWhenEmpty = f.attrs.Bool("hideWhenEmpty")
	f.canBeStatic = f.attrs.Bool("canBeStatic")
	f.labelHide = f.attrs.Bool("labelHide")
	f.width = f.attrs.Int("width")

	f.buildID(ctx)
	f.buildName(ctx)
	f.rules = splitRules(f.attrs.String("validate"))
	f.SetValue(value)
	return f
}

func (f *Field) buildID(ctx fieldContext) {
	if explicit := f.attrs.String("id"); explicit != "" {
		f.id = explicit
		return
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{
		ctx.control,
		strings.ToLower(ctx.formName),
		strings.ReplaceAll(f.group.String(), ".", "_"),
		f.fieldName,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	f.id = nonWordRe.ReplaceAllString(strings.Join(parts, "_"), "_")
}

func (f *Field) buildName(ctx fieldContext) {
	var b strings.Builder
	b.WriteString(ctx.control)

	for _, seg := range f.group {
		if b.Len() == 0 {
			b.WriteString(seg)
			continue
		}
		b.WriteString("[" + seg + "]")
	}

	if b.Len() == 0 {
		b.WriteString(f.fieldName)
	} else {
		b.WriteString("[" + f.fieldName + "]")
	}

	if f.multiple {
		b.WriteString("[]")
	}
	f.name = b.String()
}

// SetValue stores raw (nil becomes "") and normalizes it through the field type.
func (f *Field) SetValue(raw any) {
	if raw == nil {
		raw = ""
	}
	f.value = raw
	f.strategy.CheckValue(f)
}

// checkValue is the default value normalization: the int filter drops values
// parsing to zero, the bool filter maps to "1" or "", any other empty value
// falls back to the declared default.
func (f *Field) checkValue() {
	switch strings.ToLower(f.attrs.String("filter")) {
	case FilterInt:
		if stringValue(f.value, ",") != "" && intValue(f.value) == 0 {
			f.value = ""
		}
		return
	case FilterBool:
		if isBlank(f.value) {
			f.value = ""
		} else {
			f.value = "1"
		}
		return
	}

	if !isList(f.value) && stringValue(f.value, ",") == "" {
		f.value = f.attrs.String("default")
	}
}

// CheckValidate re-parses the rule list. It is idempotent.
func (f *Field) CheckValidate() {
	f.rules = splitRules(strings.Join(f.rules, "|"))
}

// splitRules splits a validate list on "|", dropping blank entries.
func splitRules(s string) []string {
	var out []string
	for r := range strings.SplitSeq(s, "|") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// checkState derives the static and hidden flags of a read-only field.
func (f *Field) checkState() {
	if !f.canBeStatic || !f.readonly {
		return
	}
	if f.hideWhenEmpty && f.IsEmpty() {
		f.hidden = true
		return
	}
	f.static = true
}

// CleanForRender re-runs value and rule normalization and derives the
// visibility state. Renderers call it before reading render state.
func (f *Field) CleanForRender() {
	f.strategy.CheckValue(f)
	f.CheckValidate()
	f.checkState()
}

// ID returns the HTML id attribute.
func (f *Field) ID() string { return f.id }

// Name returns the HTML name attribute, such as control[group][field][].
func (f *Field) Name() string { return f.name }

// FieldName returns the declared name attribute.
func (f *Field) FieldName() string { return f.fieldName }

// Group returns the group path of the field.
func (f *Field) Group() Path { return f.group }

// Key returns the dot qualified data key of the field.
func (f *Field) Key() string { return f.group.Key(f.fieldName) }

// Type returns the normalized type tag.
func (f *Field) Type() string { return f.typ }

// Kind returns the strategy family.
func (f *Field) Kind() Kind { return f.strategy.Kind() }

// Strategy returns the type specific strategy.
func (f *Field) Strategy() Strategy { return f.strategy }

// Attr returns a resolved attribute value.
func (f *Field) Attr(name string) string { return f.attrs.String(name) }

// Attrs returns a copy of the resolved attributes.
func (f *Field) Attrs() Attributes { return f.attrs.Clone() }

// Options returns the declared select options.
func (f *Field) Options() []definition.Option { return f.options }

// Value returns the current value: a string, or a list for list bindings.
func (f *Field) Value() any { return f.value }

// StringValue returns the value with lists joined by commas.
func (f *Field) StringValue() string { return stringValue(f.value, ",") }

// Rules returns the parsed validate list.
func (f *Field) Rules() []string { return f.rules }

// Filter returns the resolved filter name.
func (f *Field) Filter() string { return f.attrs.String("filter") }

func (f *Field) Required() bool  { return f.required }
func (f *Field) Readonly() bool  { return f.readonly }
func (f *Field) Disabled() bool  { return f.disabled }
func (f *Field) Multiple() bool  { return f.multiple }
func (f *Field) Hidden() bool    { return f.hidden }
func (f *Field) Static() bool    { return f.static }
func (f *Field) LabelHide() bool { return f.labelHide }

// IsEmpty reports emptiness as defined by the field type.
func (f *Field) IsEmpty() bool { return f.strategy.IsEmpty(f) }

// Render returns the control record produced by the field type.
func (f *Field) Render() RenderData { return f.strategy.Render(f) }

// StaticValue formats the value for read-only display.
func (f *Field) StaticValue() string { return f.strategy.StaticValue(f) }

// HiddenValue formats the value for a hidden input.
func (f *Field) HiddenValue() (string, error) { return f.strategy.HiddenValue(f) }

// ControlAttributes returns the HTML attributes shared by every control.
func (f *Field) ControlAttributes() map[string]string {
	attrs := map[string]string{
		"id":   f.id,
		"name": f.name,
	}
	if class := f.classes(); class != "" {
		attrs["class"] = class
	}
	if f.readonly {
		attrs["readonly"] = "readonly"
	}
	if f.disabled {
		attrs["disabled"] = "disabled"
	}
	if f.autofocus {
		attrs["autofocus"] = "autofocus"
	}
	if f.width > 0 {
		attrs["width"] = f.attrs.String("width")
	}
	return attrs
}

func (f *Field) classes() string {
	classes := strings.Fields(f.attrs.String("class"))
	if f.required {
		classes = append(classes, "required")
	}
	if f.readonly {
		classes = append(classes, "readonly")
	}
	if f.disabled {
		classes = append(classes, "disabled")
	}
	return strings.Join(classes, " ")
}
