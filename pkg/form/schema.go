package form

import "github.com/dmitrymomot/formkit/pkg/definition"

// AttrKind controls how a declared attribute value is normalized.
type AttrKind uint8

const (
	// AttrString keeps the declared value; an empty value falls back to the default.
	AttrString AttrKind = iota
	// AttrBool maps "", "0" and "false" to "false" and anything else to "true".
	AttrBool
	// AttrInt keeps the declared value; an empty value falls back to the default.
	AttrInt
)

// AttrSpec declares one attribute of a field type together with its default.
type AttrSpec struct {
	Name    string
	Kind    AttrKind
	Default string
}

// baseSchema lists the attributes every field type understands.
var baseSchema = []AttrSpec{
	{Name: "id"},
	{Name: "required", Kind: AttrBool, Default: "false"},
	{Name: "readonly", Kind: AttrBool, Default: "false"},
	{Name: "disabled", Kind: AttrBool, Default: "false"},
	{Name: "multiple", Kind: AttrBool, Default: "false"},
	{Name: "autofocus", Kind: AttrBool, Default: "false"},
	{Name: "hidden", Kind: AttrBool, Default: "false"},
	{Name: "hideWhenEmpty", Kind: AttrBool, Default: "false"},
	{Name: "labelHide", Kind: AttrBool, Default: "false"},
	{Name: "canBeStatic", Kind: AttrBool, Default: "false"},
	{Name: "width", Kind: AttrInt, Default: "0"},
	{Name: "default"},
	{Name: "description"},
	{Name: "filter"},
	{Name: "class"},
	{Name: "containerClass"},
	{Name: "labelClass"},
	{Name: "labelText"},
	{Name: "validate"},
	{Name: "message"},
	{Name: "inputgroupPrefix"},
	{Name: "inputgroupSuffix"},
	{Name: "inputgroupClass"},
}

// resolveAttributes builds the attribute snapshot of a field node without
// touching the node: type defaults, then declared attributes, then the
// strategy's forced values. Declared attributes outside the schema are kept
// verbatim.
func resolveAttributes(node *definition.Node, s Strategy) Attributes {
	attrs := NewAttributes()

	specs := make([]AttrSpec, 0, len(baseSchema)+8)
	specs = append(specs, baseSchema...)
	specs = append(specs, s.Schema()...)

	known := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		known[spec.Name] = struct{}{}
		raw, present := node.Attr(spec.Name)
		attrs.Set(spec.Name, normalizeAttr(spec, raw, present))
	}

	for _, a := range node.Attrs() {
		if _, ok := known[a.Name]; ok {
			continue
		}
		attrs.Set(a.Name, a.Value)
	}

	for _, a := range s.Overrides() {
		attrs.Set(a.Name, a.Value)
	}
	return attrs
}

func normalizeAttr(spec AttrSpec, raw string, present bool) string {
	switch spec.Kind {
	case AttrBool:
		if !present {
			return normalizeBool(spec.Default)
		}
		return normalizeBool(raw)
	default:
		if raw == "" {
			return spec.Default
		}
		return raw
	}
}

func normalizeBool(v string) string {
	switch v {
	case "", "0", "false":
		return "false"
	default:
		return "true"
	}
}
