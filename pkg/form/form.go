package form

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// resolved is the cached attribute snapshot of one field node.
type resolved struct {
	node    *definition.Node
	name    string
	typ     string
	attrs   Attributes
	options []definition.Option
}

type cacheKey struct {
	group string
	name  string
}

// Form owns a definition tree and the values bound to it.
//
// A Form is request scoped and not safe for concurrent use. Registries and
// the filter engine may be shared between forms.
type Form struct {
	name string
	opts options

	root  *definition.Node
	index *Index
	data  Data
	cache map[cacheKey]*resolved

	errors []Error

	fields    *FieldRegistry
	rules     *RuleRegistry
	filters   *FilterEngine
	messages  *Messages
	validator *Validator
	logger    *slog.Logger
}

// New creates an empty form. A definition must be loaded before fields can be resolved.
func New(name string, opts ...Option) *Form {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.fields == nil {
		o.fields = NewFieldRegistry()
	}
	if o.rules == nil {
		o.rules = NewRuleRegistry()
	}
	if o.filters == nil {
		o.filters = NewFilterEngine()
	}
	if o.dates != nil {
		o.filters.SetDateFormatter(o.dates)
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}

	f := &Form{
		name:     name,
		opts:     o,
		data:     Data{},
		cache:    make(map[cacheKey]*resolved),
		fields:   o.fields,
		rules:    o.rules,
		filters:  o.filters,
		messages: NewMessages(o.translator, o.update),
		logger:   o.logger.With(logger.Component("form"), logger.Form(name)),
	}
	f.index = NewIndex(nil)
	f.validator = NewValidator(f)
	return f
}

// NewFromConfig creates a form with defaults taken from cfg; opts are applied after.
func NewFromConfig(name string, cfg Config, opts ...Option) *Form {
	return New(name, append(ConfigOptions(cfg), opts...)...)
}

// Load installs or extends the definition. The first document must be rooted
// at a form element and becomes the definition. Every top level element of a
// later document is appended; before that, each field it contains that
// already exists at the same group path either replaces the existing node
// (replace) or is dropped.
func (f *Form) Load(root *definition.Node, replace bool) error {
	if root == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDefinition)
	}
	if f.root == nil || len(f.root.Children()) == 0 {
		if root.Tag != definition.TagForm {
			f.logger.Error("definition rejected", logger.Error(ErrInvalidDefinition))
			return fmt.Errorf("%w: root element is %q", ErrInvalidDefinition, root.Tag)
		}
		f.root = root.Clone()
		f.invalidate()
		f.logger.Debug("definition loaded")
		return nil
	}

	if root.Tag != definition.TagForm {
		return nil
	}

	for _, src := range root.Children() {
		element := src.Clone()

		if element.Tag == definition.TagField {
			if current := f.index.FindField(element.Name(), nil); current != nil {
				if replace {
					current.Parent().ReplaceChild(current, element)
					f.index.Rebuild()
				}
				continue
			}
		}

		for _, field := range element.Descendants(definition.TagField) {
			current := f.index.FindField(field.Name(), Path(field.GroupPath()))
			if current == nil {
				continue
			}
			if replace {
				current.Parent().ReplaceChild(current, field)
			} else {
				field.Remove()
			}
			f.index.Rebuild()
		}

		f.root.AppendChild(element)
		f.index.Rebuild()
	}

	f.invalidate()
	f.logger.Debug("definition extended", "replace", replace)
	return nil
}

// LoadXML parses src and loads it.
func (f *Form) LoadXML(src string, replace bool) error {
	root, err := definition.ParseString(src)
	if err != nil {
		return err
	}
	return f.Load(root, replace)
}

// LoadFile reads a definition file (.xml, .yaml, .yml) and loads it.
func (f *Form) LoadFile(path string, replace bool) error {
	root, err := definition.LoadFile(path)
	if err != nil {
		return err
	}
	return f.Load(root, replace)
}

// Merge merges root into the definition at the attribute level: existing
// attributes are overwritten, unknown children appended and same-named
// children merged recursively.
func (f *Form) Merge(root *definition.Node) error {
	if f.root == nil {
		return f.Load(root, true)
	}
	definition.MergeNodes(f.root, root)
	f.invalidate()
	f.logger.Debug("definition merged")
	return nil
}

// Definition returns a copy of the definition tree.
func (f *Form) Definition() *definition.Node {
	if f.root == nil {
		return nil
	}
	return f.root.Clone()
}

// XML returns the encoded definition.
func (f *Form) XML() string {
	if f.root == nil {
		return ""
	}
	return f.root.XML()
}

// Index returns the lookup index over the definition.
func (f *Form) Index() *Index {
	return f.index
}

func (f *Form) invalidate() {
	f.index = NewIndex(f.root)
	clear(f.cache)
}

// Bind stores the values of data that match a known field. Root keys match
// root level fields; nested mappings that do not match a field are descended
// into as groups.
func (f *Form) Bind(data map[string]any) {
	for k, v := range data {
		if f.index.FindField(k, nil) != nil {
			f.data.Set(k, v)
			continue
		}
		if sub, ok := asMap(v); ok {
			f.bindLevel(Path{k}, sub)
		}
	}
	f.logger.Debug("data bound", "keys", len(data))
}

func (f *Form) bindLevel(group Path, data Data) {
	for k, v := range data {
		if f.index.FindField(k, group) != nil {
			f.data.Set(group.Key(k), v)
			continue
		}
		if sub, ok := asMap(v); ok {
			f.bindLevel(group.Child(k), sub)
		}
	}
}

// Reset drops bound data and errors. With clearDefinition the definition is
// replaced by an empty form element.
func (f *Form) Reset(clearDefinition bool) {
	f.data = Data{}
	f.errors = nil
	if clearDefinition {
		f.root = definition.NewNode(definition.TagForm)
		f.invalidate()
	}
}

// Data returns a copy of the bound values.
func (f *Form) Data() Data {
	return f.data.Clone()
}

// Filter returns the filtered values of the fields in group (every field when
// group is empty) that are present in data, nested by group. Fields without a
// filter use the string filter, unset fields are left out and rejected values
// are stored as false.
func (f *Form) Filter(data Data, group string) (Data, error) {
	scope := GroupScope(group)
	nodes := f.index.FieldsByGroup(scope, false)
	if len(nodes) == 0 {
		err := fmt.Errorf("%w: %s", ErrNoFieldsInGroup, scope)
		f.logger.Error("filter aborted", logger.Error(err))
		return nil, err
	}

	out := Data{}
	for _, node := range nodes {
		grp := f.index.Chain(node)
		key := grp.Key(node.Name())
		raw, ok := data.Lookup(key)
		if !ok {
			continue
		}

		field, err := f.materialize(node, grp, raw)
		if err != nil {
			f.logger.Error("filter aborted", logger.Field(key), logger.Error(err))
			return nil, err
		}
		if field.Kind() == KindContainer {
			continue
		}

		name := field.Filter()
		if name == "" {
			name = FilterString
		}
		v, err := f.filters.Filter(name, raw, field.Attr("pattern"))
		switch {
		case err == nil:
			out.Set(key, v)
		case errors.Is(err, ErrFilterUnset):
		case errors.Is(err, ErrFilterRejected):
			out.Set(key, false)
		default:
			return nil, err
		}
	}
	return out, nil
}

// Validate validates data against the fields of group (every field when
// group is empty). Errors of the previous call are discarded; failures are
// available through Errors. The error return is reserved for configuration
// problems.
func (f *Form) Validate(data Data, group string) (bool, error) {
	return f.ValidateScope(data, GroupScope(group))
}

// ValidateScope is Validate over an explicit scope.
func (f *Form) ValidateScope(data Data, scope Scope) (bool, error) {
	ok, records, err := f.validator.Execute(data, scope)
	f.errors = records
	if err != nil {
		f.logger.Error("validation aborted", logger.GroupPath(scope.String()), logger.Error(err))
		return false, err
	}
	return ok, nil
}

func (f *Form) find(name, group string) *definition.Node {
	return f.index.FindField(name, ParsePath(group))
}

// SetFieldAttribute sets one attribute on a field declaration.
func (f *Form) SetFieldAttribute(name, attr, value, group string) error {
	return f.SetFieldAttributes(name, map[string]string{attr: value}, group)
}

// SetFieldAttributes sets several attributes on a field declaration.
func (f *Form) SetFieldAttributes(name string, attrs map[string]string, group string) error {
	node := f.find(name, group)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, ParsePath(group).Key(name))
	}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		node.SetAttr(k, attrs[k])
	}
	f.invalidate()
	return nil
}

// FieldAttribute returns a declared attribute, or def when it is absent or empty.
func (f *Form) FieldAttribute(name, attr, def, group string) string {
	node := f.find(name, group)
	if node == nil {
		return def
	}
	if v := node.AttrOr(attr, ""); v != "" {
		return v
	}
	return def
}

// SetValue binds a value to a known field. It reports false for unknown fields.
func (f *Form) SetValue(name, group string, value any) bool {
	if f.find(name, group) == nil {
		return false
	}
	f.data.Set(ParsePath(group).Key(name), value)
	return true
}

// Value returns the bound value of a field or nil.
func (f *Form) Value(name, group string) any {
	return f.data.Get(ParsePath(group).Key(name))
}

// SetField adds a field declaration to group (the root when empty). An
// existing field with the same name is replaced when replace is set and kept
// otherwise.
func (f *Form) SetField(node *definition.Node, group string, replace bool) error {
	if node.Name() == "" {
		return ErrMissingFieldName
	}
	if f.root == nil {
		return fmt.Errorf("%w: no definition loaded", ErrInvalidDefinition)
	}

	if old := f.find(node.Name(), group); old != nil {
		if !replace {
			return nil
		}
		old.Remove()
	}

	target := f.root
	if path := ParsePath(group); !path.IsRoot() {
		groups := f.index.FindGroup(path)
		if len(groups) == 0 {
			f.invalidate()
			return fmt.Errorf("%w: %s", ErrGroupNotFound, group)
		}
		target = groups[0]
	}
	definition.AddNode(target, node)
	f.invalidate()
	return nil
}

// SetFields adds several field declarations. Every node must carry a name.
func (f *Form) SetFields(nodes []*definition.Node, group string, replace bool) error {
	for _, n := range nodes {
		if n.Name() == "" {
			return ErrMissingFieldName
		}
	}
	for _, n := range nodes {
		if err := f.SetField(n, group, replace); err != nil {
			return err
		}
	}
	return nil
}

// RemoveField deletes a field declaration. It reports whether one was removed.
func (f *Form) RemoveField(name, group string) bool {
	node := f.find(name, group)
	if node == nil {
		return false
	}
	node.Remove()
	f.invalidate()
	return true
}

// RemoveGroup deletes every fields element matching group and returns how many were removed.
func (f *Form) RemoveGroup(group string) int {
	groups := f.index.FindGroup(ParsePath(group))
	for _, g := range groups {
		g.Remove()
	}
	if len(groups) > 0 {
		f.invalidate()
	}
	return len(groups)
}

// Field materializes a field with its bound value.
func (f *Form) Field(name, group string) (*Field, error) {
	path := ParsePath(group)
	node := f.index.FindField(name, path)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path.Key(name))
	}
	return f.materialize(node, path, f.data.Get(path.Key(name)))
}

// Group materializes the fields of group. With nested, fields of sub groups
// are included.
func (f *Form) Group(group string, nested bool) ([]*Field, error) {
	return f.materializeAll(f.index.FieldsByGroup(GroupScope(group), nested))
}

// Ungrouped materializes fields placed in unnamed fields elements.
func (f *Form) Ungrouped() ([]*Field, error) {
	return f.materializeAll(f.index.FieldsByGroup(Ungrouped(), false))
}

// Fieldset materializes the fields of a fieldset, or every field when name is empty.
func (f *Form) Fieldset(name string) ([]*Field, error) {
	if name == "" {
		return f.materializeAll(f.index.FieldsByGroup(AllFields(), false))
	}
	return f.materializeAll(f.index.FieldsByFieldset(name))
}

func (f *Form) materializeAll(nodes []*definition.Node) ([]*Field, error) {
	out := make([]*Field, 0, len(nodes))
	for _, n := range nodes {
		group := f.index.Chain(n)
		field, err := f.materialize(n, group, f.data.Get(group.Key(n.Name())))
		if err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, nil
}

// materialize creates a Field for node. Attribute snapshots are cached per
// (group path, name) until the definition changes.
func (f *Form) materialize(node *definition.Node, group Path, value any) (*Field, error) {
	name := node.Name()
	if name == "" {
		return nil, ErrMissingFieldName
	}

	strategy, err := f.fields.Lookup(node.AttrOr("type", ""))
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", group.Key(name), err)
	}

	key := cacheKey{group: group.String(), name: name}
	res, ok := f.cache[key]
	if !ok || res.node != node {
		res = &resolved{
			node:    node,
			name:    name,
			typ:     NormalizeType(node.AttrOr("type", "")),
			attrs:   resolveAttributes(node, strategy),
			options: nodeOptions(node),
		}
		f.cache[key] = res
	}

	ctx := fieldContext{formName: f.name, control: f.opts.control}
	return newField(ctx, res, group, strategy, value), nil
}

func nodeOptions(node *definition.Node) []definition.Option {
	children := node.ChildrenByTag(definition.TagOption)
	if len(children) == 0 {
		return nil
	}
	out := make([]definition.Option, 0, len(children))
	for _, c := range children {
		out = append(out, definition.Option{
			Value:    c.AttrOr("value", c.Text),
			Text:     strings.TrimSpace(c.Text),
			Disabled: normalizeBool(c.AttrOr("disabled", "")) == "true",
		})
	}
	return out
}

func (f *Form) ruleContext(field *Field, data Data) RuleContext {
	values := make([]string, 0, len(field.options))
	for _, o := range field.options {
		values = append(values, o.Value)
	}
	return RuleContext{
		FormName: f.name,
		Control:  f.opts.control,
		Field:    field.FieldName(),
		Group:    field.Group(),
		Attrs:    field.Attrs(),
		Options:  values,
		Data:     data,
	}
}

// Errors returns the records of the last validation.
func (f *Form) Errors() []Error {
	return slices.Clone(f.errors)
}

// Error returns the i-th record of the last validation.
func (f *Form) Error(i int) (Error, bool) {
	if i < 0 || i >= len(f.errors) {
		return Error{}, false
	}
	return f.errors[i], true
}

// LastError returns the last record of the last validation.
func (f *Form) LastError() (Error, bool) {
	return f.Error(len(f.errors) - 1)
}

// ErrorsString joins the error messages with sep.
func (f *Form) ErrorsString(sep string) string {
	msgs := make([]string, 0, len(f.errors))
	for _, e := range f.errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, sep)
}

// Err returns the records of the last validation as validator.ValidationErrors,
// or nil when there are none.
func (f *Form) Err() error {
	if len(f.errors) == 0 {
		return nil
	}
	out := make(validator.ValidationErrors, 0, len(f.errors))
	for _, e := range f.errors {
		out.Add(validator.ValidationError{
			Field:          e.FieldKey(),
			Message:        e.Message,
			TranslationKey: "form." + string(e.Kind),
			TranslationValues: map[string]any{
				"field": e.FieldKey(),
				"rule":  e.Rule,
			},
		})
	}
	return out
}

// Name returns the form name.
func (f *Form) Name() string {
	return f.name
}

// Context returns the part of the name after the first dot, or the whole name.
func (f *Form) Context() string {
	if _, rest, ok := strings.Cut(f.name, "."); ok {
		return rest
	}
	return f.name
}

// Messages returns the message resolver of the form.
func (f *Form) Messages() *Messages {
	return f.messages
}

// Option returns a form option: control, layout, labelCols, fieldCols,
// buttons or update. Column options are empty unless the layout is horizontal.
func (f *Form) Option(key string) string {
	switch key {
	case "control":
		return f.opts.control
	case "layout", "type":
		return f.opts.layout
	case "labelCols":
		if f.opts.layout != LayoutHorizontal {
			return ""
		}
		return f.opts.labelCols
	case "fieldCols":
		if f.opts.layout != LayoutHorizontal {
			return ""
		}
		return f.opts.fieldCols
	case "buttons":
		return f.opts.buttons
	case "update":
		if f.opts.update {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
