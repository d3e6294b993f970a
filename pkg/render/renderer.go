package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// ErrUnknownLayout is returned by Document for an unsupported layout.
var ErrUnknownLayout = errors.New("unknown render layout")

// TokenProvider issues CSRF tokens for rendered documents.
type TokenProvider interface {
	FieldName() string
	Token() (string, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTokenProvider attaches a hidden token field to every document.
func WithTokenProvider(p TokenProvider) Option {
	return func(r *Renderer) { r.tokens = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer turns a form into render data trees. It produces data only;
// templates are the caller's concern.
type Renderer struct {
	form   *form.Form
	tokens TokenProvider
	logger *slog.Logger
}

// New creates a renderer for f.
func New(f *form.Form, opts ...Option) *Renderer {
	r := &Renderer{
		form:   f,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("render"), logger.Form(f.Name()))
	return r
}

// Document renders the whole form in the given layout.
func (r *Renderer) Document(layout Layout) (*Document, error) {
	doc := &Document{Form: r.form.Name(), Layout: layout}

	var err error
	switch layout {
	case LayoutFieldsets, "":
		doc.Layout = LayoutFieldsets
		names := make([]string, 0)
		for _, info := range r.form.Fieldsets("") {
			names = append(names, info.Name)
		}
		if len(names) == 0 {
			names = append(names, "")
		}
		doc.Fieldsets, err = r.Fieldsets(names...)
	case LayoutTabs:
		var tabs Tabs
		tabs, err = r.Tabs()
		doc.Tabs = &tabs
	case LayoutFilters:
		doc.Filters, err = r.Filters()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, layout)
	}
	if err != nil {
		r.logger.Error("render failed", logger.Error(err))
		return nil, err
	}

	doc.Buttons = r.Buttons(r.form.Context())
	if r.tokens != nil {
		tok, err := r.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("csrf token: %w", err)
		}
		doc.Token = &Field{
			Key:  r.tokens.FieldName(),
			Type: TypeHidden,
			Attrs: map[string]string{
				"name":  r.tokens.FieldName(),
				"type":  "hidden",
				"value": tok,
			},
		}
	}

	r.logger.Debug("document rendered", "layout", string(doc.Layout))
	return doc, nil
}

// Fieldset renders the fields of one fieldset. An empty name renders every field.
func (r *Renderer) Fieldset(name string) (Fieldset, error) {
	fields, err := r.form.Fieldset(name)
	if err != nil {
		return Fieldset{}, err
	}
	rendered, err := r.fields(fields)
	if err != nil {
		return Fieldset{}, err
	}
	return Fieldset{Name: name, Fields: rendered}, nil
}

// Fieldsets renders several fieldsets in the given order.
func (r *Renderer) Fieldsets(names ...string) ([]Fieldset, error) {
	out := make([]Fieldset, 0, len(names))
	for _, name := range names {
		fs, err := r.Fieldset(name)
		if err != nil {
			return nil, err
		}
		out = append(out, fs)
	}
	return out, nil
}

type tab struct {
	id, name, group     string
	legend, description string
	fields              []Field
}

// Tabs renders every fieldset as a tab. The main fieldset comes first and
// infos last; fieldsets without rendered fields are skipped and the first
// remaining tab is active.
func (r *Renderer) Tabs() (Tabs, error) {
	var head, body, tail []tab
	ns := r.form.Context()
	msgs := r.form.Messages()

	for _, info := range r.form.Fieldsets("") {
		group, name := splitFieldsetName(info.Name)

		fields, err := r.form.Fieldset(info.Name)
		if err != nil {
			return Tabs{}, err
		}
		rendered, err := r.fields(fields)
		if err != nil {
			return Tabs{}, err
		}

		t := tab{
			id:          tabID(group, name),
			name:        name,
			group:       group,
			legend:      msgs.FieldsetLegend(info.Label, ns, name),
			description: msgs.FieldsetDescription(info.Description, ns, name),
			fields:      rendered,
		}
		switch name {
		case "main":
			head = append(head, t)
		case "infos":
			tail = append(tail, t)
		default:
			body = append(body, t)
		}
	}

	out := Tabs{Tabs: []TabHeader{}, Contents: []TabContent{}}
	for _, t := range append(append(head, body...), tail...) {
		if len(t.fields) == 0 {
			continue
		}
		active := len(out.Tabs) == 0
		out.Tabs = append(out.Tabs, TabHeader{ID: t.id, Active: active, Legend: t.legend})
		out.Contents = append(out.Contents, TabContent{
			ID:          t.id,
			Active:      active,
			Description: t.description,
			Fields:      t.fields,
		})
	}
	return out, nil
}

// Filters renders the fieldsets that have fields, for a filter bar.
func (r *Renderer) Filters() ([]Filter, error) {
	out := make([]Filter, 0)
	for _, info := range r.form.Fieldsets("") {
		fields, err := r.form.Fieldset(info.Name)
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		rendered, err := r.fields(fields)
		if err != nil {
			return nil, err
		}
		group, name := splitFieldsetName(info.Name)
		out = append(out, Filter{
			Component: r.form.Context(),
			Group:     group,
			Name:      name,
			Fields:    rendered,
		})
	}
	return out, nil
}

// Buttons renders the actions listed in the buttons option. Button texts
// are translation keys, translated when a translation exists.
func (r *Renderer) Buttons(controller string) []Button {
	var out []Button
	for task := range strings.SplitSeq(r.form.Option("buttons"), ",") {
		task = strings.TrimSpace(task)
		if task == "" {
			continue
		}

		var class, text string
		switch task {
		case "cancel":
			class, text = "danger", "CANCEL"
			if r.form.Option("update") != "true" {
				text = "CLOSE"
			}
		case "save":
			class, text = "success", "SAVE_AND_CLOSE"
		case "apply":
			class, text = "warning", "APPLY"
		default:
			class, text = "info", strings.ToUpper(task)
		}
		if v, ok := r.form.Messages().Lookup(text); ok {
			text = v
		}

		out = append(out, Button{
			Class: "btn btn-" + class,
			Task:  controller + "." + task,
			Text:  text,
		})
	}
	return out
}

func (r *Renderer) fields(fields []*form.Field) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		rendered, err := r.Field(f)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

var fieldsetNameRe = regexp.MustCompile(`^(.+)\.(.+)$`)

// splitFieldsetName splits "group.name" at the last dot.
func splitFieldsetName(s string) (group, name string) {
	if m := fieldsetNameRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return "", s
}

func tabID(group, name string) string {
	if group != "" {
		return "tab-" + group + "-" + name
	}
	return "tab-" + name
}
