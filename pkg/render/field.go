package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Field renders one field. The field is made render ready first.
func (r *Renderer) Field(f *form.Field) (Field, error) {
	f.CleanForRender()

	out := Field{Key: f.Key()}
	switch {
	case f.Hidden():
		value, err := f.HiddenValue()
		if err != nil {
			r.logger.Error("hidden value", logger.Field(f.Key()), logger.Error(err))
			return Field{}, fmt.Errorf("render field %q: %w", f.Key(), err)
		}
		out.Type = TypeHidden
		out.Attrs = map[string]string{
			"name":  f.Name(),
			"type":  "hidden",
			"value": value,
		}
		return out, nil
	case f.Static():
		out.Type = TypeStatic
		out.Value = f.StaticValue()
	case f.Attr("inputgroupPrefix") != "" || f.Attr("inputgroupSuffix") != "":
		control := f.Render()
		if control.Attrs == nil {
			control.Attrs = map[string]string{}
		}
		control.Attrs["aria-describedby"] = "inputgroup-" + f.ID()
		out.Type = TypeInputGroup
		out.Class = f.Attr("inputgroupClass")
		out.Prefix = f.Attr("inputgroupPrefix")
		out.Suffix = f.Attr("inputgroupSuffix")
		out.Control = &control
	default:
		control := f.Render()
		out.Type = control.Type
		out.Attrs = control.Attrs
		out.Content = control.Content
		out.Value = control.Value
		out.Options = control.Options
	}

	if f.Kind() == form.KindContainer {
		return out, nil
	}

	ns := r.form.Context()
	msgs := r.form.Messages()
	out.Label = r.label(f, msgs.Label(f.Attr("labelText"), ns, f.FieldName()))
	out.Tip = msgs.Description(f.Attr("description"), ns, f.FieldName())
	out.Container = r.container(f)
	return out, nil
}

func (r *Renderer) label(f *form.Field, text string) *Label {
	var classes []string
	classes = append(classes, strings.Fields(r.form.Option("labelCols"))...)
	switch r.form.Option("layout") {
	case form.LayoutInline:
		classes = append(classes, "sr-only")
	case form.LayoutHorizontal:
		classes = append(classes, "control-label")
	}
	if f.LabelHide() && r.form.Option("layout") != form.LayoutInline {
		classes = append(classes, "sr-only")
	}
	classes = append(classes, strings.Fields(f.Attr("labelClass"))...)
	if f.Required() {
		classes = append(classes, "required")
	}

	attrs := map[string]string{
		"id":  f.ID() + "-lbl",
		"for": f.ID(),
	}
	if len(classes) > 0 {
		attrs["class"] = strings.Join(classes, " ")
	}

	helpKey := "HELP_FIELD_" + strings.ToUpper(r.form.Context()+"_"+f.FieldName())
	if _, ok := r.form.Messages().Lookup(helpKey); ok {
		attrs["data-help-key"] = helpKey
		attrs["data-help-type"] = "field"
	}
	return &Label{Attrs: attrs, Text: text}
}

var colRe = regexp.MustCompile(`^col-(xs|sm|md|lg)-(\d+)$`)

// container returns the wrapper attributes of the horizontal layout. A field
// with a hidden label is offset by the label width.
func (r *Renderer) container(f *form.Field) map[string]string {
	if r.form.Option("layout") != form.LayoutHorizontal {
		return nil
	}

	classes := strings.Fields(r.form.Option("fieldCols"))
	if f.LabelHide() {
		offset, width := labelWidth(r.form.Option("labelCols")), 12
		kept := classes[:0]
		for _, c := range classes {
			if !colRe.MatchString(c) {
				kept = append(kept, c)
			}
		}
		classes = append(kept, "col-xs-12")
		if offset > 0 {
			width -= offset
			classes = append(classes,
				"col-sm-offset-"+strconv.Itoa(offset),
				"col-sm-"+strconv.Itoa(width))
		}
	}
	classes = append(classes, strings.Fields(f.Attr("containerClass"))...)
	if len(classes) == 0 {
		return nil
	}
	return map[string]string{"class": strings.Join(classes, " ")}
}

func labelWidth(cols string) int {
	for c := range strings.FieldsSeq(cols) {
		if m := colRe.FindStringSubmatch(c); m != nil && m[1] == "sm" {
			n, _ := strconv.Atoi(m[2])
			return n
		}
	}
	return 0
}
