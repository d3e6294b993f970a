// Package render builds render-ready data trees from a form.
//
// The renderer never produces markup. It walks the fields of a form.Form,
// makes each one render ready with CleanForRender and assembles plain
// records: field controls, labels, tips and horizontal layout containers,
// grouped as fieldsets, tabs or filter bars, plus the action buttons. The
// records encode to JSON and are meant to be consumed by a template layer.
//
//	r := render.New(f, render.WithTokenProvider(tokens))
//	doc, err := r.Document(render.LayoutTabs)
//
// With a token provider every document carries a hidden CSRF field.
package render
