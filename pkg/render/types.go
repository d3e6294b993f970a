package render

import "github.com/dmitrymomot/formkit/pkg/form"

// Layout selects the document shape.
type Layout string

const (
	LayoutFieldsets Layout = "fieldsets"
	LayoutTabs      Layout = "tabs"
	LayoutFilters   Layout = "filters"
)

// Field type markers added on top of the field kinds.
const (
	TypeHidden     = "hidden"
	TypeStatic     = "static"
	TypeInputGroup = "inputgroup"
)

// Label is the render data of a field label.
type Label struct {
	Attrs map[string]string `json:"attrs"`
	Text  string            `json:"text"`
}

// Field is the render data of one field.
type Field struct {
	Key     string              `json:"key"`
	Type    string              `json:"type"`
	Attrs   map[string]string   `json:"attrs,omitempty"`
	Content string              `json:"content,omitempty"`
	Value   any                 `json:"value,omitempty"`
	Options []form.RenderOption `json:"options,omitempty"`

	// Input group decorations; Control holds the wrapped control.
	Class   string           `json:"class,omitempty"`
	Prefix  string           `json:"prefix,omitempty"`
	Suffix  string           `json:"suffix,omitempty"`
	Control *form.RenderData `json:"field,omitempty"`

	Container map[string]string `json:"container,omitempty"`
	Label     *Label            `json:"label,omitempty"`
	Tip       string            `json:"tip,omitempty"`
}

// Fieldset is a named list of rendered fields.
type Fieldset struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// TabHeader is the navigation entry of a tab.
type TabHeader struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Legend string `json:"legend"`
}

// TabContent is the body of a tab.
type TabContent struct {
	ID          string  `json:"id"`
	Active      bool    `json:"active"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Tabs holds headers and bodies in matching order.
type Tabs struct {
	Tabs     []TabHeader  `json:"tabs"`
	Contents []TabContent `json:"contents"`
}

// Filter is a fieldset rendered for a filter bar.
type Filter struct {
	Component string  `json:"component"`
	Group     string  `json:"group,omitempty"`
	Name      string  `json:"name"`
	Fields    []Field `json:"fields"`
}

// Button is a form action button.
type Button struct {
	Class string `json:"class"`
	Task  string `json:"task"`
	Text  string `json:"text"`
}

// Document is a complete render tree.
type Document struct {
	Form      string     `json:"form"`
	Layout    Layout     `json:"layout"`
	Fieldsets []Fieldset `json:"fieldsets,omitempty"`
	Tabs      *Tabs      `json:"tabs,omitempty"`
	Filters   []Filter   `json:"filters,omitempty"`
	Buttons   []Button   `json:"buttons,omitempty"`
	Token     *Field     `json:"token,omitempty"`
}
