package form

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// StrategyFactory creates the strategy of a field type.
type StrategyFactory func() Strategy

// FieldRegistry maps field type tags to strategy factories. Type tags are
// lower-cased and stripped of dashes before lookup; datetime-local is an
// alias of datetime and a missing type resolves to text.
type FieldRegistry struct {
	mu    sync.RWMutex
	types map[string]StrategyFactory
}

// NewFieldRegistry returns a registry holding the built-in field types.
func NewFieldRegistry() *FieldRegistry {
	r := &FieldRegistry{types: make(map[string]StrategyFactory)}

	inputs := map[string]string{
		"text":     "text",
		"email":    "email",
		"password": "password",
		"tel":      "tel",
		"url":      "url",
		"number":   "number",
		"date":     "date",
		"datetime": "datetime-local",
		"time":     "time",
		"color":    "color",
		"search":   "search",
		"range":    "range",
	}
	for name, inputType := range inputs {
		r.Register(name, func() Strategy { return &InputStrategy{InputType: inputType} })
	}
	r.Register("hidden", func() Strategy { return &InputStrategy{InputType: "hidden", Hidden: true} })

	for _, widget := range []string{"select", "list", "radio", "checkboxes"} {
		r.Register(widget, func() Strategy { return &SelectStrategy{Widget: widget} })
	}

	r.Register("textarea", func() Strategy { return &TextareaStrategy{} })
	r.Register("editor", func() Strategy { return &TextareaStrategy{Editor: true} })

	for _, widget := range []string{"container", "html", "spacer"} {
		r.Register(widget, func() Strategy { return &ContainerStrategy{Widget: widget} })
	}
	return r
}

// NormalizeType returns the registry key of a declared type.
func NormalizeType(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		return "text"
	}
	if typ == "datetime-local" {
		return "datetime"
	}
	return strings.ReplaceAll(typ, "-", "")
}

// Register adds or replaces a field type. It panics on a nil factory.
func (r *FieldRegistry) Register(typ string, factory StrategyFactory) {
	if factory == nil {
		panic(fmt.Sprintf("form: nil strategy factory for field type %q", typ))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[NormalizeType(typ)] = factory
}

// Lookup creates the strategy for a declared type.
func (r *FieldRegistry) Lookup(typ string) (Strategy, error) {
	key := NormalizeType(typ)

	r.mu.RLock()
	factory, ok := r.types[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFieldType, typ)
	}
	return factory(), nil
}

// Types returns the registered type keys, sorted.
func (r *FieldRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for k := range r.types {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
