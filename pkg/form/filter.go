package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// Built-in filter names. Lookups are case-insensitive.
const (
	FilterUnset     = "unset"
	FilterRaw       = "raw"
	FilterIntArray  = "int_array"
	FilterSafeHTML  = "safehtml"
	FilterServerUTC = "server_utc"
	FilterURL       = "url"
	FilterTel       = "tel"
	FilterString    = "string"
	FilterTextarea  = "textarea"
	FilterInt       = "int"
	FilterBool      = "bool"
	FilterFloat     = "float"
	FilterTrim      = "trim"
	FilterEmail     = "email"
)

// SQLDateLayout is the layout produced by the default date formatter.
const SQLDateLayout = "2006-01-02 15:04:05"

// FilterFunc is a named filter callable.
type FilterFunc func(value any) any

// DateFormatter normalizes a timestamp or date string.
type DateFormatter interface {
	FormatDate(raw string) (string, error)
}

// DateFormatterFunc adapts a function to DateFormatter.
type DateFormatterFunc func(raw string) (string, error)

// FormatDate calls fn.
func (fn DateFormatterFunc) FormatDate(raw string) (string, error) { return fn(raw) }

var dateLayouts = []string{
	time.RFC3339,
	SQLDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// SQLDateFormatter formats unix timestamps and common date strings as UTC SQL datetimes.
var SQLDateFormatter = DateFormatterFunc(func(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(n, 0).UTC().Format(SQLDateLayout), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(SQLDateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
})

var urlStripper = strings.NewReplacer("<", "", ">", "", `"`, "")

// FilterEngine applies named filters to bound values.
type FilterEngine struct {
	mu        sync.RWMutex
	callables map[string]FilterFunc
	dates     DateFormatter
}

// NewFilterEngine returns an engine with the built-in callables registered.
func NewFilterEngine() *FilterEngine {
	e := &FilterEngine{
		callables: make(map[string]FilterFunc),
		dates:     SQLDateFormatter,
	}
	e.Register(FilterString, func(v any) any { return sanitizer.CleanString(stringValue(v, ",")) })
	e.Register(FilterTextarea, func(v any) any { return sanitizer.CleanTextarea(stringValue(v, ",")) })
	e.Register(FilterInt, func(v any) any { return intValue(v) })
	e.Register(FilterFloat, func(v any) any {
		f, err := strconv.ParseFloat(strings.TrimSpace(stringValue(v, ",")), 64)
		if err != nil {
			return float64(0)
		}
		return f
	})
	e.Register(FilterBool, func(v any) any { return !isBlank(v) })
	e.Register(FilterTrim, func(v any) any { return strings.TrimSpace(stringValue(v, ",")) })
	e.Register(FilterEmail, func(v any) any { return sanitizer.NormalizeEmail(stringValue(v, ",")) })
	return e
}

// Register adds a named callable filter.
func (e *FilterEngine) Register(name string, fn FilterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("form: nil filter %q", name))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callables[strings.ToLower(name)] = fn
}

// SetDateFormatter replaces the formatter used by server_utc.
func (e *FilterEngine) SetDateFormatter(df DateFormatter) {
	if df == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dates = df
}

// Filter applies the named filter to value. pattern is the field's pattern
// attribute, consulted by tel. ErrFilterUnset excludes the value from output;
// ErrFilterRejected marks an input the filter refused.
func (e *FilterEngine) Filter(name string, value any, pattern string) (any, error) {
	switch strings.ToLower(name) {
	case FilterUnset:
		return nil, ErrFilterUnset
	case FilterRaw:
		return value, nil
	case FilterIntArray:
		return filterIntArray(value), nil
	case FilterSafeHTML:
		return stringValue(value, ","), nil
	case FilterServerUTC:
		return e.filterServerUTC(value), nil
	case FilterURL:
		return filterURL(value)
	case FilterTel:
		return filterTel(stringValue(value, ","), pattern), nil
	}

	e.mu.RLock()
	fn, ok := e.callables[strings.ToLower(name)]
	e.mu.RUnlock()
	if ok {
		return fn(value), nil
	}
	return value, nil
}

// FilterField applies the field's own filter to value.
func (e *FilterEngine) FilterField(f *Field, value any) (any, error) {
	return e.Filter(f.Filter(), value, f.Attr("pattern"))
}

func filterIntArray(value any) []int64 {
	var items []any
	switch t := value.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case map[string]any:
		for _, v := range t {
			items = append(items, v)
		}
	default:
		items = []any{t}
	}

	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, intValue(it))
	}
	return out
}

func (e *FilterEngine) filterServerUTC(value any) string {
	if intValue(value) <= 0 {
		return ""
	}
	e.mu.RLock()
	df := e.dates
	e.mu.RUnlock()

	out, err := df.FormatDate(stringValue(value, ","))
	if err != nil {
		return ""
	}
	return out
}

func filterURL(value any) (any, error) {
	if isBlank(value) {
		return false, ErrFilterRejected
	}
	s := sanitizer.StripTags(stringValue(value, ","))
	s = strings.TrimSpace(s)
	s = urlStripper.Replace(s)

	if !hasScheme(s) {
		s = "http://" + s
	}
	return s, nil
}

var (
	schemeRe = regexp.MustCompile(`(?s)^[A-Za-z][A-Za-z0-9+.-]*:(.*)$`)
	portRe   = regexp.MustCompile(`^\d+(/|$)`)
)

// hasScheme reports whether s starts with a scheme. "host:port[/path]" is a
// host with a port; "mailto:x" and "https://x" carry a scheme.
func hasScheme(s string) bool {
	m := schemeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return strings.HasPrefix(m[1], "//") || !portRe.MatchString(m[1])
}

// filterTel validates against pattern when one is declared. Otherwise the
// digits are kept and a separator is inserted twelve digits from the end;
// numbers longer than fifteen digits are dropped.
func filterTel(value, pattern string) string {
	value = strings.TrimSpace(value)

	if pattern != "" {
		re, err := patterns.compile(pattern)
		if err != nil || !re.MatchString(value) {
			return ""
		}
		return value
	}

	digits := sanitizer.KeepDigits(value)
	n := len(digits)
	if n == 0 || n > 15 {
		return ""
	}
	if n <= 12 {
		return "." + digits
	}
	cc := n - 12
	return digits[:cc] + "." + digits[cc:]
}
