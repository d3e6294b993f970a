package form

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// RuleContext is the read-only information a rule sees while testing a value.
type RuleContext struct {
	FormName string
	Control  string
	Field    string
	Group    Path
	Attrs    Attributes
	Options  []string
	Data     Data
}

// Rule is a validation predicate. A false result is a validation failure; an
// error is a configuration problem that aborts validation.
type Rule interface {
	Test(ctx RuleContext, value any) (bool, error)
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(ctx RuleContext, value any) (bool, error)

// Test calls fn.
func (fn RuleFunc) Test(ctx RuleContext, value any) (bool, error) { return fn(ctx, value) }

// RegexRule matches the value against Pattern. Modifiers accepts i, m, s and
// U, mapped to the matching inline flags; u is accepted and has no effect
// since matching is always UTF-8 aware.
type RegexRule struct {
	Pattern   string
	Modifiers string
}

var unicodeProbe = regexp.MustCompile(`\pL`)

// Test implements Rule.
func (r RegexRule) Test(_ RuleContext, value any) (bool, error) {
	if r.Pattern == "" {
		return false, fmt.Errorf("%w: empty pattern", ErrInvalidRule)
	}

	modifiers := r.Modifiers
	if unicodeProbe.MatchString("a") && !strings.Contains(modifiers, "u") {
		modifiers += "u"
	}

	expr, err := regexExpr(r.Pattern, modifiers)
	if err != nil {
		return false, err
	}
	re, err := patterns.compile(expr)
	if err != nil {
		return false, err
	}
	return re.MatchString(stringValue(value, ",")), nil
}

func regexExpr(pattern, modifiers string) (string, error) {
	var flags strings.Builder
	for _, m := range modifiers {
		switch m {
		case 'i', 'm', 's', 'U':
			if !strings.ContainsRune(flags.String(), m) {
				flags.WriteRune(m)
			}
		case 'u':
		default:
			return "", fmt.Errorf("%w: unsupported modifier %q", ErrInvalidRule, m)
		}
	}
	if flags.Len() == 0 {
		return pattern, nil
	}
	return "(?" + flags.String() + ")" + pattern, nil
}

// RuleFactory creates a rule. Rules are constructed for every evaluation.
type RuleFactory func() Rule

// RuleRegistry maps lower-cased rule names to factories.
type RuleRegistry struct {
	mu    sync.RWMutex
	rules map[string]RuleFactory
}

// NewRuleRegistry returns a registry holding the built-in rules.
func NewRuleRegistry() *RuleRegistry {
	r := &RuleRegistry{rules: make(map[string]RuleFactory)}

	r.Register("email", predicate(validator.IsEmail))
	r.Register("url", predicate(validator.IsURL))
	r.Register("tel", predicate(isTel))
	r.Register("numeric", predicate(validator.IsNumeric))
	r.Register("color", predicate(validator.IsHexColor))
	r.Register("username", predicate(validator.IsUsername))

	r.Register("int", optional(RegexRule{Pattern: `^[-+]?\d+$`}))
	r.Register("alnum", optional(RegexRule{Pattern: `^[\pL\pN]+$`}))
	r.Register("alpha", optional(RegexRule{Pattern: `^\pL+$`}))

	r.Register("equals", func() Rule { return RuleFunc(testEquals) })
	r.Register("options", func() Rule { return RuleFunc(testOptions) })
	return r
}

// Register adds or replaces a rule. It panics on a nil factory.
func (r *RuleRegistry) Register(name string, factory RuleFactory) {
	if factory == nil {
		panic(fmt.Sprintf("form: nil rule factory for %q", name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[normalizeRuleName(name)] = factory
}

// RegisterRegex registers a RegexRule under name.
func (r *RuleRegistry) RegisterRegex(name, pattern, modifiers string) {
	r.Register(name, func() Rule { return RegexRule{Pattern: pattern, Modifiers: modifiers} })
}

// Lookup constructs the rule registered under name.
func (r *RuleRegistry) Lookup(name string) (Rule, error) {
	r.mu.RLock()
	factory, ok := r.rules[normalizeRuleName(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return factory(), nil
}

func normalizeRuleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Names returns the registered rule names, sorted.
func (r *RuleRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.rules))
	for k := range r.rules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// predicate builds a rule from a string predicate. Empty values pass.
func predicate(fn func(string) bool) RuleFactory {
	return func() Rule {
		return RuleFunc(func(_ RuleContext, value any) (bool, error) {
			s := stringValue(value, ",")
			return s == "" || fn(s), nil
		})
	}
}

// optional wraps rule so that empty values pass.
func optional(rule Rule) RuleFactory {
	return func() Rule {
		return RuleFunc(func(ctx RuleContext, value any) (bool, error) {
			if stringValue(value, ",") == "" {
				return true, nil
			}
			return rule.Test(ctx, value)
		})
	}
}

var storedTelRe = regexp.MustCompile(`^\d{0,3}\.\d{1,12}$`)

// isTel accepts phone numbers as typed and as stored by the tel filter.
func isTel(s string) bool {
	return storedTelRe.MatchString(s) || validator.IsPhone(s)
}

// testEquals compares the value with the sibling field named by the field attribute.
func testEquals(ctx RuleContext, value any) (bool, error) {
	other := ctx.Attrs.String("field")
	if other == "" {
		return false, fmt.Errorf("%w: equals requires a field attribute", ErrInvalidRule)
	}
	return stringValue(value, ",") == stringValue(ctx.Data.Get(ctx.Group.Key(other)), ","), nil
}

// testOptions requires every selected value to be one of the declared options.
func testOptions(ctx RuleContext, value any) (bool, error) {
	for _, v := range stringList(value) {
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if !slices.Contains(ctx.Options, part) {
				return false, nil
			}
		}
	}
	return true, nil
}
