package form

import (
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Lint checks every field declaration of the definition: a name, a
// registered type, registered rules, a compilable pattern and a default value
// that fits maxlength, pattern and the url type. Problems are
// returned as validator.ValidationErrors keyed "field@attribute"; nameless
// fields are keyed by their position. A nil result means every field can be
// materialized and validated.
func (f *Form) Lint() error {
	if f.root == nil {
		return ErrInvalidDefinition
	}

	types := f.fields.Types()
	rules := f.rules.Names()

	var problems validator.ValidationErrors
	for i, node := range f.root.Descendants(definition.TagField) {
		key := Path(node.GroupPath()).Key(node.Name())
		if node.Name() == "" {
			key = "#" + strconv.Itoa(i+1)
		}

		pattern := node.AttrOr("pattern", "")
		checks := []validator.Rule{
			validator.Required(key+"@name", node.Name()),
			validator.InList(key+"@type", NormalizeType(node.AttrOr("type", "")), types),
		}
		for _, rule := range splitRules(node.AttrOr("validate", "")) {
			checks = append(checks, validator.InList(key+"@validate", normalizeRuleName(rule), rules))
		}
		checks = append(checks, validator.When(pattern != "", validator.ValidRegex(key+"@pattern", pattern))...)
		checks = append(checks, defaultChecks(node, key, pattern)...)

		problems.Merge(validator.Apply(checks...))
	}

	if !problems.IsEmpty() {
		f.logger.Debug("definition lint failed", logger.Errors(problems))
		return problems
	}
	return nil
}

// defaultChecks verifies a declared default against the constraints the
// field puts on submitted values.
func defaultChecks(node *definition.Node, key, pattern string) []validator.Rule {
	def := node.AttrOr("default", "")
	if def == "" {
		return nil
	}
	var checks []validator.Rule
	if n, err := strconv.Atoi(node.AttrOr("maxlength", "")); err == nil && n > 0 {
		checks = append(checks, validator.MaxLen(key+"@default", def, n))
	}
	if NormalizeType(node.AttrOr("type", "")) == "url" {
		checks = append(checks, validator.ValidURL(key+"@default", def))
	}
	if pattern != "" {
		if re, err := patterns.compile(pattern); err == nil {
			checks = append(checks, validator.MatchesRegex(key+"@default", def, re, "the field"))
		}
	}
	return checks
}
