package form

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// ErrorKind classifies a validation error record.
type ErrorKind string

const (
	ErrorRequired ErrorKind = "required"
	ErrorInvalid  ErrorKind = "invalid"
	ErrorGeneric  ErrorKind = "error"
)

// Error is one validation failure collected by the validator.
type Error struct {
	Kind    ErrorKind
	Field   *Field
	Rule    string
	Message string
}

// FieldKey returns the dot qualified key of the failing field.
func (e Error) FieldKey() string {
	if e.Field == nil {
		return ""
	}
	return e.Field.Key()
}

// MarshalJSON encodes the record with the field reduced to its key and id.
func (e Error) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind    ErrorKind `json:"kind"`
		Field   string    `json:"field"`
		ID      string    `json:"id,omitempty"`
		Rule    string    `json:"rule,omitempty"`
		Message string    `json:"message"`
	}{Kind: e.Kind, Field: e.FieldKey(), Rule: e.Rule, Message: e.Message}
	if e.Field != nil {
		out.ID = e.Field.ID()
	}
	return json.Marshal(out)
}

// Validator runs required checks and rules over the fields of a scope.
type Validator struct {
	form *Form
}

// NewValidator returns a validator bound to f.
func NewValidator(f *Form) *Validator {
	return &Validator{form: f}
}

// Execute validates data against the fields selected by scope. It reports
// whether no error was recorded. Validation failures are returned as records;
// the error return is reserved for configuration problems (no fields in the
// scope, unknown rule, misconfigured rule or field).
func (v *Validator) Execute(data Data, scope Scope) (bool, []Error, error) {
	f := v.form
	nodes := f.index.FieldsByGroup(scope, false)
	if len(nodes) == 0 {
		return false, nil, fmt.Errorf("%w: %s", ErrNoFieldsInGroup, scope)
	}

	snapshot := data.Clone()

	var records []Error
	for _, node := range nodes {
		group := f.index.Chain(node)
		raw, _ := data.Lookup(group.Key(node.Name()))

		field, err := f.materialize(node, group, raw)
		if err != nil {
			return false, records, err
		}
		if field.Kind() == KindContainer {
			continue
		}

		filtered, err := f.filters.FilterField(field, raw)
		switch {
		case errors.Is(err, ErrFilterUnset), errors.Is(err, ErrFilterRejected):
			filtered = nil
		case err != nil:
			return false, records, err
		}
		field.SetValue(filtered)

		rec, err := v.check(field, snapshot)
		if err != nil {
			return false, records, err
		}
		if rec != nil {
			f.logger.Debug("field validation failed",
				logger.Form(f.name),
				logger.Field(field.Key()),
				logger.Rule(rec.Rule),
				logger.ErrorKind(string(rec.Kind)),
			)
			records = append(records, *rec)
		}
	}
	return len(records) == 0, records, nil
}

func (v *Validator) check(field *Field, data Data) (*Error, error) {
	f := v.form
	ns := f.Context()

	if field.Required() && field.IsEmpty() {
		return &Error{
			Kind:    ErrorRequired,
			Field:   field,
			Message: f.messages.RequiredError(field.Attr("message"), ns, field.FieldName()),
		}, nil
	}

	for _, name := range field.Rules() {
		rule, err := f.rules.Lookup(name)
		if err != nil {
			return nil, err
		}

		ok, err := rule.Test(f.ruleContext(field, data), field.Value())
		if err != nil {
			return nil, fmt.Errorf("rule %q on field %q: %w", name, field.Key(), err)
		}
		if !ok {
			return &Error{
				Kind:    ErrorInvalid,
				Field:   field,
				Rule:    name,
				Message: f.messages.RuleError(ns, field.FieldName(), name),
			}, nil
		}
	}
	return nil, nil
}
