package form

import "errors"

var (
	// ErrInvalidDefinition is returned when the first loaded document is not rooted at a form element.
	ErrInvalidDefinition = errors.New("form: invalid definition")

	// ErrMissingFieldName is returned when a field element has no name attribute.
	ErrMissingFieldName = errors.New("form: missing field name")

	// ErrUnknownFieldType is returned when a field type is not registered.
	ErrUnknownFieldType = errors.New("form: unknown field type")

	// ErrUnknownRule is returned when a validate list names an unregistered rule.
	ErrUnknownRule = errors.New("form: unknown rule")

	// ErrInvalidRule is returned when a rule is misconfigured (empty or malformed pattern).
	ErrInvalidRule = errors.New("form: invalid rule")

	// ErrNoFieldsInGroup is returned when validate or filter targets a group without fields.
	ErrNoFieldsInGroup = errors.New("form: no fields found for group")

	// ErrFieldNotFound is returned when a named field cannot be resolved.
	ErrFieldNotFound = errors.New("form: field not found")

	// ErrGroupNotFound is returned when a field is added to a group that does not exist.
	ErrGroupNotFound = errors.New("form: group not found")

	// ErrHiddenValueForbidden is returned when a field type cannot be rendered as a hidden value.
	ErrHiddenValueForbidden = errors.New("form: field cannot be formatted as hidden")

	// ErrFilterRejected signals that a filter refused its input. Filter output stores false for such fields.
	ErrFilterRejected = errors.New("form: filter rejected value")

	// ErrFilterUnset signals that the field is excluded from filter output.
	ErrFilterUnset = errors.New("form: value unset by filter")
)
