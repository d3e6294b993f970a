package definition

import "errors"

var (
	// ErrInvalidDocument is returned when the source cannot be parsed into a node tree.
	ErrInvalidDocument = errors.New("definition: invalid document")

	// ErrEmptyDocument is returned when the source holds no root element.
	ErrEmptyDocument = errors.New("definition: empty document")

	// ErrMissingFieldName is returned by the generator for fields without a name.
	ErrMissingFieldName = errors.New("definition: missing field name")

	// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
	ErrUnsupportedFormat = errors.New("definition: unsupported file format")
)
