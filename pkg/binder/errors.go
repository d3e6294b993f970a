package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrMalformedName        = errors.New("malformed field name")
	ErrConflictingName      = errors.New("conflicting field names")
)
