package i18n

import "errors"

var (
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")

	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToParseFile = errors.New("failed to parse translation file")
	ErrUnsupportedFile   = errors.New("unsupported translation file format")
	ErrNoTranslations    = errors.New("no translations found")

	ErrFailedToAccessDirectory = errors.New("failed to access directory")
	ErrNilAdapter              = errors.New("translation adapter is nil")
)
