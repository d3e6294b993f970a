package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalogs maps a language code to its messages. Message values are strings
// or nested maps addressed with dotted keys.
type Catalogs map[string]map[string]any

// merge copies every message of src into c; src wins on conflicts.
func (c Catalogs) merge(src Catalogs) {
	for lang, messages := range src {
		if c[lang] == nil {
			c[lang] = make(map[string]any, len(messages))
		}
		maps.Copy(c[lang], messages)
	}
}

// Format is a catalog file encoding.
type Format struct {
	Name       string
	Extensions []string

	unmarshal func([]byte, any) error
	failure   error
}

var (
	// JSON reads {"en": {"KEY": "text"}} documents.
	JSON = Format{Name: "json", Extensions: []string{"json"}, unmarshal: json.Unmarshal, failure: ErrFailedToParseJSON}
	// YAML reads documents with one top-level mapping per language.
	YAML = Format{Name: "yaml", Extensions: []string{"yaml", "yml"}, unmarshal: yaml.Unmarshal, failure: ErrFailedToParseYAML}
)

var formats = []Format{JSON, YAML}

// FormatFor picks the format of a catalog file by its extension.
func FormatFor(filename string) (Format, bool) {
	ext := filepath.Ext(filename)
	for _, f := range formats {
		if f.Handles(ext) {
			return f, true
		}
	}
	return Format{}, false
}

// Handles reports whether ext, with or without the leading dot, belongs to f.
func (f Format) Handles(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return ext != "" && slices.Contains(f.Extensions, ext)
}

// Decode parses one catalog document. Every top-level value must be a
// mapping of messages.
func (f Format) Decode(ctx context.Context, content []byte) (Catalogs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.unmarshal == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, f.Name)
	}

	var doc map[string]any
	if err := f.unmarshal(content, &doc); err != nil {
		return nil, errors.Join(f.failure, err)
	}

	out := make(Catalogs, len(doc))
	for lang, v := range doc {
		messages, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q holds %T, not a mapping", f.failure, lang, v)
		}
		out[lang] = messages
	}
	return out, nil
}
