package binder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Option configures ParseForm and BindForm.
type Option func(*options)

type options struct {
	strict bool
	logger *slog.Logger
}

// WithStrictNames rejects the whole submission on a malformed name instead
// of skipping it.
func WithStrictNames() Option {
	return func(o *options) { o.strict = true }
}

// WithLogger receives a warning for every skipped malformed name.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ParseForm turns bracketed control names back into nested data.
//
//	csForm[email]=a@b.c          -> {"email": "a@b.c"}
//	csForm[address][city]=Berlin -> {"address": {"city": "Berlin"}}
//	csForm[tags][]=a&...[]=b     -> {"tags": ["a", "b"]}
//
// Keys outside control are ignored, malformed keys are skipped unless
// WithStrictNames is set. With an empty control the first segment is the
// bare name (email, address[city]). A name given several times without []
// keeps its last value.
func ParseForm(values url.Values, control string, opts ...Option) (map[string]any, error) {
	o := newOptions(opts)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := make(map[string]any)
	for _, key := range keys {
		segments, list, ok, err := splitName(key, control)
		if errors.Is(err, ErrMalformedName) && !o.strict {
			o.logger.Warn("malformed field name skipped", slog.String("name", key))
			continue
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		vals := values[key]
		var value any
		switch {
		case list:
			value = append([]string(nil), vals...)
		case len(vals) > 0:
			value = vals[len(vals)-1]
		default:
			value = ""
		}
		if err := set(data, segments, value); err != nil {
			return nil, fmt.Errorf("%w: %s", err, key)
		}
	}
	return data, nil
}

// BindForm parses a url-encoded or multipart request body and returns the
// nested data under control.
func BindForm(r *http.Request, control string, opts ...Option) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
	}

	var values url.Values
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = r.PostForm
	case "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = url.Values(r.MultipartForm.Value)
	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	return ParseForm(values, control, opts...)
}

// splitName parses control[a][b][c] into [a b c]. list reports a trailing [].
// ok is false for names outside control.
func splitName(name, control string) (segments []string, list, ok bool, err error) {
	rest := name
	if control != "" {
		if !strings.HasPrefix(name, control+"[") {
			return nil, false, false, nil
		}
		rest = name[len(control):]
	} else {
		head, _, found := strings.Cut(name, "[")
		if head == "" {
			return nil, false, false, fmt.Errorf("%w: %s", ErrMalformedName, name)
		}
		segments = append(segments, head)
		if !found {
			return segments, false, true, nil
		}
		rest = name[len(head):]
	}

	for rest != "" {
		if rest[0] != '[' {
			return nil, false, false, fmt.Errorf("%w: %s", ErrMalformedName, name)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, false, false, fmt.Errorf("%w: %s", ErrMalformedName, name)
		}
		seg := rest[1:end]
		rest = rest[end+1:]
		if seg == "" {
			if rest != "" {
				return nil, false, false, fmt.Errorf("%w: %s", ErrMalformedName, name)
			}
			list = true
			break
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return nil, false, false, fmt.Errorf("%w: %s", ErrMalformedName, name)
	}
	return segments, list, true, nil
}

func set(data map[string]any, segments []string, value any) error {
	current := data
	for _, seg := range segments[:len(segments)-1] {
		next, exists := current[seg]
		if !exists {
			m := make(map[string]any)
			current[seg] = m
			current = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return ErrConflictingName
		}
		current = m
	}

	last := segments[len(segments)-1]
	if existing, exists := current[last]; exists {
		if _, isMap := existing.(map[string]any); isMap {
			return ErrConflictingName
		}
	}
	current[last] = value
	return nil
}
