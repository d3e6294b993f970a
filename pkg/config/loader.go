package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a single Load call.
type Option func(*options)

type options struct {
	prefix   string
	files    []string
	optional bool
	environ  map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "FORMKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles reads dotenv files before parsing. Later files override
// earlier ones; variables already present in the environment win over both.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// WithOptionalEnvFiles is like WithEnvFiles but missing files are skipped.
func WithOptionalEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
		o.optional = true
	}
}

// WithEnvironment replaces the process environment with vars.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environ = vars }
}

// Load parses environment variables into v based on its env tags.
//
// Example:
//
//	type ServerConfig struct {
//		Addr    string        `env:"ADDR" envDefault:":8080"`
//		Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg ServerConfig
//	err := config.Load(&cfg, config.WithPrefix("FORMKIT_"), config.WithOptionalEnvFiles(".env"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	vars, err := readEnvFiles(o.files, o.optional)
	if err != nil {
		return err
	}

	current := o.environ
	if current == nil {
		current = env.ToMap(os.Environ())
	}
	for k, val := range current {
		vars[k] = val
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: vars,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func readEnvFiles(files []string, optional bool) (map[string]string, error) {
	vars := make(map[string]string)
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrEnvFile, fmt.Errorf("%s: %w", file, err))
		}
		for k, val := range values {
			vars[k] = val
		}
	}
	return vars, nil
}
