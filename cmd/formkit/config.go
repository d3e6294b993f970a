package main

import (
	"time"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// envPrefix is prepended to every variable of Config.
const envPrefix = "FORMKIT_"

// Config is read from FORMKIT_* variables and an optional .env file.
type Config struct {
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"LOG_FORMAT" envDefault:"text"`
	CSRFSecret   string        `env:"CSRF_SECRET"`
	CSRFTTL      time.Duration `env:"CSRF_TTL" envDefault:"1h"`
	Addr         string        `env:"ADDR" envDefault:":8080"`
	Lang         string        `env:"LANG" envDefault:"en"`
	Translations string        `env:"TRANSLATIONS"`

	// SubmitBurst enables per-client submission throttling in serve when positive.
	SubmitBurst    int           `env:"SUBMIT_BURST" envDefault:"0"`
	SubmitInterval time.Duration `env:"SUBMIT_INTERVAL" envDefault:"1s"`

	Form form.Config
}

func loadConfig(envFile string, environ map[string]string) (Config, error) {
	opts := []config.Option{config.WithPrefix(envPrefix)}
	if envFile != "" {
		opts = append(opts, config.WithEnvFiles(envFile))
	} else {
		opts = append(opts, config.WithOptionalEnvFiles(".env"))
	}
	if environ != nil {
		opts = append(opts, config.WithEnvironment(environ))
	}

	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
