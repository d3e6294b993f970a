// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/caarlos0/env/v11` for struct parsing and
// `github.com/joho/godotenv` for reading `.env` files. Values from env files
// never leak into the process environment: they are merged into the variable
// set passed to the parser, with real environment variables taking
// precedence.
//
// # Usage
//
//	type Config struct {
//	    Addr string      `env:"ADDR" envDefault:":8080"`
//	    Form form.Config `envPrefix:"FORM_"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg,
//	    config.WithPrefix("FORMKIT_"),
//	    config.WithOptionalEnvFiles(".env"),
//	)
//
// # Error Handling
//
// Parse failures are joined with ErrParsingConfig, unreadable env files with
// ErrEnvFile. Use errors.Is to test for either.
package config
