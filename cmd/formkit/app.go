package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/preview"
)

var (
	errValidationFailed = errors.New("validation failed")
	errLintFailed       = errors.New("lint failed")
	errUnsupportedData  = errors.New("unsupported data file")
)

// app holds what every command shares once the configuration is loaded.
type app struct {
	envFile  string
	formName string
	environ  map[string]string

	cfg        Config
	logger     *slog.Logger
	translator *i18n.Translator
}

func rootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// newRootCmd builds the command tree. A non-nil environ replaces the process
// environment.
func newRootCmd(environ map[string]string) *cobra.Command {
	a := &app{environ: environ}

	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Form definition toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `formkit works with XML or YAML form definitions.

Configuration is read from FORMKIT_* environment variables and an optional
.env file, e.g. FORMKIT_LOG_LEVEL, FORMKIT_CSRF_SECRET, FORMKIT_LANG,
FORMKIT_TRANSLATIONS and FORMKIT_FORM_CONTROL.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file to read (default .env when present)")
	cmd.PersistentFlags().StringVar(&a.formName, "name", "", "form name (default: definition file name)")

	cmd.AddCommand(
		a.lintCmd(),
		a.validateCmd(),
		a.filterCmd(),
		a.renderCmd(),
		a.serveCmd(),
	)
	return cmd
}

func (a *app) init(ctx context.Context, logOut io.Writer) error {
	cfg, err := loadConfig(a.envFile, a.environ)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logger.Parse(cfg.LogLevel, cfg.LogFormat, logOut,
		logger.WithService("formkit"),
		logger.WithContextExtractors(preview.RequestIDExtractor()),
	)
	if err != nil {
		return err
	}

	if cfg.Translations == "" {
		return nil
	}
	var adapter i18n.TranslationAdapter = i18n.NewFileAdapter(cfg.Translations)
	if info, err := os.Stat(cfg.Translations); err == nil && info.IsDir() {
		adapter = i18n.NewDirectoryAdapter(cfg.Translations)
	}
	a.translator, err = i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(cfg.Lang),
		i18n.WithLogger(a.logger),
	)
	return err
}

// newForm loads the definition at path into a new form translated into lang.
func (a *app) newForm(path, lang string) (*form.Form, error) {
	root, err := definition.LoadFile(path)
	if err != nil {
		return nil, err
	}

	name := a.formName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	opts := []form.Option{form.WithLogger(a.logger)}
	if a.translator != nil {
		if lang == "" {
			lang = a.cfg.Lang
		}
		opts = append(opts, form.WithTranslator(a.translator.For(lang)))
	}

	f := form.NewFromConfig(name, a.cfg.Form, opts...)
	if err := f.Load(root, false); err != nil {
		return nil, err
	}
	return f, nil
}

// loadData reads bound values from a .json, .yaml or .yml file. An empty
// path yields no data.
func loadData(path string) (map[string]any, error) {
	data := map[string]any{}
	if path == "" {
		return data, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedData, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
