package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/csrf"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/render"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <definition>",
		Short: "Check that every field of a definition can be materialized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.newForm(args[0], "")
			if err != nil {
				return err
			}

			if err := f.Lint(); err != nil {
				verrs := validator.ExtractValidationErrors(err)
				byField := verrs.ByField()
				for _, key := range verrs.Fields() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, strings.Join(byField[key], "; "))
				}
				return fmt.Errorf("%w: %d problem(s)", errLintFailed, len(verrs))
			}

			fields, err := f.Fieldset("")
			if err != nil {
				return errors.Join(errLintFailed, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d field(s)\n", len(fields))
			return nil
		},
	}
}

type dataFlags struct {
	data  string
	group string
}

func (d *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&d.data, "data", "d", "", "values to bind (.json, .yaml)")
	cmd.Flags().StringVarP(&d.group, "group", "g", "", "restrict to a group path")
}

func (a *app) validateCmd() *cobra.Command {
	var flags dataFlags
	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate data against a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, data, err := a.bound(args[0], flags.data)
			if err != nil {
				return err
			}

			valid, err := f.Validate(form.Data(data), flags.group)
			if err != nil {
				return err
			}
			errs := f.Errors()
			if errs == nil {
				errs = []form.Error{}
			}
			if err := writeJSON(cmd.OutOrStdout(), map[string]any{"valid": valid, "errors": errs}); err != nil {
				return err
			}
			if !valid {
				return errValidationFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) filterCmd() *cobra.Command {
	var flags dataFlags
	cmd := &cobra.Command{
		Use:   "filter <definition>",
		Short: "Print the filtered values of data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, data, err := a.bound(args[0], flags.data)
			if err != nil {
				return err
			}
			out, err := f.Filter(form.Data(data), flags.group)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	var (
		flags  dataFlags
		layout string
	)
	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Print the render tree of a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := a.bound(args[0], flags.data)
			if err != nil {
				return err
			}

			var opts []render.Option
			opts = append(opts, render.WithLogger(a.logger))
			if a.cfg.CSRFSecret != "" {
				tokens, err := csrf.New(a.cfg.CSRFSecret, csrf.WithTTL(a.cfg.CSRFTTL))
				if err != nil {
					return err
				}
				opts = append(opts, render.WithTokenProvider(tokens))
			}

			doc, err := render.New(f, opts...).Document(render.Layout(layout))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&layout, "layout", "l", string(render.LayoutFieldsets), "fieldsets, tabs or filters")
	return cmd
}

// bound loads a definition and binds the data file to it.
func (a *app) bound(definition, dataFile string) (*form.Form, map[string]any, error) {
	start := time.Now()
	f, err := a.newForm(definition, "")
	if err != nil {
		return nil, nil, err
	}
	data, err := loadData(dataFile)
	if err != nil {
		return nil, nil, err
	}
	f.Bind(data)
	a.logger.Debug("form bound", slog.String("definition", definition), logger.Duration(time.Since(start)))
	return f, data, nil
}
