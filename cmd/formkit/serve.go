package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/csrf"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/preview"
	"github.com/dmitrymomot/formkit/pkg/render"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		addr   string
		layout string
		group  string
	)
	cmd := &cobra.Command{
		Use:   "serve <definition>",
		Short: "Serve a definition for preview; it is reloaded on every request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if addr == "" {
				addr = a.cfg.Addr
			}

			secret := a.cfg.CSRFSecret
			if secret == "" {
				secret = uuid.NewString()
				a.logger.Warn("FORMKIT_CSRF_SECRET not set, using a random secret")
			}
			tokens, err := csrf.New(secret, csrf.WithTTL(a.cfg.CSRFTTL))
			if err != nil {
				return err
			}

			extrOpts := []i18n.ExtractorOption{}
			if a.translator != nil {
				extrOpts = append(extrOpts, i18n.WithSupportedLanguages(a.translator.SupportedLanguages()...))
			}

			opts := []preview.Option{
				preview.WithCSRF(tokens),
				preview.WithLayout(render.Layout(layout)),
				preview.WithValidationGroup(group),
				preview.WithLangExtractor(i18n.DefaultLangExtractor(extrOpts...)),
				preview.WithLogger(a.logger),
			}
			if a.cfg.SubmitBurst > 0 {
				th, err := preview.NewThrottle(a.cfg.SubmitBurst, a.cfg.SubmitInterval)
				if err != nil {
					return err
				}
				opts = append(opts, preview.WithThrottle(th))
			}

			h, err := preview.NewHandler(
				func(ctx context.Context) (*form.Form, error) {
					return a.newForm(path, i18n.Language(ctx))
				},
				opts...,
			)
			if err != nil {
				return err
			}

			srv := preview.NewServer(preview.WithAddr(addr), preview.WithServerLogger(a.logger))
			return srv.Run(cmd.Context(), h.Routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default FORMKIT_ADDR)")
	cmd.Flags().StringVarP(&layout, "layout", "l", string(render.LayoutFieldsets), "fieldsets, tabs or filters")
	cmd.Flags().StringVarP(&group, "group", "g", "", "validate only this group")
	return cmd
}
