package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/formfile"
	"github.com/goliatone/go-formbuilder/pkg/gateway"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

func newEditCmd(a *app) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Build a form interactively and save it through the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := gateway.New(a.cfg.APIURL, gateway.WithLogger(a.logger))
			if err != nil {
				return err
			}

			d := draft.New("")
			if from != "" {
				form, err := formfile.Load(from, d.Registry())
				if err != nil {
					return err
				}
				if err := formfile.Seed(d, form); err != nil {
					return err
				}
			}
			if d.StoreID() == "" {
				// The editor refuses to save until a store id is known.
				if _, err := client.ResolveStore(ctx, d); err != nil {
					a.logger.Warn("store information unavailable", zap.Error(err))
				}
			}

			editor, err := tui.NewEditor(d, tui.WithSaver(client), tui.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := editor.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "seed the draft from a form file")
	return cmd
}
