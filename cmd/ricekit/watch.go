package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ricekit/ricekit/internal/config"
	"github.com/ricekit/ricekit/internal/watcher"
)

func newWatchCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the themes directory and fire themes_changed on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			onChanged := func() {
				modules, err := app.manager.LoadAll()
				if err != nil {
					app.logger.Error(err, "reloading modules")
					return
				}
				report, err := app.engine.Fire(ctx, config.EventThemesChanged, modules, app.baseVars(nil))
				if err != nil {
					app.logger.Error(err, "dispatching themes_changed")
					return
				}
				if len(report.Pipelines) > 0 {
					fmt.Fprint(cmd.OutOrStdout(), renderEventReport(report))
				}
			}

			w := watcher.New(app.paths.ThemesDir, app.logger, onChanged)
			app.logger.Infof("watching %s", app.paths.ThemesDir)

			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
