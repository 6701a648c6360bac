package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricekit/ricekit/internal/config"
)

func newApplyCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <theme>",
		Short: "Apply a theme by running every module's pipelines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			theme, err := config.LoadTheme(app.paths.ThemesDir, args[0])
			if err != nil {
				return err
			}

			modules, err := app.manager.LoadAll()
			if err != nil {
				return err
			}
			if len(modules) == 0 {
				return fmt.Errorf("no modules installed under %s", app.paths.ModulesDir)
			}

			report, err := app.engine.ApplyTheme(cmd.Context(), modules, app.baseVars(theme))
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderApplyReport(args[0], report))

			if report.Failed() {
				return fmt.Errorf("theme %s applied with failures", args[0])
			}
			return nil
		},
	}

	return cmd
}

func newThemesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			names, err := config.ListThemes(app.paths.ThemesDir)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no themes in %s\n", app.paths.ThemesDir)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	return cmd
}
