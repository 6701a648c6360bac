package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricekit/ricekit/internal/config"
)

func newModuleCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Manage installed modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newModuleListCmd(root))
	cmd.AddCommand(newModuleInstallCmd(root))
	cmd.AddCommand(newModuleCreateCmd(root))
	cmd.AddCommand(newModuleEnableCmd(root, true))
	cmd.AddCommand(newModuleEnableCmd(root, false))
	cmd.AddCommand(newModuleDeleteCmd(root))
	cmd.AddCommand(newModuleRunScriptCmd(root))

	return cmd
}

func newModuleListCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			modules, err := app.manager.LoadAll()
			if err != nil {
				return err
			}
			if len(modules) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no modules in %s\n", app.paths.ModulesDir)
				return nil
			}

			for _, module := range modules {
				state := okStyle.Render("enabled")
				if !module.Enabled {
					state = dimStyle.Render("disabled")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", module.Name, state)
			}
			return nil
		},
	}
}

func newModuleInstallCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "install <git-url|folder>",
		Short: "Install a module from a git repository or local folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			module, err := app.manager.Install(cmd.Context(), args[0], app.baseVars(nil))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", module.Name)
			return nil
		},
	}
}

func newModuleCreateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Scaffold a new module skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			module, err := app.manager.Create(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", module.Dir)
			return nil
		},
	}
}

func newModuleEnableCmd(root *rootFlags, enable bool) *cobra.Command {
	use, short := "enable <name>", "Enable a module"
	if !enable {
		use, short = "disable <name>", "Disable a module"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}
			return app.manager.SetEnabled(args[0], enable)
		},
	}
}

func newModuleDeleteCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an installed module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}
			return app.manager.Delete(args[0])
		},
	}
}

func newModuleRunScriptCmd(root *rootFlags) *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "run-script <module> <script>",
		Short: "Run a module's named script pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			module, err := app.manager.Load(args[0])
			if err != nil {
				return err
			}

			var theme map[string]any
			if themeName != "" {
				theme, err = config.LoadTheme(app.paths.ThemesDir, themeName)
				if err != nil {
					return err
				}
			}

			result, err := app.engine.RunScript(cmd.Context(), module, args[1], app.baseVars(theme))
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderPipeline(&result))
			if result.Failed() {
				return fmt.Errorf("script %s failed", args[1])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "Theme providing the variable context")
	return cmd
}
