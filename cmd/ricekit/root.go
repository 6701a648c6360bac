package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose   bool
	configDir string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "ricekit",
		Short:         "Ricekit applies desktop themes through user-authored modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "Override the config directory (default ~/.config/ricekit)")

	cmd.AddCommand(newApplyCmd(flags))
	cmd.AddCommand(newThemesCmd(flags))
	cmd.AddCommand(newModuleCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
