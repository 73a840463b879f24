package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	verbose    bool
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "extreports",
		Short:         "extreports generates additional test reports after a build",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Path to an extreports.yaml configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log output format (console or json)")

	cmd.AddCommand(newReportsCmd(flags))
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
