package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assetreg",
		Short: "Asset registry service",
		Long: "assetreg keeps an inventory of assets, values them with straight-line\n" +
			"depreciation and serves the registry over a JSON HTTP API.\n\n" +
			"Configuration is read from ASSETREG_* environment variables and an\n" +
			"optional .env file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newExportCmd(),
		newValueCmd(),
		newUserCmd(),
	)
	return root
}
