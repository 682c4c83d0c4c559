package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "localsub",
		Short: "A local Mihomo (Clash Meta) subscription converter",
		Long:  `localsub ingests proxy-node subscription material across nine protocols and emits a Mihomo-conformant YAML configuration.`,
	}

	rootCmd.AddCommand(
		newConvertCommand(),
		newParseNodesCommand(),
		newPresetsCommand(),
		newValidateRegexCommand(),
		newFetchCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
