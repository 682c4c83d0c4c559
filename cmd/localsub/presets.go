package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallace/localsub/internal/engine"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the static table of public rule-template URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range engine.Presets() {
				fmt.Printf("%s\t%s\t%s\n", p.Name, p.URL, p.Description)
			}
			return nil
		},
	}
}
