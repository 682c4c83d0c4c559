package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallace/localsub/internal/config"
	"github.com/wallace/localsub/internal/source"
)

func newFetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch one URL and print its raw body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			fetcher := source.NewFetcher(durationFromSeconds(cfg.TimeoutSeconds), cfg.UserAgent)
			body, err := fetcher.FetchOne(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(body)
			return nil
		},
	}
	cmd.Flags().Int("timeout", 30, "Per-request HTTP timeout in seconds")
	cmd.Flags().String("user-agent", "", "Custom User-Agent")
	return cmd
}
