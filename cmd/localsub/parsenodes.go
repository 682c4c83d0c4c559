package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wallace/localsub/internal/config"
	"github.com/wallace/localsub/internal/filter"
	"github.com/wallace/localsub/internal/node"
	"github.com/wallace/localsub/internal/parser"
	"github.com/wallace/localsub/internal/source"
)

type nodeRow struct {
	Name     string `yaml:"name" json:"name"`
	Protocol string `yaml:"protocol" json:"protocol"`
	Server   string `yaml:"server" json:"server"`
	Port     int    `yaml:"port" json:"port"`
}

func newParseNodesCommand() *cobra.Command {
	var (
		include string
		exclude string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "parse-nodes <input-file>",
		Short: "Parse subscription material and print node rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			text, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			fetcher := source.NewFetcher(durationFromSeconds(cfg.TimeoutSeconds), cfg.UserAgent)
			resolved, err := source.Resolve(context.Background(), text, fetcher)
			if err != nil {
				return err
			}
			parsed, err := parser.ParseAll(resolved.Body)
			if err != nil {
				return err
			}
			filtered, _, err := filter.Apply(parsed.Nodes, filter.Options{Include: include, Exclude: exclude})
			if err != nil {
				return err
			}

			rows := toNodeRows(filtered.Nodes)
			return printRows(rows, format)
		},
	}

	cmd.Flags().StringVar(&include, "include", "", "Only keep nodes whose name matches this regex")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Drop nodes whose name matches this regex")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	cmd.Flags().Int("timeout", 30, "Per-request HTTP timeout in seconds")
	cmd.Flags().String("user-agent", "", "Custom User-Agent for subscription fetches")
	return cmd
}

func toNodeRows(nodes []node.Node) []nodeRow {
	rows := make([]nodeRow, len(nodes))
	for i, n := range nodes {
		rows[i] = nodeRow{Name: n.Name(), Protocol: n.Protocol(), Server: n.Server(), Port: n.Port()}
	}
	return rows
}

func printRows(rows []nodeRow, format string) error {
	if format == "json" {
		return printJSON(rows)
	}
	out, err := yaml.Marshal(rows)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
