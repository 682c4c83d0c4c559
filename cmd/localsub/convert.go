package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wallace/localsub/internal/config"
	"github.com/wallace/localsub/internal/engine"
	"github.com/wallace/localsub/internal/logging"
)

func newConvertCommand() *cobra.Command {
	var (
		output         string
		templateURL    string
		templateFile   string
		baseConfigFile string
		include        string
		exclude        string
		renamePattern  string
		renameReplace  string
		enableTUN      bool
		enableUDP      bool
		enableTFO      bool
		skipCertVerify bool
		timeoutSeconds int
		userAgent      string
		logLevel       string
		logFormat      string
	)

	cmd := &cobra.Command{
		Use:   "convert <input-file>",
		Short: "Convert subscription material into a Mihomo YAML configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			subscriptionText, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			req := engine.ConvertRequest{
				SubscriptionText: subscriptionText,
				TemplateURL:      templateURL,
				Include:          include,
				Exclude:          exclude,
				RenamePattern:    renamePattern,
				RenameReplace:    renameReplace,
				TimeoutSeconds:   cfg.TimeoutSeconds,
				EnableTUN:        enableTUN,
				UserAgent:        cfg.UserAgent,
				EnableUDP:        enableUDP,
				EnableTFO:        enableTFO,
				SkipCertVerify:   skipCertVerify,
			}
			if templateFile != "" {
				content, err := os.ReadFile(templateFile)
				if err != nil {
					return fmt.Errorf("reading template file: %w", err)
				}
				req.TemplateContent = string(content)
			}
			if baseConfigFile != "" {
				content, err := os.ReadFile(baseConfigFile)
				if err != nil {
					return fmt.Errorf("reading base config: %w", err)
				}
				req.BaseConfigYAML = content
			}

			e := engine.New(cfg.TimeoutSeconds, cfg.UserAgent, logger)
			result, err := e.Convert(context.Background(), req)
			if err != nil {
				return err
			}

			logger.Info("conversion complete",
				"node_count", result.NodeCount,
				"filtered_count", result.FilteredCount,
				"group_count", result.GroupCount,
				"rule_count", result.RuleCount,
			)

			return writeOutput(output, result.YAML)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&templateURL, "template-url", "", "Remote rule-template URL")
	cmd.Flags().StringVar(&templateFile, "template-file", "", "Local rule-template file (wins over --template-url)")
	cmd.Flags().StringVar(&baseConfigFile, "base-config", "", "Base ambient-settings YAML file to merge under defaults")
	cmd.Flags().StringVar(&include, "include", "", "Only keep nodes whose name matches this regex")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Drop nodes whose name matches this regex")
	cmd.Flags().StringVar(&renamePattern, "rename-pattern", "", "Regex to match in node names before replacing")
	cmd.Flags().StringVar(&renameReplace, "rename-replace", "", "Replacement text for --rename-pattern")
	cmd.Flags().BoolVar(&enableTUN, "tun", false, "Include a TUN block in the emitted document")
	cmd.Flags().BoolVar(&enableUDP, "udp", true, "Set the global udp switch on every node")
	cmd.Flags().BoolVar(&enableTFO, "tfo", false, "Set the global tcp-fast-open switch on every node")
	cmd.Flags().BoolVar(&skipCertVerify, "skip-cert-verify", false, "Set the global skip-cert-verify switch on every node")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 30, "Per-request HTTP timeout in seconds")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "Custom User-Agent for subscription/template fetches")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format: console, json")

	return cmd
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
