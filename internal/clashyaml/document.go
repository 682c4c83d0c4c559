package clashyaml

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
	"github.com/wallace/localsub/internal/template"
)

// BuildOptions configures document assembly beyond the per-node global
// switches: whether to include a TUN block and an optional base config
// to deep-merge under the ambient defaults.
type BuildOptions struct {
	EnableTUN      bool
	BaseConfigYAML []byte
	Global         node.GlobalOptions
}

// Build composes the full Mihomo document: header comment, ambient
// settings (optionally overridden by a base config), the hand-emitted
// proxies/proxy-groups/rule-providers/rules sections, then validates the
// result by a round-trip YAML parse (spec.md §4.5 point 5).
func Build(nodes []node.Node, groups []template.ClashGroup, providers []template.RuleProvider, rules []template.ResolvedRule, opts BuildOptions) (string, error) {
	ambientBytes, err := MergeAmbientBase(DefaultAmbientConfig(opts.EnableTUN), opts.BaseConfigYAML)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# Mihomo configuration\n")
	sb.WriteString("# Generated by localsub\n\n")
	sb.Write(ambientBytes)
	sb.WriteString("\n")

	sb.WriteString("proxies:\n")
	for _, n := range nodes {
		sb.WriteString(FormatProxy(n, opts.Global))
	}
	sb.WriteString("\n")

	sb.WriteString("proxy-groups:\n")
	for _, g := range groups {
		sb.WriteString(FormatGroup(g))
	}
	sb.WriteString("\n")

	if len(providers) > 0 {
		sb.WriteString("rule-providers:\n")
		for _, p := range providers {
			sb.WriteString(formatProvider(p))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("rules:\n")
	for _, r := range rules {
		fmt.Fprintf(&sb, "  - %s\n", r.Line())
	}

	out := sb.String()
	var validate any
	if err := yaml.Unmarshal([]byte(out), &validate); err != nil {
		return "", convertererror.YAMLSerialize(err)
	}
	return out, nil
}

func formatProvider(p template.RuleProvider) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s:\n", p.Name)
	fmt.Fprintf(&sb, "    type: http\n")
	fmt.Fprintf(&sb, "    behavior: %s\n", string(p.Behavior))
	fmt.Fprintf(&sb, "    url: %s\n", QuoteStrict(p.URL))
	fmt.Fprintf(&sb, "    path: %s\n", p.Path)
	if p.Format != "" {
		fmt.Fprintf(&sb, "    format: %s\n", p.Format)
	}
	fmt.Fprintf(&sb, "    interval: 86400\n")
	return sb.String()
}
