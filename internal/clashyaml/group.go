package clashyaml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wallace/localsub/internal/template"
)

// FormatGroup renders one resolved proxy-group as a `proxy-groups:` list
// item in the fixed key order spec.md §4.5 point 2 requires: name, type,
// then (for groups carrying a test URL) url/interval/timeout/tolerance,
// then the expanded proxies list.
func FormatGroup(g template.ClashGroup) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  - name: %s\n", QuoteConservative(g.Name))
	fmt.Fprintf(&sb, "    type: %s\n", QuoteConservative(g.Type))
	if g.TestURL != "" {
		fmt.Fprintf(&sb, "    url: %s\n", QuoteConservative(g.TestURL))
	}
	if g.Interval != 0 {
		fmt.Fprintf(&sb, "    interval: %s\n", strconv.Itoa(g.Interval))
	}
	if g.Timeout != 0 {
		fmt.Fprintf(&sb, "    timeout: %s\n", strconv.Itoa(g.Timeout))
	}
	if g.Tolerance != 0 {
		fmt.Fprintf(&sb, "    tolerance: %s\n", strconv.Itoa(g.Tolerance))
	}
	sb.WriteString("    proxies:\n")
	for _, p := range g.Proxies {
		fmt.Fprintf(&sb, "      - %s\n", QuoteConservative(p))
	}
	return sb.String()
}
