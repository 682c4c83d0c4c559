package clashyaml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wallace/localsub/internal/node"
	"github.com/wallace/localsub/internal/yamlmap"
)

// FormatProxy renders one node's ClashFields map as a `proxies:` list
// item, with the first key introduced by "  - " and every subsequent key
// (at the same nesting level) indented "    ", matching
// format_proxy_yaml's indentation scheme. Nested maps (reality-opts,
// ws-opts, …) and list values (alpn, reserved, …) recurse with two
// additional spaces of indent per level.
func FormatProxy(n node.Node, opts node.GlobalOptions) string {
	m := n.ClashFields(opts)
	var sb strings.Builder
	for i, e := range m.Entries() {
		indent := "    "
		if i == 0 {
			indent = "  - "
		}
		writeEntry(&sb, indent, e.Key, e.Value)
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, indent, key string, value any) {
	switch v := value.(type) {
	case *yamlmap.OrderedMap:
		fmt.Fprintf(sb, "%s%s:\n", indent, key)
		nestedIndent := nestIndent(indent) + "  "
		for _, e := range v.Entries() {
			if e.Key == "headers" {
				if headers, ok := e.Value.(*yamlmap.OrderedMap); ok {
					fmt.Fprintf(sb, "%sheaders:\n", nestedIndent)
					for _, h := range headers.Entries() {
						fmt.Fprintf(sb, "%s  %s: %s\n", nestedIndent, h.Key, formatStrictScalar(h.Value))
					}
					continue
				}
			}
			writeEntry(sb, nestedIndent, e.Key, e.Value)
		}
	case []string:
		fmt.Fprintf(sb, "%s%s:\n", indent, key)
		itemIndent := nestIndent(indent) + "  "
		for _, item := range v {
			fmt.Fprintf(sb, "%s- %s\n", itemIndent, QuoteStrict(item))
		}
	case []int:
		fmt.Fprintf(sb, "%s%s:\n", indent, key)
		itemIndent := nestIndent(indent) + "  "
		for _, item := range v {
			fmt.Fprintf(sb, "%s- %d\n", itemIndent, item)
		}
	default:
		fmt.Fprintf(sb, "%s%s: %s\n", indent, key, formatStrictScalar(value))
	}
}

// nestIndent normalizes the "  - " first-line marker to plain spaces so
// nested blocks align under the key, not the dash.
func nestIndent(indent string) string {
	if indent == "  - " {
		return "    "
	}
	return indent
}

func formatStrictScalar(v any) string {
	switch val := v.(type) {
	case string:
		return QuoteStrict(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", val)
	}
}
