package parser

import (
	"strings"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// Result is the Node Parser's output: every node successfully decoded, in
// source order, plus warnings for lines that failed to parse.
type Result struct {
	Nodes    []node.Node
	Warnings []string
}

// ParseAll splits body into lines and dispatches each non-blank line to
// its protocol decoder by URI prefix, per spec.md §4.2. Unknown prefixes
// and decode failures are accumulated as warnings rather than aborting;
// the whole operation fails only when zero nodes are produced.
func ParseAll(body string) (Result, error) {
	var result Result
	var firstErr string

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := parseLine(line)
		if err != nil {
			msg := truncateLine(line, 50) + ": " + err.Error()
			result.Warnings = append(result.Warnings, msg)
			if firstErr == "" {
				firstErr = err.Error()
			}
			continue
		}
		result.Nodes = append(result.Nodes, n)
	}

	if len(result.Nodes) == 0 {
		if firstErr == "" {
			firstErr = "no lines recognized as proxy nodes"
		}
		return result, convertererror.Internal("No valid proxy nodes were parsed, first error: " + firstErr)
	}
	return result, nil
}

func parseLine(line string) (node.Node, error) {
	switch {
	case strings.HasPrefix(line, "vless://"):
		return ParseVless(line)
	case strings.HasPrefix(line, "vmess://"):
		return ParseVmess(line)
	case strings.HasPrefix(line, "ssr://"):
		return ParseShadowsocksR(line)
	case strings.HasPrefix(line, "ss://"):
		return ParseShadowsocks(line)
	case strings.HasPrefix(line, "trojan://"):
		return ParseTrojan(line)
	case strings.HasPrefix(line, "hysteria2://"), strings.HasPrefix(line, "hy2://"):
		return ParseHysteria2(normalizeScheme(line, "hysteria2"))
	case strings.HasPrefix(line, "hysteria://"), strings.HasPrefix(line, "hy://"):
		return ParseHysteria(normalizeScheme(line, "hysteria"))
	case strings.HasPrefix(line, "tuic://"):
		return ParseTuic(line)
	case strings.HasPrefix(line, "wireguard://"), strings.HasPrefix(line, "wg://"):
		return ParseWireguard(normalizeScheme(line, "wireguard"))
	default:
		scheme := line
		if idx := strings.Index(line, "://"); idx >= 0 {
			scheme = line[:idx]
		}
		return nil, convertererror.UnsupportedProtocol(scheme)
	}
}

// normalizeScheme rewrites an alias scheme (hy2, hy, wg) to its canonical
// name so each decoder only has to parse one prefix shape.
func normalizeScheme(line, canonical string) string {
	idx := strings.Index(line, "://")
	if idx < 0 {
		return line
	}
	return canonical + line[idx:]
}

func truncateLine(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
