// Package parser implements the Node Parser (S2): one decoder per proxy
// URI scheme, dispatched by prefix, each producing a node.Node or an
// error that is accumulated as a warning so the remaining lines continue
// decoding, grounded on the original source's parser.rs dispatch table.
package parser

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/wallace/localsub/internal/convertererror"
)

// splitHostPort splits an authority of the form "host:port" or
// "[ipv6]:port", returning the bare host (brackets stripped) and the
// numeric port.
func splitHostPort(authority string) (host string, port int, err error) {
	if authority == "" {
		return "", 0, convertererror.MissingField("host", "authority")
	}
	if strings.HasPrefix(authority, "[") {
		end := strings.Index(authority, "]")
		if end < 0 {
			return "", 0, convertererror.URLParse("unterminated ipv6 literal: " + authority)
		}
		host = authority[1:end]
		rest := authority[end+1:]
		rest = strings.TrimPrefix(rest, ":")
		if rest == "" {
			return host, 0, nil
		}
		p, perr := strconv.Atoi(rest)
		if perr != nil {
			return "", 0, convertererror.URLParse("invalid port: " + rest)
		}
		return host, p, nil
	}
	idx := strings.LastIndex(authority, ":")
	if idx < 0 {
		return authority, 0, nil
	}
	host = authority[:idx]
	portStr := authority[idx+1:]
	if portStr == "" {
		return host, 0, nil
	}
	p, perr := strconv.Atoi(portStr)
	if perr != nil {
		return "", 0, convertererror.URLParse("invalid port: " + portStr)
	}
	return host, p, nil
}

// decodeFragment URL-percent-decodes a URI fragment, falling back to the
// raw value when it isn't validly percent-encoded (a common occurrence
// with names containing a literal "%").
func decodeFragment(fragment string) string {
	if fragment == "" {
		return ""
	}
	decoded, err := url.QueryUnescape(fragment)
	if err != nil {
		return fragment
	}
	return decoded
}

// splitNonEmpty splits s on sep and drops empty resulting items, used for
// comma-delimited lists like alpn and reserved bytes where trailing/blank
// entries should be dropped rather than emitted.
func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// truthyBool parses the handful of "bool-or-string" fields the wire
// formats use (VMess's skip-cert-verify, TUIC's insecure, etc.): "true",
// "1", "yes" are true; anything else, including absence, is false.
func truthyBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
