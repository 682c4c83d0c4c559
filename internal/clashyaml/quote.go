// Package clashyaml hand-emits the Mihomo YAML document. It deliberately
// bypasses a general serializer for the proxy/group bodies where field
// order and quoting are semantically meaningful, grounded on the original
// source's build_yaml/format_proxy_yaml/format_group_yaml/
// format_yaml_value(_simple) translated into idiomatic Go.
package clashyaml

import "strings"

// QuoteConservative is the quoting profile used for proxy and group
// names: quote only when strictly necessary to keep the name from being
// misread by a YAML parser.
func QuoteConservative(s string) string {
	if needsConservativeQuoting(s) {
		return quoteDouble(s)
	}
	return s
}

func needsConservativeQuoting(s string) bool {
	if s == "" || s == "true" || s == "false" || s == "null" {
		return true
	}
	if strings.ContainsAny(s, ":#\n") {
		return true
	}
	if strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		return true
	}
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'") || strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		return true
	}
	return false
}

// QuoteStrict is the quoting profile used for scalar values inside proxy
// bodies: additionally quotes on a wider set of YAML-significant
// characters and any non-ASCII codepoint.
func QuoteStrict(s string) string {
	if needsStrictQuoting(s) {
		return quoteDouble(s)
	}
	return s
}

const strictSpecialChars = "#:[]{}&*!|>'\"%@`"

func needsStrictQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, strictSpecialChars) {
		return true
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "?") {
		return true
	}
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return looksLikeLeadingZeroNumber(s)
}

// looksLikeLeadingZeroNumber catches values such as a reality short-id of
// "01": plain digits with a leading zero and more than one character,
// which some YAML 1.1 readers treat as an octal literal rather than a
// string. Quoting avoids that ambiguity.
func looksLikeLeadingZeroNumber(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func quoteDouble(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
