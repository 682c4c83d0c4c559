package template

import (
	"fmt"
	"regexp"
	"strings"
)

var nonProviderNameChar = regexp.MustCompile(`[^A-Za-z0-9_-]`)

var knownRulesetExtensions = []string{".list", ".yaml", ".txt", ".mrs"}

// DeriveProviderName derives a rule-providers key from a ruleset URL's
// final path segment, per spec.md §4.4: strip a known extension, keep up
// to 50 characters, replace any non [A-Za-z0-9_-] character with '-'. An
// empty result falls back to "provider-<index>".
func DeriveProviderName(url string, index int) string {
	trimmed := stripQuery(url)
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	for _, ext := range knownRulesetExtensions {
		if strings.HasSuffix(segment, ext) {
			segment = strings.TrimSuffix(segment, ext)
			break
		}
	}
	if len(segment) > 50 {
		segment = segment[:50]
	}
	segment = nonProviderNameChar.ReplaceAllString(segment, "-")
	if segment == "" {
		return fmt.Sprintf("provider-%d", index)
	}
	return segment
}

// InferFormat maps a ruleset URL's extension to Mihomo's rule-providers
// format field.
func InferFormat(url string) string {
	lower := strings.ToLower(stripQuery(url))
	switch {
	case strings.HasSuffix(lower, ".mrs"):
		return "mrs"
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return "yaml"
	case strings.HasSuffix(lower, ".list"), strings.HasSuffix(lower, ".txt"):
		return "text"
	default:
		return ""
	}
}

// formatExtension maps a provider format back to its on-disk extension,
// defaulting to "yaml" when the format is unset.
func formatExtension(format string) string {
	switch format {
	case "mrs":
		return "mrs"
	case "text":
		return "txt"
	default:
		return "yaml"
	}
}

// DerivePath builds the local file path a rule-providers entry reads
// from: "./ruleset/<name>.<ext>" by default, or a caller-supplied
// template substituting "{name}"/"{ext}", or — if the template contains
// neither placeholder — a directory to which "/<name>.<ext>" is appended.
func DerivePath(name, format, tmpl string) string {
	ext := formatExtension(format)
	if tmpl == "" {
		return fmt.Sprintf("./ruleset/%s.%s", name, ext)
	}
	if strings.Contains(tmpl, "{name}") || strings.Contains(tmpl, "{ext}") {
		out := strings.ReplaceAll(tmpl, "{name}", name)
		out = strings.ReplaceAll(out, "{ext}", ext)
		return out
	}
	return strings.TrimSuffix(tmpl, "/") + fmt.Sprintf("/%s.%s", name, ext)
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}
