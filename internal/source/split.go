// Package source implements the Source Resolver (S1): splitting a raw
// input blob into URLs and inline items, fetching URLs concurrently, and
// decoding base64-wrapped subscription bodies, grounded on the teacher's
// fetchContent/decodeBase64 pair and the original source's http_client.rs.
package source

import (
	"strings"

	"github.com/wallace/localsub/internal/b64text"
)

// Item is one entry recovered from splitting the input blob: either a URL
// to fetch, or inline subscription content to decode/parse directly.
type Item struct {
	Raw   string
	IsURL bool
}

// Split implements spec.md §4.1's splitting rule: strip BOM, normalize
// line endings, then choose between pipe-splitting and newline-splitting
// depending on the blob's shape. This is the documented sharp edge: a
// single URL whose query string happens to contain a literal "|" and two
// "http" substrings (e.g. a redirect target embedded in a query param)
// will be mis-split. The original implementation exhibits this behavior;
// it is preserved here rather than fixed.
func Split(blob string) []Item {
	cleaned := b64text.Clean(blob)
	var parts []string
	hasPipe := strings.Contains(cleaned, "|")
	hasScheme := strings.Contains(cleaned, "://")
	httpCount := strings.Count(cleaned, "http")
	switch {
	case hasPipe && !hasScheme:
		parts = strings.Split(cleaned, "|")
	case hasPipe && httpCount > 1:
		parts = strings.Split(cleaned, "|")
	default:
		parts = strings.Split(cleaned, "\n")
	}

	items := make([]Item, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		isURL := strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
		items = append(items, Item{Raw: p, IsURL: isURL})
	}
	return items
}
