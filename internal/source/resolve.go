package source

import (
	"context"
	"strings"

	"github.com/wallace/localsub/internal/b64text"
	"github.com/wallace/localsub/internal/convertererror"
)

// Result is the Source Resolver's output: the joined body handed to the
// node parser, the winning subscription info (if any response carried the
// header), and the warnings accumulated along the way.
type Result struct {
	Body     string
	Info     *SubscriptionInfo
	Warnings []string
}

// Resolve runs S1 end to end: split the blob, fetch every URL item
// concurrently (preserving URL order regardless of completion order),
// base64-auto-detect and decode each resolved body, and join everything
// with inline items into one blob for the node parser.
func Resolve(ctx context.Context, blob string, fetcher *Fetcher) (Result, error) {
	items := Split(blob)

	urlIdx := make([]int, 0, len(items))
	urls := make([]string, 0, len(items))
	for i, it := range items {
		if it.IsURL {
			urlIdx = append(urlIdx, i)
			urls = append(urls, it.Raw)
		}
	}

	outcomes := fetcher.FetchAll(ctx, urls)

	resolved := make([]string, len(items))
	var warnings []string
	var info *SubscriptionInfo

	for pos, outcome := range outcomes {
		itemIdx := urlIdx[pos]
		if outcome.err != nil {
			warnings = append(warnings, "fetch failed for "+truncate(items[itemIdx].Raw, 80)+": "+outcome.err.Error())
			continue
		}
		if info == nil && outcome.info != nil {
			info = outcome.info
		}
		resolved[itemIdx] = decodeIfBase64(outcome.body)
	}
	for i, it := range items {
		if !it.IsURL {
			resolved[i] = decodeIfBase64(it.Raw)
		}
	}

	// spec: "all URL-sourced lines (in the original URL order, regardless
	// of fetch completion order) then inline content" — URL items and
	// inline items are joined in two separate passes, not interleaved by
	// their position in the original blob.
	var joined []string
	for i, it := range items {
		if it.IsURL && resolved[i] != "" {
			joined = append(joined, resolved[i])
		}
	}
	for i, it := range items {
		if !it.IsURL {
			joined = append(joined, resolved[i])
		}
	}

	body := strings.Join(joined, "\n")
	if strings.TrimSpace(body) == "" {
		return Result{}, convertererror.Internal("empty subscription: no parseable items from any source")
	}

	return Result{Body: body, Info: info, Warnings: warnings}, nil
}

// decodeIfBase64 applies the base64 auto-detection and flexible decode
// cascade described in spec.md §4.1, recursively cleaning the decoded
// output. Non-qualifying or undecodable bodies pass through unchanged.
func decodeIfBase64(body string) string {
	if !b64text.LooksLikeBase64(body) {
		return b64text.Clean(body)
	}
	if decoded, ok := b64text.DecodeFlexible(body); ok {
		return b64text.Clean(decoded)
	}
	return b64text.Clean(body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
