// Package filter implements S3: dedup, include/exclude regex filtering,
// and regex-based rename, applied once in that fixed order, grounded on
// the original source's filter.rs (dedup_nodes/match_nodes_by_pattern/
// rename_nodes) translated into idiomatic Go.
package filter

import (
	"regexp"
	"strconv"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// Options configures the S3 pass. Include/Exclude/RenamePattern are
// regex source strings, compiled once up front so a bad pattern fails
// fast with the offending pattern named in the error.
type Options struct {
	Include       string
	Exclude       string
	RenamePattern string
	RenameReplace string
}

// Result carries the surviving nodes and how many duplicates dedup
// removed, for the warnings the orchestrator accumulates.
type Result struct {
	Nodes          []node.Node
	DuplicatesDropped int
}

// Apply runs dedup, then include/exclude filtering, then rename, in that
// fixed single pass (spec.md §4.3's ordering guarantee).
func Apply(nodes []node.Node, opts Options) (Result, []string, error) {
	deduped, dropped := dedup(nodes)

	var includeRe, excludeRe *regexp.Regexp
	var err error
	if opts.Include != "" {
		includeRe, err = regexp.Compile(opts.Include)
		if err != nil {
			return Result{}, nil, convertererror.InvalidRegex(opts.Include, err)
		}
	}
	if opts.Exclude != "" {
		excludeRe, err = regexp.Compile(opts.Exclude)
		if err != nil {
			return Result{}, nil, convertererror.InvalidRegex(opts.Exclude, err)
		}
	}

	filtered := deduped
	if includeRe != nil || excludeRe != nil {
		filtered = make([]node.Node, 0, len(deduped))
		for _, n := range deduped {
			if includeRe != nil && !includeRe.MatchString(n.Name()) {
				continue
			}
			if excludeRe != nil && excludeRe.MatchString(n.Name()) {
				continue
			}
			filtered = append(filtered, n)
		}
	}

	if opts.RenamePattern != "" {
		renameRe, err := regexp.Compile(opts.RenamePattern)
		if err != nil {
			return Result{}, nil, convertererror.InvalidRegex(opts.RenamePattern, err)
		}
		for _, n := range filtered {
			n.SetName(renameRe.ReplaceAllString(n.Name(), opts.RenameReplace))
		}
	}

	var warnings []string
	if dropped > 0 {
		warnings = append(warnings, duplicatesWarning(dropped))
	}
	return Result{Nodes: filtered, DuplicatesDropped: dropped}, warnings, nil
}

// dedup keeps the first-seen node for each DedupKey, preserving order.
func dedup(nodes []node.Node) ([]node.Node, int) {
	seen := make(map[string]bool, len(nodes))
	out := make([]node.Node, 0, len(nodes))
	dropped := 0
	for _, n := range nodes {
		key := n.DedupKey()
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out, dropped
}

func duplicatesWarning(n int) string {
	return "Removed " + strconv.Itoa(n) + " duplicate nodes"
}
