package template

import (
	"fmt"
	"regexp"

	"github.com/wallace/localsub/internal/convertererror"
)

// ClashGroup is a proxy-group ready for YAML emission: its matchers
// expanded against the current node set.
type ClashGroup struct {
	Name      string
	Type      string
	TestURL   string
	Interval  int
	Timeout   int
	Tolerance int
	Proxies   []string
}

// RuleProvider is one `rule-providers` entry.
type RuleProvider struct {
	Name     string
	URL      string
	Behavior RulesetBehavior
	Format   string
	Path     string
}

// ResolvedRule is one line of the final `rules:` list.
type ResolvedRule struct {
	Type      string
	Value     string
	Target    string
	NoResolve bool
}

// Resolve expands a Parsed template against the current node-name set:
// proxy-group matchers are expanded (pattern matchers to concrete
// node-name lists, group-refs and specials left verbatim), ruleset refs
// become rule-providers entries plus RULE-SET rows ordered before the
// inline rules, per spec.md §4.4.
func Resolve(parsed *Parsed, nodeNames []string) ([]ClashGroup, []RuleProvider, []ResolvedRule, error) {
	groups := make([]ClashGroup, 0, len(parsed.Groups))
	for _, g := range parsed.Groups {
		proxies, err := expandMatchers(g.Matchers, nodeNames)
		if err != nil {
			return nil, nil, nil, err
		}
		groups = append(groups, ClashGroup{
			Name:      g.Name,
			Type:      g.Type,
			TestURL:   g.TestURL,
			Interval:  g.Interval,
			Timeout:   g.Timeout,
			Tolerance: g.Tolerance,
			Proxies:   proxies,
		})
	}

	providers := make([]RuleProvider, 0, len(parsed.RulesetRefs))
	rules := make([]ResolvedRule, 0, len(parsed.RulesetRefs)+len(parsed.InlineRules))
	for i, ref := range parsed.RulesetRefs {
		name := DeriveProviderName(ref.URL, i)
		format := InferFormat(ref.URL)
		providers = append(providers, RuleProvider{
			Name:     name,
			URL:      ref.URL,
			Behavior: ref.Behavior,
			Format:   format,
			Path:     DerivePath(name, format, ""),
		})
		rules = append(rules, ResolvedRule{
			Type:      "RULE-SET",
			Value:     name,
			Target:    ref.TargetGroup,
			NoResolve: ref.Behavior == BehaviorIPCIDR,
		})
	}
	for _, r := range parsed.InlineRules {
		rules = append(rules, ResolvedRule{Type: r.Type, Value: r.Value, Target: r.Target, NoResolve: r.NoResolve})
	}

	return groups, providers, rules, nil
}

// expandMatchers expands a proxy-group's matcher list against nodeNames:
// Pattern matchers are compiled and matched (all hits appended in
// first-seen order, de-duplicated within the group); Literal, Special and
// GroupRef matchers are emitted as-is, per spec.md §4.4/§9 ("Cross-group
// references are not expanded").
func expandMatchers(matchers []Matcher, nodeNames []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, m := range matchers {
		switch m.Kind {
		case MatcherPattern:
			re, err := regexp.Compile(m.Value)
			if err != nil {
				return nil, convertererror.InvalidRegex(m.Value, err)
			}
			for _, name := range nodeNames {
				if re.MatchString(name) {
					add(name)
				}
			}
		case MatcherSpecial:
			add(m.Value)
		case MatcherGroupRef:
			add(m.Value)
		default:
			add(m.Value)
		}
	}
	return out, nil
}

// Line renders a ResolvedRule as the text Mihomo expects in its rules
// list.
func (r ResolvedRule) Line() string {
	if r.Type == "MATCH" {
		return fmt.Sprintf("MATCH,%s", r.Target)
	}
	if r.NoResolve {
		return fmt.Sprintf("%s,%s,%s,no-resolve", r.Type, r.Value, r.Target)
	}
	return fmt.Sprintf("%s,%s,%s", r.Type, r.Value, r.Target)
}
