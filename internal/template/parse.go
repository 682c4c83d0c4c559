package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wallace/localsub/internal/convertererror"
)

const (
	groupLinePrefix   = "custom_proxy_group="
	rulesetLinePrefix = "ruleset="
)

var intervalTupleRe = regexp.MustCompile(`^\d+(,\d+)?(,\d+)?$`)

var intervalGroupTypes = map[string]bool{
	"url-test":     true,
	"fallback":     true,
	"load-balance": true,
}

// Parse interprets a rule-template document: backtick-delimited
// `custom_proxy_group=` lines and `ruleset=` lines, per spec.md §4.4.
func Parse(content string) (*Parsed, error) {
	parsed := &Parsed{}
	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		switch {
		case strings.HasPrefix(line, groupLinePrefix):
			group, err := parseGroupLine(strings.TrimPrefix(line, groupLinePrefix))
			if err != nil {
				return nil, err
			}
			parsed.Groups = append(parsed.Groups, group)
		case strings.HasPrefix(line, rulesetLinePrefix):
			if err := parseRulesetLine(strings.TrimPrefix(line, rulesetLinePrefix), parsed); err != nil {
				return nil, err
			}
		}
	}
	return parsed, nil
}

// parseGroupLine parses `Name`Type`item1`item2`…[`TestURL][`Interval[,Timeout][,Tolerance]]`.
func parseGroupLine(body string) (ProxyGroup, error) {
	fields := strings.Split(body, "`")
	if len(fields) < 2 {
		return ProxyGroup{}, convertererror.TemplateParse("malformed proxy-group line: " + body)
	}
	group := ProxyGroup{Name: fields[0], Type: fields[1]}
	items := append([]string{}, fields[2:]...)

	if intervalGroupTypes[group.Type] && len(items) > 0 {
		last := items[len(items)-1]
		if intervalTupleRe.MatchString(last) {
			nums := strings.Split(last, ",")
			group.Interval = atoiOrZero(nums[0])
			if len(nums) > 1 {
				group.Timeout = atoiOrZero(nums[1])
			}
			if len(nums) > 2 {
				group.Tolerance = atoiOrZero(nums[2])
			}
			items = items[:len(items)-1]
		}
		if len(items) > 0 {
			newLast := items[len(items)-1]
			if strings.HasPrefix(newLast, "http://") || strings.HasPrefix(newLast, "https://") {
				group.TestURL = newLast
				items = items[:len(items)-1]
			}
		}
	}

	for _, item := range items {
		group.Matchers = append(group.Matchers, classifyMatcher(item))
	}
	return group, nil
}

// classifyMatcher implements spec.md §4.4's matcher classification.
func classifyMatcher(item string) Matcher {
	if item == "DIRECT" || item == "REJECT" {
		return Matcher{Kind: MatcherSpecial, Value: item}
	}
	if strings.HasPrefix(item, "[]") {
		rest := strings.TrimPrefix(item, "[]")
		if rest == "DIRECT" || rest == "REJECT" {
			return Matcher{Kind: MatcherSpecial, Value: rest}
		}
		return Matcher{Kind: MatcherGroupRef, Value: rest}
	}
	if item == ".*" || strings.ContainsAny(item, "*^$([|+?`") {
		return Matcher{Kind: MatcherPattern, Value: item}
	}
	return Matcher{Kind: MatcherLiteral, Value: item}
}

// parseRulesetLine parses `TargetGroup,<url-or-inline>`.
func parseRulesetLine(body string, parsed *Parsed) error {
	target, value, ok := strings.Cut(body, ",")
	if !ok {
		return convertererror.TemplateParse("malformed ruleset line: " + body)
	}
	target = strings.TrimSpace(target)
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, "[]") {
		rule, err := parseRuleBody(strings.TrimPrefix(value, "[]"), target)
		if err != nil {
			return err
		}
		parsed.InlineRules = append(parsed.InlineRules, rule)
		return nil
	}

	behavior := BehaviorClassical
	url := value
	switch {
	case strings.HasPrefix(value, "clash-domain:"):
		behavior = BehaviorDomain
		url = strings.TrimPrefix(value, "clash-domain:")
	case strings.HasPrefix(value, "clash-ipcidr:"):
		behavior = BehaviorIPCIDR
		url = strings.TrimPrefix(value, "clash-ipcidr:")
	case strings.HasPrefix(value, "clash-classic:"):
		behavior = BehaviorClassical
		url = strings.TrimPrefix(value, "clash-classic:")
	}
	parsed.RulesetRefs = append(parsed.RulesetRefs, RulesetRef{
		TargetGroup: target,
		URL:         url,
		Behavior:    behavior,
	})
	return nil
}

// parseRuleBody parses a comma-separated rule body (without its leading
// `[]`), per spec.md §4.4's "Rule line" rules.
func parseRuleBody(body, target string) (Rule, error) {
	noResolve := strings.Contains(strings.ToLower(body), "no-resolve")
	fields := strings.Split(body, ",")
	if len(fields) == 0 {
		return Rule{}, convertererror.TemplateParse("empty rule body")
	}
	ruleType := strings.ToUpper(strings.TrimSpace(fields[0]))
	if ruleType == "MATCH" || ruleType == "FINAL" {
		return Rule{Type: "MATCH", Target: target}, nil
	}
	if len(fields) < 2 {
		return Rule{}, convertererror.TemplateParse("malformed rule body: " + body)
	}
	value := strings.TrimSpace(fields[1])
	return Rule{Type: ruleType, Value: value, Target: target, NoResolve: noResolve}, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
