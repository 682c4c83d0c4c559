// Package engine wires S1–S5 into the single top-level convert operation,
// grounded on the original source's engine.rs: one orchestrator owning
// stage sequencing, warning accumulation, and the ConvertResult shape.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/wallace/localsub/internal/clashyaml"
	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/filter"
	"github.com/wallace/localsub/internal/node"
	"github.com/wallace/localsub/internal/parser"
	"github.com/wallace/localsub/internal/source"
	"github.com/wallace/localsub/internal/template"
)

// defaultGroupName names the group (and the MATCH rule's target)
// substituted when no template is supplied (spec.md §2: "S4 is skipped when no template is
// supplied (a default group/rule set is substituted)").
const defaultGroupName = "PROXY"

// ConvertRequest carries every input field spec.md §6's convert_subscription
// table names.
type ConvertRequest struct {
	SubscriptionText string
	TemplateURL      string
	TemplateContent  string
	Include          string
	Exclude          string
	RenamePattern    string
	RenameReplace    string
	TimeoutSeconds   int
	EnableTUN        bool
	UserAgent        string
	EnableUDP        bool
	EnableTFO        bool
	SkipCertVerify   bool
	BaseConfigYAML   []byte
}

// ConvertResult is the orchestrator's output, matching spec.md §4.6's
// named fields exactly.
type ConvertResult struct {
	YAML             string
	NodeCount        int
	FilteredCount    int
	GroupCount       int
	RuleCount        int
	Warnings         []string
	SubscriptionInfo *source.SubscriptionInfo
}

// Engine holds the per-request-scoped resources (an HTTP fetcher) shared
// across a convert call's stages.
type Engine struct {
	fetcher *source.Fetcher
	logger  *slog.Logger
}

// New builds an Engine with the given fetch timeout and user-agent.
func New(timeoutSeconds int, userAgent string, logger *slog.Logger) *Engine {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		fetcher: source.NewFetcher(time.Duration(timeoutSeconds)*time.Second, userAgent),
		logger:  logger,
	}
}

// Convert runs S1→S5 in order for one request, accumulating warnings from
// every stage that produced any, per spec.md §4.6.
func (e *Engine) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	result := &ConvertResult{}

	fetcher := e.fetcher
	if req.TimeoutSeconds > 0 || req.UserAgent != "" {
		fetcher = source.NewFetcher(time.Duration(firstPositive(req.TimeoutSeconds, 30))*time.Second, req.UserAgent)
	}

	src, err := source.Resolve(ctx, req.SubscriptionText, fetcher)
	if err != nil {
		e.logError(err)
		return nil, err
	}
	result.Warnings = append(result.Warnings, src.Warnings...)
	result.SubscriptionInfo = src.Info
	e.logWarnings(src.Warnings)

	parsed, err := parser.ParseAll(src.Body)
	if err != nil {
		e.logError(err)
		return nil, err
	}
	result.Warnings = append(result.Warnings, parsed.Warnings...)
	e.logWarnings(parsed.Warnings)
	result.NodeCount = len(parsed.Nodes)

	filtered, filterWarnings, err := filter.Apply(parsed.Nodes, filter.Options{
		Include:       req.Include,
		Exclude:       req.Exclude,
		RenamePattern: req.RenamePattern,
		RenameReplace: req.RenameReplace,
	})
	if err != nil {
		e.logError(err)
		return nil, err
	}
	result.Warnings = append(result.Warnings, filterWarnings...)
	e.logWarnings(filterWarnings)
	result.FilteredCount = len(filtered.Nodes)

	nodeNames := make([]string, len(filtered.Nodes))
	for i, n := range filtered.Nodes {
		nodeNames[i] = n.Name()
	}

	groups, providers, rules := e.resolveTemplate(ctx, fetcher, req, nodeNames, result)
	result.GroupCount = len(groups)
	result.RuleCount = len(rules)

	globalOpts := node.GlobalOptions{
		UDP:            req.EnableUDP,
		TFO:            req.EnableTFO,
		SkipCertVerify: req.SkipCertVerify,
	}
	yamlOut, err := clashyaml.Build(filtered.Nodes, groups, providers, rules, clashyaml.BuildOptions{
		EnableTUN:      req.EnableTUN,
		BaseConfigYAML: req.BaseConfigYAML,
		Global:         globalOpts,
	})
	if err != nil {
		e.logError(err)
		return nil, err
	}
	result.YAML = yamlOut
	return result, nil
}

// resolveTemplate runs S4, or substitutes the default group/rule set when
// no template is supplied, or when fetching/parsing a supplied template
// fails — both recorded as warnings rather than fatal errors (spec.md
// §7: "Template fetch or parse error → warning; fallback to default
// group/rule set").
func (e *Engine) resolveTemplate(ctx context.Context, fetcher *source.Fetcher, req ConvertRequest, nodeNames []string, result *ConvertResult) ([]template.ClashGroup, []template.RuleProvider, []template.ResolvedRule) {
	content := req.TemplateContent
	if content == "" && req.TemplateURL != "" {
		fetched, err := fetcher.FetchOne(ctx, req.TemplateURL)
		if err != nil {
			warning := "template fetch failed, falling back to default group/rule set: " + err.Error()
			result.Warnings = append(result.Warnings, warning)
			e.logger.Warn(warning, slog.String("url", req.TemplateURL))
			return defaultGroupsAndRules(nodeNames)
		}
		content = fetched
	}

	if content == "" {
		return defaultGroupsAndRules(nodeNames)
	}

	parsed, err := template.Parse(content)
	if err != nil {
		warning := "template parse failed, falling back to default group/rule set: " + err.Error()
		result.Warnings = append(result.Warnings, warning)
		e.logger.Warn(warning)
		return defaultGroupsAndRules(nodeNames)
	}

	groups, providers, rules, err := template.Resolve(parsed, nodeNames)
	if err != nil {
		warning := "template resolve failed, falling back to default group/rule set: " + err.Error()
		result.Warnings = append(result.Warnings, warning)
		e.logger.Warn(warning)
		return defaultGroupsAndRules(nodeNames)
	}
	return groups, providers, rules
}

// defaultGroupsAndRules is the substitute pipeline when S4 is skipped: one
// select group listing every node plus DIRECT, matched unconditionally.
func defaultGroupsAndRules(nodeNames []string) ([]template.ClashGroup, []template.RuleProvider, []template.ResolvedRule) {
	proxies := append([]string{}, nodeNames...)
	proxies = append(proxies, "DIRECT")
	groups := []template.ClashGroup{
		{Name: defaultGroupName, Type: "select", Proxies: proxies},
	}
	rules := []template.ResolvedRule{
		{Type: "MATCH", Target: defaultGroupName},
	}
	return groups, nil, rules
}

func (e *Engine) logWarnings(warnings []string) {
	for _, w := range warnings {
		e.logger.Warn(w)
	}
}

func (e *Engine) logError(err error) {
	if ce, ok := err.(*convertererror.ConvertError); ok {
		e.logger.Error(ce.Error(), slog.String("kind", string(ce.Kind)))
		return
	}
	e.logger.Error(err.Error())
}

func firstPositive(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}
