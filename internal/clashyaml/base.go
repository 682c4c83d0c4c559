package clashyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/wallace/localsub/internal/convertererror"
)

// forbiddenBaseKeys are never taken from a --base-config file: the
// engine's own computed proxies/groups/rules always win, keeping the
// base config an ambient-settings-only input (SPEC_FULL.md §9, resolved
// open question).
var forbiddenBaseKeys = map[string]bool{
	"proxies":        true,
	"proxy-groups":   true,
	"rules":          true,
	"rule-providers": true,
}

// MergeAmbientBase deep-merges a base-config YAML document's top-level
// keys over defaults, one level deep: any top-level key present in base
// overrides the default's same key in place; unrecognized top-level keys
// from base are appended. Returns the merged mapping as YAML bytes ready
// to splice into the composed document.
func MergeAmbientBase(defaults AmbientConfig, baseConfigYAML []byte) ([]byte, error) {
	defaultBytes, err := yaml.Marshal(defaults)
	if err != nil {
		return nil, convertererror.YAMLSerialize(err)
	}
	var defaultNode yaml.Node
	if err := yaml.Unmarshal(defaultBytes, &defaultNode); err != nil {
		return nil, convertererror.YAMLSerialize(err)
	}

	if len(baseConfigYAML) == 0 {
		return defaultBytes, nil
	}

	var baseNode yaml.Node
	if err := yaml.Unmarshal(baseConfigYAML, &baseNode); err != nil {
		return nil, convertererror.TemplateParse("invalid base config yaml: " + err.Error())
	}

	merged := mergeTopLevel(documentMapping(&defaultNode), documentMapping(&baseNode))
	out, err := yaml.Marshal(merged)
	if err != nil {
		return nil, convertererror.YAMLSerialize(err)
	}
	return out, nil
}

func documentMapping(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

// mergeTopLevel overrides/appends key nodes from base onto defaults,
// skipping keys the engine must always compute itself.
func mergeTopLevel(defaults, base *yaml.Node) *yaml.Node {
	if base == nil || base.Kind != yaml.MappingNode {
		return defaults
	}
	for i := 0; i+1 < len(base.Content); i += 2 {
		key := base.Content[i].Value
		if forbiddenBaseKeys[key] {
			continue
		}
		val := base.Content[i+1]
		replaced := false
		for j := 0; j+1 < len(defaults.Content); j += 2 {
			if defaults.Content[j].Value == key {
				defaults.Content[j+1] = val
				replaced = true
				break
			}
		}
		if !replaced {
			defaults.Content = append(defaults.Content, base.Content[i], val)
		}
	}
	return defaults
}
