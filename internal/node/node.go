// Package node defines the nine-variant proxy node sum type shared by every
// stage of the conversion pipeline, grounded on the closed enum in the
// original source's node.rs (and its Go-idiom analogue across the example
// corpus, e.g. xboard's internal/protocol builders): one interface, nine
// structs, one method per concern on each variant. No registry, no
// reflection-based dispatch — the variant set is closed by spec.
package node

import "github.com/wallace/localsub/internal/yamlmap"

// GlobalOptions are the three build-time switches the YAML composer
// conditionally merges into every node's emitted map (SPEC_FULL.md §4.5
// point 4): UDP, TCP Fast Open, and skip-cert-verify.
type GlobalOptions struct {
	UDP            bool
	TFO            bool
	SkipCertVerify bool
}

// Node is the sum type every protocol-specific struct implements.
type Node interface {
	// Name returns the display name of the node.
	Name() string
	// SetName mutates the display name in place (used by rename).
	SetName(name string)
	// Protocol is the lowercase protocol tag (vless, vmess, ss, ssr,
	// trojan, hysteria, hysteria2, tuic, wireguard).
	Protocol() string
	// Server and Port identify the reachable endpoint.
	Server() string
	Port() int
	// DedupKey returns the protocol-prefixed identity tuple used by the
	// filter stage to detect duplicate nodes (SPEC_FULL.md §4.3).
	DedupKey() string
	// ClashFields returns the node's fields as an insertion-ordered map
	// matching the key ordering the Mihomo kernel expects for this
	// protocol, with the global switches merged in at their fixed
	// position.
	ClashFields(opts GlobalOptions) *yamlmap.OrderedMap
}

// Transport carries the network-specific transport options shared by
// VLESS, VMess and Trojan (ws/grpc/h2), grounded on the repeated
// ws-opts/grpc-opts/h2-opts shapes in clash_config.rs.
type Transport struct {
	Network     string // tcp, ws, grpc, h2, http, grpc, quic, kcp...
	Path        string
	Host        string
	ServiceName string
}

// optsKey returns the nested map key this transport contributes
// ("" when the network carries no extra options worth emitting).
func (t Transport) optsKey() string {
	switch t.Network {
	case "ws":
		return "ws-opts"
	case "grpc":
		return "grpc-opts"
	case "h2":
		return "h2-opts"
	default:
		return ""
	}
}

// appendOpts appends this transport's nested options map to dst under its
// opts key, when it has one and carries any non-empty field.
func (t Transport) appendOpts(dst *yamlmap.OrderedMap) {
	key := t.optsKey()
	if key == "" {
		return
	}
	switch t.Network {
	case "ws":
		opts := yamlmap.New()
		opts.SetIf(t.Path != "", "path", t.Path)
		if t.Host != "" {
			opts.Set("headers", yamlmap.New(yamlmap.Entry{Key: "Host", Value: t.Host}))
		}
		if opts.Len() > 0 {
			dst.Set(key, opts)
		}
	case "grpc":
		opts := yamlmap.New()
		opts.SetIf(t.ServiceName != "", "grpc-service-name", t.ServiceName)
		if opts.Len() > 0 {
			dst.Set(key, opts)
		}
	case "h2":
		opts := yamlmap.New()
		opts.SetIf(t.Path != "", "path", t.Path)
		if t.Host != "" {
			opts.Set("host", []string{t.Host})
		}
		if opts.Len() > 0 {
			dst.Set(key, opts)
		}
	}
}

// RealityOpts is VLESS/Trojan's nested reality-opts mapping. PublicKey is
// required whenever Reality security is selected; ShortID is optional.
type RealityOpts struct {
	PublicKey string
	ShortID   string
}

func (r RealityOpts) empty() bool { return r.PublicKey == "" }

func (r RealityOpts) toMap() *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("public-key", r.PublicKey)
	m.SetIf(r.ShortID != "", "short-id", r.ShortID)
	return m
}
