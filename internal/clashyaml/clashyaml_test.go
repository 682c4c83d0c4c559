package clashyaml

import (
	"strings"
	"testing"

	"github.com/wallace/localsub/internal/node"
	"github.com/wallace/localsub/internal/template"
)

func TestFormatProxy_VlessRealityKeyOrder(t *testing.T) {
	n := &node.VlessNode{
		NodeName:          "home",
		ServerHost:        "1.2.3.4",
		ServerPort:        443,
		UUID:              "8f1e0000-0000-0000-0000-000000000000",
		Network:           "tcp",
		TLS:               true,
		SNI:               "a.com",
		Reality:           node.RealityOpts{PublicKey: "KEY", ShortID: "01"},
		ClientFingerprint: "chrome",
	}
	out := FormatProxy(n, node.GlobalOptions{UDP: true})

	want := strings.Join([]string{
		`  - name: home`,
		`    type: vless`,
		`    server: 1.2.3.4`,
		`    port: 443`,
		`    uuid: 8f1e0000-0000-0000-0000-000000000000`,
		`    udp: true`,
		`    tls: true`,
		`    network: tcp`,
		`    servername: a.com`,
		`    reality-opts:`,
		`      public-key: KEY`,
		`      short-id: "01"`,
		`    client-fingerprint: chrome`,
		``,
	}, "\n")
	if out != want {
		t.Fatalf("field order/content mismatch:\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatProxy_ShadowsocksObfsLocalPlugin(t *testing.T) {
	n := &node.ShadowsocksNode{
		NodeName:   "ss-home",
		ServerHost: "5.6.7.8",
		ServerPort: 8388,
		Cipher:     "aes-256-gcm",
		Password:   "secret",
		Obfs: node.ObfsOpts{
			Plugin: "obfs",
			Mode:   "http",
			Host:   "example.com",
		},
	}
	out := FormatProxy(n, node.GlobalOptions{})

	if !strings.Contains(out, "    plugin: obfs\n") {
		t.Fatalf("expected plugin key, got:\n%s", out)
	}
	if !strings.Contains(out, "    plugin-opts:\n") {
		t.Fatalf("expected plugin-opts block, got:\n%s", out)
	}
	if !strings.Contains(out, "      mode: http\n") {
		t.Fatalf("expected nested mode under plugin-opts, got:\n%s", out)
	}
	if !strings.Contains(out, "      host: example.com\n") {
		t.Fatalf("expected nested host under plugin-opts, got:\n%s", out)
	}
	if strings.Contains(out, "udp:") {
		t.Fatalf("udp should be absent when GlobalOptions.UDP is false, got:\n%s", out)
	}
}

func TestFormatProxy_WsOptsWithHeaders(t *testing.T) {
	n := &node.VmessNode{
		NodeName:   "vm",
		ServerHost: "9.9.9.9",
		ServerPort: 443,
		UUID:       "8f1e0000-0000-0000-0000-000000000001",
		Cipher:     "auto",
		Network:    "ws",
		Transport:  node.Transport{Network: "ws", Path: "/ray", Host: "cdn.example.com"},
	}
	out := FormatProxy(n, node.GlobalOptions{})

	if !strings.Contains(out, "    transport-opts:\n") && !strings.Contains(out, "    ws-opts:\n") {
		t.Fatalf("expected a ws-opts block, got:\n%s", out)
	}
	if !strings.Contains(out, "      path: /ray\n") {
		t.Fatalf("expected nested ws path, got:\n%s", out)
	}
	if !strings.Contains(out, "        Host: cdn.example.com\n") {
		t.Fatalf("expected doubly-nested header under ws-opts.headers, got:\n%s", out)
	}
}

func TestQuoteConservative(t *testing.T) {
	cases := map[string]string{
		"home":          "home",
		"":              `""`,
		"true":          `"true"`,
		"a: b":          `"a: b"`,
		" leading":      `" leading"`,
		"trailing ":     `"trailing "`,
		`"quoted"`:      `"\"quoted\""`,
		"plain-dashed":  "plain-dashed",
		"has#hash":      `"has#hash"`,
	}
	for in, want := range cases {
		if got := QuoteConservative(in); got != want {
			t.Errorf("QuoteConservative(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuoteStrict(t *testing.T) {
	cases := map[string]string{
		"example.com":  "example.com",
		"01":           `"01"`,
		"0":            "0",
		"100":          "100",
		"-leading":     `"-leading"`,
		"a#b":          `"a#b"`,
		"héllo":        `"héllo"`,
		"plain":        "plain",
	}
	for in, want := range cases {
		if got := QuoteStrict(in); got != want {
			t.Errorf("QuoteStrict(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatGroup_UrlTestWithInterval(t *testing.T) {
	g := template.ClashGroup{
		Name:     "Auto",
		Type:     "url-test",
		TestURL:  "http://www.gstatic.com/generate_204",
		Interval: 300,
		Proxies:  []string{"home", "ss-home"},
	}
	out := FormatGroup(g)
	want := strings.Join([]string{
		"  - name: Auto",
		"    type: url-test",
		"    url: http://www.gstatic.com/generate_204",
		"    interval: 300",
		"    proxies:",
		"      - home",
		"      - ss-home",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestBuild_RoundTripsAndValidates(t *testing.T) {
	nodes := []node.Node{
		&node.VlessNode{
			NodeName:   "home",
			ServerHost: "1.2.3.4",
			ServerPort: 443,
			UUID:       "8f1e0000-0000-0000-0000-000000000000",
			TLS:        true,
		},
	}
	groups := []template.ClashGroup{
		{Name: "select", Type: "select", Proxies: []string{"home"}},
	}
	providers := []template.RuleProvider{
		{Name: "cidr", URL: "https://example.com/cidr.list", Behavior: template.BehaviorIPCIDR, Path: "./ruleset/cidr.list"},
	}
	rules := []template.ResolvedRule{
		{Type: "RULE-SET", Value: "cidr", Target: "select", NoResolve: true},
		{Type: "MATCH", Target: "select"},
	}

	out, err := Build(nodes, groups, providers, rules, BuildOptions{Global: node.GlobalOptions{UDP: true}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(out, "proxies:\n") || !strings.Contains(out, "proxy-groups:\n") {
		t.Fatalf("missing expected top-level sections:\n%s", out)
	}
	if !strings.Contains(out, "rule-providers:\n") {
		t.Fatalf("missing rule-providers section:\n%s", out)
	}
	if !strings.Contains(out, "RULE-SET,cidr,select,no-resolve") {
		t.Fatalf("missing expected rule line:\n%s", out)
	}
	if !strings.Contains(out, "MATCH,select") {
		t.Fatalf("missing expected match line:\n%s", out)
	}
}

func TestBuild_TUNBlockConditional(t *testing.T) {
	withoutTUN, err := Build(nil, nil, nil, nil, BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(withoutTUN, "tun:") {
		t.Fatalf("expected no tun block by default, got:\n%s", withoutTUN)
	}

	withTUN, err := Build(nil, nil, nil, nil, BuildOptions{EnableTUN: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(withTUN, "tun:\n") {
		t.Fatalf("expected tun block when EnableTUN is set, got:\n%s", withTUN)
	}
}

func TestMergeAmbientBase_OverridesAndForbidsPipelineKeys(t *testing.T) {
	base := []byte("mode: global\nproxies:\n  - name: injected\n")
	out, err := MergeAmbientBase(DefaultAmbientConfig(false), base)
	if err != nil {
		t.Fatalf("MergeAmbientBase: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "mode: global\n") {
		t.Fatalf("expected base config to override mode, got:\n%s", s)
	}
	if strings.Contains(s, "injected") {
		t.Fatalf("base config's proxies key must never leak into ambient settings, got:\n%s", s)
	}
}

func TestMergeAmbientBase_EmptyBaseReturnsDefaults(t *testing.T) {
	out, err := MergeAmbientBase(DefaultAmbientConfig(false), nil)
	if err != nil {
		t.Fatalf("MergeAmbientBase: %v", err)
	}
	if !strings.Contains(string(out), "mixed-port: 7890\n") {
		t.Fatalf("expected default mixed-port, got:\n%s", out)
	}
}
