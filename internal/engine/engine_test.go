package engine

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
)

func newTestEngine() *Engine {
	return New(5, "", nil)
}

func TestConvert_SingleVlessLink(t *testing.T) {
	e := newTestEngine()
	req := ConvertRequest{
		SubscriptionText: "vless://8f1e0000-0000-0000-0000-000000000000@1.2.3.4:443?security=reality&sni=a.com&pbk=KEY&sid=01&fp=chrome&type=tcp#home",
		EnableUDP:        true,
	}
	res, err := e.Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.NodeCount != 1 || res.FilteredCount != 1 {
		t.Fatalf("expected exactly one proxy, got node_count=%d filtered_count=%d", res.NodeCount, res.FilteredCount)
	}
	want := strings.Join([]string{
		"name: home",
		"type: vless",
		"server: 1.2.3.4",
		"port: 443",
		"uuid: 8f1e0000-0000-0000-0000-000000000000",
		"udp: true",
		"tls: true",
		"network: tcp",
		"servername: a.com",
		"reality-opts:",
		"public-key: KEY",
		`short-id: "01"`,
		"client-fingerprint: chrome",
	}, "\n")
	var gotLines []string
	for _, line := range strings.Split(res.YAML, "\n") {
		if strings.Contains(line, "name: home") ||
			strings.Contains(line, "type: vless") ||
			strings.Contains(line, "server: 1.2.3.4") ||
			strings.Contains(line, "port: 443") ||
			strings.Contains(line, "uuid: 8f1e") ||
			strings.Contains(line, "udp: true") ||
			strings.Contains(line, "tls: true") ||
			strings.Contains(line, "network: tcp") ||
			strings.Contains(line, "servername: a.com") ||
			strings.Contains(line, "reality-opts:") ||
			strings.Contains(line, "public-key: KEY") ||
			strings.Contains(line, `short-id: "01"`) ||
			strings.Contains(line, "client-fingerprint: chrome") {
			gotLines = append(gotLines, strings.TrimSpace(line))
		}
	}
	got := strings.Join(gotLines, "\n")
	if got != want {
		t.Fatalf("field order mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConvert_Base64WrappedBody(t *testing.T) {
	e := newTestEngine()
	raw := "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#a\ntrojan://pw@2.2.2.2:443#b"
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))

	res, err := e.Convert(context.Background(), ConvertRequest{SubscriptionText: encoded})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.NodeCount != 2 {
		t.Fatalf("expected two proxies, got %d", res.NodeCount)
	}
	idxA := strings.Index(res.YAML, "name: a")
	idxB := strings.Index(res.YAML, "name: b")
	if idxA < 0 || idxB < 0 || idxA > idxB {
		t.Fatalf("expected proxies a then b in order, got:\n%s", res.YAML)
	}
}

func TestConvert_SSObfsLocalPlugin(t *testing.T) {
	e := newTestEngine()
	cred := base64.StdEncoding.EncodeToString([]byte("aes-256-gcm:pw"))
	link := "ss://" + cred + "@1.1.1.1:8388/?plugin=obfs-local%3Bobfs%3Dhttp%3Bobfs-host%3Dcf.com#x"

	res, err := e.Convert(context.Background(), ConvertRequest{SubscriptionText: link})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.YAML, "plugin: obfs\n") {
		t.Fatalf("expected plugin: obfs, got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "mode: http\n") || !strings.Contains(res.YAML, "host: cf.com\n") {
		t.Fatalf("expected plugin-opts mode/host, got:\n%s", res.YAML)
	}
}

func TestConvert_Dedup(t *testing.T) {
	e := newTestEngine()
	input := "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#a\n" +
		"vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#b"

	res, err := e.Convert(context.Background(), ConvertRequest{SubscriptionText: input})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.FilteredCount != 1 {
		t.Fatalf("expected one node after dedup, got %d", res.FilteredCount)
	}
	if !strings.Contains(res.YAML, "name: a") || strings.Contains(res.YAML, "name: b") {
		t.Fatalf("expected only the first-seen name 'a' to survive, got:\n%s", res.YAML)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Removed 1 duplicate nodes") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-removal warning, got %v", res.Warnings)
	}
}

func TestConvert_TemplateWithRuleset(t *testing.T) {
	e := newTestEngine()
	tmpl := "custom_proxy_group=🚀`select`.*\n" +
		"ruleset=🚀,clash-ipcidr:https://example.com/cidr.list\n"
	req := ConvertRequest{
		SubscriptionText: "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#a",
		TemplateContent:  tmpl,
	}
	res, err := e.Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.GroupCount != 1 {
		t.Fatalf("expected one proxy-group, got %d", res.GroupCount)
	}
	if !strings.Contains(res.YAML, "name: 🚀\n") {
		t.Fatalf("expected the 🚀 group, got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "cidr:\n") {
		t.Fatalf("expected a rule-providers entry named cidr, got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "behavior: ipcidr\n") {
		t.Fatalf("expected ipcidr behavior, got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "format: text\n") {
		t.Fatalf("expected text format (inferred from .list), got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "./ruleset/cidr.txt") {
		t.Fatalf("expected derived path ./ruleset/cidr.txt, got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "RULE-SET,cidr,🚀,no-resolve") {
		t.Fatalf("expected the RULE-SET rule line, got:\n%s", res.YAML)
	}
}

func TestConvert_MalformedLineTolerated(t *testing.T) {
	e := newTestEngine()
	input := "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#a\nnotaurl\nvmess://not-valid-base64!!!"

	res, err := e.Convert(context.Background(), ConvertRequest{SubscriptionText: input})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.NodeCount != 1 {
		t.Fatalf("expected exactly one parsed node, got %d", res.NodeCount)
	}
	if len(res.Warnings) < 2 {
		t.Fatalf("expected at least two warnings for the malformed lines, got %v", res.Warnings)
	}
}

func TestConvert_NoTemplateSubstitutesDefaultGroup(t *testing.T) {
	e := newTestEngine()
	res, err := e.Convert(context.Background(), ConvertRequest{
		SubscriptionText: "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#a",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.GroupCount != 1 || res.RuleCount != 1 {
		t.Fatalf("expected the default group/rule substitution, got groups=%d rules=%d", res.GroupCount, res.RuleCount)
	}
	if !strings.Contains(res.YAML, "name: "+defaultGroupName+"\n") {
		t.Fatalf("expected the default group name in output, got:\n%s", res.YAML)
	}
	if !strings.Contains(res.YAML, "MATCH,"+defaultGroupName) {
		t.Fatalf("expected a MATCH rule targeting the default group, got:\n%s", res.YAML)
	}
}

func TestConvert_TemplateFetchFailureFallsBackToDefault(t *testing.T) {
	e := newTestEngine()
	res, err := e.Convert(context.Background(), ConvertRequest{
		SubscriptionText: "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#a",
		TemplateURL:      "http://127.0.0.1:1/unreachable-template",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.GroupCount != 1 {
		t.Fatalf("expected fallback to the default group, got %d groups", res.GroupCount)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "template fetch failed") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a template-fetch-failed warning, got %v", res.Warnings)
	}
}

func TestPresets_ReturnsStaticTable(t *testing.T) {
	presets := Presets()
	if len(presets) == 0 {
		t.Fatal("expected a non-empty preset table")
	}
	for _, p := range presets {
		if p.Name == "" || p.URL == "" {
			t.Fatalf("preset missing name/url: %+v", p)
		}
	}
}
