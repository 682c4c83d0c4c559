package parser

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallace/localsub/internal/node"
)

func TestParseVless_RealitySynthesizesFingerprint(t *testing.T) {
	n, err := ParseVless("vless://8f1e0000-0000-0000-0000-000000000000@1.2.3.4:443?security=reality&sni=a.com&pbk=KEY&sid=01&type=tcp#home")
	require.NoError(t, err)
	assert.Equal(t, "home", n.Name())
	assert.True(t, n.TLS)
	assert.Equal(t, "chrome", n.ClientFingerprint)
	assert.Equal(t, "KEY", n.Reality.PublicKey)
	assert.Equal(t, "01", n.Reality.ShortID)
}

func TestParseVless_InvalidUUIDRejected(t *testing.T) {
	_, err := ParseVless("vless://not-a-uuid@1.2.3.4:443#x")
	assert.Error(t, err)
}

func TestParseVless_RealityWithoutPublicKeyRejected(t *testing.T) {
	_, err := ParseVless("vless://8f1e0000-0000-0000-0000-000000000000@1.2.3.4:443?security=reality&sni=a.com&sid=01&type=tcp#home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public-key")
}

func TestParseVmess_DecodesBase64JSON(t *testing.T) {
	encoded := "eyJhZGQiOiIxLjIuMy40IiwicG9ydCI6IjQ0MyIsImlkIjoiOGYxZTAwMDAtMDAwMC0wMDAwLTAwMDAtMDAwMDAwMDAwMDAwIiwiYWlkIjoiMCIsInBzIjoibXlub2RlIiwibmV0IjoidGNwIiwidGxzIjoidGxzIn0="
	n, err := ParseVmess("vmess://" + encoded)
	require.NoError(t, err)
	assert.Equal(t, "mynode", n.Name())
	assert.Equal(t, "1.2.3.4", n.Server())
	assert.Equal(t, 443, n.Port())
	assert.True(t, n.TLS)
}

func TestParseShadowsocks_ObfsLocalPlugin(t *testing.T) {
	// BASE64("aes-256-gcm:pw") = YWVzLTI1Ni1nY206cHc=
	n, err := ParseShadowsocks("ss://YWVzLTI1Ni1nY206cHc=@1.1.1.1:8388/?plugin=obfs-local%3Bobfs%3Dhttp%3Bobfs-host%3Dcf.com#x")
	require.NoError(t, err)
	assert.Equal(t, "obfs", n.Obfs.Plugin)
	assert.Equal(t, "http", n.Obfs.Mode)
	assert.Equal(t, "cf.com", n.Obfs.Host)
}

func TestParseShadowsocks_RejectsUnknownCipher(t *testing.T) {
	// BASE64("not-a-cipher:pw")
	_, err := ParseShadowsocks("ss://bm90LWEtY2lwaGVyOnB3@1.1.1.1:8388#x")
	assert.Error(t, err)
}

func TestParseShadowsocksR_MergesExternalOverInternal(t *testing.T) {
	// server:port:protocol:method:obfs:BASE64(password)/?params; the same
	// "remarks" key appears inside and outside the outer base64.
	inner := "1.2.3.4:8080:origin:aes-256-cfb:plain:cHc=/?remarks=" + b64Encode("internal-name") // password "pw"
	raw := "ssr://" + b64Encode(inner) + "/?remarks=" + b64Encode("external-name") + "&obfsparam=" + b64Encode("intern")
	n, err := ParseShadowsocksR(raw)
	require.NoError(t, err)
	assert.Equal(t, "external-name", n.Name())
	assert.Equal(t, "1.2.3.4", n.Server())
	assert.Equal(t, 8080, n.Port())
	assert.Equal(t, "pw", n.Password)
}

func TestParseTuic_DisableSNIAndReduceRTT(t *testing.T) {
	n, err := ParseTuic("tuic://8f1e0000-0000-0000-0000-000000000000:pw@h:443?disable_sni=1&reduce_rtt=true#x")
	require.NoError(t, err)
	assert.True(t, n.DisableSNI)
	assert.True(t, n.ReduceRTT)
}

func TestParseHysteria_CertPinAndObfsParam(t *testing.T) {
	n, err := ParseHysteria("hysteria://h:443?auth=pw&obfs=xplus&obfsParam=secret&pinSHA256=AA:BB:CC#x")
	require.NoError(t, err)
	assert.Equal(t, "secret", n.ObfsParam)
	assert.Equal(t, "AA:BB:CC", n.CertPin)
}

func TestParseHysteria2_CertPin(t *testing.T) {
	n, err := ParseHysteria2("hysteria2://pw@h:443?pinSHA256=AA:BB:CC#x")
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC", n.CertPin)
}

func TestParseAll_MalformedLineTolerated(t *testing.T) {
	body := "vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443#a\nnotaurl\nvmess://not-valid-base64"
	result, err := ParseAll(body)
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, "a", result.Nodes[0].Name())
	assert.Len(t, result.Warnings, 2)
}

func TestParseAll_FailsWhenZeroNodes(t *testing.T) {
	_, err := ParseAll("notaurl\nalso not a url")
	assert.Error(t, err)
}

func TestParseAll_DispatchesEveryScheme(t *testing.T) {
	lines := []string{
		"vless://8f1e0000-0000-0000-0000-000000000000@h:1#a",
		"trojan://pw@h:2#b",
		"tuic://8f1e0000-0000-0000-0000-000000000000:pw@h:3#c",
		"hysteria2://pw@h:4#d",
		"hy2://pw@h:5#e",
	}
	for _, l := range lines {
		n, err := parseLine(l)
		require.NoError(t, err, l)
		require.NotEmpty(t, n.Protocol())
	}
}

func TestParseAll_UnsupportedProtocolWarns(t *testing.T) {
	body := "vless://8f1e0000-0000-0000-0000-000000000000@h:1#a\nftp://nope"
	result, err := ParseAll(body)
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	require.Len(t, result.Warnings, 1)
}

var _ = node.Node(nil)

func b64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
