package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallace/localsub/internal/yamlmap"
)

func TestDedupKey_DistinguishesProtocolAndIdentity(t *testing.T) {
	a := &VlessNode{NodeName: "a", ServerHost: "example.com", ServerPort: 443, UUID: "u1"}
	b := &VlessNode{NodeName: "b", ServerHost: "example.com", ServerPort: 443, UUID: "u1"}
	c := &VlessNode{NodeName: "c", ServerHost: "example.com", ServerPort: 443, UUID: "u2"}
	d := &VmessNode{NodeName: "d", ServerHost: "example.com", ServerPort: 443, UUID: "u1"}

	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.NotEqual(t, a.DedupKey(), c.DedupKey())
	assert.NotEqual(t, a.DedupKey(), d.DedupKey())
}

func TestVlessClashFields_KeyOrderAndOmission(t *testing.T) {
	n := &VlessNode{
		NodeName:   "home",
		ServerHost: "1.2.3.4",
		ServerPort: 443,
		UUID:       "11111111-1111-1111-1111-111111111111",
		TLS:        true,
		Network:    "ws",
		Transport:  Transport{Network: "ws", Path: "/ws", Host: "cdn.example.com"},
	}
	m := n.ClashFields(GlobalOptions{})
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	require.Equal(t, []string{"name", "type", "server", "port", "uuid", "tls", "network", "ws-opts"}, keys)
}

func TestVlessClashFields_GlobalSwitchesInsertedAfterUUID(t *testing.T) {
	n := &VlessNode{NodeName: "n", ServerHost: "h", ServerPort: 1, UUID: "u"}
	m := n.ClashFields(GlobalOptions{UDP: true, TFO: true})
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"name", "type", "server", "port", "uuid", "udp", "tfo", "tls"}, keys)
}

func TestRealityOptsEmpty(t *testing.T) {
	assert.True(t, RealityOpts{}.empty())
	assert.False(t, RealityOpts{PublicKey: "pk"}.empty())
}

func TestNormalizeCipher(t *testing.T) {
	assert.Equal(t, "aes-256-gcm", NormalizeCipher("AES_256_GCM"))
	assert.Equal(t, "chacha20-ietf-poly1305", NormalizeCipher(" chacha20-ietf-poly1305 "))
}

func TestShadowsocksCipherWhitelists_AreDisjointConcerns(t *testing.T) {
	assert.True(t, ShadowsocksCiphers["aes-256-gcm"])
	assert.False(t, ShadowsocksRCiphers["aes-256-gcm"])
	assert.True(t, ShadowsocksRCiphers["rc4-md5"])
}

func TestTuicClashFields_DisableSNIAndReduceRTT(t *testing.T) {
	n := &TuicNode{NodeName: "n", ServerHost: "h", ServerPort: 1, UUID: "u", DisableSNI: true, ReduceRTT: true}
	m := n.ClashFields(GlobalOptions{})
	entries := entryMap(m)
	assert.Equal(t, true, entries["disable-sni"])
	assert.Equal(t, true, entries["reduce-rtt"])
}

func TestHysteriaClashFields_CertPinAndObfsParam(t *testing.T) {
	n := &HysteriaNode{NodeName: "n", ServerHost: "h", ServerPort: 1, Obfs: "xplus", ObfsParam: "secret", CertPin: "AA:BB"}
	m := n.ClashFields(GlobalOptions{})
	entries := entryMap(m)
	assert.Equal(t, "secret", entries["obfs-param"])
	assert.Equal(t, "AA:BB", entries["cert-pin"])
}

func TestHysteria2ClashFields_CertPin(t *testing.T) {
	n := &Hysteria2Node{NodeName: "n", ServerHost: "h", ServerPort: 1, Password: "pw", CertPin: "AA:BB"}
	m := n.ClashFields(GlobalOptions{})
	entries := entryMap(m)
	assert.Equal(t, "AA:BB", entries["cert-pin"])
}

func TestWireguardDedupKey_KeyedOnPublicKey(t *testing.T) {
	a := &WireguardNode{ServerHost: "h", ServerPort: 1, PublicKey: "pub1"}
	b := &WireguardNode{ServerHost: "h", ServerPort: 1, PublicKey: "pub2"}
	assert.NotEqual(t, a.DedupKey(), b.DedupKey())
}

func entryMap(m *yamlmap.OrderedMap) map[string]any {
	out := make(map[string]any, m.Len())
	for _, e := range m.Entries() {
		out[e.Key] = e.Value
	}
	return out
}

var _ Node = (*VlessNode)(nil)
var _ Node = (*VmessNode)(nil)
var _ Node = (*ShadowsocksNode)(nil)
var _ Node = (*ShadowsocksRNode)(nil)
var _ Node = (*TrojanNode)(nil)
var _ Node = (*HysteriaNode)(nil)
var _ Node = (*Hysteria2Node)(nil)
var _ Node = (*TuicNode)(nil)
var _ Node = (*WireguardNode)(nil)
