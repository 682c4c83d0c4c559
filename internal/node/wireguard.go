package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// WireguardNode is the WireGuard protocol variant (SPEC_FULL.md §3). Unlike
// the other eight, it has no TLS/transport concept; its dedup key is
// keyed on the peer's public key instead of a shared secret.
type WireguardNode struct {
	NodeName     string
	ServerHost   string
	ServerPort   int
	PrivateKey   string
	PublicKey    string
	PresharedKey string
	IPv4         string
	IPv6         string
	MTU          int
	Reserved     []int
	DNS          []string
}

func (n *WireguardNode) Name() string        { return n.NodeName }
func (n *WireguardNode) SetName(name string) { n.NodeName = name }
func (n *WireguardNode) Protocol() string    { return "wireguard" }
func (n *WireguardNode) Server() string      { return n.ServerHost }
func (n *WireguardNode) Port() int           { return n.ServerPort }

func (n *WireguardNode) DedupKey() string {
	return fmt.Sprintf("wireguard:%s:%d:%s", n.ServerHost, n.ServerPort, n.PublicKey)
}

func (n *WireguardNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "wireguard")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.Set("private-key", n.PrivateKey)
	m.Set("public-key", n.PublicKey)
	m.SetIf(n.PresharedKey != "", "preshared-key", n.PresharedKey)
	m.SetIf(n.IPv4 != "", "ip", n.IPv4)
	m.SetIf(n.IPv6 != "", "ipv6", n.IPv6)
	m.SetIf(n.MTU != 0, "mtu", n.MTU)
	m.SetIf(len(n.Reserved) > 0, "reserved", n.Reserved)
	m.SetIf(len(n.DNS) > 0, "dns", n.DNS)
	m.SetIf(opts.UDP, "udp", true)
	return m
}
