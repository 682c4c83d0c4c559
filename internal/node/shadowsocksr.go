package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// ShadowsocksRNode is the ShadowsocksR protocol variant (SPEC_FULL.md §3).
// SSR predates AEAD Shadowsocks and carries its own protocol/obfs pairing
// instead of a plugin, so it gets a separate cipher whitelist
// (ShadowsocksRCiphers) and struct rather than reusing ShadowsocksNode.
type ShadowsocksRNode struct {
	NodeName      string
	ServerHost    string
	ServerPort    int
	Cipher        string
	Password      string
	Protocol_     string
	ProtocolParam string
	Obfs          string
	ObfsParam     string
}

func (n *ShadowsocksRNode) Name() string        { return n.NodeName }
func (n *ShadowsocksRNode) SetName(name string) { n.NodeName = name }
func (n *ShadowsocksRNode) Protocol() string    { return "ssr" }
func (n *ShadowsocksRNode) Server() string      { return n.ServerHost }
func (n *ShadowsocksRNode) Port() int           { return n.ServerPort }

func (n *ShadowsocksRNode) DedupKey() string {
	return fmt.Sprintf("ssr:%s:%d:%s", n.ServerHost, n.ServerPort, n.Cipher)
}

func (n *ShadowsocksRNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "ssr")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.Set("cipher", n.Cipher)
	m.Set("password", n.Password)
	m.Set("protocol", n.Protocol_)
	m.SetIf(n.ProtocolParam != "", "protocol-param", n.ProtocolParam)
	m.Set("obfs", n.Obfs)
	m.SetIf(n.ObfsParam != "", "obfs-param", n.ObfsParam)
	m.SetIf(opts.UDP, "udp", true)
	m.SetIf(opts.TFO, "tfo", true)
	return m
}
