package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// TrojanNode is the Trojan protocol variant (SPEC_FULL.md §3).
type TrojanNode struct {
	NodeName       string
	ServerHost     string
	ServerPort     int
	Password       string
	SNI            string
	SkipCertVerify bool
	ALPN           []string
	Network        string
	Reality        RealityOpts
	Transport      Transport
}

func (n *TrojanNode) Name() string        { return n.NodeName }
func (n *TrojanNode) SetName(name string) { n.NodeName = name }
func (n *TrojanNode) Protocol() string    { return "trojan" }
func (n *TrojanNode) Server() string      { return n.ServerHost }
func (n *TrojanNode) Port() int           { return n.ServerPort }

func (n *TrojanNode) DedupKey() string {
	return fmt.Sprintf("trojan:%s:%d:%s", n.ServerHost, n.ServerPort, n.Password)
}

func (n *TrojanNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "trojan")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.Set("password", n.Password)
	m.SetIf(opts.UDP, "udp", true)
	m.SetIf(opts.TFO, "tfo", true)
	m.SetIf(n.SNI != "", "sni", n.SNI)
	m.SetIf(n.SkipCertVerify || opts.SkipCertVerify, "skip-cert-verify", true)
	m.SetIf(len(n.ALPN) > 0, "alpn", n.ALPN)
	m.SetIf(n.Network != "", "network", n.Network)
	if !n.Reality.empty() {
		m.Set("reality-opts", n.Reality.toMap())
	}
	n.Transport.appendOpts(m)
	return m
}
