package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// VlessNode is the VLESS protocol variant (SPEC_FULL.md §3).
type VlessNode struct {
	NodeName          string
	ServerHost        string
	ServerPort        int
	UUID              string
	Flow              string
	Network           string
	TLS               bool
	SNI               string
	SkipCertVerify    bool
	ALPN              []string
	Reality           RealityOpts
	Transport         Transport
	ClientFingerprint string
	PacketEncoding    string
}

func (n *VlessNode) Name() string        { return n.NodeName }
func (n *VlessNode) SetName(name string) { n.NodeName = name }
func (n *VlessNode) Protocol() string    { return "vless" }
func (n *VlessNode) Server() string      { return n.ServerHost }
func (n *VlessNode) Port() int           { return n.ServerPort }

func (n *VlessNode) DedupKey() string {
	return fmt.Sprintf("vless:%s:%d:%s", n.ServerHost, n.ServerPort, n.UUID)
}

func (n *VlessNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "vless")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.Set("uuid", n.UUID)
	m.SetIf(opts.UDP, "udp", true)
	m.SetIf(opts.TFO, "tfo", true)
	m.Set("tls", n.TLS)
	m.SetIf(n.Network != "", "network", n.Network)
	m.SetIf(n.Flow != "", "flow", n.Flow)
	m.SetIf(n.PacketEncoding != "", "packet-encoding", n.PacketEncoding)
	m.SetIf(n.SNI != "", "servername", n.SNI)
	m.SetIf(n.SkipCertVerify || opts.SkipCertVerify, "skip-cert-verify", true)
	m.SetIf(len(n.ALPN) > 0, "alpn", n.ALPN)
	if !n.Reality.empty() {
		m.Set("reality-opts", n.Reality.toMap())
	}
	m.SetIf(n.ClientFingerprint != "", "client-fingerprint", n.ClientFingerprint)
	n.Transport.appendOpts(m)
	return m
}
