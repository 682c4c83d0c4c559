package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// VmessNode is the VMess protocol variant (SPEC_FULL.md §3).
type VmessNode struct {
	NodeName       string
	ServerHost     string
	ServerPort     int
	UUID           string
	AlterID        int
	Cipher         string
	Network        string
	TLS            bool
	SNI            string
	SkipCertVerify bool
	Transport      Transport
}

func (n *VmessNode) Name() string        { return n.NodeName }
func (n *VmessNode) SetName(name string) { n.NodeName = name }
func (n *VmessNode) Protocol() string    { return "vmess" }
func (n *VmessNode) Server() string      { return n.ServerHost }
func (n *VmessNode) Port() int           { return n.ServerPort }

func (n *VmessNode) DedupKey() string {
	return fmt.Sprintf("vmess:%s:%d:%s", n.ServerHost, n.ServerPort, n.UUID)
}

func (n *VmessNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "vmess")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.Set("uuid", n.UUID)
	m.Set("alterId", n.AlterID)
	cipher := n.Cipher
	if cipher == "" {
		cipher = "auto"
	}
	m.Set("cipher", cipher)
	m.SetIf(opts.UDP, "udp", true)
	m.SetIf(opts.TFO, "tfo", true)
	m.Set("tls", n.TLS)
	m.SetIf(n.Network != "", "network", n.Network)
	m.SetIf(n.SNI != "", "servername", n.SNI)
	m.SetIf(n.SkipCertVerify || opts.SkipCertVerify, "skip-cert-verify", true)
	n.Transport.appendOpts(m)
	return m
}
