package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// Hysteria2Node is the Hysteria v2 protocol variant (SPEC_FULL.md §3).
// It replaces v1's auth-str/protocol pair with a plain password and adds
// optional obfs-password/ports-range fields, per the upstream kernel's
// divergent hysteria2 schema.
type Hysteria2Node struct {
	NodeName       string
	ServerHost     string
	ServerPort     int
	Password       string
	Up             string
	Down           string
	Obfs           string
	ObfsPassword   string
	SNI            string
	SkipCertVerify bool
	ALPN           []string
	Ports          string
	CertPin        string
}

func (n *Hysteria2Node) Name() string        { return n.NodeName }
func (n *Hysteria2Node) SetName(name string) { n.NodeName = name }
func (n *Hysteria2Node) Protocol() string    { return "hysteria2" }
func (n *Hysteria2Node) Server() string      { return n.ServerHost }
func (n *Hysteria2Node) Port() int           { return n.ServerPort }

func (n *Hysteria2Node) DedupKey() string {
	return fmt.Sprintf("hysteria2:%s:%d:%s", n.ServerHost, n.ServerPort, n.Password)
}

func (n *Hysteria2Node) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "hysteria2")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.SetIf(n.Password != "", "password", n.Password)
	m.SetIf(n.Ports != "", "ports", n.Ports)
	m.SetIf(n.Up != "", "up", n.Up)
	m.SetIf(n.Down != "", "down", n.Down)
	m.SetIf(n.Obfs != "", "obfs", n.Obfs)
	m.SetIf(n.ObfsPassword != "", "obfs-password", n.ObfsPassword)
	m.SetIf(n.SNI != "", "sni", n.SNI)
	m.SetIf(n.SkipCertVerify || opts.SkipCertVerify, "skip-cert-verify", true)
	m.SetIf(len(n.ALPN) > 0, "alpn", n.ALPN)
	m.SetIf(n.CertPin != "", "cert-pin", n.CertPin)
	return m
}
