package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// HysteriaNode is the Hysteria v1 protocol variant (SPEC_FULL.md §3).
type HysteriaNode struct {
	NodeName       string
	ServerHost     string
	ServerPort     int
	AuthStr        string
	Up             string
	Down           string
	Obfs           string
	ObfsParam      string
	SNI            string
	SkipCertVerify bool
	ALPN           []string
	Protocol_      string
	CertPin        string
}

func (n *HysteriaNode) Name() string        { return n.NodeName }
func (n *HysteriaNode) SetName(name string) { n.NodeName = name }
func (n *HysteriaNode) Protocol() string    { return "hysteria" }
func (n *HysteriaNode) Server() string      { return n.ServerHost }
func (n *HysteriaNode) Port() int           { return n.ServerPort }

func (n *HysteriaNode) DedupKey() string {
	return fmt.Sprintf("hysteria:%s:%d:%s", n.ServerHost, n.ServerPort, n.AuthStr)
}

func (n *HysteriaNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "hysteria")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.SetIf(n.AuthStr != "", "auth-str", n.AuthStr)
	m.SetIf(n.Protocol_ != "", "protocol", n.Protocol_)
	m.SetIf(n.Up != "", "up", n.Up)
	m.SetIf(n.Down != "", "down", n.Down)
	m.SetIf(n.Obfs != "", "obfs", n.Obfs)
	m.SetIf(n.ObfsParam != "", "obfs-param", n.ObfsParam)
	m.SetIf(n.SNI != "", "sni", n.SNI)
	m.SetIf(n.SkipCertVerify || opts.SkipCertVerify, "skip-cert-verify", true)
	m.SetIf(len(n.ALPN) > 0, "alpn", n.ALPN)
	m.SetIf(n.CertPin != "", "cert-pin", n.CertPin)
	return m
}
