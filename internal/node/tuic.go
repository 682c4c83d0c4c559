package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// TuicNode is the TUIC protocol variant (SPEC_FULL.md §3). TUIC v5 is
// UUID+password; the struct also carries the handful of v4 token-auth
// fields so both wire versions decode into one shape.
type TuicNode struct {
	NodeName       string
	ServerHost     string
	ServerPort     int
	UUID           string
	Password       string
	Token          string
	SNI            string
	SkipCertVerify bool
	ALPN           []string
	CongestionCtrl string
	UDPRelayMode   string
	DisableSNI     bool
	ReduceRTT      bool
}

func (n *TuicNode) Name() string        { return n.NodeName }
func (n *TuicNode) SetName(name string) { n.NodeName = name }
func (n *TuicNode) Protocol() string    { return "tuic" }
func (n *TuicNode) Server() string      { return n.ServerHost }
func (n *TuicNode) Port() int           { return n.ServerPort }

func (n *TuicNode) DedupKey() string {
	id := n.UUID
	if id == "" {
		id = n.Token
	}
	return fmt.Sprintf("tuic:%s:%d:%s", n.ServerHost, n.ServerPort, id)
}

func (n *TuicNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "tuic")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.SetIf(n.UUID != "", "uuid", n.UUID)
	m.SetIf(n.Password != "", "password", n.Password)
	m.SetIf(n.Token != "", "token", n.Token)
	m.SetIf(opts.UDP, "udp", true)
	m.SetIf(n.CongestionCtrl != "", "congestion-controller", n.CongestionCtrl)
	m.SetIf(n.UDPRelayMode != "", "udp-relay-mode", n.UDPRelayMode)
	m.SetIf(n.SNI != "", "sni", n.SNI)
	m.SetIf(n.DisableSNI, "disable-sni", true)
	m.SetIf(n.ReduceRTT, "reduce-rtt", true)
	m.SetIf(n.SkipCertVerify || opts.SkipCertVerify, "skip-cert-verify", true)
	m.SetIf(len(n.ALPN) > 0, "alpn", n.ALPN)
	return m
}
