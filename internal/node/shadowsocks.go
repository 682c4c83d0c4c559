package node

import (
	"fmt"

	"github.com/wallace/localsub/internal/yamlmap"
)

// ObfsOpts carries Shadowsocks' simple-obfs/v2ray-plugin options, grounded
// on the plugin/plugin-opts fields clash_config.rs emits for ss nodes.
type ObfsOpts struct {
	Plugin string // obfs, v2ray-plugin, ""
	Mode   string // http, tls, websocket
	Host   string
	Path   string
	TLS    bool
}

func (o ObfsOpts) empty() bool { return o.Plugin == "" }

func (o ObfsOpts) toMap() *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.SetIf(o.Mode != "", "mode", o.Mode)
	m.SetIf(o.Host != "", "host", o.Host)
	m.SetIf(o.Path != "", "path", o.Path)
	m.SetIf(o.TLS, "tls", true)
	return m
}

// ShadowsocksNode is the Shadowsocks protocol variant (SPEC_FULL.md §3).
type ShadowsocksNode struct {
	NodeName   string
	ServerHost string
	ServerPort int
	Cipher     string
	Password   string
	Obfs       ObfsOpts
}

func (n *ShadowsocksNode) Name() string        { return n.NodeName }
func (n *ShadowsocksNode) SetName(name string) { n.NodeName = name }
func (n *ShadowsocksNode) Protocol() string    { return "ss" }
func (n *ShadowsocksNode) Server() string      { return n.ServerHost }
func (n *ShadowsocksNode) Port() int           { return n.ServerPort }

func (n *ShadowsocksNode) DedupKey() string {
	return fmt.Sprintf("ss:%s:%d:%s", n.ServerHost, n.ServerPort, n.Cipher)
}

func (n *ShadowsocksNode) ClashFields(opts GlobalOptions) *yamlmap.OrderedMap {
	m := yamlmap.New()
	m.Set("name", n.NodeName)
	m.Set("type", "ss")
	m.Set("server", n.ServerHost)
	m.Set("port", n.ServerPort)
	m.Set("cipher", n.Cipher)
	m.Set("password", n.Password)
	m.SetIf(opts.UDP, "udp", true)
	m.SetIf(opts.TFO, "tfo", true)
	if !n.Obfs.empty() {
		m.Set("plugin", n.Obfs.Plugin)
		m.Set("plugin-opts", n.Obfs.toMap())
	}
	return m
}
