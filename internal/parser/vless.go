package parser

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseVless decodes a vless:// link per spec.md §4.2.
func ParseVless(raw string) (*node.VlessNode, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("vless", err.Error())
	}
	if u.User == nil || u.User.Username() == "" {
		return nil, convertererror.InvalidNodeFormat("vless", "missing uuid")
	}
	id, err := uuid.Parse(u.User.Username())
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("vless", "invalid uuid: "+err.Error())
	}

	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("vless", err.Error())
	}

	q := u.Query()
	security := q.Get("security")
	tls := security == "tls" || security == "reality"
	fp := q.Get("fp")
	if security == "reality" && fp == "" {
		fp = "chrome"
	}
	pbk := q.Get("pbk")
	if security == "reality" && pbk == "" {
		return nil, convertererror.MissingField("public-key", "vless reality-opts")
	}

	n := &node.VlessNode{
		NodeName:          decodeFragment(u.Fragment),
		ServerHost:        host,
		ServerPort:        port,
		UUID:              id.String(),
		Flow:              q.Get("flow"),
		Network:           q.Get("type"),
		TLS:               tls,
		SNI:               q.Get("sni"),
		SkipCertVerify:    truthyBool(q.Get("allowInsecure")),
		ALPN:              splitNonEmpty(q.Get("alpn"), ","),
		ClientFingerprint: fp,
		PacketEncoding:    q.Get("packetEncoding"),
		Reality: node.RealityOpts{
			PublicKey: pbk,
			ShortID:   q.Get("sid"),
		},
		Transport: parseTransportOpts(q),
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}

// parseTransportOpts reads the network-specific path/host/serviceName
// query parameters shared by VLESS, Trojan and VMess link forms.
func parseTransportOpts(q url.Values) node.Transport {
	return node.Transport{
		Network:     q.Get("type"),
		Path:        q.Get("path"),
		Host:        q.Get("host"),
		ServiceName: q.Get("serviceName"),
	}
}
