package parser

import (
	"fmt"
	"net/url"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseHysteria decodes a hysteria:// or hy:// (v1) link per spec.md §4.2.
func ParseHysteria(raw string) (*node.HysteriaNode, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("hysteria", err.Error())
	}
	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("hysteria", err.Error())
	}

	q := u.Query()
	up := q.Get("upmbps")
	down := q.Get("downmbps")
	if up != "" {
		up = fmt.Sprintf("%s Mbps", up)
	}
	if down != "" {
		down = fmt.Sprintf("%s Mbps", down)
	}

	n := &node.HysteriaNode{
		NodeName:       decodeFragment(u.Fragment),
		ServerHost:     host,
		ServerPort:     port,
		AuthStr:        q.Get("auth"),
		Up:             up,
		Down:           down,
		Obfs:           q.Get("obfs"),
		ObfsParam:      q.Get("obfsParam"),
		SNI:            firstNonEmpty(q.Get("peer"), q.Get("sni")),
		SkipCertVerify: truthyBool(q.Get("insecure")),
		ALPN:           splitNonEmpty(q.Get("alpn"), ","),
		Protocol_:      q.Get("protocol"),
		CertPin:        q.Get("pinSHA256"),
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}
