package parser

import (
	"net/url"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseTrojan decodes a trojan:// link per spec.md §4.2.
func ParseTrojan(raw string) (*node.TrojanNode, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("trojan", err.Error())
	}
	if u.User == nil || u.User.Username() == "" {
		return nil, convertererror.InvalidNodeFormat("trojan", "missing password")
	}
	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("trojan", err.Error())
	}

	q := u.Query()
	n := &node.TrojanNode{
		NodeName:       decodeFragment(u.Fragment),
		ServerHost:     host,
		ServerPort:     port,
		Password:       u.User.Username(),
		SNI:            q.Get("sni"),
		SkipCertVerify: truthyBool(q.Get("allowInsecure")),
		ALPN:           splitNonEmpty(q.Get("alpn"), ","),
		Network:        q.Get("type"),
		Reality: node.RealityOpts{
			PublicKey: q.Get("pbk"),
			ShortID:   q.Get("sid"),
		},
		Transport: parseTransportOpts(q),
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}
