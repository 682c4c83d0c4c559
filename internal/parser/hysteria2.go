package parser

import (
	"net/url"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseHysteria2 decodes a hysteria2:// or hy2:// link per spec.md §4.2.
func ParseHysteria2(raw string) (*node.Hysteria2Node, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("hysteria2", err.Error())
	}
	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("hysteria2", err.Error())
	}
	password := ""
	if u.User != nil {
		password = u.User.Username()
	}

	q := u.Query()
	n := &node.Hysteria2Node{
		NodeName:       decodeFragment(u.Fragment),
		ServerHost:     host,
		ServerPort:     port,
		Password:       password,
		Ports:          q.Get("mport"),
		Up:             q.Get("up"),
		Down:           q.Get("down"),
		Obfs:           q.Get("obfs"),
		ObfsPassword:   q.Get("obfs-password"),
		SNI:            q.Get("sni"),
		SkipCertVerify: truthyBool(q.Get("insecure")),
		ALPN:           splitNonEmpty(q.Get("alpn"), ","),
		CertPin:        q.Get("pinSHA256"),
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}
