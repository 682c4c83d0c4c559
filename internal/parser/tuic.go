package parser

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseTuic decodes a tuic:// link per spec.md §4.2. Userinfo of the form
// "uuid:password" indicates protocol V5; its absence indicates V4, which
// instead carries a "token" query parameter.
func ParseTuic(raw string) (*node.TuicNode, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("tuic", err.Error())
	}
	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("tuic", err.Error())
	}

	q := u.Query()
	n := &node.TuicNode{
		NodeName:       decodeFragment(u.Fragment),
		ServerHost:     host,
		ServerPort:     port,
		SNI:            q.Get("sni"),
		SkipCertVerify: truthyBool(firstNonEmpty(q.Get("allowInsecure"), q.Get("insecure"))),
		ALPN:           splitNonEmpty(q.Get("alpn"), ","),
		CongestionCtrl: firstNonEmpty(q.Get("congestion_control"), q.Get("congestion-controller")),
		UDPRelayMode:   firstNonEmpty(q.Get("udp_relay_mode"), q.Get("udp-relay-mode")),
		DisableSNI:     truthyBool(firstNonEmpty(q.Get("disable_sni"), q.Get("disable-sni"))),
		ReduceRTT:      truthyBool(firstNonEmpty(q.Get("reduce_rtt"), q.Get("reduce-rtt"))),
	}

	if u.User != nil {
		if pw, hasPw := u.User.Password(); hasPw {
			id, err := uuid.Parse(u.User.Username())
			if err != nil {
				return nil, convertererror.InvalidNodeFormat("tuic", "invalid uuid: "+err.Error())
			}
			n.UUID = id.String()
			n.Password = pw
		} else if u.User.Username() != "" {
			// No ":" in userinfo: treat the lone component as V4 token
			// unless a password was explicitly supplied.
			n.Token = u.User.Username()
		}
	}
	if n.UUID == "" && n.Token == "" {
		n.Token = q.Get("token")
	}

	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}
