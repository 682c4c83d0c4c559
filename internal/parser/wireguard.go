package parser

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

const defaultWireguardPort = 51820

// ParseWireguard decodes a wireguard:// or wg:// link per spec.md §4.2.
func ParseWireguard(raw string) (*node.WireguardNode, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("wireguard", err.Error())
	}
	host, port, err := splitHostPort(u.Host)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("wireguard", err.Error())
	}
	if port == 0 {
		port = defaultWireguardPort
	}

	q := u.Query()
	privateKey := firstNonEmpty(q.Get("pk"), q.Get("private_key"), q.Get("privatekey"))
	if privateKey == "" && u.User != nil {
		privateKey = u.User.Username()
	}
	publicKey := firstNonEmpty(q.Get("peer_pk"), q.Get("peer_public_key"), q.Get("publickey"), q.Get("public_key"))

	ipv4, ipv6 := splitLocalAddresses(firstNonEmpty(q.Get("local_address"), q.Get("address"), q.Get("ip")))

	n := &node.WireguardNode{
		NodeName:     decodeFragment(u.Fragment),
		ServerHost:   host,
		ServerPort:   port,
		PrivateKey:   privateKey,
		PublicKey:    publicKey,
		PresharedKey: q.Get("psk"),
		IPv4:         ipv4,
		IPv6:         ipv6,
		MTU:          parseIntOrZero(q.Get("mtu")),
		Reserved:     parseReserved(q.Get("reserved")),
		DNS:          splitNonEmpty(q.Get("dns"), ","),
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}

// splitLocalAddresses parses a comma-separated "local_address" value that
// may carry an IPv4 address, an IPv6 address, or both, stripping any CIDR
// suffix per spec.md §3's WireGuard emission rule.
func splitLocalAddresses(raw string) (ipv4, ipv6 string) {
	for _, part := range splitNonEmpty(raw, ",") {
		addr := part
		if idx := strings.Index(addr, "/"); idx >= 0 {
			addr = addr[:idx]
		}
		if ip := net.ParseIP(addr); ip != nil && ip.To4() == nil {
			ipv6 = addr
		} else {
			ipv4 = addr
		}
	}
	return ipv4, ipv6
}

func parseIntOrZero(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func parseReserved(raw string) []int {
	parts := splitNonEmpty(raw, ",")
	if len(parts) == 0 {
		return nil
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		out = append(out, parseIntOrZero(p))
	}
	return out
}
