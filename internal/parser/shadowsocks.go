package parser

import (
	"net/url"
	"strings"

	"github.com/wallace/localsub/internal/b64text"
	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseShadowsocks decodes an ss:// link, trying SIP002 form first and
// falling back to the legacy fully-encoded form, per spec.md §4.2.
func ParseShadowsocks(raw string) (*node.ShadowsocksNode, error) {
	const prefix = "ss://"
	if !strings.HasPrefix(raw, prefix) {
		return nil, convertererror.InvalidNodeFormat("ss", "missing ss:// prefix")
	}
	rest := raw[len(prefix):]

	if n, err := parseSIP002(rest); err == nil {
		return n, nil
	}
	return parseLegacySS(rest)
}

// parseSIP002 handles ss://BASE64(cipher:password)@host:port/?plugin=…#name.
func parseSIP002(rest string) (*node.ShadowsocksNode, error) {
	fragment := ""
	if idx := strings.Index(rest, "#"); idx >= 0 {
		fragment = rest[idx+1:]
		rest = rest[:idx]
	}
	query := ""
	if idx := strings.Index(rest, "?"); idx >= 0 {
		query = rest[idx+1:]
		rest = rest[:idx]
	}
	rest = strings.TrimSuffix(rest, "/")

	atIdx := strings.LastIndex(rest, "@")
	if atIdx < 0 {
		return nil, convertererror.InvalidNodeFormat("ss", "missing @host:port")
	}
	userInfo := rest[:atIdx]
	authority := rest[atIdx+1:]

	decoded, ok := b64text.DecodeFlexible(userInfo)
	if !ok {
		return nil, convertererror.Base64Decode("ss userinfo is not valid base64")
	}
	cipher, password, ok := strings.Cut(decoded, ":")
	if !ok {
		return nil, convertererror.InvalidNodeFormat("ss", "userinfo missing cipher:password separator")
	}

	host, port, err := splitHostPort(authority)
	if err != nil {
		return nil, err
	}

	n := &node.ShadowsocksNode{
		NodeName:   decodeFragment(fragment),
		ServerHost: host,
		ServerPort: port,
		Cipher:     node.NormalizeCipher(cipher),
		Password:   password,
	}
	if !node.ShadowsocksCiphers[n.Cipher] {
		return nil, convertererror.InvalidNodeFormat("ss", "unsupported cipher: "+cipher)
	}
	if query != "" {
		q, _ := url.ParseQuery(query)
		n.Obfs = parsePluginString(q.Get("plugin"))
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}

// parseLegacySS handles ss://BASE64(cipher:password@host:port)#name.
func parseLegacySS(rest string) (*node.ShadowsocksNode, error) {
	fragment := ""
	if idx := strings.Index(rest, "#"); idx >= 0 {
		fragment = rest[idx+1:]
		rest = rest[:idx]
	}
	decoded, ok := b64text.DecodeFlexible(rest)
	if !ok {
		return nil, convertererror.Base64Decode("legacy ss body is not valid base64")
	}
	atIdx := strings.LastIndex(decoded, "@")
	if atIdx < 0 {
		return nil, convertererror.InvalidNodeFormat("ss", "missing @host:port in legacy body")
	}
	credPart := decoded[:atIdx]
	authority := decoded[atIdx+1:]
	cipher, password, ok := strings.Cut(credPart, ":")
	if !ok {
		return nil, convertererror.InvalidNodeFormat("ss", "body missing cipher:password separator")
	}
	host, port, err := splitHostPort(authority)
	if err != nil {
		return nil, err
	}
	n := &node.ShadowsocksNode{
		NodeName:   decodeFragment(fragment),
		ServerHost: host,
		ServerPort: port,
		Cipher:     node.NormalizeCipher(cipher),
		Password:   password,
	}
	if !node.ShadowsocksCiphers[n.Cipher] {
		return nil, convertererror.InvalidNodeFormat("ss", "unsupported cipher: "+cipher)
	}
	if n.NodeName == "" {
		n.NodeName = host
	}
	return n, nil
}

// parsePluginString decodes a SIP003 plugin string ("name;k=v;k=v") into
// Clash's obfs/plugin-opts representation.
func parsePluginString(plugin string) node.ObfsOpts {
	if plugin == "" {
		return node.ObfsOpts{}
	}
	decoded, err := url.QueryUnescape(plugin)
	if err == nil {
		plugin = decoded
	}
	parts := strings.Split(plugin, ";")
	name := parts[0]
	params := map[string]string{}
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		k, v, has := strings.Cut(p, "=")
		if !has {
			params[k] = "true"
		} else {
			params[k] = v
		}
	}

	switch name {
	case "obfs-local", "simple-obfs":
		return node.ObfsOpts{
			Plugin: "obfs",
			Mode:   params["obfs"],
			Host:   params["obfs-host"],
		}
	case "v2ray-plugin":
		opts := node.ObfsOpts{
			Plugin: "v2ray-plugin",
			Mode:   params["mode"],
			Host:   params["host"],
			Path:   params["path"],
		}
		if tls, ok := params["tls"]; ok {
			opts.TLS = tls == "" || truthyBool(tls) || tls == "true"
		}
		return opts
	default:
		return node.ObfsOpts{Plugin: name, Mode: params["mode"], Host: params["host"], Path: params["path"]}
	}
}
