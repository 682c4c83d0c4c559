package parser

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/wallace/localsub/internal/b64text"
	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// ParseShadowsocksR decodes an ssr:// link per spec.md §4.2. The outer
// body is server:port:protocol:method:obfs:BASE64(password)[/?params];
// params may additionally appear outside the outer base64 and are merged
// with any internal ones, external winning on key collision (see the
// open question in SPEC_FULL.md §9 — this implementation picks "external
// wins" to match the source's actual, not its commented, behavior).
func ParseShadowsocksR(raw string) (*node.ShadowsocksRNode, error) {
	const prefix = "ssr://"
	if !strings.HasPrefix(raw, prefix) {
		return nil, convertererror.InvalidNodeFormat("ssr", "missing ssr:// prefix")
	}
	rest := raw[len(prefix):]

	var externalQuery string
	if idx := strings.Index(rest, "/?"); idx >= 0 {
		externalQuery = rest[idx+2:]
		rest = rest[:idx]
	} else if idx := strings.Index(rest, "?"); idx >= 0 {
		externalQuery = rest[idx+1:]
		rest = rest[:idx]
	}

	decoded, ok := b64text.DecodeFlexible(rest)
	if !ok {
		return nil, convertererror.Base64Decode("ssr body is not valid base64")
	}

	server, port, protocol, method, obfs, passwordField, internalQuery, err := splitSSRBody(decoded)
	if err != nil {
		return nil, err
	}

	password, ok := decodeSSRB64Field(passwordField)
	if !ok {
		return nil, convertererror.Base64Decode("ssr password field is not valid base64")
	}

	internal, _ := url.ParseQuery(internalQuery)
	external, _ := url.ParseQuery(externalQuery)
	merged := url.Values{}
	for k, v := range internal {
		merged[k] = v
	}
	for k, v := range external {
		merged[k] = v
	}

	n := &node.ShadowsocksRNode{
		NodeName:      ssrB64OrRaw(merged.Get("remarks")),
		ServerHost:    server,
		ServerPort:    port,
		Cipher:        node.NormalizeCipher(method),
		Password:      password,
		Protocol_:     protocol,
		ProtocolParam: ssrB64OrRaw(merged.Get("protoparam")),
		Obfs:          obfs,
		ObfsParam:     ssrB64OrRaw(merged.Get("obfsparam")),
	}
	if !node.ShadowsocksRCiphers[n.Cipher] {
		return nil, convertererror.InvalidNodeFormat("ssr", "unsupported cipher: "+method)
	}
	if n.NodeName == "" {
		n.NodeName = server
	}
	return n, nil
}

// splitSSRBody splits the decoded outer body into its six colon-separated
// fields, handling both bracketed and unbracketed IPv6 server addresses.
func splitSSRBody(body string) (server string, port int, protocol, method, obfs, passwordField, query string, err error) {
	mainPart := body
	if idx := strings.Index(body, "/?"); idx >= 0 {
		query = body[idx+2:]
		mainPart = body[:idx]
	} else if idx := strings.Index(body, "?"); idx >= 0 {
		query = body[idx+1:]
		mainPart = body[:idx]
	}

	if strings.HasPrefix(mainPart, "[") {
		end := strings.Index(mainPart, "]")
		if end < 0 {
			return "", 0, "", "", "", "", "", convertererror.InvalidNodeFormat("ssr", "unterminated ipv6 literal")
		}
		server = mainPart[1:end]
		fields := strings.SplitN(strings.TrimPrefix(mainPart[end+1:], ":"), ":", 5)
		if len(fields) != 5 {
			return "", 0, "", "", "", "", "", convertererror.InvalidNodeFormat("ssr", "malformed body")
		}
		return finishSSRFields(server, fields, query)
	}

	colons := strings.Count(mainPart, ":")
	if colons > 5 {
		// Unbracketed IPv6: everything up to the last five
		// colon-separated fields is the server address.
		parts := strings.Split(mainPart, ":")
		server = strings.Join(parts[:len(parts)-5], ":")
		return finishSSRFields(server, parts[len(parts)-5:], query)
	}

	parts := strings.SplitN(mainPart, ":", 6)
	if len(parts) != 6 {
		return "", 0, "", "", "", "", "", convertererror.InvalidNodeFormat("ssr", "malformed body")
	}
	return finishSSRFields(parts[0], parts[1:], query)
}

func finishSSRFields(server string, fields []string, query string) (string, int, string, string, string, string, string, error) {
	port, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", 0, "", "", "", "", "", convertererror.InvalidNodeFormat("ssr", "invalid port: "+fields[0])
	}
	return server, port, fields[1], fields[2], fields[3], fields[4], query, nil
}

// decodeSSRB64Field decodes the password sub-field, which is itself
// base64-encoded.
func decodeSSRB64Field(field string) (string, bool) {
	return b64text.DecodeFlexible(field)
}

// ssrB64OrRaw decodes an SSR query parameter value (remarks/obfsparam/
// protoparam/group), all of which are themselves base64-encoded; falls
// back to the raw value when decoding fails since some generators emit
// these in plain text.
func ssrB64OrRaw(v string) string {
	if v == "" {
		return ""
	}
	if decoded, ok := b64text.DecodeFlexible(v); ok {
		return decoded
	}
	return v
}
