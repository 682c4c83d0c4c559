package node

import "strings"

// ShadowsocksCiphers is the whitelist of AEAD, AEAD-2022 and legacy-stream
// ciphers Shadowsocks nodes are validated against at parse time
// (SPEC_FULL.md §3 invariants).
var ShadowsocksCiphers = map[string]bool{
	"aes-128-gcm":             true,
	"aes-192-gcm":             true,
	"aes-256-gcm":             true,
	"chacha20-ietf-poly1305":  true,
	"xchacha20-ietf-poly1305": true,
	"2022-blake3-aes-128-gcm": true,
	"2022-blake3-aes-256-gcm": true,
	"2022-blake3-chacha20-poly1305": true,
	"aes-128-cfb":             true,
	"aes-192-cfb":             true,
	"aes-256-cfb":             true,
	"aes-128-ctr":             true,
	"aes-192-ctr":             true,
	"aes-256-ctr":             true,
	"rc4-md5":                 true,
	"chacha20":                true,
	"chacha20-ietf":           true,
	"none":                    true,
}

// ShadowsocksRCiphers is ShadowsocksR's own, separate whitelist.
var ShadowsocksRCiphers = map[string]bool{
	"none":                    true,
	"table":                   true,
	"rc4":                     true,
	"rc4-md5":                 true,
	"rc4-md5-6":               true,
	"aes-128-cfb":             true,
	"aes-192-cfb":             true,
	"aes-256-cfb":             true,
	"aes-128-ctr":             true,
	"aes-192-ctr":             true,
	"aes-256-ctr":             true,
	"bf-cfb":                  true,
	"camellia-128-cfb":        true,
	"camellia-192-cfb":        true,
	"camellia-256-cfb":        true,
	"cast5-cfb":               true,
	"des-cfb":                 true,
	"idea-cfb":                true,
	"rc2-cfb":                 true,
	"salsa20":                 true,
	"seed-cfb":                true,
	"chacha20":                true,
	"chacha20-ietf":           true,
}

// NormalizeCipher lowercases and converts underscore to dash before
// whitelist comparison, per SPEC_FULL.md §4.2.
func NormalizeCipher(cipher string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cipher)), "_", "-")
}
