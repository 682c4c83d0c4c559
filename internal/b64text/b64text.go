// Package b64text provides the flexible base64 decode cascade and the BOM/
// line-ending cleanup shared by the source resolver (subscription bodies)
// and the node parser (SSR credential sub-fields and query values),
// grounded on decodeBase64 in the teacher's main.go.
package b64text

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// StripBOM removes a leading UTF-8 byte-order mark in either its decoded
// (U+FEFF) or raw three-byte form.
func StripBOM(s string) string {
	s = strings.TrimPrefix(s, string(rune(0xFEFF)))
	s = strings.TrimPrefix(s, string([]byte{0xEF, 0xBB, 0xBF}))
	return s
}

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Clean applies BOM-stripping and line-ending normalization, the "recursive
// clean" spec.md §4.1 requires on every decoded body.
func Clean(s string) string {
	return NormalizeLineEndings(StripBOM(s))
}

var dataURLPrefixes = []string{
	"data:application/octet-stream;base64,",
	"data:text/plain;base64,",
	"data:application/x-yaml;base64,",
	"data:;base64,",
	"base64,",
}

// stripWhitespace removes all ASCII whitespace, matching the teacher's
// strings.Map-based cleanup before encoding attempts.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

var candidateEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeFlexible tries, in order, standard/raw-standard/URL-safe/
// raw-URL-safe base64, synthesizing `=` padding and retrying when the
// cleaned input's length isn't a multiple of 4 and every unpadded attempt
// failed. Decoding only succeeds when the result is valid UTF-8.
func DecodeFlexible(encoded string) (string, bool) {
	s := StripBOM(encoded)
	for _, prefix := range dataURLPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = stripWhitespace(s)
	if s == "" {
		return "", false
	}

	if decoded, ok := tryDecodeWith(s); ok {
		return decoded, true
	}

	if len(s)%4 != 0 {
		padded := s + strings.Repeat("=", (4-len(s)%4)%4)
		if decoded, ok := tryDecodeWith(padded); ok {
			return decoded, true
		}
	}
	return "", false
}

func tryDecodeWith(s string) (string, bool) {
	for _, enc := range candidateEncodings {
		out, err := enc.DecodeString(s)
		if err == nil && utf8.Valid(out) {
			return string(out), true
		}
	}
	return "", false
}

const standardAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/-_="

// LooksLikeBase64 reports whether body qualifies as a candidate base64
// blob, per spec.md §4.1: no "://" substring, every character drawn from
// the union of the standard and URL-safe alphabets plus '=', and either a
// single line at least 20 characters long or every non-empty line passing
// the alphabet test.
func LooksLikeBase64(body string) bool {
	if strings.Contains(body, "://") {
		return false
	}
	lines := strings.Split(body, "\n")
	nonEmpty := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) == 0 {
		return false
	}
	if len(nonEmpty) == 1 && len(nonEmpty[0]) >= 20 {
		return allBase64Alphabet(nonEmpty[0])
	}
	for _, l := range nonEmpty {
		if !allBase64Alphabet(l) {
			return false
		}
	}
	return true
}

func allBase64Alphabet(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(standardAlphabet, r) {
			return false
		}
	}
	return true
}
