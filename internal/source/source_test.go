package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_NewlineDefault(t *testing.T) {
	items := Split("vless://a#x\nhttps://example.com/sub\n\ntrojan://b#y")
	assert.Len(t, items, 3)
	assert.False(t, items[0].IsURL)
	assert.True(t, items[1].IsURL)
	assert.False(t, items[2].IsURL)
}

func TestSplit_PipeWhenNoScheme(t *testing.T) {
	items := Split("nodeA|nodeB|nodeC")
	assert.Len(t, items, 3)
	assert.Equal(t, "nodeA", items[0].Raw)
}

func TestSplit_PipeWhenMultipleHTTP(t *testing.T) {
	items := Split("https://a.example.com/sub|https://b.example.com/sub")
	assert.Len(t, items, 2)
	assert.True(t, items[0].IsURL)
	assert.True(t, items[1].IsURL)
}

func TestSplit_SingleURLWithPipeInQueryMisclassified(t *testing.T) {
	// Documented sharp edge: a lone URL containing a literal "|" plus a
	// second "http" substring inside its query string is pipe-split
	// anyway, fragmenting what should be one item.
	items := Split("https://example.com/sub?redirect=http://other|leftover")
	assert.Greater(t, len(items), 1)
}

func TestSplit_StripsBOMAndCRLF(t *testing.T) {
	items := Split(string(rune(0xFEFF)) + "vless://a#x\r\ntrojan://b#y\r\n")
	assert.Len(t, items, 2)
	assert.Equal(t, "vless://a#x", items[0].Raw)
}

func TestParseSubscriptionInfo(t *testing.T) {
	info, ok := ParseSubscriptionInfo("upload=100; download=200; total=1000000; expire=1999999999")
	assert.True(t, ok)
	assert.Equal(t, uint64(100), info.Upload)
	assert.Equal(t, uint64(200), info.Download)
	assert.Equal(t, uint64(1000000), info.Total)
	assert.Equal(t, int64(1999999999), info.Expire)
}

func TestParseSubscriptionInfo_Empty(t *testing.T) {
	_, ok := ParseSubscriptionInfo("")
	assert.False(t, ok)
}
