package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_URLSourcedLinesPrecedeInlineContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("vless://8f1e0000-0000-0000-0000-000000000000@1.1.1.1:443?type=tcp#fromurl"))
	}))
	defer srv.Close()

	blob := "trojan://pw@2.2.2.2:443#inline\n" + srv.URL
	fetcher := NewFetcher(2*time.Second, "")
	result, err := Resolve(context.Background(), blob, fetcher)
	require.NoError(t, err)

	idxURL := strings.Index(result.Body, "fromurl")
	idxInline := strings.Index(result.Body, "inline")
	require.GreaterOrEqual(t, idxURL, 0)
	require.GreaterOrEqual(t, idxInline, 0)
	assert.Less(t, idxURL, idxInline, "expected URL-sourced content before inline content, got:\n%s", result.Body)
}
