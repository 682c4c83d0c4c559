package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wallace/localsub/internal/convertererror"
)

// DefaultUserAgent identifies this client as a Clash-family client, which
// coaxes many subscription servers into returning Clash-compatible bodies
// instead of a generic plaintext list (spec.md §4.1).
const DefaultUserAgent = "ClashMetaForAndroid/2.11.5.Meta"

const subscriptionUserinfoHeader = "subscription-userinfo"

// Fetcher performs the concurrent HTTP fetch fan-out of S1, scoped to one
// convert call.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher builds a resty client with the given per-request timeout and
// user-agent, grounded on SPEC_FULL.md §4.1's choice of resty over a bare
// net/http.Client for timeout/header-inspection ergonomics.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Fetcher{client: client}
}

// fetchOutcome is one URL's fan-out result, addressed by source index so
// completion order never disturbs the caller-visible ordering guarantee.
type fetchOutcome struct {
	body    string
	info    *SubscriptionInfo
	err     error
	timeout bool
}

// FetchAll issues one request per URL concurrently — all issued before any
// result is awaited — and returns results indexed identically to urls.
// A sync.WaitGroup over a pre-sized slice is used rather than an errgroup:
// fetch failures here are recoverable (turned into warnings by the
// caller), not fail-fast, so there is nothing for an errgroup's
// first-error cancellation to buy.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []fetchOutcome {
	results := make([]fetchOutcome, len(urls))
	var wg sync.WaitGroup
	wg.Add(len(urls))
	for i, u := range urls {
		go func(idx int, url string) {
			defer wg.Done()
			results[idx] = f.fetchOne(ctx, url)
		}(i, u)
	}
	wg.Wait()
	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) fetchOutcome {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if ctx.Err() != nil || isTimeoutErr(err) {
			return fetchOutcome{err: convertererror.Timeout(url), timeout: true}
		}
		return fetchOutcome{err: convertererror.Fetch(url, err)}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fetchOutcome{err: convertererror.Fetch(url, fmt.Errorf("http status %d", resp.StatusCode()))}
	}
	var info *SubscriptionInfo
	if header := resp.Header().Get(subscriptionUserinfoHeader); header != "" {
		if parsed, ok := ParseSubscriptionInfo(header); ok {
			info = &parsed
		}
	}
	return fetchOutcome{body: resp.String(), info: info}
}

func isTimeoutErr(err error) bool {
	type timeouter interface{ Timeout() bool }
	if te, ok := err.(timeouter); ok {
		return te.Timeout()
	}
	return false
}

// FetchOne fetches a single URL and returns its raw body, for the
// fetch_url operation (SPEC_FULL.md §6).
func (f *Fetcher) FetchOne(ctx context.Context, url string) (string, error) {
	outcome := f.fetchOne(ctx, url)
	if outcome.err != nil {
		return "", outcome.err
	}
	return outcome.body, nil
}
