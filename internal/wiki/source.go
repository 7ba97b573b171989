// Package wiki fetches the outbound links of knowledge-base pages.
//
// Two remote sources are provided: HTMLSource scrapes rendered article pages
// the way a browser sees them, and APISource asks the MediaWiki query API.
// Both share a token-bucket limiter and an injectable HTTPClient.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

var (
	// ErrPageMissing is returned when the remote site has no such page.
	ErrPageMissing = errors.New("wiki: page does not exist")

	// ErrStatus is returned for any other non-2xx response.
	ErrStatus = errors.New("wiki: unexpected response status")
)

// maxBodyBytes bounds how much of a single response is read.
const maxBodyBytes = 16 << 20

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LinkSource returns the raw outbound links of one page.
type LinkSource interface {
	Links(ctx context.Context, id string) ([]string, error)
}

// LinkSourceFunc adapts a function to LinkSource.
type LinkSourceFunc func(ctx context.Context, id string) ([]string, error)

func (f LinkSourceFunc) Links(ctx context.Context, id string) ([]string, error) {
	return f(ctx, id)
}

// Options configures the HTTP-backed sources.
type Options struct {
	Client    HTTPClient
	Limiter   *rate.Limiter
	UserAgent string
}

// NewLimiter returns a limiter allowing perSecond requests with the given
// burst. A non-positive rate disables limiting.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

type fetcher struct {
	client    HTTPClient
	limiter   *rate.Limiter
	userAgent string
}

func newFetcher(opts Options) fetcher {
	f := fetcher{client: opts.Client, limiter: opts.Limiter, userAgent: opts.UserAgent}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	return f
}

// get waits for the limiter, issues a GET and returns the body of a 2xx
// response. The caller closes the body.
func (f fetcher) get(ctx context.Context, url string, accept string) (io.ReadCloser, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("wiki: build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki: GET %s: %w", url, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrPageMissing, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s for %s", ErrStatus, resp.Status, url)
	}

	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxBodyBytes), resp.Body}, nil
}
