package conformance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/jongio/urlkit/cache"
	"github.com/jongio/urlkit/logutil"
)

// maxDocumentSize bounds the downloaded document.
const maxDocumentSize = 32 << 20

// FetchOptions configures a Fetcher.
type FetchOptions struct {
	Retries int
	Timeout time.Duration
	// RetryWaitMin and RetryWaitMax bound the backoff between attempts. Zero
	// keeps the retryablehttp defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *logutil.ComponentLogger
}

// Fetcher downloads urltestdata.json, consulting a cache first.
type Fetcher struct {
	url    string
	cache  *cache.Manager
	client *retryablehttp.Client
}

// NewFetcher returns a Fetcher for dataURL. c may be nil to disable caching.
func NewFetcher(dataURL string, c *cache.Manager, opts FetchOptions) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.Retries
	client.Logger = nil
	if opts.Logger != nil {
		client.Logger = opts.Logger
	}
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	return &Fetcher{url: dataURL, cache: c, client: client}
}

// Fetch returns the decoded cases, from the cache when a fresh copy exists.
func (f *Fetcher) Fetch(ctx context.Context) ([]Case, error) {
	if f.cache != nil {
		var doc json.RawMessage
		ok, err := f.cache.Get(f.url, &doc)
		if err != nil {
			logutil.Warn("ignoring unreadable conformance cache", "error", err)
		}
		if ok {
			logutil.Debug("conformance data from cache", "url", f.url)
			return Decode(doc)
		}
	}

	data, err := f.download(ctx)
	if err != nil {
		return nil, err
	}
	cases, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(f.url, json.RawMessage(data)); err != nil {
			logutil.Warn("failed to cache conformance data", "error", err)
		}
	}
	return cases, nil
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", f.url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.url, err)
	}
	return data, nil
}
