package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parseResponse struct {
	Input              string          `json:"input"`
	Href               string          `json:"href"`
	URL                json.RawMessage `json:"url"`
	Failure            bool            `json:"failure"`
	Error              string          `json:"error"`
	HasValidationError bool            `json:"hasValidationError"`
	ValidationErrors   []string        `json:"validationErrors"`
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getParse(t *testing.T, srv *httptest.Server, params url.Values) (int, parseResponse) {
	t.Helper()
	resp, err := http.Get(srv.URL + "/parse?" + params.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()

	var body parseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestParseGet(t *testing.T) {
	srv := newTestServer(t, Options{})

	status, body := getParse(t, srv, url.Values{"input": {"../c?q"}, "base": {"https://example.org/a/b"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://example.org/c?q", body.Href)
	assert.False(t, body.Failure)
	assert.False(t, body.HasValidationError)
}

func TestParseGetFailureIsData(t *testing.T) {
	srv := newTestServer(t, Options{})

	status, body := getParse(t, srv, url.Values{"input": {"http://example.com:99999"}})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Failure)
	assert.Empty(t, body.Href)
	assert.Contains(t, body.Error, "port-out-of-range")
}

func TestParsePostStateOverride(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Post(srv.URL+"/parse", "application/json",
		strings.NewReader(`{"input": "8080", "base": "https://example.org/x", "state": "port"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body parseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://example.org:8080/x", body.Href)
}

func TestParseBadRequests(t *testing.T) {
	srv := newTestServer(t, Options{MaxInputLength: 16})

	tests := []struct {
		name   string
		params url.Values
		want   string
	}{
		{name: "empty input", params: url.Values{}, want: "invalid argument"},
		{name: "unknown state", params: url.Values{"input": {"x"}, "base": {"http://a/"}, "state": {"nowhere"}}, want: "invalid argument"},
		{name: "state without base", params: url.Values{"input": {"x"}, "state": {"port"}}, want: "needs a base URL"},
		{name: "base failure", params: url.Values{"input": {"x"}, "base": {"not a url"}}, want: "base:"},
		{name: "oversized input", params: url.Values{"input": {"http://example.com/long"}}, want: "input too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := getParse(t, srv, tt.params)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body.Error, tt.want)
		})
	}
}

func TestParseInvalidBody(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Post(srv.URL+"/parse", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Options{})

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/parse", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, POST", resp.Header.Get("Allow"))
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, Options{RateLimit: 0.001, Burst: 2})
	params := url.Values{"input": {"http://a/"}}

	for i := 0; i < 2; i++ {
		status, _ := getParse(t, srv, params)
		assert.Equal(t, http.StatusOK, status)
	}
	status, body := getParse(t, srv, params)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate limit exceeded", body.Error)
}

func TestGetOrCreateRateLimiter(t *testing.T) {
	s := New(Options{RateLimit: 1, Burst: 1})

	l1 := s.getOrCreateRateLimiter("10.0.0.1")
	require.NotNil(t, l1)
	assert.Same(t, l1, s.getOrCreateRateLimiter("10.0.0.1"))
	assert.NotSame(t, l1, s.getOrCreateRateLimiter("10.0.0.2"))

	assert.Nil(t, New(Options{}).getOrCreateRateLimiter("10.0.0.1"))
}

func TestEvictIdleLimiters(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		idle      time.Duration
		wantKept  []string
		wantCount int
	}{
		{"all fresh", time.Minute, []string{"10.0.0.1", "10.0.0.2"}, 0},
		{"stale dropped", limiterIdleTTL, []string{"10.0.0.2"}, 1},
		{"all stale", 2 * limiterIdleTTL, nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := start
			s := New(Options{RateLimit: 1, Burst: 1})
			s.now = func() time.Time { return now }

			first := s.getOrCreateRateLimiter("10.0.0.1")
			now = now.Add(tt.idle / 2)
			s.getOrCreateRateLimiter("10.0.0.2")
			now = start.Add(tt.idle)
			if tt.wantCount == 2 {
				now = now.Add(limiterIdleTTL)
			}

			assert.Equal(t, tt.wantCount, s.evictIdle())
			s.mu.RLock()
			kept := make([]string, 0, len(s.limiters))
			for client := range s.limiters {
				kept = append(kept, client)
			}
			s.mu.RUnlock()
			assert.ElementsMatch(t, tt.wantKept, kept)

			if tt.wantCount > 0 {
				assert.NotSame(t, first, s.getOrCreateRateLimiter("10.0.0.1"), "evicted client gets a fresh limiter")
			}
		})
	}
}

func TestRequestKeepsLimiterAlive(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(Options{RateLimit: 1, Burst: 1})
	s.now = func() time.Time { return now }

	l := s.getOrCreateRateLimiter("10.0.0.1")
	now = now.Add(limiterIdleTTL - time.Second)
	assert.Same(t, l, s.getOrCreateRateLimiter("10.0.0.1"))
	now = now.Add(limiterIdleTTL - time.Second)

	assert.Zero(t, s.evictIdle())
	assert.Same(t, l, s.getOrCreateRateLimiter("10.0.0.1"))
}

func TestLimiterCapEvictsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(Options{RateLimit: 1, Burst: 1})
	s.now = func() time.Time { return now }

	for i := 0; i < maxLimiters; i++ {
		s.getOrCreateRateLimiter(fmt.Sprintf("10.%d.%d.%d", i>>16&0xff, i>>8&0xff, i&0xff))
	}
	now = now.Add(limiterIdleTTL)
	s.getOrCreateRateLimiter("192.0.2.1")

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Len(t, s.limiters, 1)
	assert.Contains(t, s.limiters, "192.0.2.1")
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, Options{Metrics: true})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, _ = getParse(t, srv, url.Values{"input": {"http://a/"}})

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	noMetrics := newTestServer(t, Options{})
	resp2, err := http.Get(noMetrics.URL + "/metrics")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func get(t *testing.T, target string) (int, string) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestServeSeparateMetricsListener(t *testing.T) {
	ln, metricsLn := listen(t), listen(t)
	s := New(Options{Metrics: true, MetricsPort: metricsLn.Addr().(*net.TCPAddr).Port})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.serve(ctx, ln, metricsLn) }()

	api := "http://" + ln.Addr().String()
	metricsURL := "http://" + metricsLn.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(api + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	status, _ := get(t, api+"/metrics")
	assert.Equal(t, http.StatusNotFound, status, "metrics move off the API listener")

	status, body := get(t, metricsURL+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "go_goroutines")

	status, body = get(t, metricsURL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	_, err := http.Get(metricsURL + "/health")
	assert.Error(t, err, "metrics listener closed on shutdown")
}

func TestListenAndServeStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(Options{Port: 0})
	assert.NoError(t, s.ListenAndServe(ctx))
}

func TestListenAndServeBadPort(t *testing.T) {
	ln := listen(t)
	defer ln.Close()

	s := New(Options{Metrics: true, MetricsPort: ln.Addr().(*net.TCPAddr).Port})
	err := s.ListenAndServe(context.Background())
	assert.ErrorContains(t, err, "failed to listen for metrics")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/parse", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(r))

	r.RemoteAddr = "unix"
	assert.Equal(t, "unix", clientIP(r))
}
