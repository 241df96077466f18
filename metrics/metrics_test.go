package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/urlkit/host"
	"github.com/jongio/urlkit/urlparse"
)

func scrape(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func parse(t *testing.T, input string) *urlparse.Machine {
	t.Helper()
	m, err := urlparse.New(input, nil)
	require.NoError(t, err)
	return m
}

func TestRecordParse(t *testing.T) {
	RecordParse("test-parse", parse(t, "http://0x7f.1/"), time.Microsecond)
	RecordParse("test-parse", parse(t, "http://[::1"), time.Microsecond)

	body := scrape(t)
	assert.Contains(t, body, `urlkit_parse_total{outcome="success",source="test-parse"} 1`)
	assert.Contains(t, body, `urlkit_parse_total{outcome="failure",source="test-parse"} 1`)
	assert.Contains(t, body, `urlkit_host_kind_total{kind="ipv4",source="test-parse"} 1`)
	assert.Contains(t, body, `urlkit_validation_errors_total{error="IPv4-non-decimal-part",source="test-parse"} 1`)
	assert.Contains(t, body, `urlkit_validation_errors_total{error="IPv6-unclosed",source="test-parse"} 1`)
	assert.Contains(t, body, `urlkit_parse_duration_seconds_count{outcome="success",source="test-parse"} 1`)
}

func TestRecordCounters(t *testing.T) {
	RecordInvalid("test-counters")
	RecordRateLimited("test-counters")
	RecordConformance(10, 2, 1)

	body := scrape(t)
	assert.Contains(t, body, `urlkit_parse_total{outcome="invalid",source="test-counters"} 1`)
	assert.Contains(t, body, `urlkit_rate_limited_total{source="test-counters"} 1`)
	assert.Contains(t, body, `urlkit_conformance_cases{result="pass"} 10`)
	assert.Contains(t, body, `urlkit_conformance_cases{result="fail"} 2`)
	assert.Contains(t, body, `urlkit_conformance_cases{result="skip"} 1`)
}

func TestErrorName(t *testing.T) {
	wrapped := fmt.Errorf("%w: final part 300 does not fit", host.ErrIPv4OutOfRangePart)
	assert.Equal(t, "IPv4-out-of-range-part", errorName(wrapped))
	assert.Equal(t, "plain", errorName(errors.New("plain")))

	double := fmt.Errorf("%w: %w", host.ErrDomainToASCII, errors.New("idna: invalid label"))
	assert.Equal(t, "domain-to-ASCII", errorName(double))
}

func TestNewServer(t *testing.T) {
	srv := NewServer(9999)
	assert.Equal(t, ":9999", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
