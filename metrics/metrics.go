// Package metrics exports Prometheus instrumentation for URL parsing.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jongio/urlkit/urlparse"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
)

var (
	parseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "urlkit_parse_duration_seconds",
			Help:    "Duration of URL parses in seconds",
			Buckets: []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .005, .01},
		},
		[]string{"source", "outcome"},
	)

	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlkit_parse_total",
			Help: "Total number of URL parses",
		},
		[]string{"source", "outcome"},
	)

	validationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlkit_validation_errors_total",
			Help: "Validation errors recorded while parsing, by name",
		},
		[]string{"source", "error"},
	)

	hostKinds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlkit_host_kind_total",
			Help: "Hosts of successfully parsed URLs, by kind",
		},
		[]string{"source", "kind"},
	)

	rateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlkit_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"source"},
	)

	conformanceCases = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "urlkit_conformance_cases",
			Help: "Cases of the last conformance run, by result",
		},
		[]string{"result"},
	)
)

// RecordParse records a finished machine. source names the caller, such as
// "server" or "mcp".
func RecordParse(source string, m *urlparse.Machine, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if m.Failed() {
		outcome = OutcomeFailure
	} else {
		hostKinds.WithLabelValues(source, m.URL().Host.Kind().String()).Inc()
	}
	parseDuration.WithLabelValues(source, outcome).Observe(elapsed.Seconds())
	parseTotal.WithLabelValues(source, outcome).Inc()

	for _, err := range m.ValidationErrors() {
		validationErrors.WithLabelValues(source, errorName(err)).Inc()
	}
}

// errorName strips wrapping context, so "IPv4-out-of-range-part: final part
// 300 does not fit" is counted as IPv4-out-of-range-part.
func errorName(err error) string {
	for {
		var next error
		switch e := err.(type) {
		case interface{ Unwrap() []error }:
			if errs := e.Unwrap(); len(errs) > 0 {
				next = errs[0]
			}
		default:
			next = errors.Unwrap(err)
		}
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// RecordInvalid counts a request rejected before parsing.
func RecordInvalid(source string) {
	parseTotal.WithLabelValues(source, OutcomeInvalid).Inc()
}

// RecordRateLimited counts a request rejected by a rate limiter.
func RecordRateLimited(source string) {
	rateLimited.WithLabelValues(source).Inc()
}

// RecordConformance publishes the totals of a conformance run.
func RecordConformance(passed, failed, skipped int) {
	conformanceCases.WithLabelValues("pass").Set(float64(passed))
	conformanceCases.WithLabelValues("fail").Set(float64(failed))
	conformanceCases.WithLabelValues("skip").Set(float64(skipped))
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// NewServer returns a standalone server exposing /metrics and /health.
func NewServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
