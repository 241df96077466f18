// Package server exposes the URL parser over HTTP.
//
//	GET  /parse?input=../x&base=https://example.org/a/b
//	POST /parse {"input": "8080", "base": "https://example.org/", "state": "port"}
//
// Both return a urlparse.Result. A parse failure is a 200 response with
// "failure": true; 400 is reserved for requests that cannot be run at all.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/metrics"
	"github.com/jongio/urlkit/security"
	"github.com/jongio/urlkit/urlparse"
)

const (
	source          = "server"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second

	// limiterIdleTTL is how long a client's limiter survives without requests.
	limiterIdleTTL = 10 * time.Minute
	sweepInterval  = time.Minute
	// maxLimiters triggers an immediate sweep when a new client would exceed it.
	maxLimiters = 10000
)

// Options configures a Server.
type Options struct {
	Port int
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64
	Burst     int
	// MaxInputLength bounds input and base in bytes. Zero disables the check.
	MaxInputLength int
	Metrics        bool
	// MetricsPort moves /metrics to a separate listener when non-zero.
	MetricsPort int
}

// Server serves /parse, /health and optionally /metrics.
type Server struct {
	opts     Options
	logger   *logutil.ComponentLogger
	now      func() time.Time
	mu       sync.RWMutex
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter *rate.Limiter
	// lastSeen is in unix nanoseconds.
	lastSeen atomic.Int64
}

// New returns a Server.
func New(opts Options) *Server {
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &Server{
		opts:     opts,
		logger:   logutil.NewLogger("server"),
		now:      time.Now,
		limiters: make(map[string]*clientLimiter),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/parse", s.handleParse)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if s.opts.Metrics && s.opts.MetricsPort == 0 {
		mux.Handle("/metrics", metrics.Handler())
	}
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// With Metrics and a MetricsPort, /metrics is served by metrics.NewServer on
// that port for the same lifetime.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.opts.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	var metricsLn net.Listener
	if s.opts.Metrics && s.opts.MetricsPort > 0 {
		metricsLn, err = net.Listen("tcp", fmt.Sprintf(":%d", s.opts.MetricsPort))
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to listen for metrics: %w", err)
		}
	}
	return s.serve(ctx, ln, metricsLn)
}

// serve runs the API on ln, and the metrics server on metricsLn when it is
// not nil, until ctx is cancelled.
func (s *Server) serve(ctx context.Context, ln, metricsLn net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	servers := []*http.Server{srv}

	errs := make(chan error, 2)
	if metricsLn != nil {
		metricsSrv := metrics.NewServer(s.opts.MetricsPort)
		servers = append(servers, metricsSrv)
		s.logger.Info("serving metrics", "addr", metricsLn.Addr().String())
		go func() {
			if err := metricsSrv.Serve(metricsLn); !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	go s.sweepLimiters(ctx)

	done := make(chan error, 1)
	go func() {
		var shutdownErr error
		select {
		case <-ctx.Done():
		case shutdownErr = <-errs:
			s.logger.Error("shutting down", "error", shutdownErr)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			shutdownErr = errors.Join(shutdownErr, srv.Shutdown(shutdownCtx))
		}
		done <- shutdownErr
	}()

	s.logger.Info("listening", "addr", ln.Addr().String(), "metrics", s.opts.Metrics)
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if !s.allow(clientIP(r)) {
		metrics.RecordRateLimited(source)
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req urlparse.Request
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req = urlparse.Request{Input: q.Get("input"), Base: q.Get("base"), State: q.Get("state")}
	case http.MethodPost:
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			metrics.RecordInvalid(source)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.validate(req); err != nil {
		metrics.RecordInvalid(source)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	m, err := req.Run()
	if err != nil {
		metrics.RecordInvalid(source)
		s.logger.Debug("rejected request", "input", req.Input, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.RecordParse(source, m, time.Since(start))
	s.logger.Debug("parsed", "input", req.Input, "failure", m.Failed(), "validationErrors", len(m.ValidationErrors()))

	writeJSON(w, http.StatusOK, m.Result())
}

func (s *Server) validate(req urlparse.Request) error {
	if err := security.ValidateInput("input", req.Input, s.opts.MaxInputLength); err != nil {
		return err
	}
	return security.ValidateInput("base", req.Base, s.opts.MaxInputLength)
}

func (s *Server) allow(client string) bool {
	limiter := s.getOrCreateRateLimiter(client)
	return limiter == nil || limiter.Allow()
}

// getOrCreateRateLimiter returns the limiter for a client, or nil when
// limiting is disabled. It marks the client as seen.
func (s *Server) getOrCreateRateLimiter(client string) *rate.Limiter {
	if s.opts.RateLimit <= 0 {
		return nil
	}
	now := s.now().UnixNano()

	s.mu.RLock()
	cl, exists := s.limiters[client]
	s.mu.RUnlock()
	if exists {
		cl.lastSeen.Store(now)
		return cl.limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cl, exists := s.limiters[client]; exists {
		cl.lastSeen.Store(now)
		return cl.limiter
	}
	if len(s.limiters) >= maxLimiters {
		s.evictIdleLocked(now)
	}
	cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(s.opts.RateLimit), s.opts.Burst)}
	cl.lastSeen.Store(now)
	s.limiters[client] = cl
	return cl.limiter
}

// sweepLimiters evicts idle limiters every sweepInterval until ctx is done.
func (s *Server) sweepLimiters(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				s.logger.Debug("evicted idle rate limiters", "count", n)
			}
		}
	}
}

// evictIdle drops limiters unused for limiterIdleTTL and returns how many.
func (s *Server) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked(s.now().UnixNano())
}

// evictIdleLocked is evictIdle with s.mu held.
func (s *Server) evictIdleLocked(now int64) int {
	cutoff := now - int64(limiterIdleTTL)
	n := 0
	for client, cl := range s.limiters {
		if cl.lastSeen.Load() <= cutoff {
			delete(s.limiters, client)
			n++
		}
	}
	return n
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logutil.Debug("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
