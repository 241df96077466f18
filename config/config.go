// Package config loads urlkit settings from YAML with environment overrides.
//
// Precedence, lowest first: Default, the YAML file, URLKIT_* environment
// variables, then command-line flags applied by the caller.
//
//	# urlkit.yaml
//	base: https://example.org/
//	output: json
//	serve:
//	  port: 9000
//	  rateLimit: 5
//	  metricsPort: 9100
//	conformance:
//	  cacheTTL: 12h
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/security"
	"github.com/jongio/urlkit/urlparse"
	"github.com/jongio/urlkit/urlutil"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "urlkit.yaml"

// DefaultDataURL is the upstream web-platform-tests URL test data.
const DefaultDataURL = "https://raw.githubusercontent.com/web-platform-tests/wpt/master/url/resources/urltestdata.json"

// Environment variables read by ApplyEnv.
const (
	EnvBase   = "URLKIT_BASE"
	EnvOutput = "URLKIT_OUTPUT"
	EnvDebug  = logutil.EnvDebug
	EnvPort   = "URLKIT_PORT"
)

// ErrInvalid wraps every validation failure of a Config.
var ErrInvalid = errors.New("invalid config")

// Config is the full urlkit configuration.
type Config struct {
	// Base is the default base URL for relative inputs.
	Base   string `yaml:"base"`
	Output string `yaml:"output"`
	Debug  bool   `yaml:"debug"`
	// LogLevel is debug, info, warn or error. Debug takes precedence.
	LogLevel       string      `yaml:"logLevel"`
	StructuredLogs bool        `yaml:"structuredLogs"`
	Serve          Serve       `yaml:"serve"`
	Conformance    Conformance `yaml:"conformance"`
}

// Serve configures the HTTP API.
type Serve struct {
	Port    int  `yaml:"port"`
	Metrics bool `yaml:"metrics"`
	// MetricsPort serves /metrics on its own listener when non-zero.
	MetricsPort int `yaml:"metricsPort"`
	// RateLimit is requests per second per client, 0 disables limiting.
	RateLimit      float64 `yaml:"rateLimit"`
	Burst          int     `yaml:"burst"`
	MaxInputLength int     `yaml:"maxInputLength"`
}

// Conformance configures fetching of the web-platform-tests data.
type Conformance struct {
	DataURL  string        `yaml:"dataURL"`
	CacheDir string        `yaml:"cacheDir"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cacheDir := filepath.Join(os.TempDir(), "urlkit")
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "urlkit")
	}
	return &Config{
		Output: "default",
		Serve: Serve{
			Port:           8080,
			Metrics:        true,
			RateLimit:      20,
			Burst:          40,
			MaxInputLength: 8192,
		},
		Conformance: Conformance{
			DataURL:  DefaultDataURL,
			CacheDir: cacheDir,
			CacheTTL: 24 * time.Hour,
			Timeout:  30 * time.Second,
			Retries:  3,
		},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path means DefaultFile. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	if err := security.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("config path: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 -- validated above
	switch {
	case errors.Is(err, os.ErrNotExist):
		logutil.Debug("no config file, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := security.ValidateFilePermissions(path); err != nil {
			logutil.Warn("config file permissions", "error", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if d := cfg.Conformance.DataURL; d != "" && !strings.Contains(d, "://") {
		cfg.Conformance.DataURL = urlutil.NormalizeScheme(cfg.Conformance.DataURL, "https")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the URLKIT_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBase); ok && v != "" {
		c.Base = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvDebug, v, err)
		}
		c.Debug = debug
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvPort, v, err)
		}
		c.Serve.Port = port
	}
	return nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case c.Output != "default" && c.Output != "json":
		return fmt.Errorf("%w: output must be default or json, got %q", ErrInvalid, c.Output)
	case c.Serve.Port < 0 || c.Serve.Port > 65535:
		return fmt.Errorf("%w: serve.port %d out of range", ErrInvalid, c.Serve.Port)
	case c.Serve.MetricsPort < 0 || c.Serve.MetricsPort > 65535:
		return fmt.Errorf("%w: serve.metricsPort %d out of range", ErrInvalid, c.Serve.MetricsPort)
	case c.Serve.MetricsPort != 0 && c.Serve.MetricsPort == c.Serve.Port:
		return fmt.Errorf("%w: serve.metricsPort must differ from serve.port", ErrInvalid)
	case !validLogLevel(c.LogLevel):
		return fmt.Errorf("%w: logLevel must be debug, info, warn or error, got %q", ErrInvalid, c.LogLevel)
	case c.Serve.RateLimit < 0:
		return fmt.Errorf("%w: serve.rateLimit must not be negative", ErrInvalid)
	case c.Serve.RateLimit > 0 && c.Serve.Burst < 1:
		return fmt.Errorf("%w: serve.burst must be at least 1 when rate limiting", ErrInvalid)
	case c.Conformance.Retries < 0:
		return fmt.Errorf("%w: conformance.retries must not be negative", ErrInvalid)
	}
	if c.Base != "" {
		if _, err := urlparse.Parse(c.Base, nil); err != nil {
			return fmt.Errorf("%w: base: %w", ErrInvalid, err)
		}
	}
	if err := urlutil.ValidateHTTPSOnly(c.Conformance.DataURL); err != nil {
		return fmt.Errorf("%w: conformance.dataURL: %w", ErrInvalid, err)
	}
	return nil
}

func validLogLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
