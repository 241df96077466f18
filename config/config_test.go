package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/urlkit/testutil"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBase, EnvOutput, EnvDebug, EnvPort} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "urlkit.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Serve, cfg.Serve)
	assert.Equal(t, DefaultDataURL, cfg.Conformance.DataURL)
	assert.Equal(t, "default", cfg.Output)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	clearEnv(t)
	path := testutil.WriteFile(t, t.TempDir(), "urlkit.yaml", `
base: https://example.org/
output: json
serve:
  port: 9000
  rateLimit: 5
conformance:
  cacheTTL: 12h
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/", cfg.Base)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 9000, cfg.Serve.Port)
	assert.Equal(t, 5.0, cfg.Serve.RateLimit)
	assert.Equal(t, 40, cfg.Serve.Burst, "unset fields keep defaults")
	assert.True(t, cfg.Serve.Metrics)
	assert.Equal(t, 12*time.Hour, cfg.Conformance.CacheTTL)
	assert.Equal(t, 3, cfg.Conformance.Retries)
}

func TestLoadNormalizesDataURL(t *testing.T) {
	tests := []struct {
		name    string
		dataURL string
		want    string
	}{
		{"scheme added", "example.com/urltestdata.json", "https://example.com/urltestdata.json"},
		{"https kept", "https://example.com/d.json", "https://example.com/d.json"},
		{"localhost http kept", "http://localhost:8080/d.json", "http://localhost:8080/d.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := testutil.WriteFile(t, t.TempDir(), "urlkit.yaml",
				"conformance:\n  dataURL: "+tt.dataURL+"\n")
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Conformance.DataURL)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(testutil.WriteFile(t, dir, "bad.yaml", "serve: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(testutil.WriteFile(t, dir, "range.yaml", "serve:\n  port: 70000\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load("../urlkit.yaml")
	assert.ErrorContains(t, err, "config path")
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := testutil.WriteFile(t, t.TempDir(), "urlkit.yaml", "output: json\nserve:\n  port: 9000\n")
	t.Setenv(EnvOutput, "default")
	t.Setenv(EnvPort, "9100")
	t.Setenv(EnvBase, "http://base/")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Output)
	assert.Equal(t, 9100, cfg.Serve.Port)
	assert.Equal(t, "http://base/", cfg.Base)
	assert.True(t, cfg.Debug)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	env := map[string]string{EnvPort: "eighty"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	err := Default().ApplyEnv(lookup)
	assert.ErrorIs(t, err, ErrInvalid)

	env = map[string]string{EnvDebug: "maybe"}
	assert.ErrorIs(t, Default().ApplyEnv(lookup), ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"output", func(c *Config) { c.Output = "xml" }},
		{"negative port", func(c *Config) { c.Serve.Port = -1 }},
		{"negative rate", func(c *Config) { c.Serve.RateLimit = -1 }},
		{"zero burst", func(c *Config) { c.Serve.Burst = 0 }},
		{"negative retries", func(c *Config) { c.Conformance.Retries = -1 }},
		{"relative base", func(c *Config) { c.Base = "/no/scheme" }},
		{"plain http data", func(c *Config) { c.Conformance.DataURL = "http://example.com/data.json" }},
		{"data scheme", func(c *Config) { c.Conformance.DataURL = "ftp://example.com/data.json" }},
		{"metrics port range", func(c *Config) { c.Serve.MetricsPort = 70000 }},
		{"metrics port clash", func(c *Config) { c.Serve.MetricsPort = c.Serve.Port }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	require.NoError(t, Default().Validate())

	local := Default()
	local.Conformance.DataURL = "http://127.0.0.1:8080/urltestdata.json"
	require.NoError(t, local.Validate())

	leveled := Default()
	leveled.LogLevel = "WARN"
	leveled.Serve.MetricsPort = 9100
	require.NoError(t, leveled.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
