package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/urlkit/cliout"
)

func TestNewDefaults(t *testing.T) {
	info := New("urlkit")
	assert.Equal(t, "urlkit", info.Name)
	assert.Equal(t, "0.0.0-dev", info.Version)
	assert.Equal(t, "unknown", info.GitCommit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfoString(t *testing.T) {
	info := &Info{Name: "urlkit", Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-01"}
	assert.Equal(t, "urlkit version 1.2.3 (commit: abc123, built: 2026-01-01)", info.String())
}

func run(t *testing.T, info *Info, format string, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(cliout.SetOutput(&buf))
	require.NoError(t, cliout.SetFormat(format))
	t.Cleanup(func() { _ = cliout.SetFormat("default") })

	cmd := NewCommand(info)
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestCommandDefault(t *testing.T) {
	out := run(t, &Info{Name: "urlkit", Version: "1.2.3", GitCommit: "abc"}, "default")
	assert.Contains(t, out, "urlkit Version")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc")
}

func TestCommandQuiet(t *testing.T) {
	out := run(t, &Info{Name: "urlkit", Version: "1.2.3"}, "default", "--quiet")
	assert.Equal(t, "1.2.3\n", out)
}

func TestCommandJSON(t *testing.T) {
	out := run(t, &Info{Name: "urlkit", Version: "1.2.3"}, "json", "-q")

	var got Info
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1.2.3", got.Version)
	assert.Equal(t, "urlkit", got.Name)
}
