package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv returns a lookup over vars plus a config path that does not exist,
// so the developer's own config never leaks into a test.
func testEnv(t *testing.T, vars map[string]string) func(string) (string, bool) {
	t.Helper()
	env := map[string]string{
		"NODE_SHIM_CONFIG": filepath.Join(t.TempDir(), "missing.yaml"),
	}
	for k, v := range vars {
		env[k] = v
	}
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func runShim(t *testing.T, vars map[string]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, testEnv(t, vars))
	return code, stdout.String(), stderr.String()
}

var debugMode = map[string]string{"NODE_SHIM_DEBUG": ""}

func TestRun_DebugDumpScript(t *testing.T) {
	t.Parallel()

	// --- Act ---
	code, stdout, stderr := runShim(t, debugMode, "foo.js", "--flag")

	// --- Assert ---
	require.Equal(t, 0, code, "stderr=%q", stderr)
	assert.Empty(t, stdout)
	assert.Equal(t,
		`deno ["node", "run", "-A", "--unstable-node-globals", "--unstable-bare-node-builtins", "--unstable-detect-cjs", "--node-modules-dir=manual", "--no-config", "foo.js", "--flag"]`+"\n",
		stderr)
}

func TestRun_DebugDumpREPL(t *testing.T) {
	t.Parallel()

	code, _, stderr := runShim(t, debugMode)

	require.Equal(t, 0, code)
	assert.Equal(t, `deno ["node", "repl", "-A", "--"]`+"\n", stderr)
}

func TestRun_DebugDumpIncludesCAStore(t *testing.T) {
	t.Parallel()

	code, _, stderr := runShim(t, debugMode, "--use-openssl-ca", "-v")

	require.Equal(t, 0, code)
	assert.Equal(t, `deno ["node", "--version"]`+"\nDENO_TLS_CA_STORE=system\n", stderr)
}

func TestRun_DebugDumpUsesConfiguredBinaryName(t *testing.T) {
	t.Parallel()

	code, _, stderr := runShim(t, map[string]string{"NODE_SHIM_DEBUG": "1", "NODE_SHIM_DENO": "deno-canary"}, "-v")

	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stderr, "deno-canary ["), "stderr=%q", stderr)
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runShim(t, nil, "--help", "--version")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "translates Node CLI arguments to Deno CLI arguments")
	assert.Contains(t, stdout, "--inspect-brk")
	assert.Contains(t, stdout, "NODE_SHIM_DEBUG")
}

func TestRun_SingleParseError(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runShim(t, debugMode, "--frobnicate", "main.js")

	require.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error:")
	assert.Contains(t, stderr, "bad option: --frobnicate")
	assert.NotContains(t, stderr, "deno [", "no translation after a parse error")
}

func TestRun_ParseErrorsCombined(t *testing.T) {
	t.Parallel()

	code, _, stderr := runShim(t, debugMode, "--frobnicate", "--run")

	require.Equal(t, 1, code)
	assert.Contains(t, stderr, "Errors:")
	assert.Contains(t, stderr, "bad option: --frobnicate, --run requires an argument")
}

func TestRun_MissingRuntime(t *testing.T) {
	t.Parallel()

	code, _, stderr := runShim(t, map[string]string{"NODE_SHIM_DENO": "node-shim-no-such-runtime-binary"}, "main.js")

	require.Equal(t, 1, code)
	assert.Contains(t, stderr, "Failed to execute node-shim-no-such-runtime-binary")
}

func TestRun_BadConfig(t *testing.T) {
	t.Parallel()

	code, _, stderr := runShim(t, map[string]string{"NODE_SHIM_LOG_LEVEL": "loud"}, "main.js")

	require.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid log level")
}
