package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/erpdesk/internal/paths"
)

// cliEnv runs the CLI against throwaway config and data directories.
type cliEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

type result struct {
	Stdout string
	Stderr string
	Code   int
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	for _, key := range []string{paths.EnvConfigDir, paths.EnvDataDir, paths.EnvAPIURL, envToken} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	return &cliEnv{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

func (e *cliEnv) run(args ...string) result {
	e.t.Helper()
	args = append(args, "--config-dir="+e.configDir, "--data-dir="+e.dataDir)
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return result{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}
}

func (e *cliEnv) mustRun(args ...string) result {
	e.t.Helper()
	r := e.run(args...)
	require.Equal(e.t, exitSuccess, r.Code, "erpdesk %v failed: %s", args, r.Stderr)
	return r
}

func (e *cliEnv) seeded() *cliEnv {
	e.t.Helper()
	e.mustRun("seed")
	return e
}

func (e *cliEnv) writeConfig(yaml string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(paths.ConfigFile(e.configDir), []byte(yaml), 0o644))
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}
