package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/erpdesk/internal/paths"
	"github.com/mesh-intelligence/erpdesk/pkg/erpdesk"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	r := env.mustRun("version")
	assert.Equal(t, "erpdesk "+erpdesk.Version+"\n", r.Stdout)
}

func TestInitWritesDefaults(t *testing.T) {
	env := newCLIEnv(t)
	r := env.mustRun("init")

	assert.Contains(t, r.Stdout, "erpdesk initialized")
	assert.Contains(t, r.Stdout, env.dataDir)

	data, err := os.ReadFile(paths.ConfigFile(env.configDir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")

	_, err = os.Stat(env.dataDir)
	assert.NoError(t, err, "data directory created")
}

func TestInitKeepsExistingConfig(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig("backend: sqlite\npage_size: 25\n")
	env.mustRun("init")

	data, err := os.ReadFile(paths.ConfigFile(env.configDir))
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\npage_size: 25\n", string(data))
}

func TestPages(t *testing.T) {
	env := newCLIEnv(t)
	r := env.mustRun("pages")
	assert.Contains(t, r.Stdout, "bons-commande")
	assert.Contains(t, r.Stdout, "purchase_orders")

	infos := parseJSON[[]pageInfo](t, env.mustRun("pages", "--json").Stdout)
	assert.Len(t, infos, 12)
	assert.Equal(t, "bons-commande", infos[0].Name)
	assert.Equal(t, []string{"state"}, infos[0].Criteria)
}

func TestUnknownCommandIsUserError(t *testing.T) {
	env := newCLIEnv(t)
	r := env.run("frobnicate")
	assert.Equal(t, exitUserError, r.Code)
	assert.Contains(t, r.Stderr, "unknown command")

	r = env.run("list")
	assert.Equal(t, exitUserError, r.Code, "missing argument")

	r = env.run("list", "devises", "--bogus")
	assert.Equal(t, exitUserError, r.Code, "unknown flag")
}

func TestUnknownBackendIsUserError(t *testing.T) {
	env := newCLIEnv(t)
	r := env.run("list", "devises", "--backend", "mongo")
	assert.Equal(t, exitUserError, r.Code)
	assert.Contains(t, r.Stderr, types.ErrBackendUnknown.Error())

	r = env.run("list", "devises", "--backend", "rest")
	assert.Equal(t, exitUserError, r.Code)
	assert.Contains(t, r.Stderr, "api_url")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"page not found", fmt.Errorf("x: %w", types.ErrPageNotFound), exitUserError},
		{"not found", fmt.Errorf("x: %w", types.ErrNotFound), exitUserError},
		{"explicit user", userErr(errors.New("bad")), exitUserError},
		{"explicit system", sysErr(fmt.Errorf("x: %w", types.ErrNotFound)), exitSysError},
		{"mutation failure", types.ErrMutationFailed, exitSysError},
		{"plain", errors.New("disk on fire"), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestInvalidLogLevelWarns(t *testing.T) {
	env := newCLIEnv(t)
	r := env.mustRun("pages", "--log-level", "chatty")
	assert.True(t, strings.Contains(r.Stderr, "invalid log level"), "stderr: %s", r.Stderr)
}
