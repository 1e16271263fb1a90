// Shared helpers for erpdesk CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/erpdesk/internal/pages"
	"github.com/mesh-intelligence/erpdesk/pkg/erpdesk"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userErr(err error) error { return &exitError{code: exitUserError, err: err} }
func sysErr(err error) error  { return &exitError{code: exitSysError, err: err} }

// userSentinels are the errors caused by what the user typed.
var userSentinels = []error{
	types.ErrPageNotFound,
	types.ErrEntityNotFound,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrUnknownCriterion,
	types.ErrInvalidPageSize,
	types.ErrNotLoggedIn,
	types.ErrInvalidToken,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrAPIURLEmpty,
}

// exitCode maps an error to the process exit code: an explicit code wins,
// then user sentinels map to 1, and everything else is a system error.
func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	for _, s := range userSentinels {
		if errors.Is(err, s) {
			return exitUserError
		}
	}
	return exitSysError
}

// userArgs marks argument validation failures as user errors.
func userArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return userErr(err)
		}
		return nil
	}
}

// openBackend opens the configured backend with the stored session. The
// caller must Close it.
func (a *app) openBackend() (erpdesk.Backend, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	sess, err := a.sessions().Load()
	if err != nil {
		a.logger.Warn("ignoring unreadable session", "err", err)
	}
	b, err := erpdesk.Open(cfg, erpdesk.Options{Session: sess, Logger: a.logger})
	if err != nil {
		if exitCode(err) == exitUserError {
			return nil, err
		}
		return nil, sysErr(fmt.Errorf("open backend: %w", err))
	}
	a.logger.Debug("backend opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return b, nil
}

// resolveEntity accepts a page name or a raw entity name.
func resolveEntity(name string) (string, error) {
	if types.IsStandardEntity(name) {
		return name, nil
	}
	p, err := pages.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("unknown entity %q (valid: %s): %w",
			name, strings.Join(types.StandardEntities, ", "), types.ErrEntityNotFound)
	}
	return p.Entity, nil
}

// parseRecord decodes a JSON object argument into a record.
func parseRecord(arg string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(arg), &rec); err != nil || rec == nil {
		return nil, fmt.Errorf("parse record %q: expected a JSON object: %w", arg, types.ErrInvalidData)
	}
	return rec, nil
}

// findRecord returns the record in recs whose identifier is id.
func findRecord(recs []types.Record, id string) (types.Record, bool) {
	for _, r := range recs {
		if rid, ok := r.ID(types.DefaultIDField); ok && rid == id {
			return r, true
		}
	}
	return nil, false
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
