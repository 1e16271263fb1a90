// Tests for the SQLite backend lifecycle.
package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	tmpDir := t.TempDir()
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, tmpDir
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, dbFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", dbFileName)
	}

	// Verify double attach fails
	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	if got := b.DataDir(); got != tmpDir {
		t.Errorf("DataDir() = %q, want %q", got, tmpDir)
	}

	b.Detach()
}

func TestBackend_AttachRejectsRESTConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendREST, APIURL: "http://localhost"})
	if !errors.Is(err, types.ErrBackendUnknown) {
		t.Fatalf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	if err := b.Attach(types.Config{}); !errors.Is(err, types.ErrBackendEmpty) {
		t.Fatalf("expected ErrBackendEmpty, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	b.Attach(config)

	err := b.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	err = b.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	_, err = b.Fetch(context.Background(), types.EntityPurchaseOrders)
	if err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
	if err := b.Seed(context.Background()); err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached from Seed, got %v", err)
	}
}

func TestBackend_ReattachReloadsJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	id, err := b.Create(ctx, types.EntityLanguages, types.Record{"code": "fr", "name": "Français"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b.Detach()

	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("second Attach failed: %v", err)
	}
	defer b2.Detach()

	got, err := b2.Get(ctx, types.EntityLanguages, id)
	if err != nil {
		t.Fatalf("Get after reattach failed: %v", err)
	}
	if got["name"] != "Français" {
		t.Errorf("name = %v, want Français", got["name"])
	}
}
