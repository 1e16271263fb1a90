// Tests for JSONL persistence.
package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

func TestReadJSONLMissingFile(t *testing.T) {
	records, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.jsonl")
	content := strings.Join([]string{
		`{"id":1,"name":"Administrateurs"}`,
		``,
		`{not json`,
		`[1,2,3]`,
		`null`,
		`{"id":2,"name":"Acheteurs"}`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Acheteurs", records[1]["name"])
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "languages.jsonl")

	lines := []json.RawMessage{
		json.RawMessage(`{"id":1,"code":"fr"}`),
		json.RawMessage(`{"id":2,"code":"en"}`),
	}
	require.NoError(t, writeJSONL(path, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1,\"code\":\"fr\"}\n{\"id\":2,\"code\":\"en\"}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file is left behind")
}

func TestMutationsPersistToJSONL(t *testing.T) {
	b, dir := attachTemp(t)
	ctx := context.Background()

	id, err := b.Create(ctx, types.EntityCountries, types.Record{"code": "FR", "name": "France"})
	require.NoError(t, err)

	records, err := readJSONL(jsonlFile(dir, types.EntityCountries))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0]["id"])

	require.NoError(t, b.Delete(ctx, types.EntityCountries, id))
	records, err = readJSONL(jsonlFile(dir, types.EntityCountries))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadSkipsRecordsWithoutID(t *testing.T) {
	dir := t.TempDir()
	content := `{"id":1,"name":"Euro"}` + "\n" + `{"name":"orphan"}` + "\n" + `{"id":1,"name":"duplicate"}` + "\n"
	require.NoError(t, os.WriteFile(jsonlFile(dir, types.EntityCurrencies), []byte(content), 0o644))

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	records, err := b.Fetch(context.Background(), types.EntityCurrencies)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Euro", records[0]["name"], "first occurrence wins")
}
