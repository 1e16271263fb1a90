// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// loadAllJSONL reads the JSONL file of every standard entity from dataDir
// and inserts the records into SQLite. Loading is transactional: all succeed
// or the database remains empty. Lines without an identifier and duplicate
// identifiers are skipped; the first occurrence wins.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO records (entity, record_id, seq, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, entity := range types.StandardEntities {
		records, err := readJSONL(jsonlFile(dataDir, entity))
		if err != nil {
			return fmt.Errorf("reading %s: %w", entity, err)
		}

		for i, obj := range records {
			id, ok := types.Record(obj).ID(types.DefaultIDField)
			if !ok {
				continue
			}
			body, err := json.Marshal(obj)
			if err != nil {
				continue
			}
			if _, err := stmt.Exec(entity, id, i+1, string(body), now, now); err != nil {
				return fmt.Errorf("loading %s/%s: %w", entity, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
