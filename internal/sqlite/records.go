package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// checkEntity validates backend state and the entity name.
// The caller must hold b.mu.
func (b *Backend) checkEntity(entity string) error {
	if !b.attached {
		return types.ErrStoreDetached
	}
	if !types.IsStandardEntity(entity) {
		return fmt.Errorf("%q: %w", entity, types.ErrEntityNotFound)
	}
	return nil
}

// Fetch returns every record of entity in insertion order.
func (b *Backend) Fetch(ctx context.Context, entity string) ([]types.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkEntity(entity); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx,
		"SELECT body FROM records WHERE entity = ? ORDER BY seq", entity)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", entity, err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s record: %w", entity, err)
		}
		rec, err := decodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", entity, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns one record by identifier.
// Returns ErrNotFound if no record exists with that ID.
func (b *Backend) Get(ctx context.Context, entity, id string) (types.Record, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkEntity(entity); err != nil {
		return nil, err
	}
	return b.getLocked(ctx, entity, id)
}

func (b *Backend) getLocked(ctx context.Context, entity, id string) (types.Record, error) {
	var body string
	err := b.db.QueryRowContext(ctx,
		"SELECT body FROM records WHERE entity = ? AND record_id = ?", entity, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s/%s: %w", entity, id, err)
	}
	return decodeBody(body)
}

// Create stores a new record. When the record has no "id" a UUID v7 is
// assigned. Returns the identifier used.
func (b *Backend) Create(ctx context.Context, entity string, rec types.Record) (string, error) {
	if rec == nil {
		return "", types.ErrInvalidData
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkEntity(entity); err != nil {
		return "", err
	}

	body := rec.Clone()
	id, ok := body.ID(types.DefaultIDField)
	if !ok {
		id = generateID()
		body[types.DefaultIDField] = id
	}

	if _, err := b.getLocked(ctx, entity, id); err == nil {
		return "", fmt.Errorf("record %s/%s already exists: %w", entity, id, types.ErrInvalidID)
	} else if !errors.Is(err, types.ErrNotFound) {
		return "", err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", types.ErrInvalidData)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = b.db.ExecContext(ctx,
		`INSERT INTO records (entity, record_id, seq, body, created_at, updated_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE entity = ?), ?, ?, ?)`,
		entity, id, entity, string(data), now, now)
	if err != nil {
		return "", fmt.Errorf("inserting %s/%s: %w", entity, id, err)
	}

	if err := b.persistEntity(ctx, entity); err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the body of an existing record. The stored identifier is
// kept even if rec carries a different one.
// Returns ErrNotFound if no record exists with that ID.
func (b *Backend) Update(ctx context.Context, entity, id string, rec types.Record) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if rec == nil {
		return types.ErrInvalidData
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkEntity(entity); err != nil {
		return err
	}

	existing, err := b.getLocked(ctx, entity, id)
	if err != nil {
		return err
	}

	body := rec.Clone()
	body[types.DefaultIDField] = existing[types.DefaultIDField]
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding record: %w", types.ErrInvalidData)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := b.db.ExecContext(ctx,
		"UPDATE records SET body = ?, updated_at = ? WHERE entity = ? AND record_id = ?",
		string(data), now, entity, id); err != nil {
		return fmt.Errorf("updating %s/%s: %w", entity, id, err)
	}

	return b.persistEntity(ctx, entity)
}

// Delete removes a record.
// Returns ErrNotFound if no record exists with that ID.
func (b *Backend) Delete(ctx context.Context, entity, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkEntity(entity); err != nil {
		return err
	}

	res, err := b.db.ExecContext(ctx,
		"DELETE FROM records WHERE entity = ? AND record_id = ?", entity, id)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", entity, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", entity, id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	return b.persistEntity(ctx, entity)
}

// persistEntity rewrites the JSONL file of entity from SQLite.
// The caller must hold b.mu.
func (b *Backend) persistEntity(ctx context.Context, entity string) error {
	rows, err := b.db.QueryContext(ctx,
		"SELECT body FROM records WHERE entity = ? ORDER BY seq", entity)
	if err != nil {
		return fmt.Errorf("querying %s for JSONL: %w", entity, err)
	}
	defer rows.Close()

	var lines []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scanning %s for JSONL: %w", entity, err)
		}
		lines = append(lines, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if err := writeJSONL(jsonlFile(b.dataDir, entity), lines); err != nil {
		return fmt.Errorf("persisting %s: %w", entity, err)
	}
	return nil
}

func decodeBody(body string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
