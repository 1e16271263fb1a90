// Package sqlite implements the local record store for erpdesk.
// This file holds the SQLite schema.
package sqlite

// Schema DDL. Records of every entity share one table; the body column holds
// the record as a JSON object, exactly as the REST backend would return it.
const (
	createRecords = `CREATE TABLE records (
    entity TEXT NOT NULL,
    record_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (entity, record_id)
);`

	idxRecordsEntitySeq = `CREATE INDEX idx_records_entity_seq ON records(entity, seq);`
)

// schemaDDL lists all statements executed on Attach, in order.
var schemaDDL = []string{
	createRecords,
	idxRecordsEntitySeq,
}
