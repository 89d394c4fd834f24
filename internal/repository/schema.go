package repository

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id         UUID PRIMARY KEY,
	file_name  TEXT NOT NULL,
	model      TEXT NOT NULL,
	status     TEXT NOT NULL,
	raw_output TEXT NOT NULL,
	row_count  INTEGER NOT NULL DEFAULT 0,
	parse_note TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS extracted_transactions (
	id          UUID PRIMARY KEY,
	run_id      UUID NOT NULL REFERENCES extraction_runs(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	date_text   TEXT NOT NULL,
	description TEXT NOT NULL,
	amount_text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_extracted_transactions_run
	ON extracted_transactions(run_id, position);
`

// EnsureSchema creates the history tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, schemaSQL)
	return err
}
