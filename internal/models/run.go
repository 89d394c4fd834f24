package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	// RunStatusParsed means the model output parsed into the three-column table.
	RunStatusParsed RunStatus = "parsed"
	// RunStatusUnparsed means the raw output was kept but did not parse.
	RunStatusUnparsed RunStatus = "unparsed"
)

// ExtractionRun records one completed extraction: the uploaded statement's
// name, the model used, the raw text the model returned and the parse outcome.
type ExtractionRun struct {
	ID        uuid.UUID `db:"id"`
	FileName  string    `db:"file_name"`
	Model     string    `db:"model"`
	Status    RunStatus `db:"status"`
	RawOutput string    `db:"raw_output"`
	RowCount  int       `db:"row_count"`
	ParseNote string    `db:"parse_note"`
	CreatedAt time.Time `db:"created_at"`
}
