package ports

import (
	"gomice/domain/table"
)

// DatasetReaderPort supplies a raw table read from a user-chosen file.
// Implementations must preserve column order and report duplicate names.
type DatasetReaderPort interface {
	ReadTable() (*table.Table, error)
}

// ResultWriterPort persists a finished run: the missingness summary, the
// sanitized original, and one completed table per chain. Column order and
// naming are preserved verbatim for round-tripping.
type ResultWriterPort interface {
	WriteResult(missingness table.MissingnessTable, original *table.Table, completed []*table.Table) error
}

// ColumnComparison is the row-aligned before/after view of one column that
// had missing cells, returned to API consumers for external rendering. Both
// sequences share the table's row indexing.
type ColumnComparison struct {
	Variable    string           `json:"variable"`
	Role        table.ColumnRole `json:"role"`
	Before      []table.Value    `json:"before"`       // sanitized original, missing cells included
	After       []table.Value    `json:"after"`        // first completed chain
	MissingRows []int            `json:"missing_rows"` // row indexes that were originally missing
}
