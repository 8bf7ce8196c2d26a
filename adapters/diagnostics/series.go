package diagnostics

import (
	"gomice/domain/table"
	"gomice/internal/profiling"
	"gomice/ports"
)

// BuildComparisons extracts the row-aligned before/after view of every
// column that had missing cells, pairing the sanitized original against one
// completed chain. Both sequences share the table's row indexing, so an
// external renderer can compare them row by row. The core never renders
// anything itself.
func BuildComparisons(sanitized, completed *table.Table) []ports.ColumnComparison {
	var out []ports.ColumnComparison

	for i := range sanitized.Columns {
		before := &sanitized.Columns[i]
		if !before.HasMissing() {
			continue
		}

		after, ok := completed.Column(before.Name)
		if !ok {
			continue
		}

		var missingRows []int
		for row, v := range before.Values {
			if v.IsMissing {
				missingRows = append(missingRows, row)
			}
		}

		out = append(out, ports.ColumnComparison{
			Variable:    before.Name,
			Role:        before.Role,
			Before:      append([]table.Value(nil), before.Values...),
			After:       append([]table.Value(nil), after.Values...),
			MissingRows: missingRows,
		})
	}

	return out
}

// NumericSummary pairs distribution profiles of a continuous column before
// and after imputation
type NumericSummary struct {
	Variable string                  `json:"variable"`
	Before   profiling.ColumnProfile `json:"before"`
	After    profiling.ColumnProfile `json:"after"`
}

// NumericSummaries profiles every continuous column that had missing cells.
// The before profile covers observed values only; the after profile covers
// the full completed column.
func NumericSummaries(sanitized, completed *table.Table) []NumericSummary {
	var out []NumericSummary

	for i := range sanitized.Columns {
		col := &sanitized.Columns[i]
		if col.Role != table.RoleContinuous || !col.HasMissing() {
			continue
		}

		after, ok := completed.Column(col.Name)
		if !ok {
			continue
		}

		var observed []float64
		for _, v := range col.Values {
			if !v.IsMissing {
				observed = append(observed, v.AsFloat64())
			}
		}

		full := make([]float64, 0, len(after.Values))
		for _, v := range after.Values {
			full = append(full, v.AsFloat64())
		}

		out = append(out, NumericSummary{
			Variable: col.Name,
			Before:   profiling.ProfileColumn(observed),
			After:    profiling.ProfileColumn(full),
		})
	}

	return out
}
