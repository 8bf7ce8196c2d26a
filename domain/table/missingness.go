package table

import (
	"math"
	"sort"
)

// MissingnessRow summarizes one column of a missingness report
type MissingnessRow struct {
	Variable     string  `json:"variable"`
	MissingCount int     `json:"missing_count"`
	MissingPct   float64 `json:"missing_pct"`
}

// MissingnessTable is a derived, read-only summary with one row per column,
// sorted by missing percentage descending. It is recomputed from the table
// it describes, never mutated in place.
type MissingnessTable struct {
	Rows []MissingnessRow `json:"rows"`
}

// TotalMissing returns the total missing cell count across all columns
func (m MissingnessTable) TotalMissing() int {
	total := 0
	for _, r := range m.Rows {
		total += r.MissingCount
	}
	return total
}

// AllObserved reports whether no column has any missing cells
func (m MissingnessTable) AllObserved() bool {
	return m.TotalMissing() == 0
}

// ComputeMissingness builds the missingness summary for a table. Percentages
// are computed against the table row count and rounded half-to-even to two
// decimals. Ties keep original column order (stable sort).
func ComputeMissingness(t *Table) MissingnessTable {
	n := t.RowCount()
	rows := make([]MissingnessRow, 0, t.ColumnCount())
	for i := range t.Columns {
		c := &t.Columns[i]
		count := c.MissingCount()
		pct := 0.0
		if n > 0 {
			pct = roundPct(float64(count) / float64(n) * 100.0)
		}
		rows = append(rows, MissingnessRow{
			Variable:     c.Name,
			MissingCount: count,
			MissingPct:   pct,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MissingPct > rows[j].MissingPct
	})

	return MissingnessTable{Rows: rows}
}

// roundPct rounds to two decimal places, half-to-even: 15.625 becomes 15.62,
// 21.875 becomes 21.88
func roundPct(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
