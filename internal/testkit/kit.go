package testkit

import (
	"fmt"
	"math/rand"

	"gomice/domain/table"
)

// NumColumn builds a continuous column from values, then blanks the given
// row indexes
func NumColumn(name string, values []float64, missing ...int) table.Column {
	col := table.Column{Name: name, Role: table.RoleContinuous, Values: make([]table.Value, len(values))}
	for i, v := range values {
		col.Values[i] = table.NewNumericValue(v)
	}
	for _, i := range missing {
		col.Values[i] = table.NewMissingValue()
	}
	return col
}

// LabelColumn builds a categorical column from labels, then blanks the given
// row indexes
func LabelColumn(name string, labels []string, missing ...int) table.Column {
	col := table.Column{Name: name, Role: table.RoleCategorical, Values: make([]table.Value, len(labels))}
	for i, s := range labels {
		col.Values[i] = table.NewLabelValue(s)
	}
	for _, i := range missing {
		col.Values[i] = table.NewMissingValue()
	}
	return col
}

// NewTable assembles columns into a table
func NewTable(cols ...table.Column) *table.Table {
	return &table.Table{Columns: cols}
}

// SyntheticTable generates a deterministic mixed-role table: one numeric
// column correlated with a second, plus a two-label categorical column.
// Roughly 15% of the first two columns' cells are blanked.
func SyntheticTable(rows int, seed int64) *table.Table {
	r := rand.New(rand.NewSource(seed))

	x := make([]float64, rows)
	y := make([]float64, rows)
	labels := make([]string, rows)
	for i := 0; i < rows; i++ {
		x[i] = 10 + r.NormFloat64()*2
		y[i] = 3*x[i] + 5 + r.NormFloat64()
		if y[i] > 35 {
			labels[i] = "high"
		} else {
			labels[i] = "low"
		}
	}

	var missX, missY []int
	for i := 0; i < rows; i++ {
		if r.Float64() < 0.15 {
			missX = append(missX, i)
		}
		if r.Float64() < 0.15 {
			missY = append(missY, i)
		}
	}

	return NewTable(
		NumColumn("x", x, missX...),
		NumColumn("y", y, missY...),
		LabelColumn("band", labels),
	)
}

// RawStringTable builds an unsanitized table where every cell is a loose
// string, the way the file readers deliver data
func RawStringTable(headers []string, rows [][]string) *table.Table {
	t := &table.Table{Columns: make([]table.Column, len(headers))}
	for c, name := range headers {
		col := table.Column{Name: name, Role: table.RoleCategorical, Values: make([]table.Value, len(rows))}
		for i, row := range rows {
			if c < len(row) {
				col.Values[i] = table.NewLabelValue(row[c])
			} else {
				col.Values[i] = table.NewMissingValue()
			}
		}
		t.Columns[c] = col
	}
	return t
}

// CSVContent renders rows as CSV text for upload-style tests
func CSVContent(headers []string, rows [][]string) string {
	out := ""
	for i, h := range headers {
		if i > 0 {
			out += ","
		}
		out += h
	}
	out += "\n"
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				out += ","
			}
			out += cell
		}
		out += "\n"
	}
	return out
}

// Fingerprints formats a short diff summary for test failure messages
func Fingerprints(tables []*table.Table) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = fmt.Sprintf("chain %d: %s", i, t.Fingerprint())
	}
	return out
}
