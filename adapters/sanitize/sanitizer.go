package sanitize

import (
	"math"
	"strconv"
	"strings"

	"gomice/domain/table"
)

// Sanitizer normalizes a raw table into a well-typed working copy. Non-finite
// and whitespace-only cells become missing; declared continuous columns are
// coerced to numeric. Per-cell failures degrade to missing rather than
// failing the run.
type Sanitizer struct{}

// NewSanitizer creates a sanitizer
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize produces a cleaned copy of the input table. The raw input is
// never mutated. Rules, in order, per cell:
//  1. positive/negative infinity and NaN become missing
//  2. whitespace-only strings (including empty) become missing
//  3. continuous columns: unparseable cells become missing, parseable
//     cells are stored as float64
//
// Sanitize is idempotent: applying it to its own output is a no-op.
func (s *Sanitizer) Sanitize(raw *table.Table, roles map[string]table.ColumnRole) *table.Table {
	out := &table.Table{Columns: make([]table.Column, len(raw.Columns))}

	for i := range raw.Columns {
		src := &raw.Columns[i]
		role := roles[src.Name]
		if role == "" {
			role = table.RoleCategorical
		}

		col := table.Column{
			Name:   src.Name,
			Role:   role,
			Values: make([]table.Value, len(src.Values)),
		}
		for j, v := range src.Values {
			col.Values[j] = s.sanitizeCell(v, role)
		}
		out.Columns[i] = col
	}

	return out
}

// sanitizeCell applies the per-cell rules for one value
func (s *Sanitizer) sanitizeCell(v table.Value, role table.ColumnRole) table.Value {
	if v.IsMissing {
		return table.NewMissingValue()
	}

	if v.IsNumeric() {
		n := v.AsFloat64()
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return table.NewMissingValue()
		}
		if role == table.RoleCategorical {
			// Numeric cells in categorical columns keep their rendered form
			// as a discrete label.
			return table.NewLabelValue(v.String())
		}
		return table.NewNumericValue(n)
	}

	str := strings.TrimSpace(v.AsLabel())
	if str == "" {
		return table.NewMissingValue()
	}

	if role == table.RoleContinuous {
		n, err := strconv.ParseFloat(str, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
			// Silent coercion policy: unparseable continuous cells degrade
			// to missing instead of failing the whole run.
			return table.NewMissingValue()
		}
		return table.NewNumericValue(n)
	}

	return table.NewLabelValue(str)
}

// RolesFromContinuous expands a user-declared set of continuous column names
// into a full role assignment: everything not named defaults to categorical.
func RolesFromContinuous(t *table.Table, continuous []string) map[string]table.ColumnRole {
	set := make(map[string]bool, len(continuous))
	for _, name := range continuous {
		set[name] = true
	}

	roles := make(map[string]table.ColumnRole, t.ColumnCount())
	for _, name := range t.ColumnNames() {
		if set[name] {
			roles[name] = table.RoleContinuous
		} else {
			roles[name] = table.RoleCategorical
		}
	}
	return roles
}
