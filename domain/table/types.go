package table

import (
	"fmt"
	"strconv"
	"strings"

	"gomice/domain/core"
)

// ColumnRole defines how a column is modeled during imputation
type ColumnRole string

const (
	// RoleContinuous columns hold numeric values and are imputed via regression
	RoleContinuous ColumnRole = "continuous"
	// RoleCategorical columns hold discrete labels and are imputed via classification
	RoleCategorical ColumnRole = "categorical"
)

// ValueType defines the storage type for cells
type ValueType string

const (
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeLabel   ValueType = "label"
	ValueTypeMissing ValueType = "missing"
)

// Value represents a typed cell. Missing is an explicit state, never a
// sentinel inside the value domain.
type Value struct {
	Type       ValueType `json:"type"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
	LabelVal   *string   `json:"label_val,omitempty"`
	IsMissing  bool      `json:"is_missing"`
}

// NewNumericValue creates a numeric cell
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewLabelValue creates a label cell; whitespace-only input degrades to missing
func NewLabelValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeLabel, LabelVal: &s}
}

// NewMissingValue creates a missing cell
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// IsNumeric returns true if the cell holds a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsLabel returns true if the cell holds a valid label
func (v Value) IsLabel() bool {
	return v.Type == ValueTypeLabel && v.LabelVal != nil
}

// AsFloat64 returns the numeric value, or 0 if the cell is not numeric
func (v Value) AsFloat64() float64 {
	if v.NumericVal != nil {
		return *v.NumericVal
	}
	return 0.0
}

// AsLabel returns the label value, or empty string if the cell is not a label
func (v Value) AsLabel() string {
	if v.LabelVal != nil {
		return *v.LabelVal
	}
	return ""
}

// Equal compares two cells by type and content
func (v Value) Equal(other Value) bool {
	if v.IsMissing || other.IsMissing {
		return v.IsMissing == other.IsMissing
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValueTypeNumeric:
		return v.IsNumeric() && other.IsNumeric() && *v.NumericVal == *other.NumericVal
	case ValueTypeLabel:
		return v.IsLabel() && other.IsLabel() && *v.LabelVal == *other.LabelVal
	}
	return false
}

// String returns the display representation of the cell
func (v Value) String() string {
	switch v.Type {
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'g', -1, 64)
		}
	case ValueTypeLabel:
		if v.LabelVal != nil {
			return *v.LabelVal
		}
	case ValueTypeMissing:
		return ""
	}
	return ""
}

// Column is a named, role-tagged sequence of cells
type Column struct {
	Name   string     `json:"name"`
	Role   ColumnRole `json:"role"`
	Values []Value    `json:"values"`
}

// MissingCount returns the number of missing cells in the column
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing {
			n++
		}
	}
	return n
}

// HasMissing reports whether any cell of the column is missing
func (c *Column) HasMissing() bool {
	for _, v := range c.Values {
		if v.IsMissing {
			return true
		}
	}
	return false
}

// ObservedMask returns a per-row mask, true where the cell is observed
func (c *Column) ObservedMask() []bool {
	mask := make([]bool, len(c.Values))
	for i, v := range c.Values {
		mask[i] = !v.IsMissing
	}
	return mask
}

// Clone returns a deep copy of the column
func (c *Column) Clone() Column {
	out := Column{Name: c.Name, Role: c.Role, Values: make([]Value, len(c.Values))}
	copy(out.Values, c.Values)
	return out
}

// Table is an ordered sequence of equal-length columns with unique names.
// Column order is preserved verbatim through every processing stage.
type Table struct {
	Columns []Column `json:"columns"`
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in original order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of a named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns the named column
func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	return &t.Columns[idx], true
}

// HasMissing reports whether any cell of the table is missing
func (t *Table) HasMissing() bool {
	for i := range t.Columns {
		if t.Columns[i].HasMissing() {
			return true
		}
	}
	return false
}

// Validate ensures the table is non-empty, rectangular, and uniquely named
func (t *Table) Validate() error {
	if t.ColumnCount() == 0 || t.RowCount() == 0 {
		return core.ErrEmptyTable
	}

	seen := make(map[string]bool, len(t.Columns))
	rows := t.RowCount()
	for i := range t.Columns {
		c := &t.Columns[i]
		if seen[c.Name] {
			return core.NewDuplicateColumnError(c.Name)
		}
		seen[c.Name] = true
		if len(c.Values) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Values), rows)
		}
	}
	return nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i := range t.Columns {
		out.Columns[i] = t.Columns[i].Clone()
	}
	return out
}

// Fingerprint hashes the canonical cell encoding of the table. Equal
// fingerprints mean bit-identical contents, which is how determinism of
// repeated runs is checked.
func (t *Table) Fingerprint() core.TableFingerprint {
	var b strings.Builder
	for i := range t.Columns {
		c := &t.Columns[i]
		b.WriteString(c.Name)
		b.WriteByte(0x1f)
		b.WriteString(string(c.Role))
		b.WriteByte(0x1f)
		for _, v := range c.Values {
			if v.IsMissing {
				b.WriteString("\x00m")
			} else {
				b.WriteByte(0x00)
				b.WriteString(v.String())
			}
		}
		b.WriteByte(0x1e)
	}
	return core.NewTableFingerprint([]byte(b.String()))
}
