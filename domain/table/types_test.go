package table

import (
	"testing"

	"gomice/domain/core"
)

func TestTableValidate(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		empty := &Table{}
		if err := empty.Validate(); err != core.ErrEmptyTable {
			t.Errorf("expected ErrEmptyTable, got %v", err)
		}
	})

	t.Run("duplicate column names", func(t *testing.T) {
		tbl := &Table{Columns: []Column{
			numCol("x", []float64{1}),
			numCol("x", []float64{2}),
		}}
		err := tbl.Validate()
		if !core.IsDataValidityError(err) {
			t.Errorf("expected a data validity error, got %v", err)
		}
	})

	t.Run("ragged columns", func(t *testing.T) {
		tbl := &Table{Columns: []Column{
			numCol("x", []float64{1, 2}),
			numCol("y", []float64{1}),
		}}
		if err := tbl.Validate(); err == nil {
			t.Error("expected error for unequal column lengths")
		}
	})

	t.Run("valid table", func(t *testing.T) {
		tbl := &Table{Columns: []Column{
			numCol("x", []float64{1, 2}),
			labelCol("y", []string{"a", "b"}),
		}}
		if err := tbl.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestValueConstruction(t *testing.T) {
	if !NewLabelValue("  ").IsMissing {
		t.Error("whitespace-only label should degrade to missing")
	}
	if NewLabelValue("A").IsMissing {
		t.Error("non-empty label should not be missing")
	}
	if !NewNumericValue(1.5).IsNumeric() {
		t.Error("numeric value should report IsNumeric")
	}
	if NewMissingValue().String() != "" {
		t.Error("missing value should render empty")
	}
}

func TestValueEqual(t *testing.T) {
	if !NewNumericValue(2).Equal(NewNumericValue(2)) {
		t.Error("equal numerics should compare equal")
	}
	if NewNumericValue(2).Equal(NewNumericValue(3)) {
		t.Error("distinct numerics should not compare equal")
	}
	if NewNumericValue(2).Equal(NewLabelValue("2")) {
		t.Error("numeric and label should not compare equal")
	}
	if !NewMissingValue().Equal(NewMissingValue()) {
		t.Error("missing should equal missing")
	}
	if NewMissingValue().Equal(NewNumericValue(0)) {
		t.Error("missing should not equal an observed cell")
	}
}

func TestFingerprint(t *testing.T) {
	a := &Table{Columns: []Column{numCol("x", []float64{1, 2, 3})}}
	b := &Table{Columns: []Column{numCol("x", []float64{1, 2, 3})}}
	c := &Table{Columns: []Column{numCol("x", []float64{1, 2, 4})}}

	if !core.Hash(a.Fingerprint()).Equals(core.Hash(b.Fingerprint())) {
		t.Error("identical tables must share a fingerprint")
	}
	if core.Hash(a.Fingerprint()).Equals(core.Hash(c.Fingerprint())) {
		t.Error("differing tables must not share a fingerprint")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &Table{Columns: []Column{numCol("x", []float64{1, 2}, 1)}}
	cloned := orig.Clone()

	cloned.Columns[0].Values[0] = NewNumericValue(99)

	if orig.Columns[0].Values[0].AsFloat64() != 1 {
		t.Error("mutating a clone must not touch the original")
	}
	if !orig.Columns[0].Values[1].IsMissing {
		t.Error("clone must preserve missing cells")
	}
}
