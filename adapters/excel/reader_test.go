package excel

import (
	"os"
	"path/filepath"
	"testing"

	"gomice/internal/testkit"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTable_CSV(t *testing.T) {
	path := writeTempCSV(t, testkit.CSVContent(
		[]string{"age", "grade"},
		[][]string{{"21", "A"}, {"", "B"}, {"45", ""}},
	))

	tbl, err := NewDataReader(path).ReadTable()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if tbl.ColumnCount() != 2 || tbl.RowCount() != 3 {
		t.Fatalf("expected 2x3 table, got %dx%d", tbl.ColumnCount(), tbl.RowCount())
	}
	if tbl.Columns[0].Name != "age" || tbl.Columns[1].Name != "grade" {
		t.Errorf("column order must match the file: %v", tbl.ColumnNames())
	}
	if !tbl.Columns[0].Values[1].IsMissing {
		t.Error("empty cell should arrive missing")
	}
	if tbl.Columns[0].Values[0].AsLabel() != "21" {
		t.Error("cells should arrive as loose strings for the sanitizer")
	}
}

func TestReadTable_RaggedRows(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2,3\n4,5\n")

	tbl, err := NewDataReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ragged rows should be tolerated: %v", err)
	}

	if !tbl.Columns[2].Values[1].IsMissing {
		t.Error("cell beyond a short row should be missing")
	}
}

func TestReadTable_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "a,b\n")

	if _, err := NewDataReader(path).ReadTable(); err == nil {
		t.Error("a header-only file should be rejected")
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	if _, err := NewDataReader("/nonexistent/data.csv").ReadTable(); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestReadTable_TrimsHeaders(t *testing.T) {
	path := writeTempCSV(t, " age , grade \n21,A\n")

	tbl, err := NewDataReader(path).ReadTable()
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Columns[0].Name != "age" || tbl.Columns[1].Name != "grade" {
		t.Errorf("headers should be trimmed: %v", tbl.ColumnNames())
	}
}
