package excel

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"gomice/domain/table"
)

// Workbook sheet names, matching the layout consumers of the original tool
// expect: one missingness summary, one cleaned original, one sheet per
// completed chain.
const (
	SheetMissingness = "Missingness"
	SheetOriginal    = "Data_Original"
	SheetImputed     = "Data_Imputed"
)

// ResultWriter persists a finished run as an Excel workbook
type ResultWriter struct {
	filePath string
}

// NewResultWriter creates a writer targeting the given .xlsx path
func NewResultWriter(filePath string) *ResultWriter {
	return &ResultWriter{filePath: filePath}
}

// WriteResult writes the missingness table, the sanitized original, and one
// sheet per completed chain. Column order and naming are preserved verbatim
// so the workbook round-trips through the reader.
func (w *ResultWriter) WriteResult(missingness table.MissingnessTable, original *table.Table, completed []*table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeMissingness(f, missingness); err != nil {
		return err
	}
	if err := w.writeTable(f, SheetOriginal, original); err != nil {
		return err
	}
	for i, t := range completed {
		name := SheetImputed
		if i > 0 {
			name = fmt.Sprintf("%s_%d", SheetImputed, i+1)
		}
		if err := w.writeTable(f, name, t); err != nil {
			return err
		}
	}

	// The default sheet is replaced by Missingness, drop it.
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != SheetMissingness {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[ResultWriter] wrote %s (%d imputed sheet(s))", w.filePath, len(completed))
	return nil
}

// writeMissingness writes the summary sheet
func (w *ResultWriter) writeMissingness(f *excelize.File, m table.MissingnessTable) error {
	if _, err := f.NewSheet(SheetMissingness); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", SheetMissingness, err)
	}

	headers := []string{"variable", "missing_n", "missing_pct(%)"}
	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(SheetMissingness, cell, h); err != nil {
			return err
		}
	}

	for i, row := range m.Rows {
		values := []interface{}{row.Variable, row.MissingCount, row.MissingPct}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			if err := f.SetCellValue(SheetMissingness, cell, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeTable writes one table to a named sheet, headers first
func (w *ResultWriter) writeTable(f *excelize.File, sheet string, t *table.Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	for c := range t.Columns {
		col := &t.Columns[c]
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return err
		}

		for i, v := range col.Values {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			if v.IsMissing {
				continue // blank cell
			}
			if v.IsNumeric() {
				if err := f.SetCellValue(sheet, cell, v.AsFloat64()); err != nil {
					return err
				}
				continue
			}
			if err := f.SetCellValue(sheet, cell, v.AsLabel()); err != nil {
				return err
			}
		}
	}

	return nil
}
