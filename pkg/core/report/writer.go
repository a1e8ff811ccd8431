// Package report serializes extraction results to tabular output files.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"eps_extractor/pkg/core/extract"
)

// NoneMarker is the literal written for documents where no EPS figure
// was found.
const NoneMarker = "NONE"

var header = []string{"filename", "EPS", "EPS_Term"}

// Write serializes results to the given path, one row per document in
// input order. The format follows the file extension: .xlsx produces a
// workbook, anything else a CSV file.
func Write(path string, results []extract.Result) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, results)
	}
	return writeCSV(path, results)
}

// EPSString formats a result's value, or the NONE marker.
func EPSString(r extract.Result) string {
	if !r.Found() {
		return NoneMarker
	}
	return r.Value.String()
}

// TermString formats a result's matched term, or the NONE marker.
func TermString(r extract.Result) string {
	if r.Term == "" {
		return NoneMarker
	}
	return r.Term
}

func writeCSV(path string, results []extract.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := w.Write([]string{r.DocumentID, EPSString(r), TermString(r)}); err != nil {
			return fmt.Errorf("write row for %s: %w", r.DocumentID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func writeXLSX(path string, results []extract.Result) error {
	f := excelize.NewFile()
	const sheet = "Results"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.DocumentID)
		write(2, EPSString(r))
		write(3, TermString(r))
	}

	_ = f.SetColWidth(sheet, "A", "A", 40)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 36)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
