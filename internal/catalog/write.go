package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportHeader is the column order written by WriteCSV.
var ExportHeader = []string{
	ColumnNum,
	ColumnName,
	ColumnNameNative,
	ColumnRGB,
	ColumnHex,
	ColumnCategory,
	ColumnCategoryNative,
}

// WriteCSV writes records with ExportHeader. Records are written as given;
// call SortForExport first for the canonical ordering.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		rgb, err := r.Hex.RGB()
		if err != nil {
			return fmt.Errorf("record %d: %w", r.Num, err)
		}
		row := []string{
			strconv.Itoa(r.Num),
			r.NamePhonetic,
			r.NameNative,
			rgb.Tuple(),
			string(r.Hex),
			string(r.Category),
			r.CategoryNative,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r.Num, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
