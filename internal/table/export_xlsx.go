package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// maxSheetName is the spreadsheet limit on sheet name length.
const maxSheetName = 31

// Column widths in characters.
const (
	xlsxMinColWidth = 10.0
	xlsxMaxColWidth = 60.0
)

// WriteXLSX writes a single-sheet workbook: the header row, then one row per
// record with accessor-resolved values. Missing values become empty cells.
func WriteXLSX(w io.Writer, cfg Config, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(cfg)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	headers := make([]any, len(cfg.Columns))
	for i, col := range cfg.Columns {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	row := make([]any, len(cfg.Columns))
	for i, rec := range records {
		for j, col := range cfg.Columns {
			row[j] = xlsxValue(rec[col.Accessor])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, width := range xlsxColumnWidths(cfg, records) {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// xlsxColumnWidths sizes each column to its longest line of text, header
// included, within the min and max widths.
func xlsxColumnWidths(cfg Config, records []Record) []float64 {
	widths := make([]float64, len(cfg.Columns))
	for i, col := range cfg.Columns {
		longest := longestLine(col.Header)
		for _, rec := range records {
			longest = max(longest, longestLine(Cell(rec, col)))
		}
		widths[i] = min(max(float64(longest+2), xlsxMinColWidth), xlsxMaxColWidth)
	}
	return widths
}

func longestLine(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		n = max(n, utf8.RuneCountInString(line))
	}
	return n
}

func sheetName(cfg Config) string {
	name := cfg.Export.SheetName
	if name == "" {
		name = cfg.Title
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultSheet
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// xlsxValue keeps numbers and booleans typed; everything else is text.
func xlsxValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string, bool, int, int32, int64, float32, float64:
		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return Stringify(v)
	}
}
