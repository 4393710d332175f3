package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header row and one line per record.
func WriteCSV(w io.Writer, cfg Config, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers(cfg.Columns)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]string, len(cfg.Columns))
	for i, rec := range records {
		for j, col := range cfg.Columns {
			line[j] = Cell(rec, col)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
