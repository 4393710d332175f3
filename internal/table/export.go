package table

import (
	"fmt"
	"io"
	"strings"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
)

// Formats lists every supported export format.
var Formats = []Format{FormatXLSX, FormatPDF, FormatCSV}

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(s), ".")) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// ExportSpec is the per-view export layout.
type ExportSpec struct {
	Title     string // PDF title line
	SheetName string // Workbook sheet name
	XLSXFile  string
	PDFFile   string
	CSVFile   string

	// PDFWidths are column widths in millimetres, in column order.
	// Columns beyond the list share the remaining printable width.
	PDFWidths []float64

	// FollowSort exports in the active sort order instead of fetch order.
	FollowSort bool
}

// FileName returns the download file name for format, derived from key when
// s does not name one.
func (s ExportSpec) FileName(key string, format Format) string {
	var name string
	switch format {
	case FormatXLSX:
		name = s.XLSXFile
	case FormatPDF:
		name = s.PDFFile
	case FormatCSV:
		name = s.CSVFile
	}
	if name != "" {
		return name
	}
	base := strings.ReplaceAll(key, "-", "_")
	if base == "" {
		base = "export"
	}
	return base + "." + string(format)
}

// Export writes records in format to w. Only the configured columns are
// written, in column order. An empty record set yields a header-only file.
func Export(w io.Writer, format Format, cfg Config, records []Record) error {
	var err error
	switch format {
	case FormatXLSX:
		err = WriteXLSX(w, cfg, records)
	case FormatPDF:
		err = WritePDF(w, cfg, records, PDFOptions{Compress: true})
	case FormatCSV:
		err = WriteCSV(w, cfg, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrExportFailed, cfg.Key, format, err)
	}
	return nil
}

// exportTitle returns the document title for cfg.
func exportTitle(cfg Config) string {
	if cfg.Export.Title != "" {
		return cfg.Export.Title
	}
	return cfg.Title
}
