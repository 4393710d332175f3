package table

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDF layout, in millimetres on landscape A4.
const (
	pdfMarginLeft   = 5.0
	pdfMarginTop    = 10.0
	pdfMarginRight  = 5.0
	pdfMarginBottom = 15.0
	pdfTitleX       = 14.0
	pdfTitleY       = 10.0
	pdfTitleSize    = 14.0
	pdfTableTop     = 20.0
	pdfHeaderSize   = 10.0
	pdfBodySize     = 8.0
	pdfHeaderHeight = 8.0
	pdfRowHeight    = 6.0
	pdfCellMargin   = 2.0
	pdfFooterSize   = 8.0
	pdfMinColWidth  = 15.0
)

// Header fill colour (dark blue).
var pdfHeaderFill = [3]int{0, 51, 102}

// PDFOptions tunes document generation.
type PDFOptions struct {
	// Compress enables stream compression. Tests turn it off to inspect text.
	Compress bool

	// Created is stamped as the creation date. Zero uses time.Now.
	Created time.Time
}

// WritePDF writes a landscape document: a title line, a dark header row
// repeated on every page, the body rows in a smaller font and a
// "Page X of Y" footer on every page.
func WritePDF(w io.Writer, cfg Config, records []Record, opts PDFOptions) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(false, pdfMarginBottom)
	pdf.SetCompression(opts.Compress)
	pdf.SetCatalogSort(true)
	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)

	title := exportTitle(cfg)
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(cfg, pageW-pdfMarginLeft-pdfMarginRight)

	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", pdfFooterSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(pageW-30, pageH-10)
		pdf.CellFormat(25, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.SetCellMargin(pdfCellMargin)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", pdfHeaderSize)
		pdf.SetFillColor(pdfHeaderFill[0], pdfHeaderFill[1], pdfHeaderFill[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetXY(pdfMarginLeft, pdf.GetY())
		for i, col := range cfg.Columns {
			pdf.CellFormat(widths[i], pdfHeaderHeight, fitText(pdf, tr, col.Header, widths[i]), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(pdfHeaderHeight)
		pdf.SetFont("Helvetica", "", pdfBodySize)
		pdf.SetTextColor(0, 0, 0)
	}

	newPage := func(withTitle bool) {
		pdf.AddPage()
		if withTitle {
			pdf.SetFont("Helvetica", "", pdfTitleSize)
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(pdfTitleX, pdfTitleY+pdfTitleSize*0.35, tr(title))
		}
		pdf.SetY(pdfTableTop)
		drawHeader()
	}

	newPage(true)
	if len(cfg.Columns) > 0 {
		for _, rec := range records {
			if pdf.GetY()+pdfRowHeight > pageH-pdfMarginBottom {
				newPage(false)
			}
			pdf.SetX(pdfMarginLeft)
			for i, col := range cfg.Columns {
				text := fitText(pdf, tr, pdfCellText(rec, col), widths[i])
				pdf.CellFormat(widths[i], pdfRowHeight, text, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(pdfRowHeight)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// pdfCellText flattens multi-line values onto one line.
func pdfCellText(rec Record, col Column) string {
	s := Cell(rec, col)
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	return strings.Join(lines, ", ")
}

// fitText translates the UTF-8 text s with tr and truncates it with an
// ellipsis so it fits a cell of width w. Truncation works on the UTF-8 runes;
// the translated bytes are single-byte code page text and are never sliced.
func fitText(pdf *fpdf.Fpdf, tr func(string) string, s string, w float64) string {
	avail := w - 2*pdfCellMargin
	if out := tr(s); pdf.GetStringWidth(out) <= avail {
		return out
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		candidate := tr(string(r) + "...")
		if pdf.GetStringWidth(candidate) <= avail {
			return candidate
		}
	}
	return ""
}

// columnWidths resolves the per-column widths for printable width total.
// Declared widths apply in column order, undeclared columns split what is
// left, and the result is scaled down proportionally if it overflows.
func columnWidths(cfg Config, total float64) []float64 {
	n := len(cfg.Columns)
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}

	declared := cfg.Export.PDFWidths
	used := 0.0
	extra := 0
	for i := range widths {
		if i < len(declared) && declared[i] > 0 {
			widths[i] = declared[i]
			used += declared[i]
		} else {
			extra++
		}
	}

	if extra > 0 {
		share := (total - used) / float64(extra)
		if share < pdfMinColWidth {
			share = pdfMinColWidth
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
				used += share
			}
		}
	}

	if used > total {
		scale := total / used
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}
