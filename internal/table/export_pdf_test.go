package table

import (
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

func newFitPDF() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", pdfBodySize)
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func TestFitText(t *testing.T) {
	pdf, tr := newFitPDF()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fits", "José", "Jos\xe9"},
		{"empty", "", ""},
		{"accented", "Doña Ana", "Do\xf1a Ana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitText(pdf, tr, tt.in, 100); got != tt.want {
				t.Errorf("fitText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFitText_TruncatesAccentedText(t *testing.T) {
	pdf, tr := newFitPDF()
	const width = 20.0

	got := fitText(pdf, tr, strings.Repeat("é", 40), width)
	if strings.Contains(got, "\xef\xbf\xbd") {
		t.Fatalf("fitText = %q, contains replacement characters", got)
	}
	body, ok := strings.CutSuffix(got, "...")
	if !ok || body == "" {
		t.Fatalf("fitText = %q, want truncated text with ellipsis", got)
	}
	if strings.Trim(body, "\xe9") != "" {
		t.Errorf("fitText body = %q, want only code page é bytes", body)
	}
	if w := pdf.GetStringWidth(got); w > width-2*pdfCellMargin {
		t.Errorf("width = %.2f, want <= %.2f", w, width-2*pdfCellMargin)
	}
}
