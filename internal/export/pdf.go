package export

import (
	"bytes"
	"strconv"

	"github.com/docviewer/viewer/internal/record"
	"github.com/go-pdf/fpdf"
)

const indentPerLevel = 6.0

// TOCPDF renders a table of contents as an A4 PDF, indenting entries by level
func TOCPDF(toc record.TOC, title string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(toc.Label, true)
	pdf.AddPage()

	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	usable := width - left - right

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(usable, 8, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(usable, 7, tr(toc.Label), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range toc.Entries {
		indent := float64(entry.Level) * indentPerLevel
		pdf.SetX(left + indent)
		pdf.CellFormat(usable-indent-15, 6, tr(entry.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, strconv.Itoa(entry.PageNo), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
