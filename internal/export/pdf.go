package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// PDF table layout. The report intentionally renders only the name, score,
// and ID columns; widths are fixed per column rather than content-sized.
var (
	pdfHeaders   = []string{"Entity Name", "Match Score", "ICIJ ID"}
	pdfColWidths = []float64{2.0, 0.8, 1.5}
)

const (
	pdfHeaderRowHeight = 0.28
	pdfBodyRowHeight   = 0.24
)

// PDF produces a paginated US-Letter report: a styled title, an info block,
// and a bordered table of the narrow three-column row projection.
func PDF(rows []Row, meta Meta) ([]byte, error) {
	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetTitle("ICIJ Offshore Leaks Search Report", false)
	pdf.SetMargins(0.75, 0.75, 0.75)
	pdf.SetAutoPageBreak(true, 0.75)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title.
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(198, 40, 40)
	pdf.CellFormat(0, 0.4, "ICIJ Offshore Leaks Search Report", "", 1, "L", false, 0, "")
	pdf.Ln(0.2)

	// Info block.
	pdf.SetTextColor(0, 0, 0)
	infoLine := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(pdf.GetStringWidth(label)+0.05, 0.2, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 0.2, tr(value), "", 1, "L", false, 0, "")
	}
	infoLine("Search Query:", meta.Query)
	infoLine("Sources:", meta.SourcesLabel())
	infoLine("Results Found:", strconv.Itoa(len(rows)))
	infoLine("Report Generated:", meta.Generated.Format(DateFormat))
	pdf.Ln(0.3)

	// Header row.
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(1.0 / 72)
	pdf.SetFillColor(198, 40, 40)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", 10)
	for i, title := range pdfHeaders {
		pdf.CellFormat(pdfColWidths[i], pdfHeaderRowHeight, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// Body rows.
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	for _, r := range rows {
		name := fitCell(pdf, tr(r.EntityName), pdfColWidths[0]-0.1)
		pdf.CellFormat(pdfColWidths[0], pdfBodyRowHeight, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColWidths[1], pdfBodyRowHeight, formatScore(r.Score), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColWidths[2], pdfBodyRowHeight, tr(r.ID), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("finalizing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// fitCell trims s with an ellipsis until it fits the column width in the
// current font.
func fitCell(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
