package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	lineHeight    = 5.0
	headingHeight = 7.0

	titleColWidth = 60.0
	descColWidth  = 70.0
	countColWidth = 18.0
	viewsColWidth = 22.0
	seoColWidth   = 18.0
)

// Render writes the document to a single PDF in the fixed section order:
// header, KPI summary, video table, SEO scoring summary, per-video
// improvements, improvement summary, and quick wins.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252, so currency signs in titles need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, headingHeight, tr(fmt.Sprintf("YOUTUBE AUDIT TOOL - %s", doc.ChannelName)), "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Subs: %d   Total views: %d", doc.Subscribers, doc.TotalViews), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	heading(pdf, "KPI SUMMARY")

	for _, line := range doc.KPILines {
		pdf.CellFormat(0, lineHeight, tr("- "+line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	videoTable(pdf, tr, doc.Rows)

	heading(pdf, "SEO SCORING SUMMARY")
	bullets(pdf, tr, doc.SeoSummary)

	heading(pdf, "SPECIFIC IMPROVEMENTS")

	for i, tips := range doc.VideoTips {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("VID %d:", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		bullets(pdf, tr, tips)
		pdf.Ln(1)
	}

	heading(pdf, "IMPROVEMENT SUMMARY:")
	bullets(pdf, tr, doc.ImprovementSummary)

	heading(pdf, "VIDEO WINS:")
	bullets(pdf, tr, doc.QuickWins)

	if len(doc.Keywords) > 0 {
		heading(pdf, "TOP TITLE KEYWORDS:")
		bullets(pdf, tr, doc.Keywords)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, headingHeight, text, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func bullets(pdf *fpdf.Fpdf, tr func(string) string, lines []string) {
	for _, line := range lines {
		pdf.MultiCell(0, lineHeight, tr("- "+line), "", "L", false)
	}
}

func videoTable(pdf *fpdf.Fpdf, tr func(string) string, rows []VideoRow) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(titleColWidth, lineHeight, "TITLE", "", 0, "L", false, 0, "")
	pdf.CellFormat(descColWidth, lineHeight, "DESCRIPTION", "", 0, "L", false, 0, "")
	pdf.CellFormat(countColWidth, lineHeight, "COMMENTS", "", 0, "R", false, 0, "")
	pdf.CellFormat(viewsColWidth, lineHeight, "VIEWS", "", 0, "R", false, 0, "")
	pdf.CellFormat(seoColWidth, lineHeight, "SEO /100", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)

	for _, row := range rows {
		titleLines := pdf.SplitText(tr(row.Title), titleColWidth-2)
		descLines := pdf.SplitText(tr(row.Description), descColWidth-2)

		n := len(titleLines)
		if len(descLines) > n {
			n = len(descLines)
		}

		for i := 0; i < n; i++ {
			pdf.CellFormat(titleColWidth, lineHeight-1, lineAt(titleLines, i), "", 0, "L", false, 0, "")
			pdf.CellFormat(descColWidth, lineHeight-1, lineAt(descLines, i), "", 0, "L", false, 0, "")

			if i == 0 {
				pdf.CellFormat(countColWidth, lineHeight-1, fmt.Sprintf("%d", row.Comments), "", 0, "R", false, 0, "")
				pdf.CellFormat(viewsColWidth, lineHeight-1, fmt.Sprintf("%d", row.Views), "", 0, "R", false, 0, "")
				pdf.CellFormat(seoColWidth, lineHeight-1, fmt.Sprintf("%d", row.SeoScore), "", 1, "R", false, 0, "")
			} else {
				pdf.Ln(lineHeight - 1)
			}
		}

		pdf.Ln(1)
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}

	return ""
}
