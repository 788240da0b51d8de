package writer

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"deckbrief/internal/domain/entity"
)

func writePDF(path string, outcomes []entity.Outcome) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, documentTitle, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	for _, outcome := range outcomes {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, fmt.Sprintf("Slide %d", outcome.Index), "", 1, "L", false, 0, "")

		if outcome.Summary != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 6, "Summary", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, outcome.Summary, "", "L", false)
			pdf.Ln(2)
		}
		if outcome.OriginalText != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, outcome.OriginalText, "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file %s: %w", path, err)
	}
	return nil
}
