package writer

import (
	"fmt"

	"github.com/gingfrederik/docx"

	"deckbrief/internal/domain/entity"
)

func writeWord(path string, outcomes []entity.Outcome) error {
	doc := docx.NewFile()

	title := doc.AddParagraph()
	title.AddText(documentTitle).Size(16)

	for _, outcome := range outcomes {
		heading := doc.AddParagraph()
		heading.AddText(fmt.Sprintf("Slide %d", outcome.Index)).Size(14)

		if outcome.Summary != "" {
			label := doc.AddParagraph()
			label.AddText("Summary").Size(12)
			body := doc.AddParagraph()
			body.AddText(outcome.Summary)
		}
		if outcome.OriginalText != "" {
			label := doc.AddParagraph()
			label.AddText("Notes").Size(12)
			body := doc.AddParagraph()
			body.AddText(outcome.OriginalText)
		}
	}

	if err := doc.Save(path); err != nil {
		return fmt.Errorf("write word file %s: %w", path, err)
	}
	return nil
}
