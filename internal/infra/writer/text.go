package writer

import (
	"bufio"
	"fmt"
	"os"

	"deckbrief/internal/domain/entity"
)

func writeText(path string, outcomes []entity.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create text file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n\n", documentTitle)

	for _, outcome := range outcomes {
		fmt.Fprintf(w, "Slide %d\n", outcome.Index)
		if outcome.Summary != "" {
			fmt.Fprintf(w, "Summary:\n%s\n\n", outcome.Summary)
		}
		if outcome.OriginalText != "" {
			fmt.Fprintf(w, "Notes:\n%s\n\n", outcome.OriginalText)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write text file %s: %w", path, err)
	}
	return f.Close()
}
