package writer

import (
	"bufio"
	"fmt"
	"os"

	"deckbrief/internal/domain/entity"
)

func writeMarkdown(path string, outcomes []entity.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create markdown file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n\n", documentTitle)

	for _, outcome := range outcomes {
		fmt.Fprintf(w, "## Slide %d\n\n", outcome.Index)
		if outcome.Summary != "" {
			fmt.Fprintf(w, "### Summary\n\n%s\n\n", outcome.Summary)
		}
		if outcome.OriginalText != "" {
			fmt.Fprintf(w, "### Notes\n\n%s\n\n", outcome.OriginalText)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write markdown file %s: %w", path, err)
	}
	return f.Close()
}
