// Package writer renders summarization outcomes into the supported
// document formats: Word, Markdown, PDF, and plain text. Writers render
// whatever the outcomes carry; summary-only and extract-only modes are
// expressed upstream by blanking the corresponding outcome fields.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"deckbrief/internal/domain/entity"
)

// Format identifies an output document format.
type Format string

const (
	FormatWord     Format = "docx"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatText     Format = "txt"
)

// documentTitle heads every rendered document.
const documentTitle = "Presentation Notes"

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatWord, FormatMarkdown, FormatPDF, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Write renders outcomes to path in the given format.
func Write(path string, format Format, outcomes []entity.Outcome) error {
	if err := checkWritable(path); err != nil {
		return err
	}

	switch format {
	case FormatWord:
		return writeWord(path, outcomes)
	case FormatMarkdown:
		return writeMarkdown(path, outcomes)
	case FormatPDF:
		return writePDF(path, outcomes)
	case FormatText:
		return writeText(path, outcomes)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// checkWritable surfaces a missing output directory before any
// rendering work happens.
func checkWritable(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}
