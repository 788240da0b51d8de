// Package extractor reads speaker notes out of PowerPoint decks.
// A .pptx file is a zip container of OOXML parts; slide notes live in
// ppt/notesSlides/notesSlideN.xml, one part per slide that has notes.
package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"deckbrief/internal/domain/entity"
)

var (
	slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	notesPartPattern = regexp.MustCompile(`^ppt/notesSlides/notesSlide(\d+)\.xml$`)

	// Characters outside the XML-safe range are stripped so the notes
	// survive a round trip into XML-based output formats.
	unsafeForXML = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x7F]`)
)

// Notes extracts one NoteUnit per slide from the deck at path, in slide
// order with 1-based indexes. Slides without a notes part yield the
// NoNotesSlide sentinel; notes parts with no text yield NoNotesFound.
// A slide whose notes part cannot be parsed yields an error marker for
// that slide rather than failing the whole deck.
func Notes(path string) ([]entity.NoteUnit, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open presentation %s: %w", path, err)
	}
	defer func() {
		_ = archive.Close()
	}()

	slideCount := 0
	notesParts := make(map[int]*zip.File)

	for _, file := range archive.File {
		if m := slidePartPattern.FindStringSubmatch(file.Name); m != nil {
			var n int
			_, _ = fmt.Sscanf(m[1], "%d", &n)
			if n > slideCount {
				slideCount = n
			}
			continue
		}
		if m := notesPartPattern.FindStringSubmatch(file.Name); m != nil {
			var n int
			_, _ = fmt.Sscanf(m[1], "%d", &n)
			notesParts[n] = file
		}
	}

	if slideCount == 0 {
		return nil, fmt.Errorf("no slides found in presentation %s", path)
	}

	units := make([]entity.NoteUnit, 0, slideCount)
	for i := 1; i <= slideCount; i++ {
		part, ok := notesParts[i]
		if !ok {
			units = append(units, entity.NoteUnit{Index: i, Text: entity.NoNotesSlide})
			continue
		}

		noteText, err := readNotesPart(part)
		if err != nil {
			slog.Warn("error processing slide notes",
				slog.Int("slide", i),
				slog.Any("error", err))
			units = append(units, entity.NoteUnit{
				Index: i,
				Text:  fmt.Sprintf("Error processing slide: %v", err),
			})
			continue
		}

		noteText = unsafeForXML.ReplaceAllString(noteText, "")
		if strings.TrimSpace(noteText) == "" {
			noteText = entity.NoNotesFound
		}
		units = append(units, entity.NoteUnit{Index: i, Text: noteText})
	}

	return units, nil
}

func readNotesPart(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open notes part: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	text, err := notesText(rc)
	if err != nil {
		return "", fmt.Errorf("parse notes part: %w", err)
	}
	return text, nil
}

// notesText pulls the visible text out of a notes-slide XML part.
// Text runs live in <a:t> elements; <a:p> paragraph ends become line
// breaks so multi-paragraph notes keep their structure.
func notesText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inTextRun  bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inTextRun {
				current.Write(el)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	// Trailing empty paragraphs are layout artifacts, not content.
	for len(paragraphs) > 0 && strings.TrimSpace(paragraphs[len(paragraphs)-1]) == "" {
		paragraphs = paragraphs[:len(paragraphs)-1]
	}

	return strings.Join(paragraphs, "\n"), nil
}
