package summarizer

import "strings"

// CleanSummary normalizes raw provider output into the canonical bullet
// format: each line begins with exactly one "- " marker, no blank lines,
// no duplicated markers. Providers variously return markdown dashes,
// prose, or pre-bulleted text; this makes them uniform. The function is
// idempotent, so re-cleaning already-clean text is a no-op.
func CleanSummary(summary string) string {
	lines := strings.Split(summary, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		// Remove any leading run of hyphens and spaces before
		// re-prefixing, so "- - point" and "-- point" both normalize.
		stripped = strings.TrimLeft(stripped, "- ")
		if stripped == "" {
			continue
		}

		cleaned = append(cleaned, "- "+stripped)
	}

	return strings.ReplaceAll(strings.Join(cleaned, "\n"), "- -", "-")
}

// SentencesToBullets converts a prose paragraph into one bullet per
// non-empty sentence, splitting on the period character. Watson returns
// a single paragraph rather than bullets, so its adapter applies this
// before the shared clean-up.
func SentencesToBullets(paragraph string) string {
	sentences := strings.Split(paragraph, ".")
	bullets := make([]string, 0, len(sentences))

	for _, sentence := range sentences {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		bullets = append(bullets, "- "+trimmed)
	}

	return strings.Join(bullets, "\n")
}
