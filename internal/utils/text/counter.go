// Package text provides small text-processing helpers shared by the
// summarization providers.
package text

// CountRunes counts Unicode characters (runes) rather than bytes, so
// multi-byte note content is measured consistently across providers.
func CountRunes(s string) int {
	return len([]rune(s))
}
