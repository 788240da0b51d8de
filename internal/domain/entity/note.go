// Package entity defines the core domain entities for the application.
// It contains the fundamental business objects such as NoteUnit and Outcome,
// along with the domain-specific error types shared by all summarization providers.
package entity

// Sentinel note texts produced by the extraction layer.
// Units carrying one of these are never sent to a provider.
const (
	// NoNotesFound marks a slide that has a notes area with no text in it.
	NoNotesFound = "No notes found."

	// NoNotesSlide marks a slide without a notes area at all.
	NoNotesSlide = "No notes slide."
)

// NoteUnit is one slide's extracted speaker notes plus its positional index.
// Index is 1-based and matches the slide position in the source deck.
// Units are created once by the extractor and consumed read-only.
type NoteUnit struct {
	Index int
	Text  string
}

// IsSentinel reports whether the unit carries one of the extraction
// sentinels rather than real note text.
func (u NoteUnit) IsSentinel() bool {
	return u.Text == NoNotesFound || u.Text == NoNotesSlide
}

// OutcomeStatus describes how a unit's summarization ended.
type OutcomeStatus string

const (
	// StatusSummarized means the provider returned a summary for the unit.
	StatusSummarized OutcomeStatus = "summarized"

	// StatusPassedThrough means no provider call was made for the unit
	// (sentinel text, sub-threshold length, or extract-only mode).
	StatusPassedThrough OutcomeStatus = "passed_through"

	// StatusFailed means every retry attempt for the unit was exhausted.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome is the per-unit result of a summarization run.
// OriginalText is retained so downstream writers can render both the
// summary and the source notes; it is blanked in summary-only mode.
type Outcome struct {
	Index        int
	Status       OutcomeStatus
	Summary      string
	OriginalText string
}
