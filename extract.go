package keepimport

import "time"

// ExtractSource identifies which extraction path produced a note.
type ExtractSource string

// Extraction path variants. A note comes from exactly one path; partial
// results from the two paths are never merged.
const (
	// SourceStructured means the note came from an embedded JSON linked-data
	// block, the higher-fidelity source (distinguishes checklists, carries
	// real timestamps).
	SourceStructured ExtractSource = "structured"

	// SourceMarkup means the note was scraped heuristically from the
	// document markup. This path never recovers a timestamp.
	SourceMarkup ExtractSource = "markup"
)

// ExtractedNote is the normalized record produced from a single candidate
// document. It is constructed once by the Extractor and not mutated
// afterward; callers that cap fields or substitute defaults build a new
// Note record instead.
type ExtractedNote struct {
	// Title is the display label. Optional.
	Title string

	// Content is the note body, trimmed and never empty: a document with no
	// usable content produces no ExtractedNote at all.
	Content string

	// CreatedAt is the creation timestamp recovered from source metadata.
	// Zero when the source carried none.
	CreatedAt time.Time

	// Source tags the extraction path variant.
	Source ExtractSource
}

// Extractor produces at most one note from one decoded document.
type Extractor interface {
	// Extract parses a document and returns its note, or (nil, nil) when
	// the document yields no usable content. Malformed metadata inside the
	// document is tolerated, never surfaced as an error.
	Extract(html string) (*ExtractedNote, error)
}
