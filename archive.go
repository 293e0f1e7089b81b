package keepimport

// Candidate represents one archive entry that passed the note-candidate
// path filter and is eligible for extraction.
type Candidate struct {
	// Path is the entry's name inside the archive.
	Path string

	// HTML is the entry's decoded document text.
	HTML string
}

// ArchiveScanner enumerates note candidates from a compressed archive held
// in memory. Implementations perform a single deterministic pass over the
// archive's entry list; candidate order follows entry enumeration order.
type ArchiveScanner interface {
	// Scan returns the note candidates found in the archive.
	// Returns EINVALID if the buffer is not a valid archive. Entries that
	// cannot be read are skipped, never failing the whole scan.
	Scan(data []byte) ([]Candidate, error)
}
