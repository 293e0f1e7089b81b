package keepimport

import "context"

// DefaultMaxNotes is the ceiling on notes accepted from a single archive.
const DefaultMaxNotes = 5000

// ImportResult holds the outcome of an archive import.
type ImportResult struct {
	// Imported is the number of notes persisted.
	Imported int `json:"imported"`
}

// ImportService imports all notes from a Takeout archive for one user.
type ImportService interface {
	// ImportArchive scans the archive, extracts notes, and persists them
	// against the user with the given external identifier.
	//
	// Returns EINVALID if the buffer is not a valid archive or yields zero
	// notes, and ETOOLARGE if the extracted count exceeds the configured
	// ceiling. In both cases nothing is persisted.
	ImportArchive(ctx context.Context, archive []byte, externalUserID string) (*ImportResult, error)
}
