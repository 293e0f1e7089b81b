// Package takeout provides the archive-to-note import pipeline for Google
// Keep Takeout exports. It coordinates archive scanning, per-document
// extraction, content normalization, and storage of the resulting notes.
package takeout

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/keepimport"
)

// Compile-time interface verification.
var _ keepimport.ArchiveScanner = (*Scanner)(nil)

// Scanner enumerates note candidates from a zip archive held in memory.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a new Scanner. A nil logger disables diagnostics.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{logger: logger}
}

// Scan performs a single pass over the archive's entry list and returns the
// entries passing the note-candidate filter, in enumeration order. An entry
// that cannot be read is logged and skipped; a single corrupt entry never
// aborts the whole scan.
func (s *Scanner) Scan(data []byte) ([]keepimport.Candidate, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, keepimport.Errorf(keepimport.EINVALID, "malformed archive: %v", err)
	}

	var candidates []keepimport.Candidate
	for _, f := range zr.File {
		if !IsNoteCandidate(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			s.logger.Warn("skipping unreadable archive entry", "path", f.Name, "error", err)
			continue
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			s.logger.Warn("skipping undecodable archive entry", "path", f.Name, "error", err)
			continue
		}

		candidates = append(candidates, keepimport.Candidate{
			Path: f.Name,
			HTML: string(content),
		})
	}

	return candidates, nil
}

// IsNoteCandidate reports whether an archive path looks like a Keep note
// document: it contains "keep", ends with ".html", and lacks "label", all
// case-insensitive. This is a deliberately cheap substring heuristic rather
// than a path-grammar parse; the Takeout layout is not contractually stable,
// and stricter segment matching could break real exports. Known fragility:
// unusual naming outside the Takeout convention can misclassify entries.
func IsNoteCandidate(path string) bool {
	p := strings.ToLower(path)
	return strings.Contains(p, "keep") &&
		strings.HasSuffix(p, ".html") &&
		!strings.Contains(p, "label")
}
