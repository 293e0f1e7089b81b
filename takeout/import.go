package takeout

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/keepimport"
)

// Compile-time interface verification.
var _ keepimport.ImportService = (*Importer)(nil)

// Importer orchestrates the import of a Takeout archive: scanning the
// archive, extracting notes from candidate documents, normalizing and
// capping fields, and persisting the results for one user.
type Importer struct {
	Scanner   keepimport.ArchiveScanner
	Extractor keepimport.Extractor
	Notes     keepimport.NoteService
	Users     keepimport.UserService
	Logger    *slog.Logger

	// MaxNotes caps how many notes a single archive may yield.
	// Defaults to keepimport.DefaultMaxNotes when zero.
	MaxNotes int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ImportArchive implements keepimport.ImportService.
//
// Extraction failures on individual entries are logged and skipped; policy
// violations (zero notes, too many notes) reject the whole import before
// anything is persisted. Persisted note order follows archive entry
// enumeration order.
func (imp *Importer) ImportArchive(ctx context.Context, archive []byte, externalUserID string) (*keepimport.ImportResult, error) {
	candidates, err := imp.Scanner.Scan(archive)
	if err != nil {
		return nil, err
	}

	var extracted []*keepimport.ExtractedNote
	for _, c := range candidates {
		note, err := imp.Extractor.Extract(c.HTML)
		if err != nil {
			imp.logger().Warn("skipping unparseable entry", "path", c.Path, "error", err)
			continue
		}
		if note == nil {
			continue
		}

		content := NormalizeContent(note.Content)
		if content == "" {
			continue
		}
		// ExtractedNote is immutable once emitted; normalize into a copy.
		n := *note
		n.Content = content
		extracted = append(extracted, &n)
	}

	if len(extracted) == 0 {
		return nil, keepimport.Errorf(keepimport.EINVALID, "no notes found in archive")
	}
	maxNotes := imp.MaxNotes
	if maxNotes <= 0 {
		maxNotes = keepimport.DefaultMaxNotes
	}
	if len(extracted) > maxNotes {
		return nil, keepimport.Errorf(keepimport.ETOOLARGE, "archive contains %d notes, exceeding the limit of %d", len(extracted), maxNotes)
	}

	user, err := imp.Users.FindOrCreateUser(ctx, externalUserID)
	if err != nil {
		return nil, err
	}

	for _, en := range extracted {
		if err := imp.Notes.CreateNote(ctx, imp.buildNote(user.ID, en)); err != nil {
			return nil, err
		}
	}

	return &keepimport.ImportResult{Imported: len(extracted)}, nil
}

// buildNote produces the persisted record for an extracted note, capping
// field lengths and substituting defaults. The ExtractedNote itself is
// left untouched.
func (imp *Importer) buildNote(userID string, en *keepimport.ExtractedNote) *keepimport.Note {
	title := en.Title
	if title == "" {
		title = keepimport.DefaultTitle
	}
	title = capRunes(title, keepimport.MaxTitleLen)

	createdAt := en.CreatedAt
	if createdAt.IsZero() {
		createdAt = imp.now()
	}

	return &keepimport.Note{
		UserID:    userID,
		Title:     title,
		Content:   capRunes(en.Content, keepimport.MaxContentLen),
		Source:    string(en.Source),
		CreatedAt: createdAt,
	}
}

func (imp *Importer) logger() *slog.Logger {
	if imp.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return imp.Logger
}

func (imp *Importer) now() time.Time {
	if imp.Now != nil {
		return imp.Now()
	}
	return time.Now().UTC()
}

// capRunes truncates s to at most max runes, never splitting a multi-byte
// character.
func capRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
