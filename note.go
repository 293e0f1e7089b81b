package keepimport

import (
	"context"
	"time"
)

// Field caps applied before persisting a note.
const (
	MaxTitleLen   = 255
	MaxContentLen = 65535

	// DefaultTitle is substituted when an imported note has no title.
	DefaultTitle = "Untitled note"
)

// Note represents an imported note persisted for a user.
type Note struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"createdAt"`
	ImportedAt  time.Time `json:"importedAt"`
}

// Validate returns an error if the note contains invalid fields.
func (n *Note) Validate() error {
	if n.UserID == "" {
		return Errorf(EINVALID, "note user ID required")
	}
	if n.Content == "" {
		return Errorf(EINVALID, "note content required")
	}
	return nil
}

// NoteService represents a service for managing notes.
type NoteService interface {
	// CreateNote creates a new note.
	CreateNote(ctx context.Context, note *Note) error

	// FindNoteByID retrieves a note by ID.
	// Returns ENOTFOUND if note does not exist.
	FindNoteByID(ctx context.Context, id string) (*Note, error)

	// FindNotes retrieves notes matching the filter.
	FindNotes(ctx context.Context, filter NoteFilter) ([]*Note, error)

	// CountNotesByUser returns the number of notes owned by a user.
	CountNotesByUser(ctx context.Context, userID string) (int, error)

	// DeleteNote permanently removes a note.
	// Returns ENOTFOUND if note does not exist.
	DeleteNote(ctx context.Context, id string) error

	// DeleteNotesByUser removes all notes for a user.
	DeleteNotesByUser(ctx context.Context, userID string) error
}

// NoteFilter represents a filter for FindNotes.
type NoteFilter struct {
	ID     *string `json:"id"`
	UserID *string `json:"userId"`
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
