package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/keepimport"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ keepimport.NoteService = (*NoteService)(nil)

// NoteService implements keepimport.NoteService using SQLite.
type NoteService struct {
	db *DB
}

// NewNoteService creates a new NoteService.
func NewNoteService(db *DB) *NoteService {
	return &NoteService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateNote creates a new note.
func (s *NoteService) CreateNote(ctx context.Context, note *keepimport.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	note.ID = uuid.New().String()
	note.ImportedAt = time.Now().UTC()
	note.ContentHash = hashContent(note.Content)
	if note.CreatedAt.IsZero() {
		note.CreatedAt = note.ImportedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, title, content, content_hash, source, created_at, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.UserID, note.Title, note.Content, note.ContentHash, note.Source,
		note.CreatedAt.Format(time.RFC3339), note.ImportedAt.Format(time.RFC3339))

	return err
}

// FindNoteByID retrieves a note by ID.
func (s *NoteService) FindNoteByID(ctx context.Context, id string) (*keepimport.Note, error) {
	var note keepimport.Note
	var createdAt, importedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, content_hash, source, created_at, imported_at
		FROM notes
		WHERE id = ?
	`, id).Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.ContentHash,
		&note.Source, &createdAt, &importedAt)

	if err == sql.ErrNoRows {
		return nil, keepimport.Errorf(keepimport.ENOTFOUND, "note not found")
	}
	if err != nil {
		return nil, err
	}

	if note.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if note.ImportedAt, err = parseRFC3339(importedAt, "imported_at"); err != nil {
		return nil, err
	}

	return &note, nil
}

// FindNotes retrieves notes matching the filter, ordered by import time.
func (s *NoteService) FindNotes(ctx context.Context, filter keepimport.NoteFilter) ([]*keepimport.Note, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, user_id, title, content, content_hash, source, created_at, imported_at FROM notes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY imported_at ASC, rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*keepimport.Note
	for rows.Next() {
		var note keepimport.Note
		var createdAt, importedAt string

		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.ContentHash, &note.Source, &createdAt, &importedAt); err != nil {
			return nil, err
		}

		if note.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if note.ImportedAt, err = parseRFC3339(importedAt, "imported_at"); err != nil {
			return nil, err
		}

		notes = append(notes, &note)
	}

	return notes, rows.Err()
}

// CountNotesByUser returns the number of notes owned by a user.
func (s *NoteService) CountNotesByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notes WHERE user_id = ?", userID).Scan(&count)
	return count, err
}

// DeleteNote permanently removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return keepimport.Errorf(keepimport.ENOTFOUND, "note not found")
	}

	return nil
}

// DeleteNotesByUser removes all notes for a user.
func (s *NoteService) DeleteNotesByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE user_id = ?", userID)
	return err
}
