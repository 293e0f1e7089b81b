package mock

import (
	"context"

	"github.com/fwojciec/keepimport"
)

var _ keepimport.NoteService = (*NoteService)(nil)

// NoteService is a mock implementation of keepimport.NoteService.
type NoteService struct {
	CreateNoteFn        func(ctx context.Context, note *keepimport.Note) error
	FindNoteByIDFn      func(ctx context.Context, id string) (*keepimport.Note, error)
	FindNotesFn         func(ctx context.Context, filter keepimport.NoteFilter) ([]*keepimport.Note, error)
	CountNotesByUserFn  func(ctx context.Context, userID string) (int, error)
	DeleteNoteFn        func(ctx context.Context, id string) error
	DeleteNotesByUserFn func(ctx context.Context, userID string) error
}

func (s *NoteService) CreateNote(ctx context.Context, note *keepimport.Note) error {
	return s.CreateNoteFn(ctx, note)
}

func (s *NoteService) FindNoteByID(ctx context.Context, id string) (*keepimport.Note, error) {
	return s.FindNoteByIDFn(ctx, id)
}

func (s *NoteService) FindNotes(ctx context.Context, filter keepimport.NoteFilter) ([]*keepimport.Note, error) {
	return s.FindNotesFn(ctx, filter)
}

func (s *NoteService) CountNotesByUser(ctx context.Context, userID string) (int, error) {
	return s.CountNotesByUserFn(ctx, userID)
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	return s.DeleteNoteFn(ctx, id)
}

func (s *NoteService) DeleteNotesByUser(ctx context.Context, userID string) error {
	return s.DeleteNotesByUserFn(ctx, userID)
}
