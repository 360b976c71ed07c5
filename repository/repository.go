package repository

import (
	"context"
	"strings"

	"quicknotes-server/models"
)

// NoteRepositoryInterface is the capability set every note store offers.
// UpdateNoteByID and DeleteNoteByID return models.ErrNoteNotFound for
// unknown ids. ListNotes and SearchNotes return an empty slice, never nil.
type NoteRepositoryInterface interface {
	CreateNote(ctx context.Context, title, content string) (models.Note, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	UpdateNoteByID(ctx context.Context, id, title, content string) (models.Note, error)
	DeleteNoteByID(ctx context.Context, id string) error
	SearchNotes(ctx context.Context, query string) ([]models.Note, error)
}

// Pinger is implemented by stores that can report their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// matchesQuery reports whether title or content contains query, ignoring case.
func matchesQuery(note models.Note, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(note.Title), q) ||
		strings.Contains(strings.ToLower(note.Content), q)
}
