package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"quicknotes-server/models"
	"quicknotes-server/repository"
)

// EventPublisher receives note changes after they are persisted.
type EventPublisher interface {
	Publish(event models.NoteEvent)
}

// NoteService validates requests and classifies store failures into
// ValidationError, ErrNoteNotFound and StoreError.
type NoteService struct {
	noteRepo repository.NoteRepositoryInterface
	events   EventPublisher
}

func NewNoteService(noteRepo repository.NoteRepositoryInterface, events EventPublisher) *NoteService {
	return &NoteService{noteRepo: noteRepo, events: events}
}

func (s *NoteService) CreateNote(ctx context.Context, in models.NoteInput) (models.Note, error) {
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	note, err := s.noteRepo.CreateNote(ctx, in.Title, in.Content)
	if err != nil {
		return models.Note{}, storeFailure("creating note", err)
	}
	s.publish(models.NoteEvent{Type: models.NoteCreated, ID: note.ID, Note: &note})
	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := s.noteRepo.ListNotes(ctx)
	if err != nil {
		return nil, storeFailure("fetching notes", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id string, in models.NoteInput) (models.Note, error) {
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	note, err := s.noteRepo.UpdateNoteByID(ctx, id, in.Title, in.Content)
	if errors.Is(err, models.ErrNoteNotFound) {
		return models.Note{}, models.ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, storeFailure("updating note", err)
	}
	s.publish(models.NoteEvent{Type: models.NoteUpdated, ID: note.ID, Note: &note})
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	err := s.noteRepo.DeleteNoteByID(ctx, id)
	if errors.Is(err, models.ErrNoteNotFound) {
		return models.ErrNoteNotFound
	}
	if err != nil {
		return storeFailure("deleting note", err)
	}
	s.publish(models.NoteEvent{Type: models.NoteDeleted, ID: id})
	return nil
}

func (s *NoteService) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	if query == "" {
		return nil, &models.ValidationError{Fields: []string{"query"}, Message: "Search query is required"}
	}
	notes, err := s.noteRepo.SearchNotes(ctx, query)
	if err != nil {
		return nil, storeFailure("searching notes", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *NoteService) publish(event models.NoteEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}

func storeFailure(op string, err error) error {
	logrus.WithError(err).Errorf("Error %s", op)
	return &models.StoreError{Op: op, Err: err}
}
