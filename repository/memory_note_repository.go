package repository

import (
	"context"
	"sync"
	"time"

	"quicknotes-server/models"
	"quicknotes-server/utils"
)

type MemoryNoteRepository struct {
	mu    sync.RWMutex
	data  map[string]models.Note
	order []string
}

func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{data: make(map[string]models.Note)}
}

func (m *MemoryNoteRepository) CreateNote(_ context.Context, title, content string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note := models.Note{
		ID:        utils.GenerateID(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	m.data[note.ID] = note
	m.order = append(m.order, note.ID)
	return note, nil
}

func (m *MemoryNoteRepository) ListNotes(_ context.Context) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notes := make([]models.Note, 0, len(m.order))
	for _, id := range m.order {
		notes = append(notes, m.data[id])
	}
	return notes, nil
}

func (m *MemoryNoteRepository) UpdateNoteByID(_ context.Context, id, title, content string) (models.Note, error) {
	if !utils.IsValidID(id) {
		return models.Note{}, models.ErrNoteNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.data[id]
	if !ok {
		return models.Note{}, models.ErrNoteNotFound
	}
	note.Title = title
	note.Content = content
	// Reassigning under note.ID keeps the map key owned by the store.
	m.data[note.ID] = note
	return note, nil
}

func (m *MemoryNoteRepository) DeleteNoteByID(_ context.Context, id string) error {
	if !utils.IsValidID(id) {
		return models.ErrNoteNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		return models.ErrNoteNotFound
	}
	delete(m.data, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryNoteRepository) SearchNotes(_ context.Context, query string) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notes := []models.Note{}
	for _, id := range m.order {
		if note := m.data[id]; matchesQuery(note, query) {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (m *MemoryNoteRepository) Ping(_ context.Context) error { return nil }
