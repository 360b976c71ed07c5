package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNoteRepository(t *testing.T) {
	runNoteRepositoryContract(t, func(t *testing.T) NoteRepositoryInterface {
		return NewMemoryNoteRepository()
	})
}

func TestMemoryNoteRepository_ConcurrentCreates(t *testing.T) {
	repo := NewMemoryNoteRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateNote(ctx, "title", "content")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	notes, err := repo.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 50)
}
