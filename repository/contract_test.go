package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes-server/models"
	"quicknotes-server/utils"
)

// runNoteRepositoryContract exercises behavior every store must share.
func runNoteRepositoryContract(t *testing.T, newRepo func(t *testing.T) NoteRepositoryInterface) {
	ctx := context.Background()

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		before := time.Now().Add(-time.Second)

		note, err := repo.CreateNote(ctx, "Groceries", "milk, eggs")
		require.NoError(t, err)
		assert.True(t, utils.IsValidID(note.ID))
		assert.Equal(t, "Groceries", note.Title)
		assert.Equal(t, "milk, eggs", note.Content)
		assert.True(t, note.CreatedAt.After(before))

		notes, err := repo.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, note.ID, notes[0].ID)
	})

	t.Run("list on empty store is empty not nil", func(t *testing.T) {
		repo := newRepo(t)
		notes, err := repo.ListNotes(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("update replaces title and content only", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.CreateNote(ctx, "A", "first")
		require.NoError(t, err)
		b, err := repo.CreateNote(ctx, "B", "second")
		require.NoError(t, err)

		updated, err := repo.UpdateNoteByID(ctx, a.ID, "A2", "first, edited")
		require.NoError(t, err)
		assert.Equal(t, a.ID, updated.ID)
		assert.Equal(t, "A2", updated.Title)
		assert.Equal(t, "first, edited", updated.Content)
		assert.WithinDuration(t, a.CreatedAt, updated.CreatedAt, time.Millisecond)

		notes, err := repo.ListNotes(ctx)
		require.NoError(t, err)
		byID := map[string]models.Note{}
		for _, n := range notes {
			byID[n.ID] = n
		}
		assert.Equal(t, "A2", byID[a.ID].Title)
		assert.Equal(t, "B", byID[b.ID].Title)
		assert.Equal(t, "second", byID[b.ID].Content)
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.UpdateNoteByID(ctx, utils.GenerateID(), "x", "y")
		assert.ErrorIs(t, err, models.ErrNoteNotFound)

		notes, err := repo.ListNotes(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		repo := newRepo(t)
		note, err := repo.CreateNote(ctx, "A", "first")
		require.NoError(t, err)

		for _, id := range []string{"not-an-id", "", note.ID + "0", "note:" + note.ID} {
			_, err = repo.UpdateNoteByID(ctx, id, "x", "y")
			assert.ErrorIs(t, err, models.ErrNoteNotFound, id)
			assert.ErrorIs(t, repo.DeleteNoteByID(ctx, id), models.ErrNoteNotFound, id)
		}

		notes, err := repo.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "A", notes[0].Title)
	})

	t.Run("delete twice reports not found", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.CreateNote(ctx, "A", "first")
		require.NoError(t, err)
		b, err := repo.CreateNote(ctx, "B", "second")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteNoteByID(ctx, b.ID))
		assert.ErrorIs(t, repo.DeleteNoteByID(ctx, b.ID), models.ErrNoteNotFound)

		notes, err := repo.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, a.ID, notes[0].ID)
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		repo := newRepo(t)
		for _, in := range []models.NoteInput{
			{Title: "Meeting", Content: "agenda"},
			{Title: "Todo", Content: "MEET now"},
			{Title: "Journal", Content: "meeting notes"},
			{Title: "Groceries", Content: "milk, eggs"},
		} {
			_, err := repo.CreateNote(ctx, in.Title, in.Content)
			require.NoError(t, err)
		}

		notes, err := repo.SearchNotes(ctx, "meet")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Meeting", "Todo", "Journal"}, titles(notes))

		notes, err = repo.SearchNotes(ctx, "nothing like this")
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("search treats pattern characters literally", func(t *testing.T) {
		repo := newRepo(t)
		for _, title := range []string{"a.b", "axb", "100% done", "100 done", "under_score", "underXscore"} {
			_, err := repo.CreateNote(ctx, title, "body")
			require.NoError(t, err)
		}

		for query, want := range map[string][]string{
			"a.":  {"a.b"},
			"0%":  {"100% done"},
			"r_s": {"under_score"},
			"(":   nil,
		} {
			notes, err := repo.SearchNotes(ctx, query)
			require.NoError(t, err, query)
			got := titles(notes)
			sort.Strings(got)
			if want == nil {
				assert.Empty(t, got, query)
				continue
			}
			assert.Equal(t, want, got, query)
		}
	})
}

func titles(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}
