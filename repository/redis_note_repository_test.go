package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepository(t *testing.T) (*RedisNoteRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisNoteRepository(client), mr
}

func TestRedisNoteRepository(t *testing.T) {
	runNoteRepositoryContract(t, func(t *testing.T) NoteRepositoryInterface {
		repo, _ := newTestRedisRepository(t)
		return repo
	})
}

func TestRedisNoteRepository_Layout(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	ctx := context.Background()

	note, err := repo.CreateNote(ctx, "Work", "finish report")
	require.NoError(t, err)

	assert.True(t, mr.Exists(noteKey(note.ID)))
	members, err := mr.Members(redisNoteIndexKey)
	require.NoError(t, err)
	assert.Equal(t, []string{note.ID}, members)

	require.NoError(t, repo.DeleteNoteByID(ctx, note.ID))
	assert.False(t, mr.Exists(noteKey(note.ID)))
	notes, err := repo.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRedisNoteRepository_Unavailable(t *testing.T) {
	repo, mr := newTestRedisRepository(t)
	mr.Close()

	_, err := repo.CreateNote(context.Background(), "Work", "finish report")
	assert.Error(t, err)
	assert.Error(t, repo.Ping(context.Background()))
}
