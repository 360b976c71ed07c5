package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"quicknotes-server/models"
	"quicknotes-server/utils"
)

const redisNoteIndexKey = "notes"

func noteKey(id string) string {
	return "note:" + id
}

// RedisNoteRepository keeps each note as a JSON document under note:<id>
// and the set of known ids under "notes".
type RedisNoteRepository struct {
	client *redis.Client
}

func NewRedisNoteRepository(client *redis.Client) *RedisNoteRepository {
	return &RedisNoteRepository{client: client}
}

func (r *RedisNoteRepository) CreateNote(ctx context.Context, title, content string) (models.Note, error) {
	note := models.Note{
		ID:        utils.GenerateID(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(note)
	if err != nil {
		return models.Note{}, errors.Wrap(err, "encoding note")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, noteKey(note.ID), data, 0)
		pipe.SAdd(ctx, redisNoteIndexKey, note.ID)
		return nil
	})
	if err != nil {
		return models.Note{}, errors.Wrap(err, "saving note")
	}
	return note, nil
}

func (r *RedisNoteRepository) ListNotes(ctx context.Context) ([]models.Note, error) {
	ids, err := r.client.SMembers(ctx, redisNoteIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "listing note ids")
	}
	notes := []models.Note{}
	if len(ids) == 0 {
		return notes, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = noteKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "loading notes")
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Deleted between SMEMBERS and MGET.
			continue
		}
		var note models.Note
		if err := json.Unmarshal([]byte(raw), &note); err != nil {
			return nil, errors.Wrap(err, "decoding note")
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *RedisNoteRepository) UpdateNoteByID(ctx context.Context, id, title, content string) (models.Note, error) {
	if !utils.IsValidID(id) {
		return models.Note{}, models.ErrNoteNotFound
	}
	raw, err := r.client.Get(ctx, noteKey(id)).Result()
	if err == redis.Nil {
		return models.Note{}, models.ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, errors.Wrapf(err, "loading note %s", id)
	}

	var note models.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		return models.Note{}, errors.Wrapf(err, "decoding note %s", id)
	}
	note.Title = title
	note.Content = content

	data, err := json.Marshal(note)
	if err != nil {
		return models.Note{}, errors.Wrap(err, "encoding note")
	}
	// SET XX so a concurrent delete is not resurrected.
	ok, err := r.client.SetXX(ctx, noteKey(id), data, 0).Result()
	if err != nil {
		return models.Note{}, errors.Wrapf(err, "saving note %s", id)
	}
	if !ok {
		return models.Note{}, models.ErrNoteNotFound
	}
	return note, nil
}

func (r *RedisNoteRepository) DeleteNoteByID(ctx context.Context, id string) error {
	if !utils.IsValidID(id) {
		return models.ErrNoteNotFound
	}
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, noteKey(id))
		pipe.SRem(ctx, redisNoteIndexKey, id)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "deleting note %s", id)
	}
	if del.Val() == 0 {
		return models.ErrNoteNotFound
	}
	return nil
}

func (r *RedisNoteRepository) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	notes, err := r.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Note{}
	for _, note := range notes {
		if matchesQuery(note, query) {
			matched = append(matched, note)
		}
	}
	return matched, nil
}

func (r *RedisNoteRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
