package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quicknotes-server/models"
)

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d noteDocument) toModel() models.Note {
	return models.Note{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// NoteRepository stores notes as documents in a MongoDB collection.
type NoteRepository struct {
	collection *mongo.Collection
}

func NewNoteRepository(collection *mongo.Collection) *NoteRepository {
	return &NoteRepository{collection: collection}
}

func (r *NoteRepository) CreateNote(ctx context.Context, title, content string) (models.Note, error) {
	doc := noteDocument{
		ID:      primitive.NewObjectID(),
		Title:   title,
		Content: content,
		// BSON dates carry millisecond precision.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return models.Note{}, errors.Wrap(err, "inserting note")
	}
	return doc.toModel(), nil
}

func (r *NoteRepository) ListNotes(ctx context.Context) ([]models.Note, error) {
	return r.find(ctx, bson.M{})
}

func (r *NoteRepository) UpdateNoteByID(ctx context.Context, id, title, content string) (models.Note, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Note{}, models.ErrNoteNotFound
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{"$set": bson.M{"title": title, "content": content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)

	var doc noteDocument
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Note{}, models.ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, errors.Wrapf(err, "updating note %s", id)
	}
	return doc.toModel(), nil
}

func (r *NoteRepository) DeleteNoteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNoteNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return errors.Wrapf(err, "deleting note %s", id)
	}
	if res.DeletedCount == 0 {
		return models.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	return r.find(ctx, searchFilter(query))
}

func (r *NoteRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

func (r *NoteRepository) find(ctx context.Context, filter bson.M) ([]models.Note, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "finding notes")
	}
	var docs []noteDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding notes")
	}

	notes := make([]models.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toModel())
	}
	return notes, nil
}

// searchFilter matches query literally anywhere in title or content,
// case-insensitively.
func searchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		},
	}
}
