package repository

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"quicknotes-server/models"
	"quicknotes-server/utils"
)

type noteRecord struct {
	ID        string    `gorm:"primaryKey;size:24"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (noteRecord) TableName() string { return "notes" }

func (rec noteRecord) toModel() models.Note {
	return models.Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt.UTC(),
	}
}

// SQLNoteRepository stores notes in a single gorm-managed table.
type SQLNoteRepository struct {
	db *gorm.DB
}

// NewSQLNoteRepository migrates the notes table and returns a repository on db.
func NewSQLNoteRepository(db *gorm.DB) (*SQLNoteRepository, error) {
	if err := db.AutoMigrate(&noteRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrating notes table")
	}
	return &SQLNoteRepository{db: db}, nil
}

func (r *SQLNoteRepository) CreateNote(ctx context.Context, title, content string) (models.Note, error) {
	rec := noteRecord{
		ID:        utils.GenerateID(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Note{}, errors.Wrap(err, "inserting note")
	}
	return rec.toModel(), nil
}

func (r *SQLNoteRepository) ListNotes(ctx context.Context) ([]models.Note, error) {
	var recs []noteRecord
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, errors.Wrap(err, "finding notes")
	}
	return recordsToModels(recs), nil
}

func (r *SQLNoteRepository) UpdateNoteByID(ctx context.Context, id, title, content string) (models.Note, error) {
	if !utils.IsValidID(id) {
		return models.Note{}, models.ErrNoteNotFound
	}
	var rec noteRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&noteRecord{}).
			Where("id = ?", id).
			Updates(map[string]any{"title": title, "content": content})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNoteNotFound
		}
		return tx.First(&rec, "id = ?", id).Error
	})
	if errors.Is(err, models.ErrNoteNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Note{}, models.ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, errors.Wrapf(err, "updating note %s", id)
	}
	return rec.toModel(), nil
}

func (r *SQLNoteRepository) DeleteNoteByID(ctx context.Context, id string) error {
	if !utils.IsValidID(id) {
		return models.ErrNoteNotFound
	}
	res := r.db.WithContext(ctx).Delete(&noteRecord{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "deleting note %s", id)
	}
	if res.RowsAffected == 0 {
		return models.ErrNoteNotFound
	}
	return nil
}

func (r *SQLNoteRepository) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var recs []noteRecord
	err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, pattern, pattern).
		Find(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "searching notes")
	}
	return recordsToModels(recs), nil
}

func (r *SQLNoteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func recordsToModels(recs []noteRecord) []models.Note {
	notes := make([]models.Note, 0, len(recs))
	for _, rec := range recs {
		notes = append(notes, rec.toModel())
	}
	return notes
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
