package configs

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"quicknotes-server/repository"
)

// Store is an opened note repository together with the function that
// releases its connection.
type Store struct {
	Notes repository.NoteRepositoryInterface
	Close func(ctx context.Context) error
}

// Ping reports store connectivity. Stores without a ping are always healthy.
func (s Store) Ping(ctx context.Context) error {
	if p, ok := s.Notes.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// ConnectStore opens the backend selected by cfg.StoreDriver.
func ConnectStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return Store{}, err
		}
		collection := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		return Store{
			Notes: repository.NewNoteRepository(collection),
			Close: client.Disconnect,
		}, nil

	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return Store{}, err
		}
		return Store{
			Notes: repository.NewRedisNoteRepository(client),
			Close: func(context.Context) error { return client.Close() },
		}, nil

	case DriverSQLite:
		db, err := ConnectSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return Store{}, err
		}
		return newSQLiteStore(db)

	case DriverMemory:
		return Store{
			Notes: repository.NewMemoryNoteRepository(),
			Close: func(context.Context) error { return nil },
		}, nil
	}
	return Store{}, errors.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// newSQLiteStore migrates db and takes ownership of it. db is closed when
// the store cannot be built.
func newSQLiteStore(db *gorm.DB) (Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return Store{}, errors.Wrap(err, "SQLite handle error")
	}
	repo, err := repository.NewSQLNoteRepository(db)
	if err != nil {
		_ = sqlDB.Close()
		return Store{}, err
	}
	return Store{
		Notes: repo,
		Close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}
