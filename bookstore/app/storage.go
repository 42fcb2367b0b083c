package app

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/config"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/repository"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/service"
	"github.com/Astemirdum/bookstore-service/bookstore/migrations"
	"github.com/Astemirdum/bookstore-service/pkg/postgres"
	"github.com/Astemirdum/bookstore-service/pkg/sqlite"
	"github.com/Astemirdum/bookstore-service/pkg/stable"
	"github.com/Astemirdum/bookstore-service/pkg/stable/sqlstore"
)

// Storage is the opened page medium. DB is nil for the memory driver.
type Storage struct {
	Pages stable.PageStore
	DB    *sqlx.DB
}

func OpenStorage(ctx context.Context, cfg config.Storage) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Storage{Pages: stable.NewMemoryStore()}, nil
	case config.DriverSQLite:
		db, err := sqlite.NewSQLiteDB(ctx, &cfg.SQLite, migrations.MigrationFiles)
		if err != nil {
			return nil, errors.Wrap(err, "sqlite")
		}
		return &Storage{Pages: sqlstore.New(db, sqlstore.SQLite), DB: db}, nil
	case config.DriverPostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Postgres, migrations.MigrationFiles)
		if err != nil {
			return nil, errors.Wrap(err, "postgres")
		}
		return &Storage{Pages: sqlstore.New(db, sqlstore.Postgres), DB: db}, nil
	}
	return nil, errors.Errorf("unknown storage driver %q", cfg.Driver)
}

// Regions reports the persisted bytes per region, as the medium sees them.
func (s *Storage) Regions(ctx context.Context) (map[stable.RegionID]int64, error) {
	sizes := make(map[stable.RegionID]int64, len(repository.Regions))
	if store, ok := s.Pages.(*sqlstore.Store); ok {
		pages, err := store.Regions(ctx)
		if err != nil {
			return nil, err
		}
		for id, n := range pages {
			sizes[id] = n * stable.PageSize
		}
		return sizes, nil
	}
	for _, id := range repository.Regions {
		pages, err := s.Pages.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		sizes[id] = int64(len(pages)) * stable.PageSize
	}
	return sizes, nil
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// NewService opens the repository over the storage and builds the service.
func NewService(ctx context.Context, s *Storage, log *zap.Logger) (*service.Service, error) {
	repo, err := repository.NewRepository(ctx, stable.NewManager(s.Pages), log)
	if err != nil {
		return nil, errors.Wrap(err, "repository")
	}
	return service.NewService(repo, log), nil
}
