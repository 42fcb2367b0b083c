package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/app"
	"github.com/Astemirdum/bookstore-service/bookstore/config"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/repository"
	"github.com/Astemirdum/bookstore-service/pkg/sqlite"
	"github.com/Astemirdum/bookstore-service/pkg/stable"
)

func TestOpenStorage_SQLiteSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := config.Storage{
		Driver: config.DriverSQLite,
		SQLite: sqlite.DB{Path: filepath.Join(t.TempDir(), "bookstore.db")},
	}

	storage, err := app.OpenStorage(ctx, cfg)
	require.NoError(t, err)
	svc, err := app.NewService(ctx, storage, zap.NewNop())
	require.NoError(t, err)

	admin, err := svc.CreateCustomer(ctx, model.CustomerPayload{Username: "root", Role: model.RoleAdmin})
	require.NoError(t, err)
	book, err := svc.CreateBook(ctx, model.BookPayload{Title: "Dune", Description: "Desert planet", Genre: model.GenreFiction},
		model.Credentials{Username: "root", Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.UpdateBookStatus(ctx, model.UpdateBookStatusPayload{ID: book.ID, Status: model.StatusSold})
	require.NoError(t, err)
	require.NoError(t, storage.Close())

	storage, err = app.OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer storage.Close()
	svc, err = app.NewService(ctx, storage, zap.NewNop())
	require.NoError(t, err)

	got, err := svc.GetCustomerByID(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, admin, got)

	gotBook, err := svc.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusSold, gotBook.Status)
	require.Len(t, gotBook.History, 1)

	sizes, err := storage.Regions(ctx)
	require.NoError(t, err)
	require.Len(t, sizes, len(repository.Regions))
	require.Equal(t, int64(stable.PageSize), sizes[repository.CustomerRegion])
}

func TestOpenStorage_Memory(t *testing.T) {
	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, config.Storage{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.Nil(t, storage.DB)
	defer storage.Close()

	_, err = app.NewService(ctx, storage, zap.NewNop())
	require.NoError(t, err)

	sizes, err := storage.Regions(ctx)
	require.NoError(t, err)
	for _, id := range repository.Regions {
		require.Equal(t, int64(stable.PageSize), sizes[id])
	}

	_, err = app.OpenStorage(ctx, config.Storage{Driver: "mongo"})
	require.Error(t, err)
}
