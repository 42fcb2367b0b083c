package sqlite

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

type DB struct {
	Path string `envconfig:"SQLITE_PATH" default:"data/bookstore.db"`
}

// NewSQLiteDB opens (or creates) the database file and applies the embedded
// goose migrations.
func NewSQLiteDB(ctx context.Context, cfg *DB, migrations embed.FS) (*sqlx.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrap(err, "create db dir")
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)", cfg.Path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Open")
	}
	// one connection keeps writers ordered
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "db.Ping")
	}

	goose.SetBaseFS(migrations)
	if err = goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "goose.SetDialect")
	}
	if err = goose.Up(db.DB, "sqlite"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "goose.Up")
	}
	return db, nil
}
