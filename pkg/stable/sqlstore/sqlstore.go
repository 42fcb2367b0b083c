// Package sqlstore keeps region pages in a SQL table:
//
//	region_pages(region_id, page_no, data) primary key (region_id, page_no)
//
// The same queries run against SQLite and PostgreSQL; only the placeholder
// format differs.
package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Astemirdum/bookstore-service/pkg/stable"
)

const pagesTableName = `region_pages`

var ErrNotMigrated = errors.New("region_pages table is missing, run migrations")

type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
}

var (
	SQLite   = Dialect{Name: "sqlite", Placeholder: sq.Question}
	Postgres = Dialect{Name: "postgres", Placeholder: sq.Dollar}
)

type Store struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

var _ stable.PageStore = (*Store)(nil)

func New(db *sqlx.DB, d Dialect) *Store {
	return &Store{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(d.Placeholder),
	}
}

type page struct {
	No   int64  `db:"page_no"`
	Data []byte `db:"data"`
}

func (s *Store) Load(ctx context.Context, id stable.RegionID) ([][]byte, error) {
	query, args, err := s.qb.Select("page_no", "data").
		From(pagesTableName).
		Where(sq.Eq{"region_id": int(id)}).
		OrderBy("page_no").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []page
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classify(err)
	}
	pages := make([][]byte, 0, len(rows))
	for i, row := range rows {
		if row.No != int64(i) {
			return nil, errors.Wrapf(stable.ErrCorrupted, "region %d: page %d missing", id, i)
		}
		pages = append(pages, row.Data)
	}
	return pages, nil
}

func (s *Store) Store(ctx context.Context, id stable.RegionID, first int64, pages [][]byte) (retErr error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	q := s.qb.Insert(pagesTableName).Columns("region_id", "page_no", "data")
	for i, p := range pages {
		q = q.Values(int(id), first+int64(i), p)
	}
	query, args, err := q.
		Suffix("ON CONFLICT (region_id, page_no) DO UPDATE SET data = excluded.data").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return classify(err)
	}
	return tx.Commit()
}

// Regions reports how many pages each region holds.
func (s *Store) Regions(ctx context.Context) (map[stable.RegionID]int64, error) {
	query, args, err := s.qb.Select("region_id", "count(*) AS pages").
		From(pagesTableName).
		GroupBy("region_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    int   `db:"region_id"`
		Pages int64 `db:"pages"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classify(err)
	}
	out := make(map[stable.RegionID]int64, len(rows))
	for _, r := range rows {
		out[stable.RegionID(r.ID)] = r.Pages
	}
	return out, nil
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return errors.Wrap(ErrNotMigrated, pgErr.Message)
	}
	return err
}
