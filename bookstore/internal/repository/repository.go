package repository

import (
	"context"
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/pkg/stable"
)

const (
	IDCounterRegion stable.RegionID = 0
	BookRegion      stable.RegionID = 1
	BookAssetRegion stable.RegionID = 2
	CustomerRegion  stable.RegionID = 3
)

var Regions = []stable.RegionID{IDCounterRegion, BookRegion, BookAssetRegion, CustomerRegion}

const (
	bookMaxSize      = 4096
	bookAssetMaxSize = 1024
	customerMaxSize  = 1024
)

type Repository interface {
	NextID(ctx context.Context) (uint64, error)

	GetCustomer(id uint64) (model.Customer, bool)
	Customers() iter.Seq2[uint64, model.Customer]
	PutCustomer(ctx context.Context, c model.Customer) error

	GetBook(id uint64) (model.Book, bool)
	Books() iter.Seq2[uint64, model.Book]
	PutBook(ctx context.Context, b model.Book) error

	GetBookAsset(id uint64) (model.BookAsset, bool)
	BookAssets() iter.Seq2[uint64, model.BookAsset]
	PutBookAsset(ctx context.Context, a model.BookAsset) error

	Stats() model.Stats
}

type repository struct {
	log        *zap.Logger
	regions    []stable.Region
	ids        *stable.Cell
	customers  *stable.Table[model.Customer]
	books      *stable.Table[model.Book]
	bookAssets *stable.Table[model.BookAsset]
}

// NewRepository opens the counter and the three tables, each in its own
// region of the manager.
func NewRepository(ctx context.Context, mm *stable.Manager, log *zap.Logger) (*repository, error) {
	r := &repository{log: log.Named("repo")}
	region := func(id stable.RegionID) (stable.Region, error) {
		reg, err := mm.Region(ctx, id)
		if err != nil {
			return nil, err
		}
		r.regions = append(r.regions, reg)
		return reg, nil
	}

	counter, err := region(IDCounterRegion)
	if err != nil {
		return nil, err
	}
	if r.ids, err = stable.InitCell(ctx, counter, 0); err != nil {
		return nil, errors.Wrap(err, "cannot create a counter")
	}

	books, err := region(BookRegion)
	if err != nil {
		return nil, err
	}
	if r.books, err = stable.OpenTable[model.Book](ctx, books, bookMaxSize); err != nil {
		return nil, errors.Wrap(err, "open books")
	}

	assets, err := region(BookAssetRegion)
	if err != nil {
		return nil, err
	}
	if r.bookAssets, err = stable.OpenTable[model.BookAsset](ctx, assets, bookAssetMaxSize); err != nil {
		return nil, errors.Wrap(err, "open book assets")
	}

	customers, err := region(CustomerRegion)
	if err != nil {
		return nil, err
	}
	if r.customers, err = stable.OpenTable[model.Customer](ctx, customers, customerMaxSize); err != nil {
		return nil, errors.Wrap(err, "open customers")
	}

	r.log.Debug("store opened",
		zap.Uint64("lastID", r.ids.Get()),
		zap.Int("customers", r.customers.Len()),
		zap.Int("books", r.books.Len()),
		zap.Int("bookAssets", r.bookAssets.Len()))
	return r, nil
}

// NextID increments the shared counter and returns the new value; the first
// id handed out is 1.
func (r *repository) NextID(ctx context.Context) (uint64, error) {
	next := r.ids.Get() + 1
	if err := r.ids.Set(ctx, next); err != nil {
		return 0, errs.Storage(err, "set id counter")
	}
	return next, nil
}

func (r *repository) GetCustomer(id uint64) (model.Customer, bool) { return r.customers.Get(id) }

func (r *repository) Customers() iter.Seq2[uint64, model.Customer] { return r.customers.Scan() }

func (r *repository) PutCustomer(ctx context.Context, c model.Customer) error {
	return storageFault(r.customers.Insert(ctx, c.ID, c), "customer", c.ID)
}

func (r *repository) GetBook(id uint64) (model.Book, bool) { return r.books.Get(id) }

func (r *repository) Books() iter.Seq2[uint64, model.Book] { return r.books.Scan() }

func (r *repository) PutBook(ctx context.Context, b model.Book) error {
	return storageFault(r.books.Insert(ctx, b.ID, b), "book", b.ID)
}

func (r *repository) GetBookAsset(id uint64) (model.BookAsset, bool) { return r.bookAssets.Get(id) }

func (r *repository) BookAssets() iter.Seq2[uint64, model.BookAsset] { return r.bookAssets.Scan() }

func (r *repository) PutBookAsset(ctx context.Context, a model.BookAsset) error {
	return storageFault(r.bookAssets.Insert(ctx, a.ID, a), "book asset", a.ID)
}

func (r *repository) Stats() model.Stats {
	regions := make(map[string]int64, len(r.regions))
	names := map[stable.RegionID]string{
		IDCounterRegion: "idCounter",
		BookRegion:      "books",
		BookAssetRegion: "bookAssets",
		CustomerRegion:  "customers",
	}
	for _, reg := range r.regions {
		regions[names[reg.ID()]] = reg.Size()
	}
	return model.Stats{
		Customers:  r.customers.Len(),
		Books:      r.books.Len(),
		BookAssets: r.bookAssets.Len(),
		LastID:     r.ids.Get(),
		Regions:    regions,
	}
}

func storageFault(err error, kind string, id uint64) error {
	if err == nil {
		return nil
	}
	return errs.Storage(err, "insert %s %d", kind, id)
}
