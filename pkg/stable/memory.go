// Package stable hands out named, independently growable byte regions backed
// by one durable page medium, and builds a counter cell and bounded-record
// tables on top of them.
package stable

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// PageSize is the unit regions grow by and the unit the medium persists.
const PageSize = 4 << 10 // 4 KB

type RegionID uint8

var (
	ErrOutOfBounds = errors.New("access beyond region size")
	ErrCorrupted   = errors.New("region is corrupted")
)

// PageStore is the durable medium. Store must apply all given pages
// atomically: either every page is persisted or none is.
type PageStore interface {
	Load(ctx context.Context, id RegionID) ([][]byte, error)
	Store(ctx context.Context, id RegionID, first int64, pages [][]byte) error
}

type Region interface {
	ID() RegionID
	// Size is in bytes and always a multiple of PageSize.
	Size() int64
	Grow(ctx context.Context, pages int64) error
	ReadAt(p []byte, off int64) error
	Write(ctx context.Context, off int64, p []byte) error
}

// Manager owns the medium and lazily opens regions on first access.
type Manager struct {
	mu      sync.Mutex
	store   PageStore
	regions map[RegionID]*region
}

func NewManager(store PageStore) *Manager {
	return &Manager{
		store:   store,
		regions: make(map[RegionID]*region),
	}
}

func (m *Manager) Region(ctx context.Context, id RegionID) (Region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.regions[id]; ok {
		return r, nil
	}
	pages, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load region %d", id)
	}
	for i, p := range pages {
		if len(p) != PageSize {
			return nil, errors.Wrapf(ErrCorrupted, "region %d page %d has %d bytes", id, i, len(p))
		}
	}
	r := &region{id: id, store: m.store, pages: pages}
	m.regions[id] = r
	return r, nil
}

// region keeps a write-through copy of its pages; reads never touch the medium.
type region struct {
	id    RegionID
	store PageStore
	pages [][]byte
}

func (r *region) ID() RegionID { return r.id }

func (r *region) Size() int64 { return int64(len(r.pages)) * PageSize }

func (r *region) Grow(ctx context.Context, pages int64) error {
	if pages <= 0 {
		return nil
	}
	fresh := make([][]byte, pages)
	for i := range fresh {
		fresh[i] = make([]byte, PageSize)
	}
	if err := r.store.Store(ctx, r.id, int64(len(r.pages)), fresh); err != nil {
		return errors.Wrapf(err, "grow region %d", r.id)
	}
	r.pages = append(r.pages, fresh...)
	return nil
}

func (r *region) ReadAt(p []byte, off int64) error {
	if off < 0 || off+int64(len(p)) > r.Size() {
		return errors.Wrapf(ErrOutOfBounds, "read %d bytes at %d of region %d", len(p), off, r.id)
	}
	for n := 0; n < len(p); {
		page, in := (off+int64(n))/PageSize, (off+int64(n))%PageSize
		n += copy(p[n:], r.pages[page][in:])
	}
	return nil
}

// Write persists every touched page in one Store call and only then updates
// the in-memory copy, so a failed write leaves the region unchanged.
func (r *region) Write(ctx context.Context, off int64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if off < 0 || off+int64(len(p)) > r.Size() {
		return errors.Wrapf(ErrOutOfBounds, "write %d bytes at %d of region %d", len(p), off, r.id)
	}
	first, last := off/PageSize, (off+int64(len(p))-1)/PageSize
	touched := make([][]byte, 0, last-first+1)
	for i := first; i <= last; i++ {
		page := make([]byte, PageSize)
		copy(page, r.pages[i])
		touched = append(touched, page)
	}
	for n := 0; n < len(p); {
		at := off + int64(n)
		n += copy(touched[at/PageSize-first][at%PageSize:], p[n:])
	}
	if err := r.store.Store(ctx, r.id, first, touched); err != nil {
		return errors.Wrapf(err, "write region %d", r.id)
	}
	for i, page := range touched {
		r.pages[first+int64(i)] = page
	}
	return nil
}

// MemoryStore is a PageStore living as long as the process. Handing the same
// store to a new Manager simulates a restart.
type MemoryStore struct {
	mu      sync.Mutex
	regions map[RegionID][][]byte
}

var _ PageStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{regions: make(map[RegionID][][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, id RegionID) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages := make([][]byte, len(s.regions[id]))
	for i, p := range s.regions[id] {
		pages[i] = append([]byte(nil), p...)
	}
	return pages, nil
}

func (s *MemoryStore) Store(_ context.Context, id RegionID, first int64, pages [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.regions[id]
	if first > int64(len(stored)) {
		return errors.Errorf("store region %d: page %d leaves a gap after %d pages", id, first, len(stored))
	}
	for i, p := range pages {
		at := first + int64(i)
		cp := append([]byte(nil), p...)
		if at < int64(len(stored)) {
			stored[at] = cp
		} else {
			stored = append(stored, cp)
		}
	}
	s.regions[id] = stored
	return nil
}
