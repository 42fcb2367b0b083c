package stable

import (
	"bytes"
	"context"
	"encoding/binary"
	"iter"
	"slices"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Table layout:
//
//	header: magic(3) | version(1) | max record size(4) | slot count(8)
//	slot:   key(8) | record length(4) | record(max record size)
//
// A replaced record is rewritten in its own slot, so the region only grows
// when a new key arrives.
var tableMagic = []byte("SBT")

const (
	tableVersion    = 1
	tableHeaderSize = 16
	slotHeaderSize  = 12
)

var ErrRecordTooLarge = errors.New("record exceeds max size")

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Table is an ordered map from uint64 keys to records of type V, each
// encoded as JSON no larger than maxSize bytes.
type Table[V any] struct {
	region  Region
	maxSize uint32
	count   uint64
	slots   map[uint64]uint64
	keys    []uint64
}

func OpenTable[V any](ctx context.Context, r Region, maxSize uint32) (*Table[V], error) {
	t := &Table[V]{
		region:  r,
		maxSize: maxSize,
		slots:   make(map[uint64]uint64),
	}
	if r.Size() == 0 {
		if err := r.Grow(ctx, 1); err != nil {
			return nil, err
		}
		if err := t.writeHeader(ctx, 0); err != nil {
			return nil, err
		}
		return t, nil
	}

	hdr := make([]byte, tableHeaderSize)
	if err := r.ReadAt(hdr, 0); err != nil {
		return nil, err
	}
	if !bytes.Equal(hdr[:3], tableMagic) || hdr[3] != tableVersion {
		return nil, errors.Wrapf(ErrCorrupted, "region %d holds no table", r.ID())
	}
	if stored := binary.LittleEndian.Uint32(hdr[4:]); stored != maxSize {
		return nil, errors.Errorf("region %d: table max size is %d, opened with %d", r.ID(), stored, maxSize)
	}
	t.count = binary.LittleEndian.Uint64(hdr[8:])

	for i := uint64(0); i < t.count; i++ {
		key, rec, err := t.readSlot(i)
		if err != nil {
			return nil, err
		}
		var v V
		if err := codec.Unmarshal(rec, &v); err != nil {
			return nil, errors.Wrapf(ErrCorrupted, "region %d slot %d: %v", r.ID(), i, err)
		}
		t.slots[key] = i
		t.keys = append(t.keys, key)
	}
	slices.Sort(t.keys)
	return t, nil
}

func (t *Table[V]) Len() int { return len(t.keys) }

func (t *Table[V]) Get(key uint64) (V, bool) {
	var v V
	slot, ok := t.slots[key]
	if !ok {
		return v, false
	}
	return t.decode(slot), true
}

// Insert adds or replaces the record stored under key.
func (t *Table[V]) Insert(ctx context.Context, key uint64, v V) error {
	rec, err := codec.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	if len(rec) > int(t.maxSize) {
		return errors.Wrapf(ErrRecordTooLarge, "key %d: %d bytes, max %d", key, len(rec), t.maxSize)
	}

	slot, exists := t.slots[key]
	if !exists {
		slot = t.count
	}
	buf := make([]byte, slotHeaderSize+len(rec))
	binary.LittleEndian.PutUint64(buf, key)
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(rec)))
	copy(buf[slotHeaderSize:], rec)

	off := t.slotOffset(slot)
	if end := off + t.slotSize(); end > t.region.Size() {
		pages := (end - t.region.Size() + PageSize - 1) / PageSize
		if err := t.region.Grow(ctx, pages); err != nil {
			return err
		}
	}
	if err := t.region.Write(ctx, off, buf); err != nil {
		return err
	}
	if exists {
		return nil
	}
	// The slot only becomes part of the table once the count covers it.
	if err := t.writeHeader(ctx, t.count+1); err != nil {
		return err
	}
	t.count++
	t.slots[key] = slot
	i, _ := slices.BinarySearch(t.keys, key)
	t.keys = slices.Insert(t.keys, i, key)
	return nil
}

// Scan yields records in key order. Each call starts a fresh scan.
func (t *Table[V]) Scan() iter.Seq2[uint64, V] {
	return func(yield func(uint64, V) bool) {
		for _, key := range slices.Clone(t.keys) {
			slot, ok := t.slots[key]
			if !ok {
				continue
			}
			if !yield(key, t.decode(slot)) {
				return
			}
		}
	}
}

// decode panics on failure: every slot was validated when the table was
// opened or written by Insert from a successfully encoded value.
func (t *Table[V]) decode(slot uint64) V {
	var v V
	_, rec, err := t.readSlot(slot)
	if err == nil {
		err = codec.Unmarshal(rec, &v)
	}
	if err != nil {
		panic(errors.Wrapf(err, "decode region %d slot %d", t.region.ID(), slot))
	}
	return v
}

func (t *Table[V]) readSlot(slot uint64) (uint64, []byte, error) {
	off := t.slotOffset(slot)
	hdr := make([]byte, slotHeaderSize)
	if err := t.region.ReadAt(hdr, off); err != nil {
		return 0, nil, err
	}
	key := binary.LittleEndian.Uint64(hdr)
	size := binary.LittleEndian.Uint32(hdr[8:])
	if size > t.maxSize {
		return 0, nil, errors.Wrapf(ErrCorrupted, "region %d slot %d: length %d", t.region.ID(), slot, size)
	}
	rec := make([]byte, size)
	if err := t.region.ReadAt(rec, off+slotHeaderSize); err != nil {
		return 0, nil, err
	}
	return key, rec, nil
}

func (t *Table[V]) writeHeader(ctx context.Context, count uint64) error {
	hdr := make([]byte, tableHeaderSize)
	copy(hdr, tableMagic)
	hdr[3] = tableVersion
	binary.LittleEndian.PutUint32(hdr[4:], t.maxSize)
	binary.LittleEndian.PutUint64(hdr[8:], count)
	return t.region.Write(ctx, 0, hdr)
}

func (t *Table[V]) slotSize() int64 { return slotHeaderSize + int64(t.maxSize) }

func (t *Table[V]) slotOffset(slot uint64) int64 {
	return tableHeaderSize + int64(slot)*t.slotSize()
}
