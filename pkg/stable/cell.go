package stable

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Cell layout: magic(3) | version(1) | value(8, little endian).
var cellMagic = []byte("SCL")

const (
	cellVersion = 1
	cellSize    = 12
)

// Cell is a single durable uint64 stored at the start of a region.
type Cell struct {
	region Region
	value  uint64
}

// InitCell writes def into an empty region, or reads back the value an
// earlier process left there.
func InitCell(ctx context.Context, r Region, def uint64) (*Cell, error) {
	c := &Cell{region: r}
	if r.Size() == 0 {
		if err := r.Grow(ctx, 1); err != nil {
			return nil, err
		}
		if err := c.Set(ctx, def); err != nil {
			return nil, err
		}
		return c, nil
	}

	buf := make([]byte, cellSize)
	if err := r.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	if !bytes.Equal(buf[:3], cellMagic) || buf[3] != cellVersion {
		return nil, errors.Wrapf(ErrCorrupted, "region %d holds no cell", r.ID())
	}
	c.value = binary.LittleEndian.Uint64(buf[4:])
	return c, nil
}

func (c *Cell) Get() uint64 { return c.value }

func (c *Cell) Set(ctx context.Context, v uint64) error {
	buf := make([]byte, cellSize)
	copy(buf, cellMagic)
	buf[3] = cellVersion
	binary.LittleEndian.PutUint64(buf[4:], v)
	if err := c.region.Write(ctx, 0, buf); err != nil {
		return err
	}
	c.value = v
	return nil
}
