package tilemap

import (
	"errors"
	"fmt"
	"image"
)

// ErrOutOfBounds reports a tile access outside the map grid.
var ErrOutOfBounds = errors.New("tile coordinate out of bounds")

// TileBuffer is the flat row-major store of atlas tile indices backing a
// map: cell (x, y) lives at index y*width + x. It is allocated zero-filled
// once the map size is known and never resized.
type TileBuffer struct {
	width  int
	height int
	cells  []uint32
}

func newTileBuffer(size image.Point) *TileBuffer {
	return &TileBuffer{
		width:  size.X,
		height: size.Y,
		cells:  make([]uint32, size.X*size.Y),
	}
}

// Size returns the grid dimensions in tiles.
func (b *TileBuffer) Size() image.Point { return image.Point{X: b.width, Y: b.height} }

// Len returns the cell count, always width*height.
func (b *TileBuffer) Len() int { return len(b.cells) }

func (b *TileBuffer) check(x, y int) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return nil
}

// Get returns the tile index at (x, y).
func (b *TileBuffer) Get(x, y int) (uint32, error) {
	if err := b.check(x, y); err != nil {
		return 0, err
	}
	return b.cells[y*b.width+x], nil
}

// Set writes the tile index at (x, y). An out-of-range coordinate is
// reported as an error, never clamped or wrapped, and no cell changes.
func (b *TileBuffer) Set(x, y int, v uint32) error {
	if err := b.check(x, y); err != nil {
		return err
	}
	b.cells[y*b.width+x] = v
	return nil
}

// Fill calls fn exactly once per cell in row-major order (y outer, x inner)
// and stores each result.
func (b *TileBuffer) Fill(fn func(x, y int) uint32) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.cells[y*b.width+x] = fn(x, y)
		}
	}
}

// Indexer is the bounded view a map hands its initializer: it can read and
// write tile contents and read the frozen geometry, but cannot resize the
// map or touch the projection. When the initializer returns, the indexer is
// sealed; using a retained one afterwards panics.
type Indexer struct {
	m      *Map
	sealed bool
}

func (ix *Indexer) guard() *Map {
	if ix.sealed {
		panic("tilemap: indexer used outside its initializer")
	}
	return ix.m
}

// Size returns the map grid size in tiles.
func (ix *Indexer) Size() image.Point { return ix.guard().buf.Size() }

// TileSize returns the on-map tile size in pixels.
func (ix *Indexer) TileSize() image.Point { return ix.guard().layout.TileSize }

// NTiles returns the atlas tile grid, so initializers can range-check the
// indices they write.
func (ix *Indexer) NTiles() image.Point { return ix.guard().layout.NTiles }

// Get returns the tile index at (x, y).
func (ix *Indexer) Get(x, y int) (uint32, error) { return ix.guard().buf.Get(x, y) }

// Set writes the tile index at (x, y).
func (ix *Indexer) Set(x, y int, v uint32) error { return ix.guard().buf.Set(x, y, v) }

// Fill seeds every cell from fn in row-major order.
func (ix *Indexer) Fill(fn func(x, y int) uint32) { ix.guard().buf.Fill(fn) }
