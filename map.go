package tilemap

import (
	"fmt"
	"image"
	"sort"
)

// Map is a finalized tile map. Its geometry (grid size, tile size, atlas
// layout, projection, overhang policy) is fixed for the map's lifetime; only
// tile contents and user metadata stay mutable, through narrow accessors.
// Concurrent readers need no synchronization; interleaving a writer is the
// caller's responsibility.
type Map struct {
	atlas     Texture
	proj      Projection
	layout    AtlasLayout
	buf       *TileBuffer
	policy    OverhangPolicy
	worldSize Vec2
	userData  any
}

// Build validates cfg, derives the atlas layout and returns a finalized map
// with every cell zero. Configuration problems (unsliceable atlas, singular
// basis, bad sizes) abort the build; there is no partially built map.
func Build(cfg Config) (*Map, error) {
	return BuildWith(cfg, nil)
}

// BuildWith builds the map and, between buffer allocation and finalization,
// hands init exclusive access to the tiles through a bounded Indexer. The
// initializer runs exactly once and to completion; an error from it abandons
// the build. The indexer must not be retained: it is sealed when the
// initializer returns. World size is computed last, after initialization.
func BuildWith(cfg Config, init func(*Indexer) error) (*Map, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	layout, err := DeriveLayout(cfg.Atlas.Bounds().Size(), cfg)
	if err != nil {
		return nil, err
	}
	m := &Map{
		atlas:    cfg.Atlas,
		proj:     cfg.Projection,
		layout:   layout,
		buf:      newTileBuffer(cfg.MapSize),
		policy:   cfg.Overhang,
		userData: cfg.UserData,
	}
	if init != nil {
		ix := &Indexer{m: m}
		err := init(ix)
		ix.sealed = true
		if err != nil {
			return nil, fmt.Errorf("map initializer: %w", err)
		}
	}
	m.worldSize = WorldSize(cfg.MapSize, cfg.TileSize, m.proj)
	return m, nil
}

// BuildEach builds the map and seeds every cell from fn, called exactly once
// per cell in row-major order.
func BuildEach(cfg Config, fn func(x, y int) uint32) (*Map, error) {
	return BuildWith(cfg, func(ix *Indexer) error {
		ix.Fill(fn)
		return nil
	})
}

// Size returns the map grid size in tiles.
func (m *Map) Size() image.Point { return m.buf.Size() }

// TileSize returns the on-map tile size in pixels.
func (m *Map) TileSize() image.Point { return m.layout.TileSize }

// NTiles returns the atlas tile grid derived at build time.
func (m *Map) NTiles() image.Point { return m.layout.NTiles }

// WorldSize returns the world-space extent of the whole map in pixels.
func (m *Map) WorldSize() Vec2 { return m.worldSize }

// Projection returns the grid-to-world projection.
func (m *Map) Projection() Projection { return m.proj }

// Layout returns the atlas layout.
func (m *Map) Layout() AtlasLayout { return m.layout }

// Policy returns the overhang policy.
func (m *Map) Policy() OverhangPolicy { return m.policy }

// Atlas returns the texture handle the map was built with.
func (m *Map) Atlas() Texture { return m.atlas }

// TileAt returns the tile index at (x, y).
func (m *Map) TileAt(x, y int) (uint32, error) { return m.buf.Get(x, y) }

// SetTile writes the tile index at (x, y). Callers serialize writes against
// concurrent readers themselves.
func (m *Map) SetTile(x, y int, v uint32) error { return m.buf.Set(x, y, v) }

// Fill reseeds every cell from fn in row-major order.
func (m *Map) Fill(fn func(x, y int) uint32) { m.buf.Fill(fn) }

// WorldPos returns the world-space anchor of cell (x, y) in pixels.
func (m *Map) WorldPos(x, y int) Vec2 {
	t := m.proj.Forward(Vec2{X: float64(x), Y: float64(y)})
	return Vec2{
		X: t.X * float64(m.layout.TileSize.X),
		Y: t.Y * float64(m.layout.TileSize.Y),
	}
}

// PaintOrder returns one PaintItem per cell, sorted into the order the
// overhang policy wants them painted. The sort is stable over row-major
// iteration, so equal keys keep a deterministic order.
func (m *Map) PaintOrder() []PaintItem {
	size := m.buf.Size()
	items := make([]PaintItem, 0, m.buf.Len())
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			items = append(items, PaintItem{
				Grid:   image.Point{X: x, Y: y},
				ID:     m.buf.cells[y*size.X+x],
				WorldY: m.WorldPos(x, y).Y,
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return m.policy.Less(items[i], items[j]) })
	return items
}

// UserData returns the caller-owned metadata.
func (m *Map) UserData() any { return m.userData }

// SetUserData replaces the caller-owned metadata.
func (m *Map) SetUserData(v any) { m.userData = v }
