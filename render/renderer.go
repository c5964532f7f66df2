// Package render draws tile maps onto ebiten images.
//
// The core package is display-agnostic: world coordinates grow upward and
// carry no pixel scale beyond the tile size. This package owns the screen
// mapping (Y flipped, camera offset and zoom applied) and the atlas
// sub-image lookups, including the grown source rectangles overhang
// policies call for.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veldtwork/tilemap"
	"github.com/veldtwork/tilemap/common"
)

// ErrAtlasImage reports a map whose atlas texture is not an *ebiten.Image.
var ErrAtlasImage = errors.New("render: map atlas is not an *ebiten.Image")

const (
	minZoom = 0.25
	maxZoom = 8.0
)

// Camera is a screen-space view transform: world pixels are shifted by
// (-X, -Y) and scaled by Zoom. The zero value renders unshifted at zoom 1.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// SetZoom sets the zoom factor, clamped to a usable range.
func (c *Camera) SetZoom(z float64) {
	c.Zoom = common.Clamp(z, minZoom, maxZoom)
}

// Pan shifts the view by (dx, dy) screen pixels at zoom 1.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// Renderer draws one built map. It holds the map's atlas as an ebiten
// texture; build maps with an *ebiten.Image atlas to render them.
type Renderer struct {
	m     *tilemap.Map
	atlas *ebiten.Image
}

func NewRenderer(m *tilemap.Map) (*Renderer, error) {
	atlas, ok := m.Atlas().(*ebiten.Image)
	if !ok {
		return nil, fmt.Errorf("%w (got %T)", ErrAtlasImage, m.Atlas())
	}
	return &Renderer{m: m, atlas: atlas}, nil
}

// Draw paints every cell of the map onto screen in the order the map's
// overhang policy dictates. Cells whose index falls outside the atlas are
// skipped.
func (r *Renderer) Draw(screen *ebiten.Image, cam Camera) {
	layout := r.m.Layout()
	dirs := atlasDirs(r.m.Policy().PaintDirections())
	anchor := r.m.Projection().Anchor()
	ts := layout.TileSize
	scale := 1.0 / float64(layout.SizeFactor)
	zoom := cam.zoom()
	cells := layout.Cells()

	for _, it := range r.m.PaintOrder() {
		if int(it.ID) >= cells {
			continue
		}

		cell := layout.CellRect(it.ID)
		src := cell
		if len(dirs) > 0 {
			src = layout.OverhangRect(it.ID, dirs)
		}
		sub := r.atlas.SubImage(src).(*ebiten.Image)

		px, py := ScreenPos(r.m, it.Grid.X, it.Grid.Y)
		tlx := px - anchor.X*float64(ts.X)
		tly := py - (1-anchor.Y)*float64(ts.Y)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(src.Min.X-cell.Min.X), float64(src.Min.Y-cell.Min.Y))
		op.GeoM.Scale(scale, scale)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((tlx-cam.X)*zoom, (tly-cam.Y)*zoom)
		screen.DrawImage(sub, op)
	}
}

// atlasDirs converts world-space paint directions (Y up) into atlas image
// space (Y down), where the padding pixels around each cell live.
func atlasDirs(dirs []image.Point) []image.Point {
	out := make([]image.Point, len(dirs))
	for i, d := range dirs {
		out[i] = image.Point{X: d.X, Y: -d.Y}
	}
	return out
}

// ScreenPos returns the screen-space pixel position (Y down) of cell
// (x, y)'s anchor before any camera transform. World Y is flipped, so
// cells the map considers further away land higher on the screen.
func ScreenPos(m *tilemap.Map, x, y int) (float64, float64) {
	w := m.WorldPos(x, y)
	return w.X, -w.Y
}

// ScreenBounds returns the corners of the screen-space rectangle (Y down)
// the whole map covers before any camera transform.
func ScreenBounds(m *tilemap.Map) (min, max tilemap.Vec2) {
	size := m.Size()
	ts := m.TileSize()
	proj := m.Projection()

	w, h := float64(size.X), float64(size.Y)
	corners := [4]tilemap.Vec2{{}, {X: w}, {Y: h}, {X: w, Y: h}}
	for i, c := range corners {
		fw := proj.Forward(c)
		p := tilemap.Vec2{X: fw.X * float64(ts.X), Y: -fw.Y * float64(ts.Y)}
		if i == 0 {
			min, max = p, p
			continue
		}
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
