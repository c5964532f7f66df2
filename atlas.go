package tilemap

import (
	"fmt"
	"image"
	"math"
)

// layoutEps is how far an inferred tile count may sit from an integer before
// the atlas is rejected as unsliceable. A one-pixel measurement error shifts
// the count by 1/cell-size, which stays above this for any practical cell.
const layoutEps = 1e-3

// LayoutError reports atlas measurements that do not divide into a whole
// number of tiles along one axis.
type LayoutError struct {
	Axis   string  // "x" or "y"
	NTiles float64 // the fractional tile count the measurements produce
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("atlas layout: %s axis yields %.6g tiles, want an integer (tile size and paddings do not divide the atlas)", e.Axis, e.NTiles)
}

// AtlasLayout describes how tile sprites are arranged inside an atlas
// texture. NTiles is derived at build time; the pixel measurements are
// carried so cell rectangles can be computed.
type AtlasLayout struct {
	NTiles         image.Point // tiles per atlas axis
	TileSize       image.Point // on-map tile size, pixels
	SizeFactor     int         // atlas cells are TileSize*SizeFactor pixels
	InnerPadding   image.Point // pixel gap between adjacent cells
	OuterPaddingTL image.Point // pixel margin before the first cell
	OuterPaddingBR image.Point // pixel margin after the last cell
}

// DeriveLayout computes the atlas tile grid for cfg against an atlas of
// atlasPx pixels. When cfg.ForceNTiles is set it is used verbatim, bypassing
// inference even if the paddings alone would not validate. Otherwise each
// axis must divide into a whole tile count within tolerance; a miss is a
// *LayoutError naming the axis, never a silent rounding.
func DeriveLayout(atlasPx image.Point, cfg Config) (AtlasLayout, error) {
	l := AtlasLayout{
		TileSize:       cfg.TileSize,
		SizeFactor:     cfg.SizeFactor,
		InnerPadding:   cfg.InnerPadding,
		OuterPaddingTL: cfg.OuterPaddingTL,
		OuterPaddingBR: cfg.OuterPaddingBR,
	}
	if cfg.ForceNTiles != (image.Point{}) {
		l.NTiles = cfg.ForceNTiles
		return l, nil
	}
	nx, err := deriveAxis("x", atlasPx.X, cfg.TileSize.X, cfg.SizeFactor, cfg.InnerPadding.X, cfg.OuterPaddingTL.X, cfg.OuterPaddingBR.X)
	if err != nil {
		return AtlasLayout{}, err
	}
	ny, err := deriveAxis("y", atlasPx.Y, cfg.TileSize.Y, cfg.SizeFactor, cfg.InnerPadding.Y, cfg.OuterPaddingTL.Y, cfg.OuterPaddingBR.Y)
	if err != nil {
		return AtlasLayout{}, err
	}
	l.NTiles = image.Point{X: nx, Y: ny}
	return l, nil
}

func deriveAxis(axis string, atlasPx, tilePx, factor, inner, outerTL, outerBR int) (int, error) {
	cell := tilePx*factor + inner
	if cell <= 0 {
		return 0, fmt.Errorf("atlas layout: %s axis cell size %dpx is not positive", axis, cell)
	}
	n := float64(atlasPx-outerTL-outerBR+inner) / float64(cell)
	r := math.Round(n)
	if math.Abs(n-r) > layoutEps {
		return 0, &LayoutError{Axis: axis, NTiles: n}
	}
	if r < 1 {
		return 0, fmt.Errorf("atlas layout: %s axis fits no tiles (%dpx atlas, %dpx cells)", axis, atlasPx, cell)
	}
	return int(r), nil
}

// Cells returns how many tile sprites the atlas holds.
func (l AtlasLayout) Cells() int { return l.NTiles.X * l.NTiles.Y }

// CellSize returns the pixel size of one atlas cell.
func (l AtlasLayout) CellSize() image.Point {
	return image.Point{X: l.TileSize.X * l.SizeFactor, Y: l.TileSize.Y * l.SizeFactor}
}

// CellRect returns the pixel rectangle of atlas cell id. Cells are counted
// row-major across NTiles.X columns. The id is not range-checked; callers
// validate against Cells.
func (l AtlasLayout) CellRect(id uint32) image.Rectangle {
	col := int(id) % l.NTiles.X
	row := int(id) / l.NTiles.X
	cs := l.CellSize()
	x0 := l.OuterPaddingTL.X + col*(cs.X+l.InnerPadding.X)
	y0 := l.OuterPaddingTL.Y + row*(cs.Y+l.InnerPadding.Y)
	return image.Rect(x0, y0, x0+cs.X, y0+cs.Y)
}

// Bounds returns the pixel extent the layout occupies, paddings included.
func (l AtlasLayout) Bounds() image.Rectangle {
	cs := l.CellSize()
	w := l.OuterPaddingTL.X + l.NTiles.X*cs.X + (l.NTiles.X-1)*l.InnerPadding.X + l.OuterPaddingBR.X
	h := l.OuterPaddingTL.Y + l.NTiles.Y*cs.Y + (l.NTiles.Y-1)*l.InnerPadding.Y + l.OuterPaddingBR.Y
	return image.Rect(0, 0, w, h)
}

// OverhangRect grows cell id's rectangle into the surrounding inner padding
// toward each direction in dirs, clamped to the layout bounds. Artwork that
// spills past its own cell lives in those padding pixels, so this is the
// sampling region for an overhanging tile.
func (l AtlasLayout) OverhangRect(id uint32, dirs []image.Point) image.Rectangle {
	r := l.CellRect(id)
	var left, right, up, down bool
	for _, d := range dirs {
		left = left || d.X < 0
		right = right || d.X > 0
		up = up || d.Y < 0
		down = down || d.Y > 0
	}
	if left {
		r.Min.X -= l.InnerPadding.X
	}
	if right {
		r.Max.X += l.InnerPadding.X
	}
	if up {
		r.Min.Y -= l.InnerPadding.Y
	}
	if down {
		r.Max.Y += l.InnerPadding.Y
	}
	return r.Intersect(l.Bounds())
}

// WorldSize returns the world-space extent, in pixels, spanned by a mapSize
// grid of tileSize tiles under p: the bounding box of the four projected map
// corners. For the square projection this is simply mapSize*tileSize.
func WorldSize(mapSize, tileSize image.Point, p Projection) Vec2 {
	w := float64(mapSize.X)
	h := float64(mapSize.Y)
	corners := [4]Vec2{{}, {X: w}, {Y: h}, {X: w, Y: h}}
	min := p.Forward(corners[0])
	max := min
	for _, c := range corners[1:] {
		v := p.Forward(c)
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return Vec2{
		X: (max.X - min.X) * float64(tileSize.X),
		Y: (max.Y - min.Y) * float64(tileSize.Y),
	}
}
