// Package collision turns a tile map's solid cells into Chipmunk static
// geometry.
package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/veldtwork/tilemap"
)

const (
	defaultIterations = 20
	defaultFriction   = 0.8
	edgeThickness     = 1.0
)

// Params tunes the space BuildSpace produces. The zero value gives a
// gravityless space with the stock solver settings and boundary walls.
type Params struct {
	Gravity cp.Vector
	// Friction applies to every generated shape; zero selects the stock 0.8.
	Friction   float64
	Elasticity float64
	// Iterations overrides the solver iteration count when positive.
	Iterations int
	// NoEdges skips the segment walls around the map's world rectangle.
	NoEdges bool
}

// Solid reports whether a tile index counts as solid geometry.
type Solid func(id uint32) bool

// SolidSet returns a Solid matching exactly the given atlas indices.
func SolidSet(ids ...uint32) Solid {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id uint32) bool {
		_, ok := set[id]
		return ok
	}
}

// BuildSpace creates a static space for m: contiguous solid cells merge
// greedily into as few box shapes as possible (a run grows rightward first,
// then claims whole rows downward), and the map's world rectangle is walled
// off with segments unless disabled. Cell rectangles assume the square
// projection; under other projections the boxes track grid positions, not
// projected footprints.
func BuildSpace(m *tilemap.Map, solid Solid, p Params) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	if p.Iterations > 0 {
		space.Iterations = uint(p.Iterations)
	}
	space.SetGravity(p.Gravity)

	friction := p.Friction
	if friction == 0 {
		friction = defaultFriction
	}

	size := m.Size()
	ts := m.TileSize()
	processed := make([]bool, size.X*size.Y)
	solidAt := func(x, y int) bool {
		if processed[y*size.X+x] {
			return false
		}
		id, err := m.TileAt(x, y)
		return err == nil && solid(id)
	}

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			idx := y*size.X + x
			if processed[idx] {
				continue
			}
			if !solidAt(x, y) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < size.X && solidAt(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < size.Y {
				for xi := x; xi < x+w; xi++ {
					if !solidAt(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			bb := cp.BB{
				L: float64(x * ts.X),
				B: float64(y * ts.Y),
				R: float64((x + w) * ts.X),
				T: float64((y + h) * ts.Y),
			}
			shape := cp.NewBox2(space.StaticBody, bb, 0)
			shape.SetFriction(friction)
			shape.SetElasticity(p.Elasticity)
			space.AddShape(shape)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*size.X+xx] = true
				}
			}
		}
	}

	if !p.NoEdges {
		addEdges(space, m.WorldSize(), friction)
	}
	return space
}

func addEdges(space *cp.Space, world tilemap.Vec2, friction float64) {
	if world.X <= 0 || world.Y <= 0 {
		return
	}
	segments := [4][2]cp.Vector{
		{{X: 0, Y: 0}, {X: world.X, Y: 0}},
		{{X: 0, Y: world.Y}, {X: world.X, Y: world.Y}},
		{{X: 0, Y: 0}, {X: 0, Y: world.Y}},
		{{X: world.X, Y: 0}, {X: world.X, Y: world.Y}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(space.StaticBody, seg[0], seg[1], edgeThickness)
		shape.SetFriction(friction)
		space.AddShape(shape)
	}
}
