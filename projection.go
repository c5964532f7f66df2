package tilemap

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularBasis reports a projection basis that cannot be inverted.
var ErrSingularBasis = errors.New("singular projection basis")

// singularEps is the smallest determinant magnitude accepted for a basis.
const singularEps = 1e-9

// Vec2 is a 2-D vector in grid or world space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Mat2 is a 2x2 matrix. Apply treats vectors as columns:
//
//	| A  B |   | x |
//	| C  D | * | y |
type Mat2 struct {
	A, B, C, D float64
}

// Apply multiplies m by v.
func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{X: m.A*v.X + m.B*v.Y, Y: m.C*v.X + m.D*v.Y}
}

// Det returns the determinant.
func (m Mat2) Det() float64 { return m.A*m.D - m.B*m.C }

// Inverse returns the matrix inverse. Callers must check Det first; a
// singular matrix produces non-finite entries.
func (m Mat2) Inverse() Mat2 {
	d := m.Det()
	return Mat2{A: m.D / d, B: -m.B / d, C: -m.C / d, D: m.A / d}
}

// Projection maps grid coordinates to world offsets through an invertible
// 2x2 basis, then anchors each cell at a normalized point inside its
// footprint. Forward and Invert work in tile units; multiply by the map's
// tile size for pixels (Map.WorldPos does).
//
// The zero Projection is unset and unusable; obtain one from NewProjection,
// Square or Isometric so the cached inverse always exists.
type Projection struct {
	basis   Mat2
	inverse Mat2
	anchor  Vec2
}

// NewProjection builds a projection from basis and a tile anchor point,
// where anchor (0, 0) is the cell origin and (1, 1) the opposite corner.
// The inverse is computed once here; a basis with a near-zero determinant is
// rejected so Invert never has a failure mode.
func NewProjection(basis Mat2, anchor Vec2) (Projection, error) {
	if d := basis.Det(); math.Abs(d) < singularEps {
		return Projection{}, fmt.Errorf("%w: determinant %g", ErrSingularBasis, d)
	}
	return Projection{basis: basis, inverse: basis.Inverse(), anchor: anchor}, nil
}

func mustProjection(basis Mat2, anchor Vec2) Projection {
	p, err := NewProjection(basis, anchor)
	if err != nil {
		panic(err)
	}
	return p
}

// Square returns the axis-aligned projection: grid steps map straight onto
// world axes, one tile per step.
func Square() Projection {
	return mustProjection(Mat2{A: 1, B: 0, C: 0, D: 1}, Vec2{})
}

// Isometric returns the 2:1 diamond projection: a grid X step runs half a
// tile right and a quarter tile deep, a grid Y step mirrors it to the left.
func Isometric() Projection {
	return mustProjection(Mat2{A: 0.5, B: -0.5, C: 0.25, D: 0.25}, Vec2{})
}

// WithAnchor returns a copy of p with the tile anchor point set to a.
func (p Projection) WithAnchor(a Vec2) Projection {
	p.anchor = a
	return p
}

// Basis returns the grid-to-world basis.
func (p Projection) Basis() Mat2 { return p.basis }

// Anchor returns the tile anchor point.
func (p Projection) Anchor() Vec2 { return p.anchor }

// IsZero reports whether p was never constructed.
func (p Projection) IsZero() bool { return p.basis == (Mat2{}) }

// Forward maps a grid coordinate to the world offset of its anchor, in tile
// units. Pure; no failure mode.
func (p Projection) Forward(c Vec2) Vec2 {
	return p.basis.Apply(c.Add(p.anchor))
}

// Invert maps a world offset back to the grid coordinate whose anchor sits
// there. Always defined: singular bases never get past NewProjection.
func (p Projection) Invert(w Vec2) Vec2 {
	return p.inverse.Apply(w).Sub(p.anchor)
}
