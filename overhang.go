package tilemap

import (
	"fmt"
	"image"
)

// OverhangMode selects how overlap between neighboring tiles' artwork is
// resolved.
type OverhangMode uint8

const (
	// OverhangNone keeps every tile inside its own cell.
	OverhangNone OverhangMode = iota
	// OverhangDominance lets higher atlas indices paint over lower ones.
	OverhangDominance
	// OverhangPerspective paints by world depth: greater world Y first.
	OverhangPerspective
)

func (m OverhangMode) String() string {
	switch m {
	case OverhangNone:
		return "none"
	case OverhangDominance:
		return "dominance"
	case OverhangPerspective:
		return "perspective"
	}
	return fmt.Sprintf("OverhangMode(%d)", uint8(m))
}

// neighborDirs are the eight grid offsets around a cell, row-major.
var neighborDirs = [8]image.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// OverhangPolicy is one of none, dominance or perspective, plus the
// underhang direction set in perspective mode. The zero value is the none
// policy. A policy holds exactly one mode, so the dominance and perspective
// variants can never be active together.
type OverhangPolicy struct {
	mode       OverhangMode
	underhangs []image.Point
}

// NoOverhang returns the policy under which tiles never paint outside their
// own cell.
func NoOverhang() OverhangPolicy { return OverhangPolicy{} }

// DominanceOverhang returns the policy under which overlap is won by the
// higher atlas tile index. Every neighbor direction participates; order
// depends only on the indices.
func DominanceOverhang() OverhangPolicy { return OverhangPolicy{mode: OverhangDominance} }

// PerspectiveOverhang returns the depth-ordered policy. Each given direction
// is one a tile may paint beneath its neighbor; the antipodal directions
// become overhangs. With no directions given the underhangs default to the
// sign-split half of the eight neighbor offsets pointing at later-painted
// neighbors: d.Y < 0, or d.Y == 0 and d.X > 0.
func PerspectiveOverhang(underhangs ...image.Point) OverhangPolicy {
	return OverhangPolicy{mode: OverhangPerspective, underhangs: underhangs}
}

// Mode returns the active variant.
func (p OverhangPolicy) Mode() OverhangMode { return p.mode }

// Underhangs returns the directions a tile may paint beneath a neighbor.
// Only the perspective mode has any. The default set points at the neighbors
// painted after the tile itself: smaller world Y, or the later row-major
// cell on a depth tie.
func (p OverhangPolicy) Underhangs() []image.Point {
	if p.mode != OverhangPerspective {
		return nil
	}
	if len(p.underhangs) > 0 {
		return append([]image.Point(nil), p.underhangs...)
	}
	out := make([]image.Point, 0, 4)
	for _, d := range neighborDirs {
		if d.Y < 0 || (d.Y == 0 && d.X > 0) {
			out = append(out, d)
		}
	}
	return out
}

// Overhangs returns the directions a tile may paint over a neighbor: every
// neighbor for dominance, the underhang antipodes for perspective.
func (p OverhangPolicy) Overhangs() []image.Point {
	switch p.mode {
	case OverhangDominance:
		return append([]image.Point(nil), neighborDirs[:]...)
	case OverhangPerspective:
		unders := p.Underhangs()
		out := make([]image.Point, len(unders))
		for i, d := range unders {
			out[i] = image.Point{X: -d.X, Y: -d.Y}
		}
		return out
	}
	return nil
}

// PaintDirections returns every direction a tile may paint into, over or
// under a neighbor. The set is the same for every grid coordinate: empty for
// none, all eight for dominance, the overhangs plus underhangs for
// perspective.
func (p OverhangPolicy) PaintDirections() []image.Point {
	switch p.mode {
	case OverhangDominance:
		return append([]image.Point(nil), neighborDirs[:]...)
	case OverhangPerspective:
		return append(p.Overhangs(), p.Underhangs()...)
	}
	return nil
}

func (p OverhangPolicy) validate() error {
	for _, d := range p.underhangs {
		if d == (image.Point{}) || d.X < -1 || d.X > 1 || d.Y < -1 || d.Y > 1 {
			return fmt.Errorf("overhang policy: underhang direction (%d, %d) is not a unit grid offset", d.X, d.Y)
		}
	}
	return nil
}

// PaintItem is one cell of a draw pass: its grid position, the atlas tile
// index it selects and the world Y of its projected anchor.
type PaintItem struct {
	Grid   image.Point
	ID     uint32
	WorldY float64
}

// Less reports whether a must be painted before b under the policy.
// Dominance paints ascending atlas index so higher indices land on top.
// Perspective paints greater world Y (further away) first so nearer tiles
// occlude. Ties, and the none policy, fall back to row-major grid order,
// keeping a full sort deterministic and reproducible.
func (p OverhangPolicy) Less(a, b PaintItem) bool {
	switch p.mode {
	case OverhangDominance:
		if a.ID != b.ID {
			return a.ID < b.ID
		}
	case OverhangPerspective:
		if a.WorldY != b.WorldY {
			return a.WorldY > b.WorldY
		}
	}
	if a.Grid.Y != b.Grid.Y {
		return a.Grid.Y < b.Grid.Y
	}
	return a.Grid.X < b.Grid.X
}
