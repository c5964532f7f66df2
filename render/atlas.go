package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/veldtwork/tilemap"
)

// bleedDirs covers all eight neighbors so generated artwork fills every
// padding pixel a grown source rectangle can reach.
var bleedDirs = []image.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// GenerateAtlas renders a placeholder atlas for layout: one flat, bordered
// cell per atlas tile, colored from palette in cell order. Cell color is
// bled into the surrounding inner padding so overhang source rectangles
// never sample transparent seams.
func GenerateAtlas(layout tilemap.AtlasLayout, palette []color.Color) *image.RGBA {
	img := image.NewRGBA(layout.Bounds())
	if len(palette) == 0 {
		palette = []color.Color{color.Gray{Y: 0x80}}
	}

	for id := 0; id < layout.Cells(); id++ {
		base := palette[id%len(palette)]
		grown := layout.OverhangRect(uint32(id), bleedDirs)
		draw.Draw(img, grown, image.NewUniform(base), image.Point{}, draw.Src)

		cell := layout.CellRect(uint32(id))
		edge := darken(base, 0.6)
		for x := cell.Min.X; x < cell.Max.X; x++ {
			img.Set(x, cell.Min.Y, edge)
			img.Set(x, cell.Max.Y-1, edge)
		}
		for y := cell.Min.Y; y < cell.Max.Y; y++ {
			img.Set(cell.Min.X, y, edge)
			img.Set(cell.Max.X-1, y, edge)
		}
	}
	return img
}

func darken(c color.Color, factor float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * factor),
		G: uint16(float64(g) * factor),
		B: uint16(float64(b) * factor),
		A: uint16(a),
	}
}
