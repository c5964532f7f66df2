package tilemap

import (
	"fmt"
	"image"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Texture is the read-only view of an atlas image the core needs: its pixel
// bounds. *ebiten.Image, any image.Image, and image.Rectangle itself all
// satisfy it. The map stores the reference for its renderer but never
// creates or frees the underlying texture.
type Texture interface {
	Bounds() image.Rectangle
}

// Config collects every measurement and policy a map is built from. Fill it
// and hand it to Build; it is validated wholesale there, not field by field
// in setters. The zero values of Projection and Overhang select the square
// projection and the none policy.
type Config struct {
	// MapSize is the grid size in tiles.
	MapSize image.Point `yaml:"map_size"`
	// TileSize is the on-map tile size in pixels.
	TileSize image.Point `yaml:"tile_size"`
	// SizeFactor scales TileSize when slicing the atlas: atlas cells are
	// TileSize*SizeFactor pixels.
	SizeFactor int `yaml:"size_factor" default:"1" validate:"min=1"`
	// InnerPadding is the pixel gap between adjacent atlas cells. Overhang
	// artwork lives in these pixels.
	InnerPadding image.Point `yaml:"inner_padding"`
	// OuterPaddingTL and OuterPaddingBR are the pixel margins before the
	// first and after the last atlas cell.
	OuterPaddingTL image.Point `yaml:"outer_padding_topleft"`
	OuterPaddingBR image.Point `yaml:"outer_padding_bottomright"`
	// ForceNTiles overrides atlas tile-grid inference when non-zero. It is
	// trusted verbatim.
	ForceNTiles image.Point `yaml:"force_n_tiles"`
	// Projection maps grid coordinates to world offsets.
	Projection Projection `yaml:"-"`
	// Overhang selects the overlap policy.
	Overhang OverhangPolicy `yaml:"-"`
	// Atlas is the texture the tile indices select into. Required.
	Atlas Texture `yaml:"-"`
	// UserData rides along untouched and stays reachable on the built map.
	UserData any `yaml:"-"`
}

// normalize applies defaults and validates cfg, returning the copy a build
// proceeds with. Every violation is fatal to the build; nothing is silently
// corrected.
func (c Config) normalize() (Config, error) {
	if err := defaults.Set(&c); err != nil {
		return c, fmt.Errorf("config defaults: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if c.MapSize.X < 1 || c.MapSize.Y < 1 {
		return c, fmt.Errorf("config: map size %dx%d, want at least 1x1", c.MapSize.X, c.MapSize.Y)
	}
	if c.TileSize.X < 1 || c.TileSize.Y < 1 {
		return c, fmt.Errorf("config: tile size %dx%d, want at least 1x1", c.TileSize.X, c.TileSize.Y)
	}
	for _, p := range []struct {
		name string
		pt   image.Point
	}{
		{"inner_padding", c.InnerPadding},
		{"outer_padding_topleft", c.OuterPaddingTL},
		{"outer_padding_bottomright", c.OuterPaddingBR},
	} {
		if p.pt.X < 0 || p.pt.Y < 0 {
			return c, fmt.Errorf("config: %s (%d, %d) must not be negative", p.name, p.pt.X, p.pt.Y)
		}
	}
	if f := c.ForceNTiles; f != (image.Point{}) && (f.X < 1 || f.Y < 1) {
		return c, fmt.Errorf("config: force_n_tiles %dx%d must set both axes to at least 1", f.X, f.Y)
	}
	if c.Atlas == nil {
		return c, fmt.Errorf("config: atlas texture is required")
	}
	if c.Projection.IsZero() {
		c.Projection = Square()
	}
	if err := c.Overhang.validate(); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
