// Package scene loads map descriptions from YAML and turns them into
// buildable tilemap configurations.
//
// A scene names the measurements of one map (grid size, tile size, atlas
// paddings), picks a projection and overhang policy by name, and may point
// at an atlas image and a terrain script. Tile contents are not part of a
// scene; they come from the script or from code.
package scene

import (
	"fmt"
	"image"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/veldtwork/tilemap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Spec is one scene as it appears on disk.
type Spec struct {
	Name           string         `yaml:"name" validate:"required"`
	Atlas          string         `yaml:"atlas"`
	MapSize        image.Point    `yaml:"map_size" validate:"required"`
	TileSize       image.Point    `yaml:"tile_size" validate:"required"`
	SizeFactor     int            `yaml:"size_factor" default:"1" validate:"min=1"`
	InnerPadding   image.Point    `yaml:"inner_padding"`
	OuterPaddingTL image.Point    `yaml:"outer_padding_topleft"`
	OuterPaddingBR image.Point    `yaml:"outer_padding_bottomright"`
	ForceNTiles    image.Point    `yaml:"force_n_tiles"`
	Projection     ProjectionSpec `yaml:"projection"`
	Overhang       OverhangSpec   `yaml:"overhang"`
	Script         string         `yaml:"script"`
	Seed           int64          `yaml:"seed"`
	SolidTiles     []uint32       `yaml:"solid_tiles"`
}

// ProjectionSpec selects a grid-to-world projection: one of the stock kinds,
// or "custom" with an explicit 2x2 basis in row-major order.
type ProjectionSpec struct {
	Kind   string    `yaml:"kind" default:"square" validate:"oneof=square isometric custom"`
	Basis  []float64 `yaml:"basis" validate:"omitempty,len=4"`
	Anchor []float64 `yaml:"anchor" validate:"omitempty,len=2"`
}

// OverhangSpec selects the overlap policy by name. Underhangs only applies
// to the perspective mode; empty means the policy's default split.
type OverhangSpec struct {
	Mode       string        `yaml:"mode" default:"none" validate:"oneof=none dominance perspective"`
	Underhangs []image.Point `yaml:"underhangs"`
}

// ParseSpec decodes YAML into any spec type, applying declared defaults
// before decoding and validating the result.
func ParseSpec[T any](data []byte) (T, error) {
	var zero T
	var spec T
	if err := defaults.Set(&spec); err != nil {
		return zero, fmt.Errorf("scene: apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if err := validate.Struct(spec); err != nil {
		return zero, fmt.Errorf("scene: validate: %w", err)
	}
	return spec, nil
}

// LoadSpec reads any spec type from a YAML file.
func LoadSpec[T any](path string) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("scene: read %s: %w", path, err)
	}
	spec, err := ParseSpec[T](data)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes a scene from raw YAML.
func Parse(data []byte) (Spec, error) {
	return ParseSpec[Spec](data)
}

// Load reads a scene from path.
func Load(path string) (Spec, error) {
	return LoadSpec[Spec](path)
}

// Config maps the scene onto a map configuration against the given atlas
// texture. The texture is the caller's to supply: loaded from s.Atlas, or
// generated when the scene names none. The scene itself rides along as the
// map's user data.
func (s Spec) Config(atlas tilemap.Texture) (tilemap.Config, error) {
	proj, err := s.Projection.build()
	if err != nil {
		return tilemap.Config{}, fmt.Errorf("scene %s: %w", s.Name, err)
	}

	var overhang tilemap.OverhangPolicy
	switch s.Overhang.Mode {
	case "", "none":
		overhang = tilemap.NoOverhang()
	case "dominance":
		overhang = tilemap.DominanceOverhang()
	case "perspective":
		overhang = tilemap.PerspectiveOverhang(s.Overhang.Underhangs...)
	default:
		return tilemap.Config{}, fmt.Errorf("scene %s: unknown overhang mode %q", s.Name, s.Overhang.Mode)
	}

	return tilemap.Config{
		MapSize:        s.MapSize,
		TileSize:       s.TileSize,
		SizeFactor:     s.SizeFactor,
		InnerPadding:   s.InnerPadding,
		OuterPaddingTL: s.OuterPaddingTL,
		OuterPaddingBR: s.OuterPaddingBR,
		ForceNTiles:    s.ForceNTiles,
		Projection:     proj,
		Overhang:       overhang,
		Atlas:          atlas,
		UserData:       s,
	}, nil
}

func (p ProjectionSpec) build() (tilemap.Projection, error) {
	var proj tilemap.Projection
	switch p.Kind {
	case "", "square":
		proj = tilemap.Square()
	case "isometric":
		proj = tilemap.Isometric()
	case "custom":
		if len(p.Basis) != 4 {
			return proj, fmt.Errorf("custom projection needs a 4-value basis, got %d", len(p.Basis))
		}
		basis := tilemap.Mat2{A: p.Basis[0], B: p.Basis[1], C: p.Basis[2], D: p.Basis[3]}
		var err error
		proj, err = tilemap.NewProjection(basis, tilemap.Vec2{})
		if err != nil {
			return proj, err
		}
	default:
		return proj, fmt.Errorf("unknown projection kind %q", p.Kind)
	}

	if len(p.Anchor) == 2 {
		proj = proj.WithAnchor(tilemap.Vec2{X: p.Anchor[0], Y: p.Anchor[1]})
	}
	return proj, nil
}
