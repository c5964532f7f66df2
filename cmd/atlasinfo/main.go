// Command atlasinfo reports how an atlas image slices into tile cells. It
// runs the same layout derivation maps are built with, so a failing atlas
// fails here with the same axis error, and a passing one prints the grid a
// build would use. With a map size it also reports the world extent.
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v2"

	"github.com/veldtwork/tilemap"
	"github.com/veldtwork/tilemap/scene"
)

const ATLAS string = `atlas`
const SCENE string = `scene`
const TILESIZE string = `tilesize`
const FACTOR string = `factor`
const INNER string = `inner`
const TOPLEFT string = `topleft`
const BOTTOMRIGHT string = `bottomright`
const FORCE string = `force`
const MAPSIZE string = `mapsize`
const PROJECTION string = `projection`

func main() {
	app := cli.NewApp()
	app.Name = "atlasinfo"
	app.Usage = "Inspect how a tile atlas slices into cells"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     ATLAS,
			Aliases:  []string{"a"},
			Usage:    "Atlas image (png or jpeg)",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(ATLAS)},
		},
		&cli.StringFlag{
			Name:    SCENE,
			Aliases: []string{"c"},
			Usage:   "Scene YAML supplying the measurements; overrides the flags below",
			EnvVars: []string{strcase.ToScreamingSnake(SCENE)},
		},
		&cli.StringFlag{
			Name:    TILESIZE,
			Aliases: []string{"t"},
			Usage:   "Tile size in pixels, N or NxM",
			Value:   "16",
			EnvVars: []string{strcase.ToScreamingSnake(TILESIZE)},
		},
		&cli.IntFlag{
			Name:    FACTOR,
			Aliases: []string{"f"},
			Usage:   "Atlas cell size factor relative to the tile size",
			Value:   1,
			EnvVars: []string{strcase.ToScreamingSnake(FACTOR)},
		},
		&cli.StringFlag{
			Name:    INNER,
			Usage:   "Inner padding between cells in pixels, N or NxM",
			Value:   "0",
			EnvVars: []string{strcase.ToScreamingSnake(INNER)},
		},
		&cli.StringFlag{
			Name:    TOPLEFT,
			Usage:   "Outer padding before the first cell, N or NxM",
			Value:   "0",
			EnvVars: []string{strcase.ToScreamingSnake(TOPLEFT)},
		},
		&cli.StringFlag{
			Name:    BOTTOMRIGHT,
			Usage:   "Outer padding after the last cell, N or NxM",
			Value:   "0",
			EnvVars: []string{strcase.ToScreamingSnake(BOTTOMRIGHT)},
		},
		&cli.StringFlag{
			Name:    FORCE,
			Usage:   "Skip inference and force the tile grid, NxM",
			EnvVars: []string{strcase.ToScreamingSnake(FORCE)},
		},
		&cli.StringFlag{
			Name:    MAPSIZE,
			Aliases: []string{"m"},
			Usage:   "Optional map size in tiles, NxM; prints the world extent",
			EnvVars: []string{strcase.ToScreamingSnake(MAPSIZE)},
		},
		&cli.StringFlag{
			Name:    PROJECTION,
			Aliases: []string{"p"},
			Usage:   "Projection for the world extent: square or isometric",
			Value:   "square",
			EnvVars: []string{strcase.ToScreamingSnake(PROJECTION)},
		},
	}

	app.Action = func(c *cli.Context) error {
		cfg, mapSize, projKind, err := configFrom(c)
		if err != nil {
			return err
		}

		atlasPx, err := imageSize(c.String(ATLAS))
		if err != nil {
			return err
		}

		layout, err := tilemap.DeriveLayout(atlasPx, cfg)
		if err != nil {
			return err
		}

		cell := layout.CellSize()
		fmt.Printf("atlas  %s, %dx%d px\n", c.String(ATLAS), atlasPx.X, atlasPx.Y)
		fmt.Printf("cell   %dx%d px (tile %dx%d, factor %d)\n",
			cell.X, cell.Y, layout.TileSize.X, layout.TileSize.Y, layout.SizeFactor)
		fmt.Printf("grid   %dx%d tiles, %d cells", layout.NTiles.X, layout.NTiles.Y, layout.Cells())
		if cfg.ForceNTiles != (image.Point{}) {
			fmt.Printf(" (forced, inference bypassed)")
		}
		fmt.Println()

		if mapSize != (image.Point{}) {
			proj, err := projectionFor(projKind)
			if err != nil {
				return err
			}
			world := tilemap.WorldSize(mapSize, layout.TileSize, proj)
			fmt.Printf("world  %.0fx%.0f px for a %dx%d map (%s projection)\n",
				world.X, world.Y, mapSize.X, mapSize.Y, projKind)
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// configFrom assembles the layout inputs either from a scene file or from
// the individual flags.
func configFrom(c *cli.Context) (tilemap.Config, image.Point, string, error) {
	if scenePath := c.String(SCENE); scenePath != "" {
		spec, err := scene.Load(scenePath)
		if err != nil {
			return tilemap.Config{}, image.Point{}, "", err
		}
		cfg := tilemap.Config{
			TileSize:       spec.TileSize,
			SizeFactor:     spec.SizeFactor,
			InnerPadding:   spec.InnerPadding,
			OuterPaddingTL: spec.OuterPaddingTL,
			OuterPaddingBR: spec.OuterPaddingBR,
			ForceNTiles:    spec.ForceNTiles,
		}
		kind := spec.Projection.Kind
		if kind == "" || kind == "custom" {
			kind = "square"
		}
		return cfg, spec.MapSize, kind, nil
	}

	var cfg tilemap.Config
	var err error
	if cfg.TileSize, err = parsePoint(c.String(TILESIZE)); err != nil {
		return cfg, image.Point{}, "", err
	}
	cfg.SizeFactor = c.Int(FACTOR)
	if cfg.InnerPadding, err = parsePoint(c.String(INNER)); err != nil {
		return cfg, image.Point{}, "", err
	}
	if cfg.OuterPaddingTL, err = parsePoint(c.String(TOPLEFT)); err != nil {
		return cfg, image.Point{}, "", err
	}
	if cfg.OuterPaddingBR, err = parsePoint(c.String(BOTTOMRIGHT)); err != nil {
		return cfg, image.Point{}, "", err
	}
	if cfg.ForceNTiles, err = parsePoint(c.String(FORCE)); err != nil {
		return cfg, image.Point{}, "", err
	}
	mapSize, err := parsePoint(c.String(MAPSIZE))
	if err != nil {
		return cfg, image.Point{}, "", err
	}
	return cfg, mapSize, c.String(PROJECTION), nil
}

func projectionFor(kind string) (tilemap.Projection, error) {
	switch kind {
	case "square":
		return tilemap.Square(), nil
	case "isometric":
		return tilemap.Isometric(), nil
	}
	return tilemap.Projection{}, fmt.Errorf("unknown projection %q, want square or isometric", kind)
}

// parsePoint reads "N" or "NxM"; a single value applies to both axes.
func parsePoint(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	var x, y int
	if n, err := fmt.Sscanf(s, "%dx%d", &x, &y); err == nil && n == 2 {
		return image.Point{X: x, Y: y}, nil
	}
	if n, err := fmt.Sscanf(s, "%d", &x); err == nil && n == 1 {
		return image.Point{X: x, Y: x}, nil
	}
	return image.Point{}, fmt.Errorf("invalid size %q, want N or NxM", s)
}

func imageSize(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return image.Point{X: cfg.Width, Y: cfg.Height}, nil
}
