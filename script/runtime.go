// Package script seeds tile maps from Tengo programs.
//
// A terrain script runs once per build inside the map's initializer. It
// receives the map and atlas dimensions plus a seed as globals and leaves
// its result in a global array named tiles, one atlas index per cell in
// row-major order. The full Tengo standard library is available, so scripts
// can reach for rand, math and friends.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/veldtwork/tilemap"
)

// tilesGlobal is the array the script must leave behind.
const tilesGlobal = "tiles"

// Initializer compiles src and returns an initializer for tilemap.BuildWith.
// The program sees the globals width, height, n_tiles_x, n_tiles_y and seed.
// Compile and runtime errors, a missing or malformed tiles array, and
// indices outside the atlas all abort the build.
func Initializer(src []byte, seed int64) func(*tilemap.Indexer) error {
	return func(ix *tilemap.Indexer) error {
		size := ix.Size()
		atlas := ix.NTiles()

		s := tengo.NewScript(src)
		_ = s.Add("width", size.X)
		_ = s.Add("height", size.Y)
		_ = s.Add("n_tiles_x", atlas.X)
		_ = s.Add("n_tiles_y", atlas.Y)
		_ = s.Add("seed", seed)
		s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

		compiled, err := s.Compile()
		if err != nil {
			return fmt.Errorf("script: compile: %w", err)
		}
		if err := compiled.Run(); err != nil {
			return fmt.Errorf("script: run: %w", err)
		}

		if !compiled.IsDefined(tilesGlobal) {
			return fmt.Errorf("script: no global %q was set", tilesGlobal)
		}

		var items []tengo.Object
		switch v := compiled.Get(tilesGlobal).Object().(type) {
		case *tengo.Array:
			items = v.Value
		case *tengo.ImmutableArray:
			items = v.Value
		default:
			return fmt.Errorf("script: global %q is %s, want an array", tilesGlobal, v.TypeName())
		}

		if len(items) != size.X*size.Y {
			return fmt.Errorf("script: %q holds %d values, want width*height = %d", tilesGlobal, len(items), size.X*size.Y)
		}

		cells := atlas.X * atlas.Y
		for i, item := range items {
			val, ok := item.(*tengo.Int)
			if !ok {
				return fmt.Errorf("script: tiles[%d] is %s, want an int", i, item.TypeName())
			}
			if val.Value < 0 || val.Value >= int64(cells) {
				return fmt.Errorf("script: tiles[%d] = %d selects outside the %d-cell atlas", i, val.Value, cells)
			}
			if err := ix.Set(i%size.X, i/size.X, uint32(val.Value)); err != nil {
				return err
			}
		}
		return nil
	}
}
