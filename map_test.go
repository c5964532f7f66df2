package tilemap

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testConfig() Config {
	return Config{
		MapSize:  image.Point{X: 4, Y: 3},
		TileSize: image.Point{X: 16, Y: 16},
		Atlas:    image.Rect(0, 0, 64, 48),
	}
}

func TestBuildZeroFilled(t *testing.T) {
	m, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got, want := m.Size(), (image.Point{X: 4, Y: 3}); got != want {
		t.Fatalf("expected size %v, got %v", want, got)
	}
	if got, want := m.NTiles(), (image.Point{X: 4, Y: 3}); got != want {
		t.Fatalf("expected atlas grid %v, got %v", want, got)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			v, err := m.TileAt(x, y)
			if err != nil {
				t.Fatalf("TileAt(%d, %d) failed: %v", x, y, err)
			}
			if v != 0 {
				t.Fatalf("expected zero tile at (%d, %d), got %d", x, y, v)
			}
		}
	}
}

func TestBuildWithInitializer(t *testing.T) {
	cfg := testConfig()
	cfg.MapSize = image.Point{X: 2, Y: 2}

	m, err := BuildWith(cfg, func(ix *Indexer) error {
		return ix.Set(1, 0, 5)
	})
	if err != nil {
		t.Fatalf("BuildWith failed: %v", err)
	}
	if diff := cmp.Diff([]uint32{0, 5, 0, 0}, m.buf.cells); diff != "" {
		t.Fatalf("buffer mismatch after initializer (-want +got):\n%v", diff)
	}
}

func TestBuildEachRowMajor(t *testing.T) {
	cfg := testConfig()
	cfg.MapSize = image.Point{X: 3, Y: 2}

	m, err := BuildEach(cfg, func(x, y int) uint32 { return uint32(y*3 + x) })
	if err != nil {
		t.Fatalf("BuildEach failed: %v", err)
	}
	if diff := cmp.Diff([]uint32{0, 1, 2, 3, 4, 5}, m.buf.cells); diff != "" {
		t.Fatalf("buffer mismatch (-want +got):\n%v", diff)
	}
}

func TestBuildValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil_atlas", func(c *Config) { c.Atlas = nil }},
		{"zero_map_size", func(c *Config) { c.MapSize = image.Point{} }},
		{"zero_tile_size", func(c *Config) { c.TileSize = image.Point{} }},
		{"negative_inner_padding", func(c *Config) { c.InnerPadding = image.Point{X: -1, Y: 0} }},
		{"negative_size_factor", func(c *Config) { c.SizeFactor = -2 }},
		{"half_set_force", func(c *Config) { c.ForceNTiles = image.Point{X: 4, Y: 0} }},
		{"unsliceable_atlas", func(c *Config) { c.InnerPadding = image.Point{X: 1, Y: 1} }},
		{"bad_underhang", func(c *Config) { c.Overhang = PerspectiveOverhang(image.Point{X: 2, Y: 0}) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			c.mutate(&cfg)
			if _, err := Build(cfg); err == nil {
				t.Fatalf("expected build to fail")
			}
		})
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.SizeFactor = 0 // default kicks in

	m, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := m.Layout().SizeFactor; got != 1 {
		t.Fatalf("expected default size factor 1, got %d", got)
	}
	if m.Projection().IsZero() {
		t.Fatalf("expected zero projection to default to square")
	}
}

func TestBuildLayoutErrorIdentifiesAxis(t *testing.T) {
	cfg := testConfig()
	cfg.InnerPadding = image.Point{X: 1, Y: 1}

	_, err := Build(cfg)
	var lerr *LayoutError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LayoutError, got %v", err)
	}
	if lerr.Axis != "x" {
		t.Fatalf("expected the x axis to fail first, got %q", lerr.Axis)
	}
}

func TestBuildInitializerErrorAborts(t *testing.T) {
	wantErr := fmt.Errorf("seed data unavailable")
	_, err := BuildWith(testConfig(), func(ix *Indexer) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the initializer error to surface, got %v", err)
	}
}

func TestIndexerMetadata(t *testing.T) {
	cfg := testConfig()
	called := false
	_, err := BuildWith(cfg, func(ix *Indexer) error {
		called = true
		if got, want := ix.Size(), (image.Point{X: 4, Y: 3}); got != want {
			t.Fatalf("expected indexer size %v, got %v", want, got)
		}
		if got, want := ix.TileSize(), (image.Point{X: 16, Y: 16}); got != want {
			t.Fatalf("expected indexer tile size %v, got %v", want, got)
		}
		if got, want := ix.NTiles(), (image.Point{X: 4, Y: 3}); got != want {
			t.Fatalf("expected indexer atlas grid %v, got %v", want, got)
		}
		if err := ix.Set(-1, 0, 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected ErrOutOfBounds through the indexer, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("BuildWith failed: %v", err)
	}
	if !called {
		t.Fatalf("expected the initializer to run exactly once")
	}
}

func TestIndexerSealedAfterBuild(t *testing.T) {
	var escaped *Indexer
	_, err := BuildWith(testConfig(), func(ix *Indexer) error {
		escaped = ix
		return nil
	})
	if err != nil {
		t.Fatalf("BuildWith failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a retained indexer to panic")
		}
	}()
	_ = escaped.Set(0, 0, 1)
}

func TestMapWorldGeometry(t *testing.T) {
	cases := []struct {
		name string
		proj Projection
		want Vec2
	}{
		{"square", Square(), Vec2{X: 64, Y: 48}},
		{"isometric", Isometric(), Vec2{X: 56, Y: 28}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Projection = c.proj
			m, err := Build(cfg)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if diff := cmp.Diff(c.want, m.WorldSize()); diff != "" {
				t.Fatalf("world size mismatch (-want +got):\n%v", diff)
			}
		})
	}
}

func TestMapWorldPos(t *testing.T) {
	m, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if diff := cmp.Diff(Vec2{X: 16, Y: 32}, m.WorldPos(1, 2)); diff != "" {
		t.Fatalf("world position mismatch (-want +got):\n%v", diff)
	}
}

func TestPaintOrderDominance(t *testing.T) {
	cfg := testConfig()
	cfg.MapSize = image.Point{X: 2, Y: 2}
	cfg.Overhang = DominanceOverhang()

	ids := map[image.Point]uint32{
		{0, 0}: 3, {1, 0}: 0,
		{0, 1}: 2, {1, 1}: 1,
	}
	m, err := BuildEach(cfg, func(x, y int) uint32 { return ids[image.Point{X: x, Y: y}] })
	if err != nil {
		t.Fatalf("BuildEach failed: %v", err)
	}

	var got []image.Point
	for _, it := range m.PaintOrder() {
		got = append(got, it.Grid)
	}
	want := []image.Point{{1, 0}, {1, 1}, {0, 1}, {0, 0}} // ids 0, 1, 2, 3
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dominance paint order mismatch (-want +got):\n%v", diff)
	}
}

func TestPaintOrderPerspective(t *testing.T) {
	cfg := testConfig()
	cfg.MapSize = image.Point{X: 1, Y: 2}
	cfg.Overhang = PerspectiveOverhang()

	m, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	order := m.PaintOrder()
	// (0, 1) projects to a greater world Y than (0, 0): further away, so
	// it must be painted first.
	if got, want := order[0].Grid, (image.Point{X: 0, Y: 1}); got != want {
		t.Fatalf("expected %v painted first, got %v", want, got)
	}
	if order[0].WorldY <= order[1].WorldY {
		t.Fatalf("expected descending world Y, got %v then %v", order[0].WorldY, order[1].WorldY)
	}
}

func TestPaintOrderNoneRowMajor(t *testing.T) {
	cfg := testConfig()
	cfg.MapSize = image.Point{X: 2, Y: 2}

	m, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var got []image.Point
	for _, it := range m.PaintOrder() {
		got = append(got, it.Grid)
	}
	want := []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("row-major paint order mismatch (-want +got):\n%v", diff)
	}
}

func TestMapTileWrites(t *testing.T) {
	m, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := m.SetTile(2, 1, 9); err != nil {
		t.Fatalf("SetTile failed: %v", err)
	}
	v, err := m.TileAt(2, 1)
	if err != nil {
		t.Fatalf("TileAt failed: %v", err)
	}
	if v != 9 {
		t.Fatalf("expected 9, got %d", v)
	}
	if err := m.SetTile(99, 0, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestMapUserData(t *testing.T) {
	cfg := testConfig()
	cfg.UserData = "level-1"

	m, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := m.UserData(); got != "level-1" {
		t.Fatalf("expected user data to survive the build, got %v", got)
	}
	m.SetUserData(42)
	if got := m.UserData(); got != 42 {
		t.Fatalf("expected user data 42, got %v", got)
	}
}
