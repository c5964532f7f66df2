package script

import (
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/veldtwork/tilemap"
)

func testConfig(w, h int) tilemap.Config {
	return tilemap.Config{
		MapSize:  image.Point{X: w, Y: h},
		TileSize: image.Point{X: 16, Y: 16},
		Atlas:    image.Rect(0, 0, 64, 48), // 4x3 grid of 16px cells
	}
}

func cells(t *testing.T, m *tilemap.Map) []uint32 {
	t.Helper()
	size := m.Size()
	out := make([]uint32, 0, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			v, err := m.TileAt(x, y)
			if err != nil {
				t.Fatalf("expected cell (%d, %d) in bounds, got %v", x, y, err)
			}
			out = append(out, v)
		}
	}
	return out
}

func TestInitializerSeedsCells(t *testing.T) {
	src := `
tiles := []
for y := 0; y < height; y++ {
	for x := 0; x < width; x++ {
		tiles = append(tiles, (y*width + x) % (n_tiles_x * n_tiles_y))
	}
}
`
	m, err := tilemap.BuildWith(testConfig(4, 3), Initializer([]byte(src), 0))
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}

	want := make([]uint32, 12)
	for i := range want {
		want[i] = uint32(i)
	}
	if diff := cmp.Diff(want, cells(t, m)); diff != "" {
		t.Fatalf("unexpected cells (-want +got):\n%s", diff)
	}
}

func TestInitializerSeesSeed(t *testing.T) {
	src := `
tiles := []
for i := 0; i < width*height; i++ {
	tiles = append(tiles, seed % (n_tiles_x * n_tiles_y))
}
`
	m, err := tilemap.BuildWith(testConfig(2, 2), Initializer([]byte(src), 7))
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}

	want := []uint32{7, 7, 7, 7}
	if diff := cmp.Diff(want, cells(t, m)); diff != "" {
		t.Fatalf("unexpected cells (-want +got):\n%s", diff)
	}
}

func TestInitializerStdlibDeterministic(t *testing.T) {
	src := `
rand := import("rand")
rand.seed(seed)
tiles := []
for i := 0; i < width*height; i++ {
	tiles = append(tiles, rand.intn(n_tiles_x * n_tiles_y))
}
`
	first, err := tilemap.BuildWith(testConfig(4, 3), Initializer([]byte(src), 42))
	if err != nil {
		t.Fatalf("expected first build to succeed, got %v", err)
	}
	second, err := tilemap.BuildWith(testConfig(4, 3), Initializer([]byte(src), 42))
	if err != nil {
		t.Fatalf("expected second build to succeed, got %v", err)
	}

	if diff := cmp.Diff(cells(t, first), cells(t, second)); diff != "" {
		t.Fatalf("expected the same seed to give the same terrain (-first +second):\n%s", diff)
	}
}

func TestInitializerErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"compile_error", `tiles := (`, "compile"},
		{"runtime_error", `f := 1; tiles := f()`, "run"},
		{"missing_tiles", `x := 1`, "no global"},
		{"not_an_array", `tiles := 7`, "want an array"},
		{"wrong_length", `tiles := [0, 1, 2]`, "want width*height"},
		{"not_an_int", `tiles := [0, 1, 2, "x"]`, "want an int"},
		{"negative_index", `tiles := [0, 1, 2, -1]`, "outside"},
		{"index_past_atlas", `tiles := [0, 1, 2, 99]`, "outside"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := tilemap.BuildWith(testConfig(2, 2), Initializer([]byte(c.src), 0))
			if err == nil {
				t.Fatal("expected build to fail")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}
