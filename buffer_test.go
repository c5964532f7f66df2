package tilemap

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTileBufferRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		x, y int
		v    uint32
	}{
		{"origin", 0, 0, 7},
		{"last_cell", 3, 2, 42},
		{"mid", 2, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTileBuffer(image.Point{X: 4, Y: 3})
			if err := b.Set(c.x, c.y, c.v); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, err := b.Get(c.x, c.y)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != c.v {
				t.Fatalf("expected %d at (%d, %d), got %d", c.v, c.x, c.y, got)
			}
		})
	}
}

func TestTileBufferOutOfBounds(t *testing.T) {
	cases := []struct {
		name string
		x, y int
	}{
		{"negative_x", -1, 0},
		{"negative_y", 0, -1},
		{"x_past_width", 4, 0},
		{"y_past_height", 0, 3},
		{"both_past", 4, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTileBuffer(image.Point{X: 4, Y: 3})
			b.Fill(func(x, y int) uint32 { return uint32(y*4 + x) })
			before := append([]uint32(nil), b.cells...)

			if err := b.Set(c.x, c.y, 999); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds from Set(%d, %d), got %v", c.x, c.y, err)
			}
			if _, err := b.Get(c.x, c.y); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds from Get(%d, %d), got %v", c.x, c.y, err)
			}
			if diff := cmp.Diff(before, b.cells); diff != "" {
				t.Fatalf("out-of-bounds access mutated the buffer (-want +got):\n%v", diff)
			}
		})
	}
}

func TestTileBufferFillRowMajor(t *testing.T) {
	b := newTileBuffer(image.Point{X: 3, Y: 2})

	var visits []image.Point
	b.Fill(func(x, y int) uint32 {
		visits = append(visits, image.Point{X: x, Y: y})
		return uint32(y*3 + x)
	})

	wantVisits := []image.Point{
		{0, 0}, {1, 0}, {2, 0},
		{0, 1}, {1, 1}, {2, 1},
	}
	if diff := cmp.Diff(wantVisits, visits); diff != "" {
		t.Fatalf("fill visit order mismatch (-want +got):\n%v", diff)
	}

	wantCells := []uint32{0, 1, 2, 3, 4, 5}
	if diff := cmp.Diff(wantCells, b.cells); diff != "" {
		t.Fatalf("fill result mismatch (-want +got):\n%v", diff)
	}
}

func TestTileBufferZeroFilled(t *testing.T) {
	b := newTileBuffer(image.Point{X: 5, Y: 4})
	if b.Len() != 20 {
		t.Fatalf("expected 20 cells, got %d", b.Len())
	}
	for i, v := range b.cells {
		if v != 0 {
			t.Fatalf("expected cell %d zero after allocation, got %d", i, v)
		}
	}
	if got, want := b.Size(), (image.Point{X: 5, Y: 4}); got != want {
		t.Fatalf("expected size %v, got %v", want, got)
	}
}
