package common

import "testing"

func TestLerp(t *testing.T) {
	cases := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 0, 10, 0, 0},
		{"end", 0, 10, 1, 10},
		{"midpoint", 4, 8, 0.5, 6},
		{"negative_range", 2, -2, 0.25, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Lerp(c.a, c.b, c.t); got != c.want {
				t.Fatalf("expected Lerp(%v, %v, %v) == %v, got %v", c.a, c.b, c.t, c.want, got)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below", -3, 0, 5, 0},
		{"inside", 2, 0, 5, 2},
		{"above", 9, 0, 5, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("expected Clamp(%v, %v, %v) == %v, got %v", c.v, c.lo, c.hi, c.want, got)
			}
		})
	}
}
