package filter

import (
	"testing"

	"github.com/gogpu/filmfx/raster"
)

// Test helper functions shared across filter tests.

var identity = ChannelMatrix{
	R: Vec4{1, 0, 0, 0},
	G: Vec4{0, 1, 0, 0},
	B: Vec4{0, 0, 1, 0},
	A: Vec4{0, 0, 0, 1},
}

// filled creates a raster of the given size filled with c.
func filled(t testing.TB, w, h int, c raster.Color) *raster.Raster {
	t.Helper()
	r, err := raster.New(raster.Rect(w, h))
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	r.Fill(c)
	return r
}

// applyColor runs m over a single pixel of color c.
func applyColor(t testing.TB, m ChannelMatrix, c raster.Color) raster.Color {
	t.Helper()
	dst, err := m.Apply(filled(t, 1, 1, c), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return dst.Pixel(0, 0)
}

// ramp creates a raster whose pixel (x, y) is gray (y*w+x)/(w*h).
func ramp(t testing.TB, w, h int) *raster.Raster {
	t.Helper()
	r := filled(t, w, h, raster.Color{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.SetPixel(x, y, raster.Gray(float32(y*w+x)/float32(w*h)))
		}
	}
	return r
}

// colorApproxEqual compares two colors with tolerance.
func colorApproxEqual(a, b raster.Color, tolerance float32) bool {
	return absf32(a.R-b.R) <= tolerance &&
		absf32(a.G-b.G) <= tolerance &&
		absf32(a.B-b.B) <= tolerance &&
		absf32(a.A-b.A) <= tolerance
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
