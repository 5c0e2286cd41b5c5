package filmfx

import (
	"image"
	"testing"

	"github.com/gogpu/filmfx/raster"
)

// Test helper functions shared across filmfx tests.

// grayImage creates an opaque gray NRGBA image.
func grayImage(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	return img
}

// gradientImage creates an opaque image with a diagonal color gradient.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x * 255 / w)
			img.Pix[i+1] = uint8(y * 255 / h)
			img.Pix[i+2] = uint8((x + y) * 127 / (w + h))
			img.Pix[i+3] = 255
		}
	}
	return img
}

// constSource returns the same sample forever.
type constSource float32

func (c constSource) Float32() float32 { return float32(c) }

// rasterApproxEqual compares two rasters channel by channel with tolerance.
func rasterApproxEqual(t testing.TB, got, want *raster.Raster, tolerance float32) {
	t.Helper()
	if got.Extent() != want.Extent() {
		t.Fatalf("Extent = %v, want %v", got.Extent(), want.Extent())
	}
	g, w := got.Pix(), want.Pix()
	for i := range g {
		if d := g[i] - w[i]; d > tolerance || d < -tolerance {
			t.Fatalf("value %d (pixel %d) = %v, want %v", i, i/raster.Channels, g[i], w[i])
		}
	}
}

// absDiffSum sums |a-b| over the RGB channels.
func absDiffSum(a, b *raster.Raster) float64 {
	var s float64
	pa, pb := a.Pix(), b.Pix()
	for i := range pa {
		if i%raster.Channels == 3 {
			continue
		}
		d := float64(pa[i] - pb[i])
		if d < 0 {
			d = -d
		}
		s += d
	}
	return s
}
