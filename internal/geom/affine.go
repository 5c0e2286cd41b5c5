// Package geom provides the 2D affine transforms used to stretch rasters on
// the pipeline canvas.
package geom

import (
	"math"

	"github.com/gogpu/filmfx/raster"
)

// singularEpsilon is the determinant magnitude below which a transform is
// treated as non-invertible.
const singularEpsilon = 1e-10

// Affine is a 2D affine transformation:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// mapping x' = ax + by + c and y' = dx + ey + f.
type Affine struct {
	a, b, c float64
	d, e, f float64
}

// Scale returns a transform that scales by (sx, sy) about the origin.
func Scale(sx, sy float64) Affine {
	return Affine{a: sx, e: sy}
}

// Invert returns the inverse transform.
// It returns false if the transform is singular.
func (t Affine) Invert() (Affine, bool) {
	det := t.a*t.e - t.b*t.d
	if math.Abs(det) < singularEpsilon {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		a: t.e * inv,
		b: -t.b * inv,
		c: (t.b*t.f - t.c*t.e) * inv,
		d: -t.d * inv,
		e: t.a * inv,
		f: (t.c*t.d - t.a*t.f) * inv,
	}, true
}

// Apply maps point (x, y).
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.a*x + t.b*y + t.c, t.d*x + t.e*y + t.f
}

// MapExtent returns the smallest pixel-aligned extent that contains the
// image of e under t. Edges that land within 1e-9 of an integer snap to it,
// so Scale(1.5, 25) of a 512x512 extent is exactly 768x12800.
func (t Affine) MapExtent(e raster.Extent) raster.Extent {
	if e.Empty() {
		return raster.Extent{}
	}
	x0, y0 := float64(e.X), float64(e.Y)
	x1, y1 := float64(e.MaxX()), float64(e.MaxY())

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		x, y := t.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	ix0, iy0 := snapFloor(minX), snapFloor(minY)
	ix1, iy1 := snapCeil(maxX), snapCeil(maxY)
	return raster.Extent{X: ix0, Y: iy0, Width: ix1 - ix0, Height: iy1 - iy0}
}

func snapFloor(v float64) int {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return int(r)
	}
	return int(math.Floor(v))
}

func snapCeil(v float64) int {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return int(r)
	}
	return int(math.Ceil(v))
}
