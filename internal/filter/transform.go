package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/filmfx/internal/geom"
	"github.com/gogpu/filmfx/internal/parallel"
	"github.com/gogpu/filmfx/raster"
)

// TransformRegion resamples src through the affine transform t, evaluated
// only over region. The result covers region intersected with
// t.MapExtent(src.Extent()), which lets callers stretch a texture far beyond
// the canvas without allocating the parts they will crop away. Pass the
// mapped extent itself as region to get the whole transformed raster.
//
// Sampling is bilinear with pixel centers at +0.5. A destination pixel
// whose center maps outside the source extent is transparent black; taps
// of interior samples that fall past the edge clamp to the edge pixel.
func TransformRegion(src *raster.Raster, t geom.Affine, region raster.Extent, ex parallel.Executor) (*raster.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("transform: %w: nil raster", raster.ErrInvalidInput)
	}
	inv, ok := t.Invert()
	if !ok {
		return nil, fmt.Errorf("transform: %w: singular transform", raster.ErrInvalidInput)
	}
	out := t.MapExtent(src.Extent()).Intersect(region)
	if out.Empty() {
		return nil, fmt.Errorf("transform: %w: region %v outside transformed extent", raster.ErrInvalidInput, region)
	}
	dst, err := raster.New(out)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	se := src.Extent()
	w, h := float64(se.Width), float64(se.Height)
	parallel.Or(ex).Rows(out.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Row(y)
			cy := float64(out.Y+y) + 0.5
			for x := 0; x < out.Width; x++ {
				sx, sy := inv.Apply(float64(out.X+x)+0.5, cy)
				lx, ly := sx-float64(se.X), sy-float64(se.Y)
				if lx < 0 || ly < 0 || lx >= w || ly >= h {
					continue
				}
				c := sampleBilinear(src, lx-0.5, ly-0.5)
				i := x * raster.Channels
				row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
			}
		}
	})
	return dst, nil
}

// sampleBilinear interpolates src at continuous local pixel coordinates
// (fx, fy), where integer coordinates are pixel centers.
func sampleBilinear(src *raster.Raster, fx, fy float64) raster.Color {
	x0f, y0f := math.Floor(fx), math.Floor(fy)
	tx, ty := float32(fx-x0f), float32(fy-y0f)

	x0 := clampInt(int(x0f), 0, src.Width()-1)
	y0 := clampInt(int(y0f), 0, src.Height()-1)
	x1 := clampInt(int(x0f)+1, 0, src.Width()-1)
	y1 := clampInt(int(y0f)+1, 0, src.Height()-1)

	c00, c10 := src.Pixel(x0, y0), src.Pixel(x1, y0)
	c01, c11 := src.Pixel(x0, y1), src.Pixel(x1, y1)

	return raster.Color{
		R: lerp2D(c00.R, c10.R, c01.R, c11.R, tx, ty),
		G: lerp2D(c00.G, c10.G, c01.G, c11.G, tx, ty),
		B: lerp2D(c00.B, c10.B, c01.B, c11.B, tx, ty),
		A: lerp2D(c00.A, c10.A, c01.A, c11.A, tx, ty),
	}
}

func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func lerp2D(v00, v10, v01, v11, tx, ty float32) float32 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
