// Package resample scales source images onto the fixed-size working raster
// used by the film pipeline.
package resample

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/filmfx/raster"
)

// Kernel is the interpolator used for every resize. BiLinear widens its
// support when downscaling, so shrinking large photos averages over the
// covered source area instead of skipping pixels.
var Kernel draw.Interpolator = draw.BiLinear

// FitToSquare scales img so that its larger side equals target, preserving
// aspect ratio. The result is placed at the canvas origin.
func FitToSquare(img image.Image, target int) (*raster.Raster, error) {
	return Fit(img, target, target)
}

// Fit scales img to the largest size that fits within maxW x maxH while
// preserving aspect ratio. The limiting side is matched exactly and the other
// side is rounded, never below one pixel.
func Fit(img image.Image, maxW, maxH int) (*raster.Raster, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("resample: %w: target %dx%d", raster.ErrResampling, maxW, maxH)
	}
	if img == nil {
		return nil, fmt.Errorf("resample: %w: nil image", raster.ErrInvalidInput)
	}
	if r, ok := img.(*raster.Raster); ok && r == nil {
		return nil, fmt.Errorf("resample: %w: nil raster", raster.ErrInvalidInput)
	}
	sb := img.Bounds()
	if sb.Empty() {
		return nil, fmt.Errorf("resample: %w: empty image %v", raster.ErrInvalidInput, sb)
	}

	w, h := FitSize(sb.Dx(), sb.Dy(), maxW, maxH)
	dst := image.NewRGBA64(image.Rect(0, 0, w, h))
	Kernel.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)

	out, err := raster.FromImage(dst)
	if err != nil {
		return nil, fmt.Errorf("resample: %w: %v", raster.ErrResampling, err)
	}
	return out, nil
}

// FitSize returns the dimensions Fit produces for a srcW x srcH source.
// Both source dimensions must be positive.
func FitSize(srcW, srcH, maxW, maxH int) (w, h int) {
	sx := float64(maxW) / float64(srcW)
	sy := float64(maxH) / float64(srcH)
	if sx <= sy {
		return maxW, scaled(srcH, sx, maxH)
	}
	return scaled(srcW, sy, maxW), maxH
}

func scaled(dim int, scale float64, limit int) int {
	n := int(math.Round(float64(dim) * scale))
	return min(max(n, 1), limit)
}
