// Package blend composites two rasters with a blend operator.
//
// Operands are aligned by their extents on the shared pipeline canvas and the
// result covers their intersection. Values are straight alpha and are not
// clamped.
package blend

import (
	"fmt"

	"github.com/gogpu/filmfx/internal/parallel"
	"github.com/gogpu/filmfx/raster"
)

// Mode selects the blend operator.
type Mode uint8

const (
	// ModeSourceOver draws the foreground over the background:
	// rgb = fg.rgb*fg.a + bg.rgb*(1-fg.a), a = fg.a + bg.a*(1-fg.a).
	ModeSourceOver Mode = iota
	// ModeMultiply multiplies every channel, alpha included: out = fg*bg.
	ModeMultiply
)

// String returns the operator name.
func (m Mode) String() string {
	switch m {
	case ModeSourceOver:
		return "source-over"
	case ModeMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// pixelFunc blends one foreground pixel into one background pixel.
type pixelFunc func(fg, bg []float32, out []float32)

func (m Mode) pixelFunc() pixelFunc {
	switch m {
	case ModeSourceOver:
		return sourceOver
	case ModeMultiply:
		return multiply
	default:
		return nil
	}
}

// Composite blends fg onto bg over the intersection of their extents.
// It returns raster.ErrCompositingMismatch when the extents do not overlap.
func Composite(fg, bg *raster.Raster, mode Mode, ex parallel.Executor) (*raster.Raster, error) {
	if fg == nil || bg == nil {
		return nil, fmt.Errorf("composite %v: %w: nil operand", mode, raster.ErrInvalidInput)
	}
	fn := mode.pixelFunc()
	if fn == nil {
		return nil, fmt.Errorf("composite: %w: unknown mode %v", raster.ErrInvalidInput, mode)
	}

	fe, be := fg.Extent(), bg.Extent()
	out := fe.Intersect(be)
	if out.Empty() {
		return nil, fmt.Errorf("composite %v: %w: %v and %v do not overlap", mode, raster.ErrCompositingMismatch, fe, be)
	}
	dst, err := raster.New(out)
	if err != nil {
		return nil, fmt.Errorf("composite %v: %w", mode, err)
	}

	n := out.Width * raster.Channels
	fx := (out.X - fe.X) * raster.Channels
	bx := (out.X - be.X) * raster.Channels
	parallel.Or(ex).Rows(out.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			f := fg.Row(out.Y - fe.Y + y)[fx : fx+n]
			b := bg.Row(out.Y - be.Y + y)[bx : bx+n]
			d := dst.Row(y)
			for i := 0; i < n; i += raster.Channels {
				fn(f[i:i+4], b[i:i+4], d[i:i+4])
			}
		}
	})
	return dst, nil
}

func sourceOver(fg, bg, out []float32) {
	fa := fg[3]
	inv := 1 - fa
	out[0] = fg[0]*fa + bg[0]*inv
	out[1] = fg[1]*fa + bg[1]*inv
	out[2] = fg[2]*fa + bg[2]*inv
	out[3] = fa + bg[3]*inv
}

func multiply(fg, bg, out []float32) {
	out[0] = fg[0] * bg[0]
	out[1] = fg[1] * bg[1]
	out[2] = fg[2] * bg[2]
	out[3] = fg[3] * bg[3]
}
