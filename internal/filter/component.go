package filter

import (
	"fmt"

	"github.com/gogpu/filmfx/internal/parallel"
	"github.com/gogpu/filmfx/raster"
)

// MinComponent replaces R, G and B of every pixel with min(R, G, B).
// Alpha passes through unchanged.
func MinComponent(src *raster.Raster, ex parallel.Executor) (*raster.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("min component: %w: nil raster", raster.ErrInvalidInput)
	}
	dst, err := raster.New(src.Extent())
	if err != nil {
		return nil, fmt.Errorf("min component: %w", err)
	}

	parallel.Or(ex).Rows(src.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in, out := src.Row(y), dst.Row(y)
			for i := 0; i < len(in); i += raster.Channels {
				m := min(in[i], in[i+1], in[i+2])
				out[i], out[i+1], out[i+2], out[i+3] = m, m, m, in[i+3]
			}
		}
	})
	return dst, nil
}
