package filter

import (
	"fmt"

	"github.com/gogpu/filmfx/internal/parallel"
	"github.com/gogpu/filmfx/raster"
)

// Vec4 holds one coefficient per input channel, in R, G, B, A order.
type Vec4 [4]float32

// ChannelMatrix is an affine color transform. For each output channel c:
//
//	out.c = dot(in.RGBA, Vec_c) + Bias.c
//
// Matrices operate on straight-alpha values in [0, 1] and do not clamp.
type ChannelMatrix struct {
	R, G, B, A Vec4
	Bias       Vec4
}

// Sepia returns the classic full-strength sepia tone matrix.
func Sepia() ChannelMatrix {
	return ChannelMatrix{
		R: Vec4{0.393, 0.769, 0.189, 0},
		G: Vec4{0.349, 0.686, 0.168, 0},
		B: Vec4{0.272, 0.534, 0.131, 0},
		A: Vec4{0, 0, 0, 1},
	}
}

// Grain returns the matrix that turns a gray noise field into a speck layer:
// every color channel copies the noise value and alpha is the noise value
// scaled by coef.
func Grain(coef float32) ChannelMatrix {
	whiten := Vec4{0, 1, 0, 0}
	return ChannelMatrix{
		R: whiten,
		G: whiten,
		B: whiten,
		A: Vec4{0, coef, 0, 0},
	}
}

// ScratchDarken returns the matrix that amplifies the red channel by 4 and
// pins G, B and A to 1. Followed by MinComponent it leaves a mask that is
// dark where the noise is below 0.25.
func ScratchDarken() ChannelMatrix {
	return ChannelMatrix{
		R:    Vec4{4, 0, 0, 0},
		Bias: Vec4{0, 1, 1, 1},
	}
}

// Fade returns the matrix that moves RGB toward white: m = 1 keeps the
// input, m = 0 yields white. Alpha is unchanged.
func Fade(m float32) ChannelMatrix {
	k := 1 - m
	return ChannelMatrix{
		R:    Vec4{m, 0, 0, 0},
		G:    Vec4{0, m, 0, 0},
		B:    Vec4{0, 0, m, 0},
		A:    Vec4{0, 0, 0, 1},
		Bias: Vec4{k, k, k, 0},
	}
}

// Then returns the matrix equivalent to applying m first and next second.
func (m ChannelMatrix) Then(next ChannelMatrix) ChannelMatrix {
	rows := [4]Vec4{m.R, m.G, m.B, m.A}
	compose := func(v Vec4, bias float32) (Vec4, float32) {
		var out Vec4
		for col := range 4 {
			for k := range 4 {
				out[col] += v[k] * rows[k][col]
			}
		}
		for k := range 4 {
			bias += v[k] * m.Bias[k]
		}
		return out, bias
	}

	var res ChannelMatrix
	res.R, res.Bias[0] = compose(next.R, next.Bias[0])
	res.G, res.Bias[1] = compose(next.G, next.Bias[1])
	res.B, res.Bias[2] = compose(next.B, next.Bias[2])
	res.A, res.Bias[3] = compose(next.A, next.Bias[3])
	return res
}

// Apply returns a new raster with the matrix applied to every pixel of src.
// The result keeps the extent of src.
func (m ChannelMatrix) Apply(src *raster.Raster, ex parallel.Executor) (*raster.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("color matrix: %w: nil raster", raster.ErrInvalidInput)
	}
	dst, err := raster.New(src.Extent())
	if err != nil {
		return nil, fmt.Errorf("color matrix: %w", err)
	}

	parallel.Or(ex).Rows(src.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in, out := src.Row(y), dst.Row(y)
			for i := 0; i < len(in); i += raster.Channels {
				r, g, b, a := in[i], in[i+1], in[i+2], in[i+3]
				out[i+0] = m.R[0]*r + m.R[1]*g + m.R[2]*b + m.R[3]*a + m.Bias[0]
				out[i+1] = m.G[0]*r + m.G[1]*g + m.G[2]*b + m.G[3]*a + m.Bias[1]
				out[i+2] = m.B[0]*r + m.B[1]*g + m.B[2]*b + m.B[3]*a + m.Bias[2]
				out[i+3] = m.A[0]*r + m.A[1]*g + m.A[2]*b + m.A[3]*a + m.Bias[3]
			}
		}
	})
	return dst, nil
}
