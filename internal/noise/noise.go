// Package noise synthesizes the gray random field that the film pipeline
// turns into grain speckles and scratches.
package noise

import (
	"fmt"
	"math/rand/v2"

	"github.com/gogpu/filmfx/raster"
)

// Size is the reference edge length of the noise texture.
const Size = 512

// seedMix decorrelates the two PCG state words derived from one seed.
const seedMix = 0x9e3779b97f4a7c15

// Source yields independent uniform samples in [0, 1).
// *rand.Rand satisfies Source.
type Source interface {
	Float32() float32
}

// NewSource returns the default deterministic source for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^seedMix))
}

// Generate fills a width x height opaque gray raster with samples drawn from
// src in row-major order. Each sample is quantized to 8 bits before it is
// stored, so a given sample stream always yields bit-identical rasters.
func Generate(width, height int, src Source) (*raster.Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("noise: %w: size %dx%d", raster.ErrInvalidInput, width, height)
	}
	if src == nil {
		return nil, fmt.Errorf("noise: %w: nil source", raster.ErrGeneration)
	}
	r, err := raster.New(raster.Rect(width, height))
	if err != nil {
		return nil, fmt.Errorf("noise: %w: %v", raster.ErrGeneration, err)
	}

	pix := r.Pix()
	for i := 0; i < len(pix); i += raster.Channels {
		v := Quantize(src.Float32())
		pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 1
	}
	return r, nil
}

// GenerateSeeded is Generate with the default source for seed.
func GenerateSeeded(width, height int, seed uint64) (*raster.Raster, error) {
	return Generate(width, height, NewSource(seed))
}

// Quantize maps a sample in [0, 1) to the nearest lower 8-bit level,
// expressed back in [0, 1].
func Quantize(u float32) float32 {
	switch {
	case u <= 0:
		return 0
	case u >= 1:
		return 1
	}
	return float32(uint8(u*255)) / 255
}
