// Package filmfx applies a vintage film look to still images.
//
// # Overview
//
// The effect combines three layers computed from one source image and one
// pseudorandom noise field:
//   - a sepia toned copy of the image, resampled to a fixed working size
//   - sparse grain speckles drawn over it with source-over compositing
//   - vertical scratches, made by stretching the same noise field 25x
//     vertically and multiplied over the result
//
// # Quick Start
//
//	img, _ := imaging.Open("photo.jpg")
//
//	// One-shot call, grain and scratch intensities in [0, 100]
//	out, err := filmfx.ApplyFilmEffect(img, 50, 50)
//
//	// Reusable pipeline with a fixed seed and four row workers
//	p := filmfx.New(filmfx.WithSeed(7), filmfx.WithWorkers(4))
//	defer p.Close()
//	res, err := p.Run(img, 80, 20)
//
// # Determinism
//
// Given the same seed and inputs the output is bit-identical, regardless of
// the number of workers. Without WithSeed every call draws a fresh seed,
// which Run reports in its Result.
//
// # Pixel Model
//
// Intermediate rasters are straight-alpha float32 RGBA (see package raster).
// Operators do not clamp; only the final stage clamps every channel to
// [0, 1].
package filmfx

// Version is the current version of the library.
const Version = "0.1.0"
