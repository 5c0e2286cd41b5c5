// Package filter implements the per-pixel and geometric raster operators of
// the film pipeline:
//   - channel matrices (color matrix plus bias)
//   - affine resampling with region-of-interest evaluation
//   - minimum-component reduction
//
// Operators never modify their inputs and never clamp; values outside
// [0, 1] pass through to the next stage. Each operator takes an optional
// parallel.Executor and produces the same bits with or without it.
package filter
