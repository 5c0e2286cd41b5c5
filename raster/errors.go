package raster

import "errors"

// Error kinds shared by every pipeline stage. Stages wrap these with
// fmt.Errorf("...: %w", err) so callers can test the kind with errors.Is.
var (
	// ErrInvalidInput is returned for zero or negative dimensions, nil
	// images, malformed pixel data and out-of-range parameters.
	ErrInvalidInput = errors.New("raster: invalid input")

	// ErrResampling is returned when the target size is non-positive or the
	// aspect computation degenerates.
	ErrResampling = errors.New("raster: resampling failed")

	// ErrGeneration is returned when a noise buffer cannot be constructed.
	ErrGeneration = errors.New("raster: noise generation failed")

	// ErrCompositingMismatch is returned when two operands share no pixels.
	ErrCompositingMismatch = errors.New("raster: compositing extents mismatch")
)
