package filmfx

import "github.com/gogpu/filmfx/raster"

// Error kinds returned by the pipeline. Every error returned by filmfx wraps
// exactly one of them; test with errors.Is.
var (
	// ErrInvalidInput reports an empty or malformed image or a NaN intensity.
	ErrInvalidInput = raster.ErrInvalidInput

	// ErrResampling reports a non-positive working size or a resampling failure.
	ErrResampling = raster.ErrResampling

	// ErrGeneration reports that the noise field could not be produced.
	ErrGeneration = raster.ErrGeneration

	// ErrCompositingMismatch reports layers that do not overlap the working extent.
	ErrCompositingMismatch = raster.ErrCompositingMismatch
)
