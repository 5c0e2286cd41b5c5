package filmfx

import (
	"log/slog"

	"github.com/gogpu/filmfx/internal/noise"
)

// DefaultSize is the default edge length of the working image and of the
// noise field.
const DefaultSize = noise.Size

// NoiseSource yields uniform samples in [0, 1). It lets callers replace the
// default PCG stream, for example with a recorded sequence in tests.
type NoiseSource interface {
	Float32() float32
}

// Option configures a Pipeline.
//
// Example:
//
//	p := filmfx.New(
//	    filmfx.WithSeed(42),
//	    filmfx.WithWorkers(4),
//	    filmfx.WithNoiseCache(8),
//	)
type Option func(*options)

// options holds the pipeline configuration.
type options struct {
	seed         uint64
	fixedSeed    bool
	workingSize  int
	noiseSize    int
	scaleScratch bool
	workers      int
	cacheSize    int
	newSource    func(seed uint64) NoiseSource
	logger       *slog.Logger
}

// defaultOptions returns the default pipeline configuration.
func defaultOptions() options {
	return options{
		workingSize: DefaultSize,
		noiseSize:   DefaultSize,
	}
}

// WithSeed fixes the noise seed. Without it every run draws a fresh seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.fixedSeed = true
	}
}

// WithNoiseSource replaces the default PCG noise stream. newSource is called
// once per run with that run's seed.
func WithNoiseSource(newSource func(seed uint64) NoiseSource) Option {
	return func(o *options) {
		o.newSource = newSource
	}
}

// WithWorkingSize sets the edge length the input is fitted into.
// Non-positive sizes make every run fail with ErrResampling.
func WithWorkingSize(n int) Option {
	return func(o *options) {
		o.workingSize = n
	}
}

// WithNoiseSize sets the edge length of the square noise field. It must be
// at least the working size, otherwise runs fail with ErrCompositingMismatch.
func WithNoiseSize(n int) Option {
	return func(o *options) {
		o.noiseSize = n
	}
}

// WithScratchIntensity makes the scratch intensity effective. The scratch
// mask is faded toward white by ScaleIntensity(scratch), so 0 removes the
// scratches and 100 keeps the full mask. By default the scratch intensity is
// accepted and ignored.
func WithScratchIntensity(enabled bool) Option {
	return func(o *options) {
		o.scaleScratch = enabled
	}
}

// WithWorkers runs the row-parallel operators on a pool of n workers.
// n = 0 runs every operator on the calling goroutine; n < 0 uses GOMAXPROCS.
// The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithNoiseCache keeps up to n noise fields keyed by size and seed.
// It only pays off with WithSeed, where every run reuses the same field.
func WithNoiseCache(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLogger sets the logger used by this pipeline instead of Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
