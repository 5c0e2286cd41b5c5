package filmfx

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gogpu/filmfx/internal/blend"
	"github.com/gogpu/filmfx/internal/cache"
	"github.com/gogpu/filmfx/internal/filter"
	"github.com/gogpu/filmfx/internal/geom"
	"github.com/gogpu/filmfx/internal/noise"
	"github.com/gogpu/filmfx/internal/parallel"
	"github.com/gogpu/filmfx/internal/resample"
	"github.com/gogpu/filmfx/raster"
)

// Scratch geometry: the noise field is stretched by these factors so that
// single noise pixels become long thin vertical streaks.
const (
	scratchScaleX = 1.5
	scratchScaleY = 25
)

// Result is the outcome of one pipeline run.
type Result struct {
	// Image is the clamped output, covering Working.
	Image *raster.Raster
	// Seed is the noise seed that was used.
	Seed uint64
	// Working is the extent of the resampled input.
	Working raster.Extent
}

// noiseKey identifies a cached noise field.
type noiseKey struct {
	width, height int
	seed          uint64
}

// Pipeline applies the film effect. It holds only read-only configuration,
// an optional worker pool and an optional noise cache, so concurrent calls
// to Run and Apply are safe.
//
// Pipeline must not be copied after creation.
type Pipeline struct {
	opts  options
	pool  *parallel.WorkerPool
	exec  parallel.Executor
	noise *cache.Cache[noiseKey, *raster.Raster]
}

// New creates a pipeline. Call Close to stop its workers.
func New(opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{opts: o, exec: parallel.Serial{}}
	if o.workers != 0 {
		p.pool = parallel.NewWorkerPool(o.workers)
		p.exec = p.pool
		p.logger().Info("filmfx: worker pool started", "workers", p.pool.Workers())
	}
	if o.cacheSize > 0 {
		p.noise = cache.New[noiseKey, *raster.Raster](o.cacheSize)
	}
	return p
}

// Close stops the worker pool. Runs after Close execute serially.
// Close is idempotent.
func (p *Pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Apply runs the pipeline and returns only the output image.
func (p *Pipeline) Apply(img image.Image, grain, scratch float64) (*raster.Raster, error) {
	res, err := p.Run(img, grain, scratch)
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// Run applies the film effect to img. grain and scratch are intensities in
// [0, 100]. The output has the dimensions of the working image: the input
// fitted into the working size with its aspect ratio preserved.
//
// Any failing stage aborts the run; no partial image is returned.
func (p *Pipeline) Run(img image.Image, grain, scratch float64) (Result, error) {
	grainCoef, err := GrainCoefficient(grain)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: grain: %w", err)
	}
	scratchScale, err := ScaleIntensity(scratch)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: scratch: %w", err)
	}

	seed := p.seed()
	log := p.logger().With("seed", seed)
	start := time.Now()

	base, err := resample.FitToSquare(img, p.opts.workingSize)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: %w", err)
	}
	working := base.Extent()
	log.Debug("filmfx: stage done", "stage", "resample", "extent", working.String())

	sepia, err := filter.Sepia().Apply(base, p.exec)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: sepia: %w", err)
	}
	log.Debug("filmfx: stage done", "stage", "sepia")

	field, err := p.noiseField(seed, log)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: %w", err)
	}
	if !field.Extent().Contains(working) {
		return Result{}, fmt.Errorf("filmfx: %w: noise field %v does not cover working extent %v",
			ErrCompositingMismatch, field.Extent(), working)
	}

	grainLayer, err := filter.Grain(float32(grainCoef)).Apply(field, p.exec)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: grain: %w", err)
	}
	grained, err := blend.Composite(grainLayer, sepia, blend.ModeSourceOver, p.exec)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: grain: %w", err)
	}
	log.Debug("filmfx: stage done", "stage", "grain", "coefficient", grainCoef)

	mask, err := p.scratchMask(field, working, scratchScale)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: scratch: %w", err)
	}
	scratched, err := blend.Composite(mask, grained, blend.ModeMultiply, p.exec)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: scratch: %w", err)
	}
	log.Debug("filmfx: stage done", "stage", "scratch", "scaled", p.opts.scaleScratch)

	cropped, err := scratched.Crop(working)
	if err != nil {
		return Result{}, fmt.Errorf("filmfx: crop: %w", err)
	}
	out := cropped.Clamp()
	log.Debug("filmfx: stage done", "stage", "clamp", "elapsed", time.Since(start))

	return Result{Image: out, Seed: seed, Working: working}, nil
}

// ApplyFilmEffect applies the film effect with a one-off pipeline.
// Without WithSeed a fresh random seed is used.
func ApplyFilmEffect(img image.Image, grain, scratch float64, opts ...Option) (*raster.Raster, error) {
	p := New(opts...)
	defer p.Close()
	return p.Apply(img, grain, scratch)
}

// scratchMask stretches the noise field into vertical streaks over the
// working extent and turns it into a multiplicative mask: noise values at or
// above 0.25 leave the image untouched, lower values darken it. With scratch
// scaling the fade is folded into the darken matrix; fading commutes with the
// min-component reduction because it is the same increasing map on every
// channel.
func (p *Pipeline) scratchMask(field *raster.Raster, working raster.Extent, scale float64) (*raster.Raster, error) {
	stretched, err := filter.TransformRegion(field, geom.Scale(scratchScaleX, scratchScaleY), working, p.exec)
	if err != nil {
		return nil, err
	}
	darken := filter.ScratchDarken()
	if p.opts.scaleScratch {
		darken = darken.Then(filter.Fade(float32(scale)))
	}
	dark, err := darken.Apply(stretched, p.exec)
	if err != nil {
		return nil, err
	}
	return filter.MinComponent(dark, p.exec)
}

// noiseField returns the noise field for seed, from the cache when enabled.
func (p *Pipeline) noiseField(seed uint64, log *slog.Logger) (*raster.Raster, error) {
	n := p.opts.noiseSize
	generate := func() (*raster.Raster, error) {
		return noise.Generate(n, n, p.source(seed))
	}
	if p.noise == nil {
		field, err := generate()
		log.Debug("filmfx: stage done", "stage", "noise", "size", n)
		return field, err
	}

	created := false
	field, err := p.noise.GetOrCreate(noiseKey{width: n, height: n, seed: seed}, func() (*raster.Raster, error) {
		created = true
		return generate()
	})
	if err != nil {
		return nil, err
	}
	log.Debug("filmfx: stage done", "stage", "noise", "size", n,
		"cached", !created, "hit_rate", p.noise.Stats().HitRate)
	return field, nil
}

func (p *Pipeline) source(seed uint64) noise.Source {
	if p.opts.newSource == nil {
		return noise.NewSource(seed)
	}
	return p.opts.newSource(seed)
}

func (p *Pipeline) seed() uint64 {
	if p.opts.fixedSeed {
		return p.opts.seed
	}
	return rand.Uint64()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return Logger()
}
