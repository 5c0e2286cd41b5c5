package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/filmfx"
)

// Default intensities.
const (
	defaultGrain   = 50
	defaultScratch = 50
)

// addEffectFlags registers the flags shared by apply and batch.
func addEffectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("grain", defaultGrain, "Grain intensity (0-100)")
	f.Float64("scratch", defaultScratch, "Scratch intensity (0-100)")
	f.Uint64("seed", 0, "Noise seed (random when unset)")
	f.Int("size", filmfx.DefaultSize, "Working size: the larger output side")
	f.Bool("scratch-wired", false, "Make --scratch scale the scratch mask")
	f.Int("workers", 0, "Row workers per image (0 = serial, -1 = all CPUs)")
}

// effectSettings are the values of the shared effect flags.
type effectSettings struct {
	grain   float64
	scratch float64
	opts    []filmfx.Option
}

func readEffectFlags(cmd *cobra.Command) effectSettings {
	f := cmd.Flags()
	grain, _ := f.GetFloat64("grain")
	scratch, _ := f.GetFloat64("scratch")
	size, _ := f.GetInt("size")
	wired, _ := f.GetBool("scratch-wired")
	workers, _ := f.GetInt("workers")

	noiseSize := max(size, filmfx.DefaultSize)
	opts := []filmfx.Option{
		filmfx.WithWorkingSize(size),
		filmfx.WithNoiseSize(noiseSize),
		filmfx.WithScratchIntensity(wired),
		filmfx.WithWorkers(workers),
	}
	if f.Changed("seed") {
		seed, _ := f.GetUint64("seed")
		opts = append(opts, filmfx.WithSeed(seed), filmfx.WithNoiseCache(1))
	}
	return effectSettings{grain: grain, scratch: scratch, opts: opts}
}
