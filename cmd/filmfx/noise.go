package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/gogpu/filmfx"
	"github.com/gogpu/filmfx/internal/noise"
)

func newNoiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noise OUT",
		Short: "Write the gray noise texture used for grain and scratches",
		Args:  cobra.ExactArgs(1),
		RunE:  runNoise,
	}
	cmd.Flags().Int("size", noise.Size, "Edge length of the square texture")
	cmd.Flags().Uint64("seed", 0, "Noise seed (random when unset)")
	return cmd
}

func runNoise(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetInt("size")
	seed, _ := cmd.Flags().GetUint64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}

	field, err := noise.GenerateSeeded(size, size, seed)
	if err != nil {
		return err
	}
	if err := saveImage(field.ToNRGBA(), args[0]); err != nil {
		return err
	}
	filmfx.Logger().Info("noise written", "out", args[0], "size", size, "seed", seed)
	return nil
}
