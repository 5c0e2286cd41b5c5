package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/filmfx"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply IN OUT",
		Short: "Apply the film effect to one image",
		Args:  cobra.ExactArgs(2),
		RunE:  runApply,
	}
	addEffectFlags(cmd)
	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	s := readEffectFlags(cmd)

	img, err := loadImage(in)
	if err != nil {
		return err
	}

	p := filmfx.New(s.opts...)
	defer p.Close()

	res, err := p.Run(img, s.grain, s.scratch)
	if err != nil {
		return err
	}
	if err := saveImage(res.Image.ToNRGBA(), out); err != nil {
		return err
	}
	filmfx.Logger().Info("applied", "in", in, "out", out, "seed", res.Seed, "size", res.Working.String())
	return nil
}
