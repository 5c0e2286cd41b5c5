// Command filmfx applies a vintage film look to images.
//
//	filmfx apply photo.jpg out.png --grain 60 --scratch 40
//	filmfx batch --out-dir aged *.jpg
//	filmfx noise noise.png --seed 7
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/filmfx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "filmfx",
		Short:         "Apply a vintage film effect (sepia, grain, scratches) to images",
		Version:       filmfx.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			v, _ := cmd.Flags().GetCount("verbose")
			filmfx.SetLogger(newLogger(v))
		},
	}
	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	root.AddCommand(newApplyCmd(), newBatchCmd(), newNoiseCmd())
	return root
}

// newLogger maps the -v count to a stderr text logger.
func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
