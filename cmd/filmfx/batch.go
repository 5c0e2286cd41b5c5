package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/filmfx"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch --out-dir DIR IN...",
		Short: "Apply the film effect to many images concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	addEffectFlags(cmd)
	cmd.Flags().String("out-dir", "", "Directory for the processed images")
	cmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "Images processed at the same time")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}

// batchStats accumulates the outcome of a batch run.
type batchStats struct {
	mu     sync.Mutex
	done   int
	pixels int
	errs   []error
}

func (s *batchStats) add(pixels int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errs = append(s.errs, err)
		return
	}
	s.done++
	s.pixels += pixels
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	jobs, _ := cmd.Flags().GetInt("jobs")
	s := readEffectFlags(cmd)

	outs, err := outputPaths(outDir, args)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	p := filmfx.New(s.opts...)
	defer p.Close()

	var (
		g     errgroup.Group
		stats batchStats
	)
	g.SetLimit(max(jobs, 1))
	start := time.Now()
	for i, in := range args {
		g.Go(func() error {
			stats.add(processOne(p, in, outs[i], s))
			return nil
		})
	}
	_ = g.Wait()

	pr := message.NewPrinter(userLanguage())
	pr.Fprintf(cmd.OutOrStdout(), "%d images, %d pixels written in %v\n",
		stats.done, stats.pixels, time.Since(start).Round(time.Millisecond))
	if len(stats.errs) > 0 {
		pr.Fprintf(cmd.ErrOrStderr(), "%d of %d images failed\n", len(stats.errs), len(args))
		return errors.Join(stats.errs...)
	}
	return nil
}

// processOne runs the pipeline on one file and returns the written pixels.
func processOne(p *filmfx.Pipeline, in, out string, s effectSettings) (int, error) {
	img, err := loadImage(in)
	if err != nil {
		return 0, err
	}
	res, err := p.Run(img, s.grain, s.scratch)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in, err)
	}
	if err := saveImage(res.Image.ToNRGBA(), out); err != nil {
		return 0, err
	}
	filmfx.Logger().Debug("batch item done", "in", in, "out", out, "seed", res.Seed)
	return res.Working.Width * res.Working.Height, nil
}

// userLanguage derives the message language from the POSIX locale
// variables, falling back to English.
func userLanguage() language.Tag {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v, _, _ := strings.Cut(os.Getenv(env), ".")
		v, _, _ = strings.Cut(v, "@")
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if tag, err := language.Parse(strings.ReplaceAll(v, "_", "-")); err == nil {
			return tag
		}
	}
	return language.English
}
