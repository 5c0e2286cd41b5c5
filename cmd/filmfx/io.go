package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder for imaging.Open
)

const (
	// jpegQuality is used when the output is a JPEG.
	jpegQuality = 92
	outputMode  = 0o644
)

// loadImage decodes an image file, applying its EXIF orientation.
func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(filepath.Clean(path), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}

// saveImage encodes img in the format implied by path's extension. The file
// appears only once it is fully written.
func saveImage(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".filmfx-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := imaging.Encode(tmp, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	// CreateTemp opens with 0600; outputs get the usual mode of a new file.
	if err := tmp.Chmod(outputMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// outputName maps an input file to its name in dir. Inputs whose format
// cannot be encoded (WebP) are written as PNG.
func outputName(dir, in string) string {
	base := filepath.Base(in)
	ext := filepath.Ext(base)
	if _, err := imaging.FormatFromExtension(ext); err != nil {
		base = strings.TrimSuffix(base, ext) + ".png"
	}
	return filepath.Join(dir, base)
}

// outputPaths maps every input to its path in dir. Two inputs that would
// write the same file, or an input that would be overwritten by its own
// output, are rejected before anything is written.
func outputPaths(dir string, inputs []string) ([]string, error) {
	outs := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := outputName(dir, in)
		absOut, err := filepath.Abs(out)
		if err != nil {
			return nil, fmt.Errorf("output for %s: %w", in, err)
		}
		absIn, err := filepath.Abs(in)
		if err != nil {
			return nil, fmt.Errorf("output for %s: %w", in, err)
		}
		if absOut == absIn {
			return nil, fmt.Errorf("output for %s would overwrite the input", in)
		}
		if prev, ok := owner[absOut]; ok {
			return nil, fmt.Errorf("%s and %s both write %s", prev, in, out)
		}
		owner[absOut] = in
		outs[i] = out
	}
	return outs, nil
}
