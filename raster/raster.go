// Package raster provides the floating-point RGBA image type that flows
// through the film-effect pipeline.
//
// A Raster stores straight (non-premultiplied) RGBA as float32, nominally in
// [0, 1]. Operators are allowed to produce values outside that range; only the
// final pipeline stage clamps. Rasters are never modified after an operator
// returns them, so they may be shared freely between goroutines.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Channels is the number of float32 components stored per pixel.
const Channels = 4

// maxPixels bounds a single allocation to keep w*h*4 well inside int range.
const maxPixels = 1 << 28

// Color is a single straight-alpha pixel value.
type Color struct {
	R, G, B, A float32
}

// Gray returns an opaque gray color.
func Gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// Raster is a width x height grid of float32 RGBA pixels placed at an
// extent on the pipeline canvas.
type Raster struct {
	extent Extent
	pix    []float32
}

// New allocates a zeroed (transparent black) raster covering e.
func New(e Extent) (*Raster, error) {
	if e.Empty() {
		return nil, fmt.Errorf("%w: extent %v has no area", ErrInvalidInput, e)
	}
	if e.Width > maxPixels/e.Height {
		return nil, fmt.Errorf("%w: extent %v too large", ErrInvalidInput, e)
	}
	return &Raster{
		extent: e,
		pix:    make([]float32, e.Width*e.Height*Channels),
	}, nil
}

// FromPix wraps pix as a raster covering e without copying.
// pix must hold exactly Width*Height*4 finite values.
func FromPix(e Extent, pix []float32) (*Raster, error) {
	if e.Empty() {
		return nil, fmt.Errorf("%w: extent %v has no area", ErrInvalidInput, e)
	}
	if e.Width > maxPixels/e.Height {
		return nil, fmt.Errorf("%w: extent %v too large", ErrInvalidInput, e)
	}
	if want := e.Width * e.Height * Channels; len(pix) != want {
		return nil, fmt.Errorf("%w: pixel buffer has %d values, want %d", ErrInvalidInput, len(pix), want)
	}
	for i, v := range pix {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("%w: non-finite value at index %d", ErrInvalidInput, i)
		}
	}
	return &Raster{extent: e, pix: pix}, nil
}

// FromImage converts any image.Image to a raster at the canvas origin.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if r, ok := img.(*Raster); ok {
		if r == nil || r.extent.Empty() {
			return nil, fmt.Errorf("%w: empty raster", ErrInvalidInput)
		}
		return r.Translate(0, 0), nil
	}

	b := img.Bounds()
	dst, err := New(Rect(b.Dx(), b.Dy()))
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			row := dst.Row(y)
			s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for i := range row {
				row[i] = float32(s[i]) / 255
			}
		}
	case *image.RGBA:
		for y := 0; y < b.Dy(); y++ {
			row := dst.Row(y)
			s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				i := x * Channels
				a := s[i+3]
				if a == 0 {
					continue
				}
				af := float32(a)
				row[i+0] = float32(s[i+0]) / af
				row[i+1] = float32(s[i+1]) / af
				row[i+2] = float32(s[i+2]) / af
				row[i+3] = af / 255
			}
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			row := dst.Row(y)
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				i := x * Channels
				row[i+0] = float32(c.R) / 0xffff
				row[i+1] = float32(c.G) / 0xffff
				row[i+2] = float32(c.B) / 0xffff
				row[i+3] = float32(c.A) / 0xffff
			}
		}
	}
	return dst, nil
}

// Extent returns the raster's placement on the canvas.
func (r *Raster) Extent() Extent { return r.extent }

// Width returns the width in pixels.
func (r *Raster) Width() int { return r.extent.Width }

// Height returns the height in pixels.
func (r *Raster) Height() int { return r.extent.Height }

// Stride returns the number of float32 values per row.
func (r *Raster) Stride() int { return r.extent.Width * Channels }

// Pix returns the backing pixel slice. Callers must not modify rasters they
// did not allocate themselves.
func (r *Raster) Pix() []float32 { return r.pix }

// Row returns the pixel values of local row y (0-based).
func (r *Raster) Row(y int) []float32 {
	s := r.Stride()
	return r.pix[y*s : (y+1)*s]
}

// Pixel returns the pixel at local coordinates (x, y).
// Coordinates outside the raster read as transparent black.
func (r *Raster) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= r.extent.Width || y >= r.extent.Height {
		return Color{}
	}
	i := (y*r.extent.Width + x) * Channels
	return Color{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2], A: r.pix[i+3]}
}

// SetPixel writes the pixel at local coordinates (x, y). It is meant for
// building rasters and must not be used on rasters returned by operators.
func (r *Raster) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= r.extent.Width || y >= r.extent.Height {
		return
	}
	i := (y*r.extent.Width + x) * Channels
	r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3] = c.R, c.G, c.B, c.A
}

// Fill sets every pixel to c.
func (r *Raster) Fill(c Color) {
	for i := 0; i < len(r.pix); i += Channels {
		r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Translate returns a copy of r placed at canvas position (x, y).
func (r *Raster) Translate(x, y int) *Raster {
	pix := make([]float32, len(r.pix))
	copy(pix, r.pix)
	e := r.extent
	e.X, e.Y = x, y
	return &Raster{extent: e, pix: pix}
}

// Crop returns the part of r that lies inside e, keeping canvas positions.
// A crop that selects no pixels is an error.
func (r *Raster) Crop(e Extent) (*Raster, error) {
	in := r.extent.Intersect(e)
	if in.Empty() {
		return nil, fmt.Errorf("%w: crop %v outside %v", ErrInvalidInput, e, r.extent)
	}
	dst, err := New(in)
	if err != nil {
		return nil, err
	}
	ox := (in.X - r.extent.X) * Channels
	oy := in.Y - r.extent.Y
	n := in.Width * Channels
	for y := 0; y < in.Height; y++ {
		copy(dst.Row(y), r.Row(oy + y)[ox:ox+n])
	}
	return dst, nil
}

// Clamp returns a copy of r with every channel clamped to [0, 1].
func (r *Raster) Clamp() *Raster {
	pix := make([]float32, len(r.pix))
	for i, v := range r.pix {
		pix[i] = clamp01(v)
	}
	return &Raster{extent: r.extent, pix: pix}
}

// Equal reports whether both rasters have the same extent and bit-identical pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.extent != o.extent || len(r.pix) != len(o.pix) {
		return false
	}
	for i, v := range r.pix {
		if math.Float32bits(v) != math.Float32bits(o.pix[i]) {
			return false
		}
	}
	return true
}

// Mean returns the average of each channel over the whole raster.
func (r *Raster) Mean() Color {
	var s [Channels]float64
	for i := 0; i < len(r.pix); i += Channels {
		s[0] += float64(r.pix[i])
		s[1] += float64(r.pix[i+1])
		s[2] += float64(r.pix[i+2])
		s[3] += float64(r.pix[i+3])
	}
	n := float64(len(r.pix) / Channels)
	return Color{R: float32(s[0] / n), G: float32(s[1] / n), B: float32(s[2] / n), A: float32(s[3] / n)}
}

// ToNRGBA quantizes the raster to 8-bit straight alpha.
// The returned image is positioned at the origin.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.extent.Width, r.extent.Height))
	for y := 0; y < r.extent.Height; y++ {
		src := r.Row(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+len(src)]
		for i, v := range src {
			dst[i] = uint8(clamp01(v)*255 + 0.5)
		}
	}
	return img
}

// ToNRGBA64 quantizes the raster to 16-bit straight alpha.
func (r *Raster) ToNRGBA64() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, r.extent.Width, r.extent.Height))
	for y := 0; y < r.extent.Height; y++ {
		src := r.Row(y)
		off := y * img.Stride
		for i, v := range src {
			q := uint16(clamp01(v)*0xffff + 0.5)
			img.Pix[off+2*i] = uint8(q >> 8)
			img.Pix[off+2*i+1] = uint8(q)
		}
	}
	return img
}

// ColorModel implements the image.Image interface.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBA64Model
}

// Bounds implements the image.Image interface.
func (r *Raster) Bounds() image.Rectangle {
	return r.extent.Bounds()
}

// At implements the image.Image interface. x and y are canvas coordinates.
func (r *Raster) At(x, y int) color.Color {
	c := r.Pixel(x-r.extent.X, y-r.extent.Y)
	return color.NRGBA64{
		R: uint16(clamp01(c.R)*0xffff + 0.5),
		G: uint16(clamp01(c.G)*0xffff + 0.5),
		B: uint16(clamp01(c.B)*0xffff + 0.5),
		A: uint16(clamp01(c.A)*0xffff + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
