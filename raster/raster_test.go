package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewInvalidExtent(t *testing.T) {
	tests := []struct {
		name string
		e    Extent
	}{
		{"zero width", Rect(0, 10)},
		{"zero height", Rect(10, 0)},
		{"negative", Rect(-1, 5)},
		{"too large", Rect(1<<20, 1<<20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.e)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("New(%v) error = %v, want ErrInvalidInput", tt.e, err)
			}
		})
	}
}

func TestFromPixValidation(t *testing.T) {
	if _, err := FromPix(Rect(2, 2), make([]float32, 15)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short buffer: error = %v, want ErrInvalidInput", err)
	}

	pix := make([]float32, 16)
	nan := float32(0)
	pix[5] = nan / nan
	if _, err := FromPix(Rect(2, 2), pix); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NaN value: error = %v, want ErrInvalidInput", err)
	}

	r, err := FromPix(Rect(2, 2), make([]float32, 16))
	if err != nil {
		t.Fatalf("FromPix: %v", err)
	}
	if r.Width() != 2 || r.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", r.Width(), r.Height())
	}
}

func TestFromImageNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 51, B: 0, A: 102})

	r, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	got := r.Pixel(1, 1)
	want := Color{R: 1, G: 0.2, B: 0, A: 0.4}
	if !approx(got, want, 1e-6) {
		t.Errorf("Pixel(1,1) = %+v, want %+v", got, want)
	}
	if r.Extent() != Rect(3, 2) {
		t.Errorf("Extent = %v, want %v", r.Extent(), Rect(3, 2))
	}
}

func TestFromImageSubImage(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	full.SetNRGBA(5, 6, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	sub := full.SubImage(image.Rect(4, 4, 8, 8))

	r, err := FromImage(sub)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if r.Extent() != Rect(4, 4) {
		t.Fatalf("Extent = %v, want %v", r.Extent(), Rect(4, 4))
	}
	if got := r.Pixel(1, 2); !approx(got, Gray(1), 1e-6) {
		t.Errorf("Pixel(1,2) = %+v, want white", got)
	}
	if got := r.Pixel(0, 0); got != (Color{}) {
		t.Errorf("Pixel(0,0) = %+v, want transparent", got)
	}
}

func TestFromImageRGBAUnpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 64, G: 32, B: 0, A: 128})

	r, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	got := r.Pixel(0, 0)
	want := Color{R: 0.5, G: 0.25, B: 0, A: 128.0 / 255}
	if !approx(got, want, 1e-6) {
		t.Errorf("Pixel = %+v, want %+v", got, want)
	}
}

func TestFromImageGeneric(t *testing.T) {
	src := image.NewGray(image.Rect(10, 10, 14, 12))
	src.SetGray(12, 11, color.Gray{Y: 255})

	r, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if got := r.Pixel(2, 1); !approx(got, Gray(1), 1e-6) {
		t.Errorf("Pixel(2,1) = %+v, want white", got)
	}
	if got := r.Pixel(0, 0); !approx(got, Gray(0), 1e-6) {
		t.Errorf("Pixel(0,0) = %+v, want opaque black", got)
	}
}

func TestFromImageEmpty(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil: error = %v, want ErrInvalidInput", err)
	}
	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 5))); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero width: error = %v, want ErrInvalidInput", err)
	}
	var r *Raster
	if _, err := FromImage(r); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil raster: error = %v, want ErrInvalidInput", err)
	}
}

func TestCrop(t *testing.T) {
	r := mustNew(t, Rect(4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r.SetPixel(x, y, Gray(float32(y*4+x)/16))
		}
	}

	c, err := r.Crop(Extent{X: 1, Y: 2, Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	want := Extent{X: 1, Y: 2, Width: 3, Height: 2}
	if c.Extent() != want {
		t.Fatalf("Extent = %v, want %v", c.Extent(), want)
	}
	if got := c.Pixel(0, 0); !approx(got, Gray(9.0/16), 1e-6) {
		t.Errorf("Pixel(0,0) = %+v, want gray 9/16", got)
	}

	if _, err := r.Crop(Extent{X: 10, Y: 10, Width: 2, Height: 2}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("disjoint crop: error = %v, want ErrInvalidInput", err)
	}
}

func TestCropToOwnExtentKeepsSize(t *testing.T) {
	r := mustNew(t, Rect(7, 3))
	c, err := r.Crop(r.Extent())
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if !c.Equal(r) {
		t.Error("crop to own extent changed the raster")
	}
}

func TestClamp(t *testing.T) {
	r := mustNew(t, Rect(1, 1))
	r.SetPixel(0, 0, Color{R: -0.5, G: 0.5, B: 4, A: 1.2})

	c := r.Clamp()
	if got, want := c.Pixel(0, 0), (Color{R: 0, G: 0.5, B: 1, A: 1}); got != want {
		t.Errorf("Clamp = %+v, want %+v", got, want)
	}
	if r.Pixel(0, 0).B != 4 {
		t.Error("Clamp modified its input")
	}
}

func TestToNRGBA(t *testing.T) {
	r := mustNew(t, Extent{X: 5, Y: 5, Width: 2, Height: 1})
	r.SetPixel(1, 0, Color{R: 1, G: 0.5, B: -1, A: 2})

	img := r.ToNRGBA()
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("Bounds = %v", img.Bounds())
	}
	if got, want := img.NRGBAAt(1, 0), (color.NRGBA{R: 255, G: 128, B: 0, A: 255}); got != want {
		t.Errorf("NRGBAAt = %+v, want %+v", got, want)
	}

	img64 := r.ToNRGBA64()
	if got := img64.NRGBA64At(1, 0); got.R != 0xffff || got.G != 0x8000 {
		t.Errorf("NRGBA64At = %+v", got)
	}
}

func TestImageInterface(t *testing.T) {
	r := mustNew(t, Extent{X: 3, Y: 4, Width: 2, Height: 2})
	r.SetPixel(0, 0, Gray(1))

	var img image.Image = r
	if img.Bounds() != image.Rect(3, 4, 5, 6) {
		t.Errorf("Bounds = %v", img.Bounds())
	}
	if got := img.At(3, 4).(color.NRGBA64); got.R != 0xffff || got.A != 0xffff {
		t.Errorf("At(3,4) = %+v, want opaque white", got)
	}
	if got := img.At(0, 0).(color.NRGBA64); got.A != 0 {
		t.Errorf("At outside = %+v, want transparent", got)
	}
}

func TestEqual(t *testing.T) {
	a := mustNew(t, Rect(2, 2))
	b := mustNew(t, Rect(2, 2))
	if !a.Equal(b) {
		t.Error("zero rasters should be equal")
	}
	b.SetPixel(1, 1, Gray(0.1))
	if a.Equal(b) {
		t.Error("different pixels compared equal")
	}
	if a.Equal(a.Translate(1, 0)) {
		t.Error("different extents compared equal")
	}
}

func TestMean(t *testing.T) {
	r := mustNew(t, Rect(2, 1))
	r.SetPixel(0, 0, Color{R: 1, A: 1})
	got := r.Mean()
	if !approx(got, Color{R: 0.5, A: 0.5}, 1e-6) {
		t.Errorf("Mean = %+v", got)
	}
}

func TestExtentIntersect(t *testing.T) {
	tests := []struct {
		a, b, want Extent
	}{
		{Rect(10, 10), Rect(5, 20), Rect(5, 10)},
		{Rect(10, 10), Extent{X: 8, Y: 8, Width: 5, Height: 5}, Extent{X: 8, Y: 8, Width: 2, Height: 2}},
		{Rect(10, 10), Extent{X: 10, Y: 0, Width: 5, Height: 5}, Extent{}},
	}
	for _, tt := range tests {
		if got := tt.a.Intersect(tt.b); got != tt.want {
			t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestExtentContains(t *testing.T) {
	e := Rect(10, 10)
	if !e.Contains(Extent{X: 2, Y: 2, Width: 8, Height: 8}) {
		t.Error("expected containment")
	}
	if e.Contains(Extent{X: 2, Y: 2, Width: 9, Height: 8}) {
		t.Error("unexpected containment")
	}
	if got := (Extent{X: 1, Y: -2, Width: 3, Height: 4}).String(); got != "3x4+1-2" {
		t.Errorf("String = %q", got)
	}
}

func mustNew(t *testing.T, e Extent) *Raster {
	t.Helper()
	r, err := New(e)
	if err != nil {
		t.Fatalf("New(%v): %v", e, err)
	}
	return r
}

func approx(a, b Color, tol float32) bool {
	return absf(a.R-b.R) <= tol && absf(a.G-b.G) <= tol &&
		absf(a.B-b.B) <= tol && absf(a.A-b.A) <= tol
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
