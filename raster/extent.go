package raster

import (
	"fmt"
	"image"
)

// Extent is an axis-aligned rectangle on the pipeline canvas, in pixels.
// Every raster in a pipeline run is placed on the same canvas, so two
// rasters are aligned by comparing their extents.
type Extent struct {
	X, Y          int
	Width, Height int
}

// Rect returns an extent at the origin with the given size.
func Rect(width, height int) Extent {
	return Extent{Width: width, Height: height}
}

// Empty reports whether the extent covers no pixels.
func (e Extent) Empty() bool {
	return e.Width <= 0 || e.Height <= 0
}

// MaxX returns the exclusive right edge.
func (e Extent) MaxX() int { return e.X + e.Width }

// MaxY returns the exclusive bottom edge.
func (e Extent) MaxY() int { return e.Y + e.Height }

// Intersect returns the largest extent contained by both e and o.
// The result is the zero Extent when they do not overlap.
func (e Extent) Intersect(o Extent) Extent {
	x0 := max(e.X, o.X)
	y0 := max(e.Y, o.Y)
	x1 := min(e.MaxX(), o.MaxX())
	y1 := min(e.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Extent{}
	}
	return Extent{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains reports whether o lies entirely inside e.
func (e Extent) Contains(o Extent) bool {
	if o.Empty() {
		return true
	}
	return o.X >= e.X && o.Y >= e.Y && o.MaxX() <= e.MaxX() && o.MaxY() <= e.MaxY()
}

// Bounds converts the extent to an image.Rectangle.
func (e Extent) Bounds() image.Rectangle {
	return image.Rect(e.X, e.Y, e.MaxX(), e.MaxY())
}

// String returns the extent as "WxH+X+Y".
func (e Extent) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", e.Width, e.Height, e.X, e.Y)
}
