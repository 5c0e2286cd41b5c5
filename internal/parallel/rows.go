package parallel

// MinBandRows is the smallest band handed to a worker. Smaller rasters run
// on the calling goroutine.
const MinBandRows = 16

// Executor runs fn over the half-open row ranges [y0, y1) that together
// cover [0, height). Implementations may call fn concurrently for disjoint
// ranges and return only after every call has finished.
type Executor interface {
	Rows(height int, fn func(y0, y1 int))
}

// Serial is an Executor that processes all rows on the calling goroutine.
type Serial struct{}

// Rows calls fn once with the full range.
func (Serial) Rows(height int, fn func(y0, y1 int)) {
	if height > 0 {
		fn(0, height)
	}
}

// Rows splits [0, height) into bands and runs them on the pool.
func (p *WorkerPool) Rows(height int, fn func(y0, y1 int)) {
	bands := Bands(height, p.workers*4)
	if len(bands) <= 1 {
		Serial{}.Rows(height, fn)
		return
	}
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b[0], b[1]) }
	}
	p.ExecuteAll(work)
}

// Bands divides [0, height) into at most n contiguous ranges. Every range
// but the last has at least MinBandRows rows.
func Bands(height, n int) [][2]int {
	if height <= 0 {
		return nil
	}
	n = max(1, min(n, height/MinBandRows))
	size := (height + n - 1) / n
	out := make([][2]int, 0, n)
	for y := 0; y < height; y += size {
		out = append(out, [2]int{y, min(y+size, height)})
	}
	return out
}

// Or returns e, or Serial when e is nil.
func Or(e Executor) Executor {
	if e == nil {
		return Serial{}
	}
	return e
}
