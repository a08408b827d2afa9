// Package parallel provides the row-band parallelism used by the correlation
// engine.
//
// Every output sample of a correlation depends only on the read-only padded
// input, so the output rows can be split into disjoint bands and processed by
// independent goroutines without synchronization beyond a final wait.
//
// Thread safety: WorkerPool is safe for concurrent use. Bands are plain values.
package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0 int
	Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides height rows into at most parts contiguous bands whose
// sizes differ by at most one row. It returns nil for a non-positive height
// and a single band when parts <= 1.
func SplitRows(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > height {
		parts = height
	}

	bands := make([]Band, parts)
	base, extra := height/parts, height%parts
	y := 0
	for i := range bands {
		n := base
		if i < extra {
			n++
		}
		bands[i] = Band{Y0: y, Y1: y + n}
		y += n
	}
	return bands
}

// ForEachBand splits height rows into bands for the pool's workers and calls
// fn once per band, returning when all calls have completed.
func (p *WorkerPool) ForEachBand(height int, fn func(Band)) {
	bands := SplitRows(height, p.Workers())
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
