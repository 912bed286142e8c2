package mobility

import (
	"sync"
	"sync/atomic"
)

// reduceRows runs fn over chunks of the row range [0, rows) on workers
// goroutines. Each worker accumulates into its own private slice and the
// partials are merged into out by addition once all workers finish.
//
// A plain parallel-for over rows would race: processing row i writes the
// slots of every j > i as well. Summing private accumulators keeps the
// result independent of scheduling up to floating-point reassociation.
// Chunks are claimed dynamically because the triangular inner loop makes
// early rows far more expensive than late ones.
func reduceRows(out []float64, rows, workers int, fn func(acc []float64, lo, hi int)) {
	if workers > rows/rowChunk {
		workers = rows / rowChunk
	}
	if workers <= 1 {
		fn(out, 0, rows)
		return
	}

	partials := make([][]float64, workers)
	var next int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		partials[w] = make([]float64, len(out))
		go func(acc []float64) {
			defer wg.Done()
			for {
				lo := int(atomic.AddInt64(&next, rowChunk)) - rowChunk
				if lo >= rows {
					return
				}
				hi := lo + rowChunk
				if hi > rows {
					hi = rows
				}
				fn(acc, lo, hi)
			}
		}(partials[w])
	}

	wg.Wait()

	for _, p := range partials {
		for i, v := range p {
			out[i] += v
		}
	}
}
