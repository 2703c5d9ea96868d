// Package forkjoin provides deterministic parallel map-reduce primitives over
// dense integer index ranges, plus a fixed-size fork limiter for recursive
// subtree parallelism.
//
// All primitives guarantee that the result is independent of goroutine
// scheduling: chunk partials are folded in chunk order, and first-match
// searches combine by position rather than by completion order. Every
// primitive falls back to a plain sequential scan when the input is smaller
// than the configured threshold or when only one worker is allowed, so the
// parallel path never costs more than it gains on small inputs.
package forkjoin

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Default tuning values, applied by Options.Normalize.
const (
	// DefaultThreshold is the input size below which work stays sequential.
	DefaultThreshold = 2048

	// chunksPerWorker over-partitions the range so that uneven chunks do
	// not leave workers idle at the tail.
	chunksPerWorker = 4
)

// Options configures the degree of parallelism.
type Options struct {
	// Workers is the maximum number of concurrent goroutines. Zero or
	// negative means runtime.NumCPU(). One forces sequential execution.
	Workers int

	// Threshold is the input size below which execution is sequential.
	// Zero or negative means DefaultThreshold.
	Threshold int
}

// Normalize fills in defaults for unset fields.
func (o Options) Normalize() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}

	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}

	return o
}

// Reduce applies scan to contiguous chunks of [0, n) in parallel and folds
// the chunk partials left to right with merge. The fold order makes the
// result deterministic for any associative merge, for any worker count.
func Reduce[T any](opts Options, n int, scan func(lo, hi int) T, merge func(a, b T) T) T {
	opts = opts.Normalize()

	if n <= opts.Threshold || opts.Workers == 1 {
		return scan(0, max(n, 0))
	}

	chunkSize, numChunks := partition(n, opts)
	partials := make([]T, numChunks)

	runChunks(opts.Workers, numChunks, func(chunk int) {
		lo := chunk * chunkSize
		hi := min(lo+chunkSize, n)
		partials[chunk] = scan(lo, hi)
	})

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = merge(acc, p)
	}

	return acc
}

// First scans [0, n) in parallel for the smallest index accepted by a chunk
// scanner and returns it. scan must return the first matching index within
// [lo, hi), or ok=false. Chunks that start past the best match found so far
// are skipped, so early matches terminate the search quickly; the final
// answer is the global minimum regardless of scheduling.
func First(opts Options, n int, scan func(lo, hi int) (int, bool)) (int, bool) {
	opts = opts.Normalize()

	if n <= opts.Threshold || opts.Workers == 1 {
		return scan(0, max(n, 0))
	}

	chunkSize, numChunks := partition(n, opts)

	var best atomic.Int64

	best.Store(int64(n))

	runChunks(opts.Workers, numChunks, func(chunk int) {
		lo := chunk * chunkSize
		if int64(lo) >= best.Load() {
			return
		}

		hi := min(lo+chunkSize, n)

		idx, ok := scan(lo, hi)
		if !ok {
			return
		}

		storeMin(&best, int64(idx))
	})

	found := best.Load()
	if found >= int64(n) {
		return 0, false
	}

	return int(found), true
}

// partition picks a chunk size of at least Threshold and returns the size
// together with the resulting chunk count.
func partition(n int, opts Options) (chunkSize, numChunks int) {
	chunks := opts.Workers * chunksPerWorker

	chunkSize = (n + chunks - 1) / chunks
	if chunkSize < opts.Threshold {
		chunkSize = opts.Threshold
	}

	numChunks = (n + chunkSize - 1) / chunkSize

	return chunkSize, numChunks
}

// runChunks executes fn for every chunk index using a fixed pool of workers
// pulling from a shared counter.
func runChunks(workers, numChunks int, fn func(chunk int)) {
	workers = min(workers, numChunks)

	var next atomic.Int64

	var wg sync.WaitGroup

	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			for {
				chunk := int(next.Add(1)) - 1
				if chunk >= numChunks {
					return
				}

				fn(chunk)
			}
		}()
	}

	wg.Wait()
}

// storeMin lowers best to v if v is smaller, racing CAS until settled.
func storeMin(best *atomic.Int64, v int64) {
	for {
		cur := best.Load()
		if v >= cur || best.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Limiter is a fixed-size token pool bounding the number of concurrently
// forked goroutines in a recursive fork-join. When no token is available the
// caller runs the task inline, so forking never blocks and the total
// goroutine count stays at the configured bound.
type Limiter chan struct{}

// NewLimiter creates a limiter admitting up to workers-1 forked goroutines
// (the calling goroutine counts as a worker). Workers of one or less yields
// a limiter that never admits a fork.
func NewLimiter(workers int) Limiter {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	return make(Limiter, workers-1)
}

// TryAcquire takes a fork token if one is free.
func (l Limiter) TryAcquire() bool {
	select {
	case l <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a fork token.
func (l Limiter) Release() {
	<-l
}
