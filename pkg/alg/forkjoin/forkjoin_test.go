package forkjoin_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/rolenav/pkg/alg/forkjoin"
)

const (
	testN         = 100_000
	tinyThreshold = 8
)

func sumScan(data []int) func(lo, hi int) int {
	return func(lo, hi int) int {
		total := 0
		for _, v := range data[lo:hi] {
			total += v
		}

		return total
	}
}

func addMerge(a, b int) int { return a + b }

func buildData(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i % 7
	}

	return data
}

func TestReduce_MatchesSequential(t *testing.T) {
	t.Parallel()

	data := buildData(testN)
	want := sumScan(data)(0, len(data))

	tests := []struct {
		name string
		opts forkjoin.Options
	}{
		{name: "defaults", opts: forkjoin.Options{}},
		{name: "single_worker", opts: forkjoin.Options{Workers: 1}},
		{name: "two_workers_tiny_threshold", opts: forkjoin.Options{Workers: 2, Threshold: tinyThreshold}},
		{name: "many_workers", opts: forkjoin.Options{Workers: 16, Threshold: tinyThreshold}},
		{name: "threshold_above_input", opts: forkjoin.Options{Workers: 8, Threshold: testN + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := forkjoin.Reduce(tt.opts, len(data), sumScan(data), addMerge)
			assert.Equal(t, want, got)
		})
	}
}

func TestReduce_EmptyRange(t *testing.T) {
	t.Parallel()

	got := forkjoin.Reduce(forkjoin.Options{}, 0, func(lo, hi int) int {
		assert.Equal(t, lo, hi)

		return 0
	}, addMerge)

	assert.Equal(t, 0, got)
}

func TestReduce_FoldOrderIsChunkOrder(t *testing.T) {
	t.Parallel()

	// A non-commutative merge (concatenation via first-wins pairing) exposes
	// any out-of-order fold: collect chunk lows and verify they ascend.
	opts := forkjoin.Options{Workers: 8, Threshold: tinyThreshold}

	lows := forkjoin.Reduce(opts, testN, func(lo, _ int) []int {
		return []int{lo}
	}, func(a, b []int) []int {
		return append(a, b...)
	})

	for i := 1; i < len(lows); i++ {
		require.Greater(t, lows[i], lows[i-1])
	}
}

func TestFirst_FindsEarliestMatch(t *testing.T) {
	t.Parallel()

	data := make([]bool, testN)
	data[12345] = true
	data[90_000] = true

	scan := func(lo, hi int) (int, bool) {
		for i := lo; i < hi; i++ {
			if data[i] {
				return i, true
			}
		}

		return 0, false
	}

	tests := []struct {
		name string
		opts forkjoin.Options
	}{
		{name: "sequential", opts: forkjoin.Options{Workers: 1}},
		{name: "parallel", opts: forkjoin.Options{Workers: 8, Threshold: tinyThreshold}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx, ok := forkjoin.First(tt.opts, len(data), scan)
			require.True(t, ok)
			assert.Equal(t, 12345, idx)
		})
	}
}

func TestFirst_NoMatch(t *testing.T) {
	t.Parallel()

	scan := func(_, _ int) (int, bool) { return 0, false }

	_, ok := forkjoin.First(forkjoin.Options{Workers: 4, Threshold: tinyThreshold}, testN, scan)
	assert.False(t, ok)

	_, ok = forkjoin.First(forkjoin.Options{}, 0, scan)
	assert.False(t, ok)
}

func TestLimiter_BoundsForks(t *testing.T) {
	t.Parallel()

	const workers = 4

	lim := forkjoin.NewLimiter(workers)

	var inFlight, peak atomic.Int64

	var wg sync.WaitGroup

	for range 64 {
		if !lim.TryAcquire() {
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer lim.Release()

			cur := inFlight.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}

			inFlight.Add(-1)
		}()
	}

	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(workers-1))
}

func TestLimiter_SingleWorkerNeverForks(t *testing.T) {
	t.Parallel()

	lim := forkjoin.NewLimiter(1)
	assert.False(t, lim.TryAcquire())
}

func BenchmarkReduceSum(b *testing.B) {
	data := buildData(testN)
	opts := forkjoin.Options{}

	b.ResetTimer()

	for range b.N {
		forkjoin.Reduce(opts, len(data), sumScan(data), addMerge)
	}
}
