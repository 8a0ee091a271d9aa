// Package parallel implements the fork-join shard dispatcher the codec
// uses for histogram counting and block encoding. It generalizes the
// teacher's worker-pool pattern (parallel.go) into a synchronous helper
// that blocks the caller until every shard has completed, matching the
// fork/join std::thread dispatch used by the format's original
// implementation.
package parallel

import "sync"

// Tuning constants grounded on the original implementation: below
// Threshold bytes, dispatch runs its single shard inline rather than
// paying goroutine startup cost.
const (
	ThreadCount = 8
	ThreadExp   = 3
	Threshold   = 4096000
)

// Dispatch splits [0, total) into up to ThreadCount contiguous shards,
// runs f over each shard concurrently, and folds the per-shard results
// together with merge in ascending shard order. Below Threshold, f runs
// once inline on the full range. merge is never called concurrently
// with itself, so it needs no synchronization of its own.
func Dispatch[T any](total int, f func(lo, hi int) T, merge func(acc, shard T) T, zero T) T {
	if total < Threshold {
		return merge(zero, f(0, total))
	}

	stride := total >> ThreadExp
	if stride == 0 {
		stride = 1
	}

	var bounds [][2]int
	lo := 0
	for i := 0; i < ThreadCount-1; i++ {
		hi := lo + stride
		if hi >= total {
			break
		}
		bounds = append(bounds, [2]int{lo, hi})
		lo = hi
	}
	bounds = append(bounds, [2]int{lo, total})

	results := make([]T, len(bounds))
	var wg sync.WaitGroup
	wg.Add(len(bounds))
	for i, b := range bounds {
		go func(i int, lo, hi int) {
			defer wg.Done()
			results[i] = f(lo, hi)
		}(i, b[0], b[1])
	}
	wg.Wait()

	acc := zero
	for _, r := range results {
		acc = merge(acc, r)
	}
	return acc
}
