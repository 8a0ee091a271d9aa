// Package histogram counts byte frequencies over arbitrary input,
// dispatching large inputs across workers via the parallel package the
// same way the encoder's original frequency counter did, and the way
// the teacher dispatches bzip2 decode work across goroutines.
package histogram

import "github.com/bytepacker/huffman/parallel"

// AlphabetSize is the number of distinct byte values a stream can use.
const AlphabetSize = 256

// Entry pairs a byte value with its observed count. Histogram always
// holds one Entry per possible byte value, indexed by that value, so a
// symbol with a zero count still has an Entry recording it.
type Entry struct {
	Symbol byte
	Count  uint64
}

// Histogram is a frequency table over every possible byte value.
type Histogram [AlphabetSize]Entry

// New returns a zeroed Histogram with every entry's Symbol preset to
// its index, ready to accumulate counts via Update.
func New() Histogram {
	var h Histogram
	for i := range h {
		h[i].Symbol = byte(i)
	}
	return h
}

// Update adds the frequency of each byte in data to h.
func (h *Histogram) Update(data []byte) {
	counts := parallel.Dispatch(len(data), func(lo, hi int) [AlphabetSize]uint64 {
		var c [AlphabetSize]uint64
		for _, b := range data[lo:hi] {
			c[b]++
		}
		return c
	}, func(acc, shard [AlphabetSize]uint64) [AlphabetSize]uint64 {
		for i := range acc {
			acc[i] += shard[i]
		}
		return acc
	}, [AlphabetSize]uint64{})

	for i := range h {
		h[i].Count += counts[i]
	}
}

// UpdateElems counts frequencies over a stream of fixed-width elements
// by treating data as a flat run of bytes: every constituent byte of
// every element, regardless of the element's logical type, contributes
// to the same 256-entry histogram. elemSize is accepted for documentation
// of intent at call sites; the byte-level counting itself is type-agnostic.
func (h *Histogram) UpdateElems(data []byte, elemSize int) {
	h.Update(data)
}

// Merge folds another histogram's counts into h.
func (h *Histogram) Merge(other Histogram) {
	for i := range h {
		h[i].Count += other[i].Count
	}
}
