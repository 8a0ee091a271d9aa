// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fuzzutil generates pseudorandom test data for the codec's
// tests, mirroring the teacher's internal test_util.go helpers.
package fuzzutil

import "math/rand"

// fixedRandSeed is shared by every GenPredictableRandomData caller so
// that test failures are reproducible across runs.
const fixedRandSeed = 0x1234

// GenPredictableRandomData generates random data starting with a fixed
// known seed.
func GenPredictableRandomData(size int) []byte {
	gen := rand.New(rand.NewSource(fixedRandSeed))
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(gen.Intn(256))
	}
	return out
}

// GenPredictableRandomDataSeeded is like GenPredictableRandomData but
// takes an explicit seed, letting tests exercise several independent
// streams without affecting each other's determinism.
func GenPredictableRandomDataSeeded(size int, seed int64) []byte {
	gen := rand.New(rand.NewSource(seed))
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(gen.Intn(256))
	}
	return out
}

// GenChunkSizes splits total bytes into a pseudorandom sequence of
// chunk sizes, each between 1 and maxChunk bytes, useful for
// exercising a streaming decoder against arbitrary chunk boundaries.
func GenChunkSizes(total, maxChunk int, seed int64) []int {
	gen := rand.New(rand.NewSource(seed))
	var sizes []int
	for total > 0 {
		n := gen.Intn(maxChunk) + 1
		if n > total {
			n = total
		}
		sizes = append(sizes, n)
		total -= n
	}
	return sizes
}

// FirstN returns at most the first n bytes of b.
func FirstN(n int, b []byte) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
