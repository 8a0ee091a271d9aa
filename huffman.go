// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package huffman implements a streaming, parallel Huffman coding
// codec: a tree frame built once from a full input's byte histogram,
// followed by zero or more CRC-32 checked block frames carrying the
// compressed payload.
package huffman

import (
	"time"

	"github.com/bytepacker/huffman/internal/herrors"
)

// CorruptedStreamError is returned whenever a checksum or structural
// check fails while decoding a stream.
type CorruptedStreamError = herrors.Corrupted

// ErrTruncatedStream is returned when a stream ends before a decoder
// has consumed a complete tree frame and all of its block frames.
var ErrTruncatedStream = herrors.ErrTruncated

// Progress reports cumulative encode/decode progress, grounded on the
// teacher's pbzip2.Progress, for callers driving a long-running Reader
// or Writer that want to show a status bar or print an end-of-run
// summary.
type Progress struct {
	// Duration is how long the most recently processed chunk took to
	// encode or decode.
	Duration time.Duration
	// Block is the number of block frames verified so far (decode), or
	// the number of input chunks encoded so far (encode); an encoded
	// chunk of at least parallel.Threshold bytes holds one block frame
	// per shard.
	Block int
	// CRC is the running whole-stream checksum built with
	// crc32table.Combine, the same way the teacher folds per-block CRCs
	// into Decompressor.streamCRC. A Reader folds in each block frame's
	// CRC; a Writer folds in each chunk's combined CRC from
	// Encoder.EncodeBlockWithCRC, so the two values match only while
	// every chunk is a single block frame.
	CRC uint32
	// Compressed is the number of compressed bytes produced (encode)
	// or consumed (decode) so far.
	Compressed int64
	// Size is the number of uncompressed bytes produced (decode) or
	// consumed (encode) so far.
	Size int64
}

// Logf is used throughout this package to report non-fatal progress;
// it defaults to a no-op and is typically set to something like
// log.Printf by command-line callers.
var Logf = func(format string, args ...interface{}) {}
