// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"io"
	"time"

	"github.com/bytepacker/huffman/crc32table"
	"github.com/bytepacker/huffman/histogram"
)

// bigChunkSize is the size of the input chunks Close encodes one at a
// time after the tree frame, grounded on the original implementation's
// BIG_BUFF_SIZE. A full chunk reaches parallel.Threshold and so is
// written as one block frame per shard.
const bigChunkSize = 4096000

type streamWriter struct {
	dst    io.Writer
	buf    []byte
	onProg func(Progress)
}

// WriterOption configures a Writer created by NewWriter.
type WriterOption func(*streamWriter)

// WithWriteProgress registers a callback invoked after each input chunk
// has been encoded and its block frames written.
func WithWriteProgress(fn func(Progress)) WriterOption {
	return func(w *streamWriter) { w.onProg = fn }
}

// NewWriter returns an io.WriteCloser that buffers everything written
// to it, then, on Close, builds a histogram over the full input,
// writes a tree frame, and writes the input back out as block frames
// (none at all for empty input). Buffering the whole input mirrors the original
// implementation's two-pass encode (a full counting pass followed by
// a full encoding pass), which this format's tree-frame-first layout
// requires.
func NewWriter(dst io.Writer, opts ...WriterOption) io.WriteCloser {
	w := &streamWriter{dst: dst}
	for _, fn := range opts {
		fn(w)
	}
	return w
}

// Write implements io.Writer by appending to an internal buffer; no
// output is produced until Close.
func (w *streamWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Close builds the tree frame and block frames for everything written
// so far and flushes them to the underlying writer.
func (w *streamWriter) Close() error {
	hist := histogram.New()
	hist.Update(w.buf)
	Logf("huffman: histogram over %d bytes complete", len(w.buf))

	enc := NewEncoder(hist)
	var prog Progress

	treeFrame := enc.TreeFrame()
	if _, err := w.dst.Write(treeFrame); err != nil {
		return err
	}
	prog.Compressed += int64(len(treeFrame))

	for lo := 0; lo < len(w.buf); lo += bigChunkSize {
		hi := lo + bigChunkSize
		if hi > len(w.buf) {
			hi = len(w.buf)
		}
		start := time.Now()
		block, blockCRC := enc.EncodeBlockWithCRC(w.buf[lo:hi])
		prog.Duration = time.Since(start)
		if _, err := w.dst.Write(block); err != nil {
			return err
		}
		prog.Block++
		prog.CRC = crc32table.Combine(prog.CRC, blockCRC)
		prog.Size += int64(hi - lo)
		prog.Compressed += int64(len(block))
		if w.onProg != nil {
			w.onProg(prog)
		}
	}
	return nil
}
