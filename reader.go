// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman

import (
	"io"
	"time"
)

// chunkSize is the size of reads issued against the underlying stream,
// grounded on the original implementation's BUFF_SIZE.
const chunkSize = 128000

type streamReader struct {
	src     io.Reader
	dec     *Decoder
	chunk   []byte
	srcDone bool
	prog    Progress
	onProg  func(Progress)
}

// ReaderOption configures a Reader created by NewReader.
type ReaderOption func(*streamReader)

// WithProgress registers a callback invoked each time Read returns
// decoded bytes.
func WithProgress(fn func(Progress)) ReaderOption {
	return func(r *streamReader) { r.onProg = fn }
}

// NewReader returns an io.Reader that decodes a complete Huffman
// stream (tree frame followed by block frames) read from src.
func NewReader(src io.Reader, opts ...ReaderOption) io.Reader {
	r := &streamReader{src: src, dec: NewDecoder(), chunk: make([]byte, chunkSize)}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// Read implements io.Reader, pulling and decoding input chunks from
// the underlying stream until at least one decoded byte is pending, or
// the stream ends, and then returns as many pending bytes as fit in buf.
func (r *streamReader) Read(buf []byte) (int, error) {
	for r.dec.CharsLeft() == 0 {
		if r.srcDone {
			if !r.dec.ReadFinishedSuccess() {
				return 0, ErrTruncatedStream
			}
			return 0, io.EOF
		}
		n, err := r.src.Read(r.chunk)
		if n > 0 {
			if err := r.feed(r.chunk[:n]); err != nil {
				return 0, err
			}
		}
		if err != nil {
			if err != io.EOF {
				return 0, err
			}
			r.srcDone = true
		}
	}
	n := r.dec.Decode(buf)
	r.prog.Size += int64(n)
	if r.onProg != nil {
		r.onProg(r.prog)
	}
	return n, nil
}

// feed routes a chunk of input through tree initialization and then
// block-frame parsing, splitting it at whatever point the tree frame
// finishes if both happen within the same chunk.
func (r *streamReader) feed(chunk []byte) error {
	r.prog.Compressed += int64(len(chunk))
	Logf("huffman: feeding %d bytes to decoder (%d total so far)", len(chunk), r.prog.Compressed)
	consumed, err := r.dec.InitializeTree(chunk)
	if err != nil {
		return err
	}
	chunk = chunk[consumed:]
	if len(chunk) == 0 {
		return nil
	}
	start := time.Now()
	if err := r.dec.Prepare(chunk); err != nil {
		return err
	}
	r.prog.Duration = time.Since(start)
	r.prog.Block = r.dec.BlockCount()
	r.prog.CRC = r.dec.StreamCRC()
	return nil
}
