package huffman

import (
	"github.com/bytepacker/huffman/blockframe"
	"github.com/bytepacker/huffman/crc32table"
	"github.com/bytepacker/huffman/histogram"
	"github.com/bytepacker/huffman/huffmantree"
	"github.com/bytepacker/huffman/parallel"
	"github.com/bytepacker/huffman/treeframe"
)

// parallelTraceThreshold mirrors parallel.Threshold so EncodeBlock can
// log when a call is actually large enough to shard.
const parallelTraceThreshold = parallel.Threshold

// Encoder turns histogram-derived codewords into a full stream: one
// tree frame followed by any number of block frames.
type Encoder struct {
	tree *huffmantree.Tree
}

// NewEncoder builds the Huffman tree for hist and returns an Encoder
// ready to emit its tree frame and encode block frames against it.
func NewEncoder(hist histogram.Histogram) *Encoder {
	t := huffmantree.Build(hist)
	Logf("huffman: built tree with %d leaves", len(t.AlphabetBytes))
	return &Encoder{tree: t}
}

// TreeFrame returns the encoder's tree frame. It must be written to
// the output stream exactly once, before any block frame.
func (e *Encoder) TreeFrame() []byte {
	frame := treeframe.Encode(e.tree)
	Logf("huffman: tree frame %d bytes", len(frame))
	return frame
}

// EncodeBlock encodes data into block frames: a single frame below
// parallel.Threshold bytes, otherwise one frame per worker shard,
// concatenated in shard order.
func (e *Encoder) EncodeBlock(data []byte) []byte {
	frame, _ := e.EncodeBlockWithCRC(data)
	return frame
}

// EncodeBlockWithCRC behaves like EncodeBlock but also returns the
// combined CRC-32 of every shard the block was split into (a single
// shard's own CRC when the block was too small to dispatch), folded
// together with crc32table.Combine in shard order.
func (e *Encoder) EncodeBlockWithCRC(data []byte) ([]byte, uint32) {
	if len(data) >= parallelTraceThreshold {
		Logf("huffman: dispatching %d bytes across shards for encode", len(data))
	}
	frame, shardCRCs := blockframe.EncodeParallelWithCRCs(&e.tree.Codebook, data)
	var crc uint32
	for _, c := range shardCRCs {
		crc = crc32table.Combine(crc, c)
	}
	Logf("huffman: encoded block, %d symbols -> %d bytes, crc=%#08x", len(data), len(frame), crc)
	return frame, crc
}

// EncodeBlockSerial encodes data into a single block frame without
// ever dispatching to workers, regardless of size.
func (e *Encoder) EncodeBlockSerial(data []byte) []byte {
	return blockframe.EncodeSingle(&e.tree.Codebook, data)
}
