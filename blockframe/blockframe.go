// Package blockframe encodes the length-prefixed, CRC-checked blocks
// that carry a stream's compressed payload after its tree frame.
// Unlike the tree frame, a block frame's CRC-32 covers only the count
// field and the bit-packed body, never the (always-zero) CRC field
// itself, matching the original implementation's encode_impl.
package blockframe

import (
	"encoding/binary"

	"github.com/bytepacker/huffman/bitbuffer"
	"github.com/bytepacker/huffman/crc32table"
	"github.com/bytepacker/huffman/huffmantree"
	"github.com/bytepacker/huffman/parallel"
)

// HeaderSize is the fixed width of a block frame header: CRC-32 then
// symbol count, each 4 bytes, little-endian.
const HeaderSize = 8

// EncodeSingle packs data through codebook into one complete block
// frame. It panics if data contains a byte with no assigned codeword,
// which can only happen if the block is encoded against a tree that
// was not built from (or does not dominate) data's own alphabet.
func EncodeSingle(codebook *huffmantree.Codebook, data []byte) []byte {
	bits := bitbuffer.New()
	for _, b := range data {
		code := codebook[b]
		if code == nil {
			panic("huffman: encoding byte with no assigned codeword")
		}
		bits.Append(code)
	}

	body := bits.Bytes()
	frame := make([]byte, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(data)))
	copy(frame[8:], body)

	crc := crc32table.Checksum(frame[4:])
	binary.LittleEndian.PutUint32(frame[0:4], crc)
	return frame
}

// EncodeParallel shards data across workers, encoding each shard into
// its own block frame via EncodeSingle, then concatenates the frames
// in ascending shard order. Below parallel.Threshold bytes this is
// identical to a single EncodeSingle call.
func EncodeParallel(codebook *huffmantree.Codebook, data []byte) []byte {
	frame, _ := EncodeParallelWithCRCs(codebook, data)
	return frame
}

// shardResult accumulates one shard's encoded frame and its own CRC-32
// so a caller can fold per-shard checksums into a rolling stream-wide
// value without re-parsing the concatenated frame bytes.
type shardResult struct {
	frames [][]byte
	crcs   []uint32
}

// EncodeParallelWithCRCs behaves like EncodeParallel but additionally
// returns each shard's own block CRC, in the same ascending shard
// order the frames were concatenated in, for progress reporting (see
// crc32table.Combine).
func EncodeParallelWithCRCs(codebook *huffmantree.Codebook, data []byte) ([]byte, []uint32) {
	acc := parallel.Dispatch(len(data), func(lo, hi int) shardResult {
		frame := EncodeSingle(codebook, data[lo:hi])
		return shardResult{frames: [][]byte{frame}, crcs: []uint32{binary.LittleEndian.Uint32(frame[0:4])}}
	}, func(acc, shard shardResult) shardResult {
		acc.frames = append(acc.frames, shard.frames...)
		acc.crcs = append(acc.crcs, shard.crcs...)
		return acc
	}, shardResult{})

	var out []byte
	for _, f := range acc.frames {
		out = append(out, f...)
	}
	return out, acc.crcs
}
