// Package treeframe encodes and verifies the tree frame that begins
// every stream: an 8-byte header (CRC-32 then body length, both
// little-endian) followed by the tree's shape bits and alphabet bytes.
package treeframe

import (
	"encoding/binary"

	"github.com/bytepacker/huffman/crc32table"
	"github.com/bytepacker/huffman/huffmantree"
	"github.com/bytepacker/huffman/internal/herrors"
)

// HeaderSize is the fixed width of a frame header: a CRC-32 field
// followed by a body-length field, each 4 bytes, little-endian.
const HeaderSize = 8

// Encode renders tree as a complete tree frame: header plus body, with
// the CRC-32 computed over the entire frame after the body length has
// been written and the CRC field zeroed.
func Encode(tree *huffmantree.Tree) []byte {
	body := append(append([]byte(nil), tree.ShapeBits.Bytes()...), tree.AlphabetBytes...)

	frame := make([]byte, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(body)))
	copy(frame[8:], body)

	crc := crc32table.Checksum(frame)
	binary.LittleEndian.PutUint32(frame[0:4], crc)
	return frame
}

// Body extracts the tree body (the frame minus its header) out of a
// complete frame once its length is known.
func Body(frame []byte) []byte {
	return frame[HeaderSize:]
}

// ParseHeader decodes a complete 8-byte header buffer (with the
// trailing body not yet necessarily available) and returns the expected
// CRC and body length it declares. It performs no validation; see Verify.
func ParseHeader(header [HeaderSize]byte) (expectedCRC uint32, bodyLen uint32) {
	expectedCRC = binary.LittleEndian.Uint32(header[0:4])
	bodyLen = binary.LittleEndian.Uint32(header[4:8])
	return
}

// Verify checks a complete tree frame's CRC-32, zeroing the CRC field
// in a scratch copy before recomputing, exactly mirroring Encode.
func Verify(frame []byte) error {
	expectedCRC := binary.LittleEndian.Uint32(frame[0:4])
	scratch := append([]byte(nil), frame...)
	binary.LittleEndian.PutUint32(scratch[0:4], 0)
	if got := crc32table.Checksum(scratch); got != expectedCRC {
		return herrors.Corrupted("tree frame checksum mismatch")
	}
	return nil
}
