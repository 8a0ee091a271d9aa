// Package crc32table provides the CRC-32 (IEEE 802.3) table and fold
// step used to frame both the tree and the block sections of a stream.
// It mirrors the teacher's pattern of wrapping hash/crc32 rather than
// hand-rolling the polynomial table, while exposing the running,
// byte-at-a-time fold the decoder's resumable state machine needs.
package crc32table

import "hash/crc32"

// Init is the initial value a running CRC accumulator starts from.
const Init uint32 = 0xFFFFFFFF

// Table returns the standard IEEE CRC-32 table (polynomial 0xEDB88320),
// shared with the stdlib so no second table is ever generated.
func Table() *crc32.Table {
	return crc32.IEEETable
}

// FoldByte folds a single byte into a running CRC accumulator. Callers
// seed the accumulator with Init and XOR the final value with 0xFFFFFFFF
// to obtain the stored/expected checksum.
func FoldByte(crc uint32, b byte) uint32 {
	return crc32.IEEETable[byte(crc)^b] ^ (crc >> 8)
}

// Checksum computes the CRC-32 of buf using the init/final-XOR
// convention used throughout the stream format.
func Checksum(buf []byte) uint32 {
	crc := Init
	for _, b := range buf {
		crc = FoldByte(crc, b)
	}
	return crc ^ Init
}

// Combine folds a block's own CRC-32 into a running whole-stream
// checksum, the same rotate-and-xor combination the teacher's
// updateStreamCRC (parallel.go) uses to fold per-block CRCs into a
// single stream-wide value for progress reporting.
func Combine(streamCRC, blockCRC uint32) uint32 {
	return (streamCRC<<1 | streamCRC>>31) ^ blockCRC
}
