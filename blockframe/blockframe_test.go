// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.
package blockframe

import (
	"encoding/binary"
	"testing"

	"github.com/bytepacker/huffman/crc32table"
	"github.com/bytepacker/huffman/histogram"
	"github.com/bytepacker/huffman/huffmantree"
)

func TestEncodeSingleChecksumAndCount(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	hist := histogram.New()
	hist.Update(data)
	tr := huffmantree.Build(hist)

	frame := EncodeSingle(&tr.Codebook, data)
	if got, want := binary.LittleEndian.Uint32(frame[4:8]), uint32(len(data)); got != want {
		t.Errorf("count: got %v, want %v", got, want)
	}
	expectedCRC := binary.LittleEndian.Uint32(frame[0:4])
	if got := crc32table.Checksum(frame[4:]); got != expectedCRC {
		t.Errorf("crc: got %#x, want %#x", got, expectedCRC)
	}
}

func TestEncodeParallelMatchesSerialConcatenation(t *testing.T) {
	data := []byte("aaaabbbbccccddddeeee")
	hist := histogram.New()
	hist.Update(data)
	tr := huffmantree.Build(hist)

	single := EncodeSingle(&tr.Codebook, data)
	parallel := EncodeParallel(&tr.Codebook, data)
	if string(single) != string(parallel) {
		t.Errorf("EncodeParallel below threshold should match EncodeSingle exactly")
	}
}

func TestEncodeSinglePanicsOnUnknownByte(t *testing.T) {
	hist := histogram.New()
	hist.Update([]byte("aaa"))
	tr := huffmantree.Build(hist)

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic encoding a byte absent from the tree's alphabet")
		}
	}()
	EncodeSingle(&tr.Codebook, []byte("aaab"))
}
