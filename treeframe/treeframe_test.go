// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.
package treeframe

import (
	"testing"

	"github.com/bytepacker/huffman/histogram"
	"github.com/bytepacker/huffman/huffmantree"
)

func TestEncodeVerifyRoundTrip(t *testing.T) {
	hist := histogram.New()
	hist.Update([]byte("the quick brown fox jumps over the lazy dog"))
	tr := huffmantree.Build(hist)

	frame := Encode(tr)
	if len(frame) < HeaderSize {
		t.Fatalf("frame too short: %v bytes", len(frame))
	}
	if err := Verify(frame); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	_, bodyLen := ParseHeader([HeaderSize]byte(frame[:HeaderSize]))
	if int(bodyLen) != len(frame)-HeaderSize {
		t.Errorf("body length %v, want %v", bodyLen, len(frame)-HeaderSize)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	hist := histogram.New()
	hist.Update([]byte("corruption must be detected"))
	tr := huffmantree.Build(hist)
	frame := Encode(tr)

	frame[HeaderSize] ^= 0x01
	if err := Verify(frame); err == nil {
		t.Errorf("expected Verify to detect a single flipped body bit")
	}
}
