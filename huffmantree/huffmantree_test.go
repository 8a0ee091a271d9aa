// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.
package huffmantree

import (
	"testing"

	"github.com/bytepacker/huffman/histogram"
)

func histFor(data []byte) histogram.Histogram {
	h := histogram.New()
	h.Update(data)
	return h
}

func TestBuildEmptyHistogram(t *testing.T) {
	tr := Build(histogram.New())
	if !tr.IsLeaf(tr.Root()) {
		t.Fatalf("expected a single-leaf tree for an empty histogram")
	}
}

func TestBuildSingleSymbol(t *testing.T) {
	tr := Build(histFor([]byte("aaaaaaaa")))
	code := tr.Codebook['a']
	if code == nil || code.Len() == 0 {
		t.Fatalf("expected a nonempty codeword for the sole symbol")
	}
}

func TestCodebookIsPrefixFree(t *testing.T) {
	tr := Build(histFor([]byte("the quick brown fox jumps over the lazy dog")))
	var codes []string
	for _, c := range tr.Codebook {
		if c != nil {
			codes = append(codes, c.String())
		}
	}
	for i := range codes {
		for j := range codes {
			if i == j {
				continue
			}
			a, b := codes[i], codes[j]
			n := len(a)
			if len(b) < n {
				n = len(b)
			}
			if a[:n] == b[:n] {
				t.Errorf("codeword %q is a prefix of %q", a, b)
			}
		}
	}
}

func TestBuildRestoreRoundTrip(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("a"),
		[]byte("aabbbccccdddddeeeeeeffffffffggggggggg"),
		[]byte("the quick brown fox jumps over the lazy dog"),
	} {
		tr := Build(histFor(data))
		body := append(append([]byte(nil), tr.ShapeBits.Bytes()...), tr.AlphabetBytes...)

		restored, err := Restore(body)
		if err != nil {
			t.Fatalf("Restore: %v", err)
		}

		for _, b := range data {
			code := tr.Codebook[b]
			cur := restored.Root()
			for i := 0; i < code.Len(); i++ {
				next, err := restored.Step(cur, code.Get(i))
				if err != nil {
					t.Fatalf("Step: %v", err)
				}
				cur = next
			}
			if !restored.IsLeaf(cur) {
				t.Fatalf("expected leaf after walking codeword for %q", b)
			}
			if got := restored.LeafByte(cur); got != b {
				t.Errorf("decoded byte %q, want %q", got, b)
			}
		}
	}
}

func TestRestoreRejectsTruncatedBody(t *testing.T) {
	tr := Build(histFor([]byte("aabbcc")))
	body := append(append([]byte(nil), tr.ShapeBits.Bytes()...), tr.AlphabetBytes...)
	if _, err := Restore(body[:len(body)-1]); err == nil {
		t.Errorf("expected an error restoring a truncated tree body")
	}
}
