// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.
package huffman

import (
	"bytes"
	"io"
	"testing"

	"github.com/bytepacker/huffman/internal/fuzzutil"
)

func roundTrip(t *testing.T, data []byte) []byte {
	t.Helper()
	var compressed bytes.Buffer
	wr := NewWriter(&compressed)
	if _, err := wr.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rd := NewReader(bytes.NewReader(compressed.Bytes()))
	got, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return got
}

func TestRoundTripEmptyInput(t *testing.T) {
	got := roundTrip(t, nil)
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRoundTripSingleByte(t *testing.T) {
	got := roundTrip(t, []byte("z"))
	if string(got) != "z" {
		t.Errorf("got %q, want %q", got, "z")
	}
}

func TestRoundTripEnglishString(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, again and again")
	got := roundTrip(t, data)
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestRoundTripRandomData(t *testing.T) {
	data := fuzzutil.GenPredictableRandomData(20000)
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Errorf("random data round trip mismatch, %v bytes in, %v bytes out", len(data), len(got))
	}
}

func TestReaderSurfacesTruncatedStream(t *testing.T) {
	var compressed bytes.Buffer
	wr := NewWriter(&compressed)
	wr.Write([]byte("this stream will be cut short before its block frame ends"))
	if err := wr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	truncated := compressed.Bytes()[:compressed.Len()-3]
	rd := NewReader(bytes.NewReader(truncated))
	if _, err := io.ReadAll(rd); err == nil {
		t.Errorf("expected an error reading a truncated stream")
	}
}
