// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.
package bitbuffer

import "testing"

func TestPushAndString(t *testing.T) {
	for i, tc := range []struct {
		bits []byte
		want string
	}{
		{[]byte{}, ""},
		{[]byte{1}, "1"},
		{[]byte{1, 0, 1, 1}, "1011"},
		{[]byte{1, 0, 1, 1, 0, 0, 1, 0, 1}, "101100101"},
	} {
		b := New()
		for _, bit := range tc.bits {
			b.Push(bit)
		}
		if got, want := b.String(), tc.want; got != want {
			t.Errorf("%v: got %q, want %q", i, got, want)
		}
		if got, want := b.Len(), len(tc.bits); got != want {
			t.Errorf("%v: len got %v, want %v", i, got, want)
		}
	}
}

func TestPop(t *testing.T) {
	b := New()
	for _, bit := range []byte{1, 1, 0, 1} {
		b.Push(bit)
	}
	b.Pop()
	if got, want := b.String(), "110"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	b.Pop()
	b.Pop()
	b.Pop()
	if got, want := b.Len(), 0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSetFlip(t *testing.T) {
	b := New()
	for _, bit := range []byte{0, 0, 0, 0} {
		b.Push(bit)
	}
	b.Set(1, 1)
	if got, want := b.String(), "0100"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	b.Flip(1)
	b.Flip(2)
	if got, want := b.String(), "0010"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFromByte(t *testing.T) {
	b := FromByte(0b10110010)
	if got, want := b.String(), "10110010"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppend(t *testing.T) {
	for i, tc := range []struct {
		lhs, rhs string
	}{
		{"", "101"},
		{"101", ""},
		{"1", "1"},
		{"111", "000"},
		{"1010101", "1"},
		{"11001100", "11110000"},
		{"1", "11001100"},
		{"101", "1100110011001"},
		{"10110010101001011", "0011"},
	} {
		lhs, rhs := fromString(tc.lhs), fromString(tc.rhs)
		lhs.Append(rhs)
		if got, want := lhs.String(), tc.lhs+tc.rhs; got != want {
			t.Errorf("%v: got %q, want %q", i, got, want)
		}
	}
}

func fromString(s string) *Buffer {
	b := New()
	for _, c := range s {
		if c == '1' {
			b.Push(1)
		} else {
			b.Push(0)
		}
	}
	return b
}

func TestClone(t *testing.T) {
	a := fromString("1011")
	b := a.Clone()
	b.Push(1)
	if got, want := a.String(), "1011"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := b.String(), "10111"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
