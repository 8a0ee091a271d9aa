// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bytepacker/huffman/treeframe"
)

func inspectFile(ctx context.Context, name string) error {
	rd, _, readerCleanup, err := openFileOrURL(ctx, name)
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)

	var header [treeframe.HeaderSize]byte
	if _, err := io.ReadFull(rd, header[:]); err != nil {
		return fmt.Errorf("%v: failed to read tree frame header: %v", name, err)
	}
	expectedCRC, bodyLen := treeframe.ParseHeader(header)

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(rd, body); err != nil {
		return fmt.Errorf("%v: failed to read tree frame body: %v", name, err)
	}

	frame := make([]byte, treeframe.HeaderSize+len(body))
	copy(frame[0:4], header[0:4])
	binary.LittleEndian.PutUint32(frame[4:8], bodyLen)
	copy(frame[8:], body)

	fmt.Printf("=== %v ===\n", name)
	fmt.Printf("tree frame CRC       : %#08x\n", expectedCRC)
	fmt.Printf("tree body length     : %d bytes\n", bodyLen)
	if err := treeframe.Verify(frame); err != nil {
		fmt.Printf("tree frame checksum  : FAILED (%v)\n", err)
	} else {
		fmt.Printf("tree frame checksum  : OK\n")
	}
	return nil
}

func inspect(ctx context.Context, values interface{}, args []string) error {
	return inspectFile(ctx, args[0])
}
