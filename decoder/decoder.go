// Package decoder implements the resumable state machine that turns
// an arbitrary sequence of byte chunks into decoded output, without
// ever requiring a chunk boundary to line up with a frame boundary.
// It mirrors the teacher's streaming scanner/reader split (scanner.go
// parses structure, reader.go drives it incrementally) but collapses
// both into a single push-based state machine, closer to the original
// implementation's tree::initialize_tree / tree::prepare pair.
package decoder

import (
	"encoding/binary"

	"github.com/bytepacker/huffman/crc32table"
	"github.com/bytepacker/huffman/huffmantree"
	"github.com/bytepacker/huffman/internal/herrors"
	"github.com/bytepacker/huffman/treeframe"
)

// Decoder turns Huffman-coded frames back into bytes, fed a chunk at a
// time through InitializeTree and Prepare.
type Decoder struct {
	headerBuf [treeframe.HeaderSize]byte
	headerCnt int
	bodyLen   int
	bodyBuf   []byte
	expectCRC uint32

	treeReady bool
	tree      *huffmantree.Tree

	blockHeaderBuf [8]byte
	blockHeaderCnt int
	expectBlockCRC uint32
	remaining      uint32
	runningCRC     uint32
	cursor         int32

	blockCount int
	streamCRC  uint32

	decodedBuf []byte
}

// New returns a Decoder ready to consume a stream's tree frame.
func New() *Decoder {
	return &Decoder{}
}

// InitializeTree feeds chunk into the tree-frame parser. It is
// idempotent once the tree has been fully parsed: further calls
// return (0, nil) immediately. It returns the number of bytes of chunk
// consumed, which is less than len(chunk) once the tree frame
// completes partway through it; the caller must pass the remainder to
// Prepare.
func (d *Decoder) InitializeTree(chunk []byte) (int, error) {
	if d.treeReady {
		return 0, nil
	}

	consumed := 0

	for d.headerCnt < treeframe.HeaderSize && consumed < len(chunk) {
		d.headerBuf[d.headerCnt] = chunk[consumed]
		d.headerCnt++
		consumed++
	}
	if d.headerCnt < treeframe.HeaderSize {
		return consumed, nil
	}
	if d.bodyBuf == nil {
		expectCRC, bodyLen := treeframe.ParseHeader(d.headerBuf)
		d.expectCRC = expectCRC
		d.bodyLen = int(bodyLen)
		if d.bodyLen == 0 {
			return consumed, herrors.Corrupted("tree frame declares an empty body")
		}
		d.bodyBuf = make([]byte, 0, d.bodyLen)
	}

	for len(d.bodyBuf) < d.bodyLen && consumed < len(chunk) {
		d.bodyBuf = append(d.bodyBuf, chunk[consumed])
		consumed++
	}
	if len(d.bodyBuf) < d.bodyLen {
		return consumed, nil
	}

	frame := make([]byte, treeframe.HeaderSize+d.bodyLen)
	copy(frame[0:4], d.headerBuf[0:4])
	binary.LittleEndian.PutUint32(frame[4:8], uint32(d.bodyLen))
	copy(frame[8:], d.bodyBuf)
	if err := treeframe.Verify(frame); err != nil {
		return consumed, err
	}

	tree, err := huffmantree.Restore(d.bodyBuf)
	if err != nil {
		return consumed, err
	}
	d.tree = tree
	d.cursor = tree.Root()
	d.treeReady = true
	return consumed, nil
}

// Prepare feeds chunk into the block-frame parser, appending any
// symbols it decodes to the pending output buffer drained by Decode.
// It must only be called once InitializeTree has fully consumed the
// tree frame.
func (d *Decoder) Prepare(chunk []byte) error {
	i := 0
	for i < len(chunk) {
		if d.blockHeaderCnt < 8 {
			d.blockHeaderBuf[d.blockHeaderCnt] = chunk[i]
			d.blockHeaderCnt++
			i++
			if d.blockHeaderCnt < 8 {
				continue
			}
			d.expectBlockCRC = binary.LittleEndian.Uint32(d.blockHeaderBuf[0:4])
			d.remaining = binary.LittleEndian.Uint32(d.blockHeaderBuf[4:8])
			d.runningCRC = crc32table.Init
			d.runningCRC = foldHeaderCount(d.runningCRC, d.blockHeaderBuf[4:8])
			d.cursor = d.tree.Root()
			if d.remaining == 0 {
				if err := d.finishBlock(); err != nil {
					return err
				}
			}
			continue
		}

		b := chunk[i]
		i++
		d.runningCRC = crc32table.FoldByte(d.runningCRC, b)

		for bit := 7; bit >= 0; bit-- {
			if d.remaining == 0 {
				break
			}
			next, err := d.tree.Step(d.cursor, (b>>uint(bit))&1)
			if err != nil {
				return err
			}
			d.cursor = next
			if d.tree.IsLeaf(d.cursor) {
				d.decodedBuf = append(d.decodedBuf, d.tree.LeafByte(d.cursor))
				d.cursor = d.tree.Root()
				d.remaining--
				if d.remaining == 0 {
					if err := d.finishBlock(); err != nil {
						return err
					}
					break
				}
			}
		}
	}
	return nil
}

func foldHeaderCount(crc uint32, countBytes []byte) uint32 {
	for _, b := range countBytes {
		crc = crc32table.FoldByte(crc, b)
	}
	return crc
}

func (d *Decoder) finishBlock() error {
	if (d.runningCRC ^ crc32table.Init) != d.expectBlockCRC {
		return herrors.Corrupted("block checksum mismatch")
	}
	d.streamCRC = crc32table.Combine(d.streamCRC, d.expectBlockCRC)
	d.blockCount++
	d.blockHeaderCnt = 0
	d.expectBlockCRC = 0
	return nil
}

// BlockCount reports how many block frames have been fully verified
// and decoded so far.
func (d *Decoder) BlockCount() int {
	return d.blockCount
}

// StreamCRC reports the running whole-stream checksum, folded one
// block CRC at a time via crc32table.Combine as each block frame
// verifies, mirroring the teacher's Decompressor.streamCRC.
func (d *Decoder) StreamCRC() uint32 {
	return d.streamCRC
}

// Decode copies up to len(out) pending decoded bytes into out and
// reports how many bytes were written.
func (d *Decoder) Decode(out []byte) int {
	n := copy(out, d.decodedBuf)
	d.decodedBuf = d.decodedBuf[n:]
	return n
}

// DecodeElems behaves like Decode but only releases whole multiples of
// elemSize bytes, holding back any partial trailing element for the
// next call.
func (d *Decoder) DecodeElems(out []byte, elemSize int) int {
	avail := len(d.decodedBuf) - (len(d.decodedBuf) % elemSize)
	outCap := len(out) - (len(out) % elemSize)
	if avail > outCap {
		avail = outCap
	}
	n := copy(out[:avail], d.decodedBuf)
	d.decodedBuf = d.decodedBuf[n:]
	return n
}

// CharsLeft reports how many decoded bytes are pending, not yet drained
// by Decode.
func (d *Decoder) CharsLeft() int {
	return len(d.decodedBuf)
}

// Clear discards any pending decoded bytes without touching tree or
// block parsing state.
func (d *Decoder) Clear() {
	d.decodedBuf = d.decodedBuf[:0]
}

// ReadFinishedSuccess reports whether the stream ended in a valid
// state: the tree frame is complete and no block frame is left
// partially parsed.
func (d *Decoder) ReadFinishedSuccess() bool {
	return d.treeReady && d.blockHeaderCnt == 0 && d.remaining == 0
}

// FreeTree resets the decoder to its zero state.
func (d *Decoder) FreeTree() {
	*d = Decoder{}
}
