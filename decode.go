package huffman

import "github.com/bytepacker/huffman/decoder"

// Decoder turns a stream's bytes back into the original input, fed a
// chunk at a time. It is resumable across arbitrary chunk boundaries:
// callers do not need to align their reads with frame boundaries.
type Decoder = decoder.Decoder

// NewDecoder returns a Decoder ready to consume a stream's tree frame.
func NewDecoder() *Decoder {
	return decoder.New()
}
