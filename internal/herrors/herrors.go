// Package herrors holds the error types shared by the codec's internal
// packages. It exists separately from the root huffman package so that
// huffmantree, treeframe and decoder can return these errors without
// importing the façade package that re-exports them.
package herrors

import "errors"

// Corrupted reports that a stream failed a structural or checksum check.
// It follows the same named-string-error idiom the rest of the codec's
// ancestry uses for structural failures, rather than wrapping with fmt.Errorf.
type Corrupted string

func (e Corrupted) Error() string {
	return "huffman: corrupted stream: " + string(e)
}

// ErrTruncated is returned when a stream ends before a decoder has
// consumed a complete tree frame and all of its block frames.
var ErrTruncated = errors.New("huffman: truncated stream")
