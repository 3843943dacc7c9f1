// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "errors"

// Errors reported while decoding a DEFLATE stream. All of them are terminal:
// once a reader returned one of those errors it will not produce more data.
var (
	// ErrUnexpectedEOF indicates that the stream ended in the middle of a
	// block or a bit field.
	ErrUnexpectedEOF = errors.New("flate: unexpected end of stream")

	// ErrCorrupt indicates corrupted stream data. Specific corruptions
	// wrap this error and can be tested with errors.Is.
	ErrCorrupt = errors.New("flate: corrupt stream")

	// ErrInvalidCode indicates a bit sequence that doesn't resolve to a
	// symbol of the current Huffman table.
	ErrInvalidCode = errors.New("flate: invalid huffman code")

	// ErrBlockType indicates the reserved block type 3.
	ErrBlockType = errors.New("flate: invalid block type")
)

// corruptError creates an error for a specific stream corruption. The
// returned error wraps ErrCorrupt.
func corruptError(reason string) error {
	return &streamError{reason}
}

type streamError struct {
	reason string
}

func (e *streamError) Error() string {
	return "flate: corrupt stream: " + e.reason
}

func (e *streamError) Unwrap() error { return ErrCorrupt }
