// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "io"

// Reader decompresses a raw DEFLATE stream. It reads the compressed data
// from the wrapped reader bit by bit and reconstructs the original bytes
// using a 32 KiB sliding window. After the final block io.EOF is returned;
// bytes following the final block remain unread in the underlying reader as
// far as the internal buffering permits.
//
// A Reader must not be used concurrently; independent Readers are fully
// independent of each other.
type Reader struct {
	d      *blockDecoder
	toRead []byte
	err    error
}

// NewReader creates a Reader for the given DEFLATE stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{d: newBlockDecoder(r)}
}

// Reset makes the Reader ready to decompress a new stream. The window and
// all decoding state are discarded.
func (r *Reader) Reset(src io.Reader) {
	r.d.reset(src)
	r.toRead = nil
	r.err = nil
}

// Read provides the decompressed data. It returns io.EOF after the final
// block of the stream has been decoded and consumed.
func (r *Reader) Read(p []byte) (n int, err error) {
	for {
		if len(r.toRead) > 0 {
			k := copy(p[n:], r.toRead)
			r.toRead = r.toRead[k:]
			n += k
			if n == len(p) {
				return n, nil
			}
			continue
		}
		if r.err != nil {
			return n, r.err
		}
		if err = r.d.step(); err != nil {
			r.err = err
			continue
		}
		r.toRead = r.d.win.readFlush()
		if len(r.toRead) == 0 && r.d.done {
			r.err = io.EOF
		}
	}
}
