// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "io"

// bitWriter writes bit fields to a byte stream in the LSB-first order of the
// DEFLATE format. Write errors are sticky; they are checked once per block
// by the callers instead of after every field.
type bitWriter struct {
	w     io.Writer
	cache uint64
	n     uint // number of pending bits in cache
	buf   []byte
	err   error
}

// newBitWriter creates a bitWriter writing to w.
func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w, buf: make([]byte, 0, 512)}
}

// reset reinitializes the bit writer for a new output stream.
func (b *bitWriter) reset(w io.Writer) {
	b.w = w
	b.cache = 0
	b.n = 0
	b.buf = b.buf[:0]
	b.err = nil
}

// writeBits appends the n low bits of v to the stream, n <= 48.
func (b *bitWriter) writeBits(v uint32, n uint) {
	b.cache |= uint64(v&(1<<n-1)) << b.n
	b.n += n
	for b.n >= 8 {
		b.buf = append(b.buf, byte(b.cache))
		b.cache >>= 8
		b.n -= 8
		if len(b.buf) >= 480 {
			b.flushBuf()
		}
	}
}

// alignByte pads the current byte with zero bits.
func (b *bitWriter) alignByte() {
	if b.n > 0 {
		b.buf = append(b.buf, byte(b.cache))
		b.cache = 0
		b.n = 0
	}
}

// writeBytes appends raw bytes. The bit cursor must be byte-aligned.
func (b *bitWriter) writeBytes(p []byte) {
	if b.n != 0 {
		panic("flate: bit writer not byte-aligned")
	}
	b.flushBuf()
	if b.err != nil {
		return
	}
	_, b.err = b.w.Write(p)
}

// flushBuf writes the buffered whole bytes to the underlying writer.
func (b *bitWriter) flushBuf() {
	if b.err != nil || len(b.buf) == 0 {
		b.buf = b.buf[:0]
		return
	}
	_, b.err = b.w.Write(b.buf)
	b.buf = b.buf[:0]
}

// flush pads to a byte boundary and forwards everything buffered.
func (b *bitWriter) flush() error {
	b.alignByte()
	b.flushBuf()
	return b.err
}
