// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"bufio"
	"io"
)

// bitReader provides bit-level reads from a byte stream. DEFLATE packs bit
// fields starting at the least significant bit of each byte, so the reader
// keeps an accumulator whose low bits are the next bits of the stream.
type bitReader struct {
	r     io.ByteReader
	cache uint32
	n     uint // number of valid bits in cache
}

// newBitReader creates a bitReader for the reader r. If r doesn't support
// byte-level reads it will be wrapped with a bufio.Reader.
func newBitReader(r io.Reader) *bitReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &bitReader{r: br}
}

// reset reinitializes the bit reader for a new input stream.
func (b *bitReader) reset(r io.Reader) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	b.r = br
	b.cache = 0
	b.n = 0
}

// fill ensures that at least n bits are buffered. It reports ErrUnexpectedEOF
// if the underlying stream ends too early.
func (b *bitReader) fill(n uint) error {
	for b.n < n {
		c, err := b.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			return err
		}
		b.cache |= uint32(c) << b.n
		b.n += 8
	}
	return nil
}

// readBits consumes the next n bits of the stream, with n <= 24. The first
// bit of the stream becomes the least significant bit of the result.
func (b *bitReader) readBits(n uint) (v uint32, err error) {
	if err = b.fill(n); err != nil {
		return 0, err
	}
	v = b.cache & (1<<n - 1)
	b.cache >>= n
	b.n -= n
	return v, nil
}

// readBit consumes a single bit.
func (b *bitReader) readBit() (bit uint32, err error) {
	return b.readBits(1)
}

// alignByte discards the bits remaining in the current byte. Stored blocks
// and the gzip trailer start at a byte boundary.
func (b *bitReader) alignByte() {
	k := b.n & 7
	b.cache >>= k
	b.n -= k
}

// readByte returns the next byte of the stream. The bit cursor must be
// byte-aligned.
func (b *bitReader) readByte() (c byte, err error) {
	if b.n&7 != 0 {
		panic("flate: bit reader not byte-aligned")
	}
	if b.n == 0 {
		c, err = b.r.ReadByte()
		if err == io.EOF {
			err = ErrUnexpectedEOF
		}
		return c, err
	}
	c = byte(b.cache)
	b.cache >>= 8
	b.n -= 8
	return c, nil
}

// readBytes fills p with stream bytes. The bit cursor must be byte-aligned.
func (b *bitReader) readBytes(p []byte) error {
	for i := range p {
		c, err := b.readByte()
		if err != nil {
			return err
		}
		p[i] = c
	}
	return nil
}
