// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gz

import (
	"bufio"
	"hash"
	"hash/crc32"
	"io"

	"github.com/ulikunitz/gz/flate"
)

// Reader decompresses gzip files. The exported Header describes the member
// currently decompressed; it is updated whenever the Reader advances to the
// next member of a multi-member file.
//
// The CRC32 checksum and the size field of the member trailer are verified
// against the decompressed data. Data returned before a verification failure
// must be considered untrustworthy.
type Reader struct {
	Header

	br          *bufio.Reader
	fr          *flate.Reader
	crc         hash.Hash32
	size        uint32
	multistream bool
	err         error
}

// NewReader creates a Reader and reads the first member header. The header
// of the file is available in the Header field afterwards.
func NewReader(r io.Reader) (*Reader, error) {
	z := &Reader{
		crc:         crc32.NewIEEE(),
		multistream: true,
	}
	if err := z.start(r); err != nil {
		return nil, err
	}
	return z, nil
}

// Reset discards the state of the Reader and reads the first member header
// from a new gzip file.
func (z *Reader) Reset(r io.Reader) error {
	z.multistream = true
	return z.start(r)
}

// Multistream controls whether the Reader decodes gzip members following the
// first one. By default the Reader returns the concatenation of all members,
// which matches the behavior of the gzip program. With multistream disabled
// the Reader stops with io.EOF at the end of the current member; Reset or
// NextMember continue with the remaining data.
func (z *Reader) Multistream(ok bool) { z.multistream = ok }

// start initializes the Reader for the underlying reader r.
func (z *Reader) start(r io.Reader) error {
	if br, ok := r.(*bufio.Reader); ok {
		z.br = br
	} else {
		z.br = bufio.NewReader(r)
	}
	if z.fr == nil {
		z.fr = flate.NewReader(z.br)
	} else {
		z.fr.Reset(z.br)
	}
	z.crc.Reset()
	z.size = 0
	z.err = nil
	return readHeader(z.br, &z.Header)
}

// NextMember skips to the next member of a multi-member file. It is intended
// to be used with disabled multistream mode and returns io.EOF if no further
// member exists.
func (z *Reader) NextMember() error {
	if z.err != io.EOF {
		// drain the current member
		if _, err := io.Copy(io.Discard, z); err != nil {
			return err
		}
	}
	z.fr.Reset(z.br)
	z.crc.Reset()
	z.size = 0
	z.err = nil
	return readHeader(z.br, &z.Header)
}

// readTrailer verifies the 8-byte member trailer against the decompressed
// data.
func (z *Reader) readTrailer() error {
	p := make([]byte, trailerLen)
	if _, err := io.ReadFull(z.br, p); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if le32(p[:4]) != z.crc.Sum32() {
		return ErrChecksum
	}
	if le32(p[4:]) != z.size {
		return ErrSize
	}
	return nil
}

// Read returns decompressed data. After the last member has been consumed
// and verified it returns io.EOF.
func (z *Reader) Read(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	if len(p) == 0 {
		return 0, nil
	}
	for n == 0 {
		n, err = z.fr.Read(p)
		z.crc.Write(p[:n])
		z.size += uint32(n)
		if err == nil {
			continue
		}
		if err != io.EOF {
			z.err = err
			return n, err
		}
		// member complete; verify the trailer
		if err = z.readTrailer(); err != nil {
			z.err = err
			return n, err
		}
		if !z.multistream {
			z.err = io.EOF
			return n, io.EOF
		}
		// another member?
		err = readHeader(z.br, &z.Header)
		if err != nil {
			if err == io.EOF {
				z.err = io.EOF
			} else {
				z.err = err
			}
			return n, z.err
		}
		z.fr.Reset(z.br)
		z.crc.Reset()
		z.size = 0
		if n > 0 {
			return n, nil
		}
	}
	return n, nil
}
