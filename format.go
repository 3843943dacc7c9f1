// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gz

import (
	"bufio"
	"errors"
	"hash/crc32"
	"io"
	"strings"
	"time"
)

// Magic bytes and compression method of the gzip header.
const (
	magic1 = 0x1f
	magic2 = 0x8b

	// methodDeflate is the only compression method the format defines.
	methodDeflate = 8
)

// Flag bits of the FLG header byte.
const (
	flagText    = 1 << 0
	flagHdrCRC  = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4

	flagReserved = 0xe0
)

// Values for the XFL header byte set by the Writer.
const (
	xflBest = 2
	xflFast = 4
)

// OSUnknown marks the operating system as unknown in the gzip header.
const OSUnknown = 255

// headerLen is the length of the fixed part of the gzip header.
const headerLen = 10

// trailerLen is the length of the gzip trailer: CRC32 and size modulo 2^32,
// both little-endian.
const trailerLen = 8

// Errors returned for malformed gzip files.
var (
	// ErrBadMagic indicates that the file doesn't start with the two
	// gzip magic bytes.
	ErrBadMagic = errors.New("gz: invalid header magic")

	// ErrUnsupportedMethod indicates a compression method other than
	// DEFLATE.
	ErrUnsupportedMethod = errors.New("gz: unsupported compression method")

	// ErrHeader indicates an invalid gzip header.
	ErrHeader = errors.New("gz: invalid header")

	// ErrHeaderChecksum indicates that the optional header checksum
	// doesn't match the header bytes.
	ErrHeaderChecksum = errors.New("gz: header checksum mismatch")

	// ErrChecksum indicates that the trailer CRC32 doesn't match the
	// decompressed data. The data must not be trusted.
	ErrChecksum = errors.New("gz: checksum mismatch")

	// ErrSize indicates that the trailer size field doesn't match the
	// length of the decompressed data.
	ErrSize = errors.New("gz: uncompressed size mismatch")
)

// Header represents the metadata of one gzip member. Name and Comment must
// be representable in Latin-1 and must not contain the zero byte that
// terminates them on the wire.
type Header struct {
	Name    string
	Comment string
	Extra   []byte
	ModTime time.Time
	OS      byte
	Text    bool
}

// verify checks the header fields for values the format cannot represent.
func (h *Header) verify() error {
	if strings.IndexByte(h.Name, 0) >= 0 {
		return errors.New("gz: header name contains zero byte")
	}
	if strings.IndexByte(h.Comment, 0) >= 0 {
		return errors.New("gz: header comment contains zero byte")
	}
	if len(h.Extra) > 0xffff {
		return errors.New("gz: extra field too large")
	}
	return nil
}

// appendHeader encodes the header for the given compression level and
// appends it to p.
func appendHeader(p []byte, h *Header, level int) []byte {
	var flags byte
	if h.Text {
		flags |= flagText
	}
	if len(h.Extra) > 0 {
		flags |= flagExtra
	}
	if h.Name != "" {
		flags |= flagName
	}
	if h.Comment != "" {
		flags |= flagComment
	}

	var mtime uint32
	if !h.ModTime.IsZero() && h.ModTime.Unix() > 0 {
		mtime = uint32(h.ModTime.Unix())
	}

	var xfl byte
	switch level {
	case 9:
		xfl = xflBest
	case 1:
		xfl = xflFast
	}

	var b [4]byte
	p = append(p, magic1, magic2, methodDeflate, flags)
	putLE32(b[:], mtime)
	p = append(p, b[:]...)
	p = append(p, xfl, h.OS)

	if flags&flagExtra != 0 {
		putLE16(b[:2], uint16(len(h.Extra)))
		p = append(p, b[:2]...)
		p = append(p, h.Extra...)
	}
	if flags&flagName != 0 {
		p = append(p, h.Name...)
		p = append(p, 0)
	}
	if flags&flagComment != 0 {
		p = append(p, h.Comment...)
		p = append(p, 0)
	}
	return p
}

// readHeader reads and parses a gzip member header. At a clean member
// boundary io.EOF signals that no further member follows; any other
// truncation is reported as io.ErrUnexpectedEOF.
func readHeader(br *bufio.Reader, h *Header) error {
	p := make([]byte, headerLen)
	if _, err := io.ReadFull(br, p); err != nil {
		return err
	}
	if p[0] != magic1 || p[1] != magic2 {
		return ErrBadMagic
	}
	if p[2] != methodDeflate {
		return ErrUnsupportedMethod
	}
	flags := p[3]
	if flags&flagReserved != 0 {
		return ErrHeader
	}

	crc := crc32.NewIEEE()
	crc.Write(p)

	*h = Header{OS: p[9], Text: flags&flagText != 0}
	if mtime := le32(p[4:8]); mtime != 0 {
		h.ModTime = time.Unix(int64(mtime), 0)
	}

	readFull := func(q []byte) error {
		if _, err := io.ReadFull(br, q); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		crc.Write(q)
		return nil
	}
	readString := func() (s string, err error) {
		var sb strings.Builder
		for {
			c, err := br.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return "", err
			}
			crc.Write([]byte{c})
			if c == 0 {
				return sb.String(), nil
			}
			sb.WriteByte(c)
		}
	}

	if flags&flagExtra != 0 {
		q := make([]byte, 2)
		if err := readFull(q); err != nil {
			return err
		}
		h.Extra = make([]byte, le16(q))
		if err := readFull(h.Extra); err != nil {
			return err
		}
	}
	if flags&flagName != 0 {
		s, err := readString()
		if err != nil {
			return err
		}
		h.Name = s
	}
	if flags&flagComment != 0 {
		s, err := readString()
		if err != nil {
			return err
		}
		h.Comment = s
	}
	if flags&flagHdrCRC != 0 {
		sum := uint16(crc.Sum32())
		q := make([]byte, 2)
		if _, err := io.ReadFull(br, q); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		if le16(q) != sum {
			return ErrHeaderChecksum
		}
	}
	return nil
}
