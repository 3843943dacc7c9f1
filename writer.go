// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gz

import (
	"errors"
	"hash"
	"hash/crc32"
	"io"

	"github.com/ulikunitz/gz/flate"
)

// WriterConfig describes the parameters for a gzip Writer.
type WriterConfig struct {
	// Header fields written to the member header. A zero OS field is
	// replaced by OSUnknown; a zero ModTime writes a zero timestamp,
	// which keeps the output deterministic.
	Header

	// Level is the compression level. The levels 1 to 9 of the flate
	// package are supported; flate.NoCompression selects stored blocks.
	// The zero value selects flate.DefaultCompression.
	Level int
}

// ApplyDefaults replaces zero values by their defaults.
func (c *WriterConfig) ApplyDefaults() {
	if c.Level == 0 {
		c.Level = flate.DefaultCompression
	}
	if c.OS == 0 {
		c.OS = OSUnknown
	}
}

// Verify checks the configuration. Zero values are replaced by default
// values first.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return errors.New("gz: writer configuration is nil")
	}
	c.ApplyDefaults()
	fc := flate.WriterConfig{Level: c.Level}
	if err := fc.Verify(); err != nil {
		return err
	}
	return c.Header.verify()
}

// Writer compresses data into a gzip member. Close must be called to write
// the trailer; it doesn't close the underlying writer.
type Writer struct {
	w      io.Writer
	fw     *flate.Writer
	cfg    WriterConfig
	crc    hash.Hash32
	size   uint32
	err    error
	closed bool
}

// NewWriter creates a Writer with default parameters. The header contains
// neither a name nor a timestamp.
func NewWriter(w io.Writer) *Writer {
	z, err := NewWriterConfig(w, WriterConfig{})
	if err != nil {
		panic(err)
	}
	return z
}

// NewWriterConfig creates a Writer for the given configuration. The member
// header is written immediately.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	z := &Writer{
		w:   w,
		cfg: cfg,
		crc: crc32.NewIEEE(),
	}
	var err error
	if z.fw, err = flate.NewWriterConfig(w,
		flate.WriterConfig{Level: cfg.Level}); err != nil {
		return nil, err
	}
	if err = z.writeHeader(); err != nil {
		return nil, err
	}
	return z, nil
}

// Reset discards the Writer state and writes the header of a new gzip
// member to w.
func (z *Writer) Reset(w io.Writer) error {
	z.w = w
	z.fw.Reset(w)
	z.crc.Reset()
	z.size = 0
	z.err = nil
	z.closed = false
	return z.writeHeader()
}

// ResetConfig resets the Writer like Reset but replaces the configuration.
// The level must stay unchanged.
func (z *Writer) ResetConfig(w io.Writer, cfg WriterConfig) error {
	if err := cfg.Verify(); err != nil {
		return err
	}
	if cfg.Level != z.cfg.Level {
		return errors.New("gz: ResetConfig cannot change the level")
	}
	z.cfg = cfg
	return z.Reset(w)
}

func (z *Writer) writeHeader() error {
	p := appendHeader(make([]byte, 0, headerLen), &z.cfg.Header,
		z.cfg.Level)
	_, err := z.w.Write(p)
	z.err = err
	return err
}

// Write compresses the data of p.
func (z *Writer) Write(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	if z.closed {
		return 0, errors.New("gz: writer is closed")
	}
	n, err = z.fw.Write(p)
	z.crc.Write(p[:n])
	z.size += uint32(n)
	z.err = err
	return n, err
}

// Close terminates the DEFLATE stream and writes the gzip trailer. The
// underlying writer is not closed.
func (z *Writer) Close() error {
	if z.err != nil {
		return z.err
	}
	if z.closed {
		return errors.New("gz: writer is closed")
	}
	z.closed = true
	if err := z.fw.Close(); err != nil {
		z.err = err
		return err
	}
	var p [trailerLen]byte
	putLE32(p[:4], z.crc.Sum32())
	putLE32(p[4:], z.size)
	if _, err := z.w.Write(p[:]); err != nil {
		z.err = err
		return err
	}
	return nil
}
