// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"errors"
	"fmt"
	"io"
)

// Compression levels supported by the Writer. NoCompression stores the data
// in stored blocks; level 9 spends the most time searching for matches.
// Since the zero value of WriterConfig.Level selects the default level,
// NoCompression is represented by -1.
const (
	NoCompression      = -1
	BestSpeed          = 1
	DefaultCompression = 6
	BestCompression    = 9
)

// blockSize is the number of input bytes tokenized per block. The size must
// stay below 65536 so that the stored fallback can always hold a block, even
// with the match overshoot of up to maxMatch bytes at the block boundary.
const blockSize = 1 << 15

// WriterConfig holds the parameters for a Writer.
type WriterConfig struct {
	// Level is the compression level 0 to 9 (default 6).
	Level int
}

// ApplyDefaults replaces zero values by their defaults.
func (c *WriterConfig) ApplyDefaults() {
	if c.Level == 0 {
		c.Level = DefaultCompression
	}
}

// Verify checks the configuration. Zero values are replaced by defaults
// first.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return errors.New("flate: writer configuration is nil")
	}
	c.ApplyDefaults()
	if c.Level == NoCompression {
		return nil
	}
	if !(BestSpeed <= c.Level && c.Level <= BestCompression) {
		return fmt.Errorf("flate: compression level %d out of range",
			c.Level)
	}
	return nil
}

// Writer compresses data into a raw DEFLATE stream. Data is tokenized and
// encoded block by block; Close terminates the stream with a final block.
// The Writer buffers at most a few window sizes of data.
type Writer struct {
	bw     *bitWriter
	blw    *blockWriter
	m      *matcher
	level  int
	tokens []token
	err    error

	// level 0 buffers raw bytes only
	stored []byte
}

// NewWriter creates a Writer with the default configuration.
func NewWriter(w io.Writer) *Writer {
	f, err := NewWriterConfig(w, WriterConfig{})
	if err != nil {
		panic(err)
	}
	return f
}

// NewWriterConfig creates a Writer with the given configuration.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	bw := newBitWriter(w)
	f := &Writer{
		bw:    bw,
		blw:   newBlockWriter(bw),
		level: cfg.Level,
	}
	if f.level != NoCompression {
		f.m = newMatcher(f.level)
	}
	return f, nil
}

// Reset discards the Writer state and starts a new stream writing to w.
func (f *Writer) Reset(w io.Writer) {
	f.bw.reset(w)
	f.tokens = f.tokens[:0]
	f.stored = f.stored[:0]
	f.err = nil
	if f.m != nil {
		f.m.reset()
	}
}

var errWriterClosed = errors.New("flate: writer is closed")

// Write compresses the data of p. The data is buffered until a full block
// can be emitted; Close flushes everything.
func (f *Writer) Write(p []byte) (n int, err error) {
	if f.err != nil {
		return 0, f.err
	}
	n = len(p)
	if f.level == NoCompression {
		f.stored = append(f.stored, p...)
		for len(f.stored) >= maxStored {
			f.blw.writeStored(f.stored[:maxStored], false)
			f.stored = f.stored[:copy(f.stored, f.stored[maxStored:])]
			if f.err = f.bw.err; f.err != nil {
				return 0, f.err
			}
		}
		return n, nil
	}

	m := f.m
	m.buf = append(m.buf, p...)
	// Keep maxMatch bytes of lookahead beyond the block end so matches
	// at the boundary are not cut short.
	for len(m.buf)-m.scanned >= blockSize+maxMatch {
		f.emitBlock(m.scanned+blockSize, false)
		if f.err != nil {
			return 0, f.err
		}
	}
	return n, nil
}

// maxStored is the byte capacity of a single stored block.
const maxStored = 1<<16 - 1

// emitBlock tokenizes the input up to end and writes one block.
func (f *Writer) emitBlock(end int, final bool) {
	m := f.m
	start := m.scanned
	f.tokens = m.scan(f.tokens[:0], end)
	f.blw.writeBlock(f.tokens, m.buf[start:m.scanned], final)
	m.slide()
	f.err = f.bw.err
}

// Close terminates the DEFLATE stream with a final block and flushes all
// pending bits. It does not close the underlying writer.
func (f *Writer) Close() error {
	if f.err != nil {
		return f.err
	}
	if f.level == NoCompression {
		f.blw.writeStored(f.stored, true)
		f.stored = f.stored[:0]
	} else {
		m := f.m
		for len(m.buf)-m.scanned > blockSize+maxMatch {
			f.emitBlock(m.scanned+blockSize, false)
			if f.err != nil {
				return f.err
			}
		}
		// final block; empty input yields an empty fixed block
		f.emitBlock(len(m.buf), true)
	}
	if f.err == nil {
		f.err = f.bw.flush()
	}
	if f.err != nil {
		return f.err
	}
	f.err = errWriterClosed
	return nil
}
