// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestBitRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	type field struct {
		v uint32
		n uint
	}
	fields := make([]field, 1000)
	for i := range fields {
		n := uint(1 + rnd.Intn(24))
		fields[i] = field{v: rnd.Uint32() & (1<<n - 1), n: n}
	}

	buf := new(bytes.Buffer)
	bw := newBitWriter(buf)
	for _, f := range fields {
		bw.writeBits(f.v, f.n)
	}
	if err := bw.flush(); err != nil {
		t.Fatalf("flush error %s", err)
	}

	br := newBitReader(buf)
	for i, f := range fields {
		v, err := br.readBits(f.n)
		if err != nil {
			t.Fatalf("readBits(%d) #%d error %s", f.n, i, err)
		}
		if v != f.v {
			t.Fatalf("readBits(%d) #%d returned %#x; want %#x",
				f.n, i, v, f.v)
		}
	}
}

func TestBitAlign(t *testing.T) {
	buf := new(bytes.Buffer)
	bw := newBitWriter(buf)
	bw.writeBits(5, 3)
	bw.alignByte()
	bw.writeBytes([]byte{0xab, 0xcd})
	if err := bw.flush(); err != nil {
		t.Fatalf("flush error %s", err)
	}
	want := []byte{0x05, 0xab, 0xcd}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("writer produced %x; want %x", buf.Bytes(), want)
	}

	br := newBitReader(bytes.NewReader(want))
	v, err := br.readBits(3)
	if err != nil {
		t.Fatalf("readBits(3) error %s", err)
	}
	if v != 5 {
		t.Fatalf("readBits(3) returned %d; want %d", v, 5)
	}
	br.alignByte()
	p := make([]byte, 2)
	if err = br.readBytes(p); err != nil {
		t.Fatalf("readBytes error %s", err)
	}
	if !bytes.Equal(p, []byte{0xab, 0xcd}) {
		t.Fatalf("readBytes returned %x; want %x", p, []byte{0xab, 0xcd})
	}
}

func TestBitReaderExhausted(t *testing.T) {
	br := newBitReader(bytes.NewReader([]byte{0xff}))
	if _, err := br.readBits(8); err != nil {
		t.Fatalf("readBits(8) error %s", err)
	}
	if _, err := br.readBits(1); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("readBits(1) returned error %v; want %v",
			err, ErrUnexpectedEOF)
	}
}
