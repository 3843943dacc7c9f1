// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
)

// decodeStream decodes a complete DEFLATE stream in one go.
func decodeStream(t *testing.T, p []byte) []byte {
	var out bytes.Buffer
	if _, err := io.Copy(&out, NewReader(bytes.NewReader(p))); err != nil {
		t.Fatalf("decode error %s", err)
	}
	return out.Bytes()
}

func TestWriteBlockStoredChoice(t *testing.T) {
	rnd := rand.New(rand.NewSource(21))
	raw := make([]byte, 4096)
	rnd.Read(raw)
	tokens := make([]token, len(raw))
	for i, c := range raw {
		tokens[i] = literalToken(c)
	}

	buf := new(bytes.Buffer)
	bw := newBitWriter(buf)
	b := newBlockWriter(bw)
	b.writeBlock(tokens, raw, true)
	if err := bw.flush(); err != nil {
		t.Fatalf("flush error %s", err)
	}

	if btype := buf.Bytes()[0] >> 1 & 3; btype != blockStored {
		t.Fatalf("block type %d for random data; want %d",
			btype, blockStored)
	}
	if buf.Len() != len(raw)+5 {
		t.Fatalf("stored block has %d bytes; want %d",
			buf.Len(), len(raw)+5)
	}
	if !bytes.Equal(decodeStream(t, buf.Bytes()), raw) {
		t.Fatal("decoded block differs from input")
	}
}

func TestWriteBlockDynamicChoice(t *testing.T) {
	// skewed literals compress well below 8 bits per symbol
	raw := bytes.Repeat([]byte("aaaaab"), 1000)
	tokens := make([]token, len(raw))
	for i, c := range raw {
		tokens[i] = literalToken(c)
	}

	buf := new(bytes.Buffer)
	bw := newBitWriter(buf)
	b := newBlockWriter(bw)
	b.writeBlock(tokens, raw, true)
	if err := bw.flush(); err != nil {
		t.Fatalf("flush error %s", err)
	}

	if btype := buf.Bytes()[0] >> 1 & 3; btype != blockDynamic {
		t.Fatalf("block type %d for skewed data; want %d",
			btype, blockDynamic)
	}
	if buf.Len() >= len(raw)/2 {
		t.Fatalf("skewed data compressed to %d bytes from %d",
			buf.Len(), len(raw))
	}
	if !bytes.Equal(decodeStream(t, buf.Bytes()), raw) {
		t.Fatal("decoded block differs from input")
	}
}

func TestWriteBlockWithMatches(t *testing.T) {
	raw := []byte("abcabcabcabcabcabc")
	tokens := []token{
		literalToken('a'), literalToken('b'), literalToken('c'),
		matchToken(15, 3),
	}

	buf := new(bytes.Buffer)
	bw := newBitWriter(buf)
	b := newBlockWriter(bw)
	b.writeBlock(tokens, raw, true)
	if err := bw.flush(); err != nil {
		t.Fatalf("flush error %s", err)
	}
	if !bytes.Equal(decodeStream(t, buf.Bytes()), raw) {
		t.Fatal("decoded block differs from input")
	}
}

func TestBuildCLSyms(t *testing.T) {
	bw := newBitWriter(io.Discard)
	b := newBlockWriter(bw)

	lengths := make([]uint8, 0, 300)
	lengths = append(lengths, 8, 8, 8, 8, 8, 8, 8, 8) // run of 8 eights
	lengths = append(lengths, make([]uint8, 150)...)  // long zero run
	lengths = append(lengths, 5, 0, 0, 7)             // short zero run
	b.buildCLSyms(lengths)

	// expand the meta-symbols again
	var got []uint8
	for _, s := range b.clSyms {
		switch {
		case s.sym < 16:
			got = append(got, s.sym)
		case s.sym == 16:
			v := got[len(got)-1]
			for n := int(s.extra) + 3; n > 0; n-- {
				got = append(got, v)
			}
		case s.sym == 17:
			for n := int(s.extra) + 3; n > 0; n-- {
				got = append(got, 0)
			}
		default:
			for n := int(s.extra) + 11; n > 0; n-- {
				got = append(got, 0)
			}
		}
	}
	if !bytes.Equal(got, lengths) {
		t.Fatalf("expanded meta-symbols %v; want %v", got, lengths)
	}

	// the run of eight 8s must use repeat code 16
	found16, found18 := false, false
	for _, s := range b.clSyms {
		if s.sym == 16 {
			found16 = true
		}
		if s.sym == 18 {
			found18 = true
		}
	}
	if !found16 {
		t.Error("no repeat code 16 emitted")
	}
	if !found18 {
		t.Error("no zero repeat code 18 emitted")
	}
}

func TestDynamicHeaderRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(31))

	for i := 0; i < 50; i++ {
		tokens := make([]token, 500)
		for j := range tokens {
			if rnd.Intn(4) == 0 {
				length := uint32(minMatch + rnd.Intn(maxMatch-minMatch+1))
				dist := uint32(1 + rnd.Intn(winSize))
				tokens[j] = matchToken(length, dist)
			} else {
				tokens[j] = literalToken(byte(rnd.Intn(30)))
			}
		}
		buf := new(bytes.Buffer)
		bw := newBitWriter(buf)
		b := newBlockWriter(bw)
		b.countFreqs(tokens)
		litLenLens := buildLengths(b.litLenFreq[:], maxCodeLen)
		distLens := buildLengths(b.distFreq[:], maxCodeLen)
		hdr := b.makeDynamicHeader(litLenLens, distLens)
		b.writeDynamicHeader(hdr, litLenLens, distLens)
		if err := bw.flush(); err != nil {
			t.Fatalf("flush error %s", err)
		}

		d := newBlockDecoder(bytes.NewReader(buf.Bytes()))
		if err := d.readDynamicHeader(); err != nil {
			t.Fatalf("readDynamicHeader error %s", err)
		}
		if !bytes.Equal(d.lengths[:hdr.numLit], litLenLens[:hdr.numLit]) {
			t.Fatal("decoded literal/length code lengths differ")
		}
		if !bytes.Equal(d.lengths[hdr.numLit:hdr.numLit+hdr.numDist],
			distLens[:hdr.numDist]) {
			t.Fatal("decoded distance code lengths differ")
		}
	}
}

func TestWindowWriteCopy(t *testing.T) {
	var w window
	w.init()
	for _, c := range []byte("abc") {
		w.writeByte(c)
	}
	// overlapping copy expands the last two bytes
	if n := w.writeCopy(2, 6); n != 6 {
		t.Fatalf("writeCopy returned %d; want 6", n)
	}
	p := w.readFlush()
	want := []byte("abcbcbcbc")
	if !bytes.Equal(p, want) {
		t.Fatalf("window contains %q; want %q", p, want)
	}
}
