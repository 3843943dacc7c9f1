// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/ulikunitz/gz/internal/randtxt"
)

// expandTokens reconstructs the byte stream a token sequence describes.
func expandTokens(t *testing.T, tokens []token) []byte {
	return appendExpanded(t, nil, tokens)
}

func TestFindMatch(t *testing.T) {
	m := newMatcher(DefaultCompression)
	m.buf = []byte("abcdefghij_abcdefgh")
	length, dist := m.findMatch(11, 0)
	if length != 8 || dist != 11 {
		t.Fatalf("findMatch returned length %d, dist %d;"+
			" want length 8, dist 11", length, dist)
	}
}

func TestFindMatchSmallestDistance(t *testing.T) {
	// two candidates of equal length; the closer one must win
	m := newMatcher(DefaultCompression)
	m.buf = []byte("abcdX___abcdY___abcdZ")
	length, dist := m.findMatch(16, 0)
	if length != 4 {
		t.Fatalf("findMatch returned length %d; want 4", length)
	}
	if dist != 8 {
		t.Fatalf("findMatch returned dist %d; want 8", dist)
	}
}

func TestFindMatchTooShort(t *testing.T) {
	m := newMatcher(DefaultCompression)
	m.buf = []byte("ab_ab")
	if length, _ := m.findMatch(3, 0); length != 0 {
		t.Fatalf("findMatch returned length %d; want 0", length)
	}
}

func TestScanRoundTrip(t *testing.T) {
	var data bytes.Buffer
	io.CopyN(&data, randtxt.NewReader(rand.NewSource(17)), 50000)

	for level := BestSpeed; level <= BestCompression; level++ {
		m := newMatcher(level)
		m.buf = append(m.buf[:0], data.Bytes()...)
		tokens := m.scan(nil, len(m.buf))
		if m.scanned != len(m.buf) {
			t.Fatalf("level %d: scanned %d bytes; want %d",
				level, m.scanned, len(m.buf))
		}
		p := expandTokens(t, tokens)
		if !bytes.Equal(p, data.Bytes()) {
			t.Fatalf("level %d: expanded tokens differ from input",
				level)
		}
		if len(tokens) >= data.Len() {
			t.Errorf("level %d: %d tokens for %d input bytes;"+
				" no matches found", level, len(tokens),
				data.Len())
		}
	}
}

func TestScanLongRun(t *testing.T) {
	m := newMatcher(DefaultCompression)
	m.buf = bytes.Repeat([]byte{'a'}, 1000)
	tokens := m.scan(nil, len(m.buf))
	p := expandTokens(t, tokens)
	if !bytes.Equal(p, m.buf) {
		t.Fatal("expanded tokens differ from input")
	}
	// 1 literal plus a few maximum length matches
	if len(tokens) > 1+(1000-1+maxMatch-1)/maxMatch+1 {
		t.Fatalf("run of 1000 bytes produced %d tokens", len(tokens))
	}
}

func TestSlide(t *testing.T) {
	rnd := rand.New(rand.NewSource(23))
	var data bytes.Buffer
	io.CopyN(&data, randtxt.NewReader(rnd), 5*winSize)

	m := newMatcher(DefaultCompression)
	var tokens []token
	var out []byte
	p := data.Bytes()
	for len(p) > 0 {
		n := blockSize
		if n > len(p) {
			n = len(p)
		}
		m.buf = append(m.buf, p[:n]...)
		p = p[n:]
		end := len(m.buf)
		if len(p) > 0 && end > m.scanned+blockSize {
			end = m.scanned + blockSize
		}
		tokens = m.scan(tokens[:0], end)
		out = appendExpanded(t, out, tokens)
		m.slide()
	}
	if !bytes.Equal(out, data.Bytes()) {
		t.Fatal("expanded tokens differ from input")
	}
}

// appendExpanded expands tokens against the already produced output, so
// matches may reference bytes of earlier blocks.
func appendExpanded(t *testing.T, p []byte, tokens []token) []byte {
	for _, tok := range tokens {
		if !tok.isMatch() {
			p = append(p, tok.literal())
			continue
		}
		length, dist := int(tok.length()), int(tok.distance())
		if dist > len(p) {
			t.Fatalf("token %s references distance %d beyond %d"+
				" bytes of output", tok, dist, len(p))
		}
		for i := 0; i < length; i++ {
			p = append(p, p[len(p)-dist])
		}
	}
	return p
}
