// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "testing"

func TestTokenFields(t *testing.T) {
	tok := literalToken('x')
	if tok.isMatch() {
		t.Fatalf("literal token %s reported as match", tok)
	}
	if c := tok.literal(); c != 'x' {
		t.Fatalf("literal() returned %q; want %q", c, 'x')
	}

	for _, m := range []struct{ length, dist uint32 }{
		{minMatch, 1},
		{maxMatch, winSize},
		{17, 4097},
	} {
		tok = matchToken(m.length, m.dist)
		if !tok.isMatch() {
			t.Fatalf("match token %s not reported as match", tok)
		}
		if l := tok.length(); l != m.length {
			t.Fatalf("length() returned %d; want %d", l, m.length)
		}
		if d := tok.distance(); d != m.dist {
			t.Fatalf("distance() returned %d; want %d", d, m.dist)
		}
	}
}

func TestLenCode(t *testing.T) {
	tests := []struct {
		length uint32
		code   uint32
	}{
		{3, 0}, {4, 1}, {10, 7}, {11, 8}, {12, 8}, {13, 9},
		{114, 22}, {115, 23}, {130, 23}, {131, 24}, {227, 27},
		{257, 27}, {258, 28},
	}
	for _, tc := range tests {
		if c := lenCode(tc.length); c != tc.code {
			t.Errorf("lenCode(%d) returned %d; want %d",
				tc.length, c, tc.code)
		}
	}
	// exhaustive consistency with the base/extra tables
	for length := uint32(minMatch); length <= maxMatch; length++ {
		c := lenCode(length)
		base := uint32(lenBase[c])
		if !(base <= length && length < base+1<<lenExtra[c]) ||
			(c+1 < 29 && length >= uint32(lenBase[c+1]) && length != maxMatch) {
			t.Fatalf("lenCode(%d) returned %d with base %d"+
				" and %d extra bits", length, c, base,
				lenExtra[c])
		}
	}
}

func TestDistCode(t *testing.T) {
	tests := []struct {
		dist uint32
		code uint32
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 3}, {5, 4}, {6, 4}, {7, 5},
		{8, 5}, {9, 6}, {256, 15}, {257, 16}, {384, 16}, {385, 17},
		{24576, 28}, {24577, 29}, {32768, 29},
	}
	for _, tc := range tests {
		if c := distCode(tc.dist); c != tc.code {
			t.Errorf("distCode(%d) returned %d; want %d",
				tc.dist, c, tc.code)
		}
	}
	// exhaustive consistency with the base/extra tables
	for dist := uint32(1); dist <= winSize; dist++ {
		c := distCode(dist)
		base := uint32(distBase[c])
		if !(base <= dist && dist < base+1<<distExtra[c]) {
			t.Fatalf("distCode(%d) returned %d with base %d"+
				" and %d extra bits", dist, c, base,
				distExtra[c])
		}
	}
}
