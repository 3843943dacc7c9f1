// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"math/bits"
	"sort"
)

// hcode describes a single canonical Huffman code. The code bits are stored
// in reverse order because the format transmits Huffman codes starting with
// the most significant bit while the bit writer emits LSB first.
type hcode struct {
	code uint16
	len  uint8
}

// buildLengths computes code lengths for the given frequencies. Symbols with
// zero frequency receive length zero and stay outside the code. No length
// exceeds maxBits; if the Huffman tree is deeper, the leaves are
// redistributed while keeping a complete prefix code.
func buildLengths(freq []uint32, maxBits int) []uint8 {
	lengths := make([]uint8, len(freq))

	type leaf struct {
		sym  int
		freq uint32
	}
	live := make([]leaf, 0, len(freq))
	for sym, f := range freq {
		if f > 0 {
			live = append(live, leaf{sym, f})
		}
	}
	switch len(live) {
	case 0:
		return lengths
	case 1:
		lengths[live[0].sym] = 1
		return lengths
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].freq != live[j].freq {
			return live[i].freq < live[j].freq
		}
		return live[i].sym < live[j].sym
	})

	// Huffman merge over two queues: the sorted leaves and the internal
	// nodes, which are created in order of non-decreasing weight.
	n := len(live)
	weight := make([]uint64, n, 2*n-1)
	for i, lf := range live {
		weight[i] = uint64(lf.freq)
	}
	parent := make([]int, 2*n-1)
	i, j := 0, n // next leaf, next internal node
	for k := 0; k < n-1; k++ {
		var lo [2]int
		for b := 0; b < 2; b++ {
			if i < n && (j >= len(weight) || weight[i] <= weight[j]) {
				lo[b] = i
				i++
			} else {
				lo[b] = j
				j++
			}
		}
		weight = append(weight, weight[lo[0]]+weight[lo[1]])
		parent[lo[0]] = len(weight) - 1
		parent[lo[1]] = len(weight) - 1
	}

	// Leaf depths follow from the parent pointers; the root is the last
	// node created.
	depth := make([]int, len(weight))
	for k := len(weight) - 2; k >= 0; k-- {
		depth[k] = depth[parent[k]] + 1
	}

	var blCount [maxCodeLen + 1]int
	overflow := 0
	for k := 0; k < n; k++ {
		d := depth[k]
		if d > maxBits {
			d = maxBits
			overflow++
		}
		blCount[d]++
	}

	// Classic zlib redistribution: for every leaf deeper than maxBits
	// move a leaf at a smaller depth one level down and attach the
	// overflowing leaf as its sibling.
	for overflow > 0 {
		d := maxBits - 1
		for blCount[d] == 0 {
			d--
		}
		blCount[d]--
		blCount[d+1] += 2
		blCount[maxBits]--
		overflow -= 2
	}

	// Hand out the length multiset: most frequent symbols get the
	// shortest lengths. live is sorted by ascending frequency, so walk it
	// from the back.
	k := n - 1
	for d := 1; d <= maxBits; d++ {
		for c := blCount[d]; c > 0; c-- {
			lengths[live[k].sym] = uint8(d)
			k--
		}
	}
	return lengths
}

// canonicalCodes derives the canonical codes from an array of code lengths
// following RFC 1951, section 3.2.2. The codes are returned bit-reversed,
// ready for the LSB-first bit writer.
func canonicalCodes(lengths []uint8) []hcode {
	var blCount [maxCodeLen + 1]uint16
	for _, l := range lengths {
		blCount[l]++
	}
	blCount[0] = 0

	var nextCode [maxCodeLen + 1]uint16
	code := uint16(0)
	for b := 1; b <= maxCodeLen; b++ {
		code = (code + blCount[b-1]) << 1
		nextCode[b] = code
	}

	codes := make([]hcode, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c := nextCode[l]
		nextCode[l]++
		codes[sym] = hcode{
			code: bits.Reverse16(c) >> (16 - l),
			len:  l,
		}
	}
	return codes
}

// decTable supports the symbol-by-symbol decoding of a canonical Huffman
// code. It stores per code length the number of codes and the symbols in
// canonical order, which is all a decoder needs.
type decTable struct {
	counts  [maxCodeLen + 1]uint16
	symbols []uint16
	maxLen  uint
}

// newDecTable builds the decoding table for a transmitted length array. The
// function verifies that the lengths describe a complete prefix code; the
// single-code case, which is incomplete by construction, is tolerated as the
// format requires.
func newDecTable(lengths []uint8) (*decTable, error) {
	t := &decTable{}
	n := 0
	for _, l := range lengths {
		if l > 0 {
			t.counts[l]++
			n++
			if uint(l) > t.maxLen {
				t.maxLen = uint(l)
			}
		}
	}
	if n == 0 {
		return nil, corruptError("huffman table without codes")
	}

	left := 1
	for b := 1; b <= maxCodeLen; b++ {
		left <<= 1
		left -= int(t.counts[b])
		if left < 0 {
			return nil, corruptError("oversubscribed huffman table")
		}
	}
	if left > 0 && !(n == 1 && t.maxLen == 1) {
		return nil, corruptError("incomplete huffman table")
	}

	// offsets of the first symbol of each length
	var offs [maxCodeLen + 1]uint16
	k := uint16(0)
	for b := 1; b <= maxCodeLen; b++ {
		offs[b] = k
		k += t.counts[b]
	}
	t.symbols = make([]uint16, n)
	for sym, l := range lengths {
		if l > 0 {
			t.symbols[offs[l]] = uint16(sym)
			offs[l]++
		}
	}
	return t, nil
}

// decode reads bits until they resolve to a symbol of the table.
func (t *decTable) decode(br *bitReader) (sym uint32, err error) {
	code := uint32(0)
	first := uint32(0)
	index := uint32(0)
	for l := uint(1); l <= t.maxLen; l++ {
		b, err := br.readBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | b
		count := uint32(t.counts[l])
		if code-first < count {
			return uint32(t.symbols[index+code-first]), nil
		}
		index += count
		first = (first + count) << 1
	}
	return 0, ErrInvalidCode
}

// Fixed Huffman tables per RFC 1951, section 3.2.6. The tables are process
// wide constants; they are computed once at startup and never mutated.
var (
	fixedLitLenEnc []hcode
	fixedDistEnc   []hcode
	fixedLitLenDec *decTable
	fixedDistDec   *decTable
)

func init() {
	litLen := make([]uint8, 288)
	for i := range litLen {
		switch {
		case i < 144:
			litLen[i] = 8
		case i < 256:
			litLen[i] = 9
		case i < 280:
			litLen[i] = 7
		default:
			litLen[i] = 8
		}
	}
	dist := make([]uint8, 32)
	for i := range dist {
		dist[i] = 5
	}

	fixedLitLenEnc = canonicalCodes(litLen)
	fixedDistEnc = canonicalCodes(dist)

	var err error
	if fixedLitLenDec, err = newDecTable(litLen); err != nil {
		panic(err)
	}
	if fixedDistDec, err = newDecTable(dist); err != nil {
		panic(err)
	}
}
