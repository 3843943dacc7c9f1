// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// blockWriter converts a token stream into one encoded DEFLATE block. For
// every block it compares the estimated bit costs of the three block kinds
// and emits the cheapest. The raw bytes covered by the tokens are kept
// around so a stored block remains available as fallback.
type blockWriter struct {
	bw *bitWriter

	litLenFreq [maxLitLen]uint32
	distFreq   [maxDist]uint32

	// scratch buffers for the dynamic header
	clSyms []clSym
	clFreq [numCLCodes]uint32
}

// clSym is one symbol of the code length meta-alphabet: a literal length
// 0-15 or one of the repeat codes 16, 17 and 18 with its extra bits value.
type clSym struct {
	sym   uint8
	extra uint8
}

// Extra bit counts of the repeat codes of the meta-alphabet.
var clExtra = [3]uint8{2, 3, 7}

func newBlockWriter(bw *bitWriter) *blockWriter {
	return &blockWriter{bw: bw}
}

// countFreqs fills the frequency tables for the token stream. The
// end-of-block marker is always counted.
func (b *blockWriter) countFreqs(tokens []token) {
	for i := range b.litLenFreq {
		b.litLenFreq[i] = 0
	}
	for i := range b.distFreq {
		b.distFreq[i] = 0
	}
	for _, t := range tokens {
		if !t.isMatch() {
			b.litLenFreq[t.literal()]++
			continue
		}
		b.litLenFreq[257+lenCode(t.length())]++
		b.distFreq[distCode(t.distance())]++
	}
	b.litLenFreq[eob]++
}

// bodyCost returns the number of bits the token stream requires under the
// given code lengths, including the end-of-block marker.
func (b *blockWriter) bodyCost(litLenLens, distLens []uint8) int64 {
	cost := int64(0)
	for sym, f := range b.litLenFreq {
		if f == 0 {
			continue
		}
		n := int64(litLenLens[sym])
		if sym > eob {
			n += int64(lenExtra[sym-257])
		}
		cost += int64(f) * n
	}
	for sym, f := range b.distFreq {
		if f == 0 {
			continue
		}
		cost += int64(f) * int64(distLens[sym]+distExtra[sym])
	}
	return cost
}

// buildCLSyms run-length encodes the concatenation of the literal/length and
// distance code lengths into the meta-alphabet and counts its frequencies.
func (b *blockWriter) buildCLSyms(lengths []uint8) {
	b.clSyms = b.clSyms[:0]
	for i := range b.clFreq {
		b.clFreq[i] = 0
	}
	emit := func(sym, extra uint8) {
		b.clSyms = append(b.clSyms, clSym{sym, extra})
		b.clFreq[sym]++
	}
	for i := 0; i < len(lengths); {
		v := lengths[i]
		run := 1
		for i+run < len(lengths) && lengths[i+run] == v {
			run++
		}
		i += run
		if v == 0 {
			for run >= 11 {
				n := run
				if n > 138 {
					n = 138
				}
				emit(18, uint8(n-11))
				run -= n
			}
			if run >= 3 {
				emit(17, uint8(run-3))
				run = 0
			}
			for ; run > 0; run-- {
				emit(0, 0)
			}
			continue
		}
		emit(v, 0)
		run--
		for run >= 3 {
			n := run
			if n > 6 {
				n = 6
			}
			emit(16, uint8(n-3))
			run -= n
		}
		for ; run > 0; run-- {
			emit(v, 0)
		}
	}
}

// dynamicHeader describes the precomputed dynamic block header.
type dynamicHeader struct {
	numLit  int
	numDist int
	numCL   int
	clLens  []uint8
	clCodes []hcode
	cost    int64 // header cost in bits, without the 3 block header bits
}

// makeDynamicHeader builds the meta-alphabet encoding of the given code
// length arrays and computes its cost.
func (b *blockWriter) makeDynamicHeader(litLenLens, distLens []uint8) dynamicHeader {
	numLit := maxLitLen
	for numLit > 257 && litLenLens[numLit-1] == 0 {
		numLit--
	}
	numDist := maxDist
	for numDist > 1 && distLens[numDist-1] == 0 {
		numDist--
	}

	seq := make([]uint8, 0, numLit+numDist)
	seq = append(seq, litLenLens[:numLit]...)
	seq = append(seq, distLens[:numDist]...)
	b.buildCLSyms(seq)

	clLens := buildLengths(b.clFreq[:], maxHCLen)
	numCL := numCLCodes
	for numCL > 4 && clLens[clOrder[numCL-1]] == 0 {
		numCL--
	}

	cost := int64(5 + 5 + 4 + 3*numCL)
	for _, s := range b.clSyms {
		cost += int64(clLens[s.sym])
		if s.sym >= 16 {
			cost += int64(clExtra[s.sym-16])
		}
	}
	return dynamicHeader{
		numLit:  numLit,
		numDist: numDist,
		numCL:   numCL,
		clLens:  clLens,
		clCodes: canonicalCodes(clLens),
		cost:    cost,
	}
}

// writeBlock encodes the tokens covering the raw bytes as one DEFLATE block,
// choosing the cheapest of the stored, fixed and dynamic representations.
// len(raw) must be below 65536 so that a stored block can hold it.
func (b *blockWriter) writeBlock(tokens []token, raw []byte, final bool) {
	b.countFreqs(tokens)

	// A dynamic block must contain at least one distance code even if no
	// matches occurred.
	hasDist := false
	for _, f := range b.distFreq {
		if f > 0 {
			hasDist = true
			break
		}
	}
	if !hasDist {
		b.distFreq[0] = 1
	}

	litLenLens := buildLengths(b.litLenFreq[:], maxCodeLen)
	distLens := buildLengths(b.distFreq[:], maxCodeLen)
	hdr := b.makeDynamicHeader(litLenLens, distLens)

	dynCost := 3 + hdr.cost + b.bodyCost(litLenLens, distLens)
	fixedCost := 3 + b.bodyCost(fixedLens.litLen, fixedLens.dist)
	storedCost := int64(len(raw)+5)*8 + 7 // worst case byte alignment

	switch {
	case storedCost <= dynCost && storedCost <= fixedCost:
		b.writeStored(raw, final)
	case fixedCost <= dynCost:
		b.writeHeader(blockFixed, final)
		b.writeTokens(tokens, fixedLitLenEnc, fixedDistEnc)
	default:
		b.writeHeader(blockDynamic, final)
		b.writeDynamicHeader(hdr, litLenLens, distLens)
		b.writeTokens(tokens, canonicalCodes(litLenLens),
			canonicalCodes(distLens))
	}
}

// writeHeader emits the final flag and the block type.
func (b *blockWriter) writeHeader(btype uint32, final bool) {
	bits := btype << 1
	if final {
		bits |= 1
	}
	b.bw.writeBits(bits, 3)
}

// writeStored emits a stored block for the raw bytes.
func (b *blockWriter) writeStored(raw []byte, final bool) {
	b.writeHeader(blockStored, final)
	b.bw.alignByte()
	n := uint32(len(raw))
	b.bw.writeBits(n, 16)
	b.bw.writeBits(^n, 16)
	b.bw.writeBytes(raw)
}

// writeDynamicHeader emits the code table description of a dynamic block.
func (b *blockWriter) writeDynamicHeader(hdr dynamicHeader, litLenLens, distLens []uint8) {
	bw := b.bw
	bw.writeBits(uint32(hdr.numLit-257), 5)
	bw.writeBits(uint32(hdr.numDist-1), 5)
	bw.writeBits(uint32(hdr.numCL-4), 4)
	for i := 0; i < hdr.numCL; i++ {
		bw.writeBits(uint32(hdr.clLens[clOrder[i]]), 3)
	}
	for _, s := range b.clSyms {
		c := hdr.clCodes[s.sym]
		bw.writeBits(uint32(c.code), uint(c.len))
		if s.sym >= 16 {
			bw.writeBits(uint32(s.extra), uint(clExtra[s.sym-16]))
		}
	}
}

// writeTokens emits the token stream followed by the end-of-block marker.
func (b *blockWriter) writeTokens(tokens []token, litLenEnc, distEnc []hcode) {
	bw := b.bw
	for _, t := range tokens {
		if !t.isMatch() {
			c := litLenEnc[t.literal()]
			bw.writeBits(uint32(c.code), uint(c.len))
			continue
		}
		length := t.length()
		lc := lenCode(length)
		c := litLenEnc[257+lc]
		bw.writeBits(uint32(c.code), uint(c.len))
		if e := lenExtra[lc]; e > 0 {
			bw.writeBits(length-uint32(lenBase[lc]), uint(e))
		}
		dist := t.distance()
		dc := distCode(dist)
		c = distEnc[dc]
		bw.writeBits(uint32(c.code), uint(c.len))
		if e := distExtra[dc]; e > 0 {
			bw.writeBits(dist-uint32(distBase[dc]), uint(e))
		}
	}
	c := litLenEnc[eob]
	bw.writeBits(uint32(c.code), uint(c.len))
}

// fixedLens provides the fixed code lengths for cost estimation.
var fixedLens = struct {
	litLen []uint8
	dist   []uint8
}{
	litLen: func() []uint8 {
		p := make([]uint8, maxLitLen)
		for i := range p {
			switch {
			case i < 144:
				p[i] = 8
			case i < 256:
				p[i] = 9
			case i < 280:
				p[i] = 7
			default:
				p[i] = 8
			}
		}
		return p
	}(),
	dist: func() []uint8 {
		p := make([]uint8, maxDist)
		for i := range p {
			p[i] = 5
		}
		return p
	}(),
}
