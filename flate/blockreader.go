// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "io"

// Block types of the DEFLATE format.
const (
	blockStored  = 0
	blockFixed   = 1
	blockDynamic = 2
)

// Limits for the dynamic block header.
const (
	numCLCodes = 19
	maxHCLen   = 7 // code length codes are limited to 7 bits
)

// clOrder is the transmission order of the code length code lengths.
var clOrder = [numCLCodes]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// blockDecoder decodes a sequence of DEFLATE blocks into the window. It
// is driven by the Reader, which flushes the window to the consumer.
type blockDecoder struct {
	br  *bitReader
	win window

	// tables of the block currently decoded; nil outside of a
	// Huffman-encoded block
	litLen *decTable
	dist   *decTable

	// remaining bytes of a stored block
	storedRem int

	// pending back-reference copy interrupted by a full window
	copyLen  int
	copyDist int

	// total number of bytes decoded; bounds valid match distances
	total int64

	final bool // current block has the final flag
	done  bool // final block completely decoded

	// scratch for dynamic table decoding
	lengths [maxLitLen + maxDist]uint8
}

func newBlockDecoder(r io.Reader) *blockDecoder {
	d := &blockDecoder{br: newBitReader(r)}
	d.win.init()
	return d
}

func (d *blockDecoder) reset(r io.Reader) {
	d.br.reset(r)
	d.win.init()
	d.litLen = nil
	d.dist = nil
	d.storedRem = 0
	d.copyLen = 0
	d.copyDist = 0
	d.total = 0
	d.final = false
	d.done = false
}

// readBlockHeader reads the 3-bit block header and prepares the decoder
// state for the block body.
func (d *blockDecoder) readBlockHeader() error {
	bfinal, err := d.br.readBit()
	if err != nil {
		return err
	}
	d.final = bfinal == 1
	btype, err := d.br.readBits(2)
	if err != nil {
		return err
	}
	switch btype {
	case blockStored:
		return d.readStoredHeader()
	case blockFixed:
		d.litLen = fixedLitLenDec
		d.dist = fixedDistDec
		return nil
	case blockDynamic:
		return d.readDynamicHeader()
	default:
		return ErrBlockType
	}
}

// readStoredHeader aligns to the byte boundary and reads the LEN/NLEN pair
// of a stored block.
func (d *blockDecoder) readStoredHeader() error {
	d.br.alignByte()
	var p [4]byte
	if err := d.br.readBytes(p[:]); err != nil {
		return err
	}
	length := int(p[0]) | int(p[1])<<8
	nlen := int(p[2]) | int(p[3])<<8
	if length != nlen^0xffff {
		return corruptError("stored block length check failed")
	}
	d.storedRem = length
	return nil
}

// readDynamicHeader reads the code length descriptions of a dynamic block
// and builds the literal/length and distance tables.
func (d *blockDecoder) readDynamicHeader() error {
	v, err := d.br.readBits(14)
	if err != nil {
		return err
	}
	numLit := int(v&0x1f) + 257
	numDist := int(v>>5&0x1f) + 1
	numCL := int(v>>10&0xf) + 4
	if numLit > maxLitLen {
		return corruptError("too many literal/length codes")
	}
	if numDist > maxDist {
		return corruptError("too many distance codes")
	}

	var clLens [numCLCodes]uint8
	for i := 0; i < numCL; i++ {
		v, err := d.br.readBits(3)
		if err != nil {
			return err
		}
		clLens[clOrder[i]] = uint8(v)
	}
	cl, err := newDecTable(clLens[:])
	if err != nil {
		return err
	}

	// The literal/length and distance code lengths form one sequence;
	// repeat codes may cross the boundary between the two.
	lengths := d.lengths[:numLit+numDist]
	for i := 0; i < len(lengths); {
		sym, err := cl.decode(d.br)
		if err != nil {
			return err
		}
		switch {
		case sym < 16:
			lengths[i] = uint8(sym)
			i++
			continue
		case sym == 16:
			if i == 0 {
				return corruptError(
					"length repeat without previous length")
			}
		}
		var repeat, bits int
		var value uint8
		switch sym {
		case 16:
			repeat, bits, value = 3, 2, lengths[i-1]
		case 17:
			repeat, bits = 3, 3
		default:
			repeat, bits = 11, 7
		}
		v, err := d.br.readBits(uint(bits))
		if err != nil {
			return err
		}
		repeat += int(v)
		if i+repeat > len(lengths) {
			return corruptError("length repeat out of range")
		}
		for ; repeat > 0; repeat-- {
			lengths[i] = value
			i++
		}
	}

	if d.litLen, err = newDecTable(lengths[:numLit]); err != nil {
		return err
	}
	if lengths[numLit] == 0 && allZero(lengths[numLit+1:]) {
		// No distance codes at all; legal for a block without
		// matches.
		d.dist = nil
		return nil
	}
	if d.dist, err = newDecTable(lengths[numLit:]); err != nil {
		return err
	}
	return nil
}

func allZero(p []uint8) bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// decodeSyms decodes tokens of the current Huffman block until the window
// needs a flush or the end-of-block symbol has been read. It reports whether
// the block is finished.
func (d *blockDecoder) decodeSyms() (blockDone bool, err error) {
	if d.copyLen > 0 {
		// resume a copy interrupted by a full window
		n := d.win.writeCopy(d.copyDist, d.copyLen)
		d.total += int64(n)
		d.copyLen -= n
		if d.copyLen > 0 {
			return false, nil
		}
	}
	for {
		if d.win.availWrite() == 0 {
			return false, nil
		}
		sym, err := d.litLen.decode(d.br)
		if err != nil {
			return false, err
		}
		switch {
		case sym < eob:
			d.win.writeByte(byte(sym))
			d.total++
			continue
		case sym == eob:
			d.litLen = nil
			d.dist = nil
			return true, nil
		case sym >= maxLitLen:
			return false, ErrInvalidCode
		}

		// length code with extra bits
		lc := sym - 257
		length := uint32(lenBase[lc])
		if e := lenExtra[lc]; e > 0 {
			v, err := d.br.readBits(uint(e))
			if err != nil {
				return false, err
			}
			length += v
		}

		if d.dist == nil {
			return false, corruptError(
				"match in block without distance codes")
		}
		dc, err := d.dist.decode(d.br)
		if err != nil {
			return false, err
		}
		if dc >= maxDist {
			return false, ErrInvalidCode
		}
		dist := uint32(distBase[dc])
		if e := distExtra[dc]; e > 0 {
			v, err := d.br.readBits(uint(e))
			if err != nil {
				return false, err
			}
			dist += v
		}
		if int64(dist) > d.total {
			return false, corruptError(
				"distance before start of output")
		}

		n := d.win.writeCopy(int(dist), int(length))
		d.total += int64(n)
		if n < int(length) {
			// the window ran full mid-copy
			d.copyLen = int(length) - n
			d.copyDist = int(dist)
			return false, nil
		}
	}
}

// step decodes data until the window holds bytes for the consumer or the
// stream is done. It is the core of the Reader loop.
func (d *blockDecoder) step() error {
	for d.win.availRead() == 0 && !d.done {
		switch {
		case d.storedRem > 0:
			n := d.storedRem
			if k := d.win.availWrite(); n > k {
				n = k
			}
			p := d.win.hist[d.win.wr : d.win.wr+n]
			if err := d.br.readBytes(p); err != nil {
				return err
			}
			d.win.wr += n
			d.total += int64(n)
			d.storedRem -= n
			if d.storedRem == 0 && d.final {
				d.done = true
			}
		case d.litLen != nil:
			blockDone, err := d.decodeSyms()
			if err != nil {
				return err
			}
			if blockDone && d.final {
				d.done = true
			}
		default:
			if err := d.readBlockHeader(); err != nil {
				return err
			}
			if d.storedRem == 0 && d.litLen == nil && d.final {
				// final empty stored block
				d.done = true
			}
		}
	}
	return nil
}
