// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "fmt"

// General limits of the DEFLATE format.
const (
	minMatch = 3
	maxMatch = 258

	// winSize is the size of the sliding window and at the same time the
	// maximum match distance.
	winSize = 1 << 15

	// maxLitLen and maxDist are the alphabet sizes for the literal/length
	// and the distance codes.
	maxLitLen = 286
	maxDist   = 30

	// eob terminates the token stream of every block.
	eob = 256

	// maxCodeLen limits the bit length of all Huffman codes; the dynamic
	// block header stores lengths in 4-bit fields.
	maxCodeLen = 15
)

// A token represents either a single literal byte or a back-reference into
// the window. The match flag distinguishes the two variants; matches store
// length-minMatch in bits 16 to 23 and distance-1 in the low 15 bits.
type token uint32

const matchFlag token = 1 << 31

func literalToken(c byte) token { return token(c) }

func matchToken(length, dist uint32) token {
	return matchFlag | token((length-minMatch)<<16|(dist-1))
}

func (t token) isMatch() bool { return t&matchFlag != 0 }

func (t token) literal() byte { return byte(t) }

func (t token) length() uint32 { return uint32(t>>16)&0xff + minMatch }

func (t token) distance() uint32 { return uint32(t)&(winSize-1) + 1 }

func (t token) String() string {
	if !t.isMatch() {
		return fmt.Sprintf("lit(%#02x)", t.literal())
	}
	return fmt.Sprintf("match(%d,%d)", t.length(), t.distance())
}

// The 29 length codes of the literal/length alphabet start at symbol 257.
// Base lengths and extra bit counts follow RFC 1951, section 3.2.5.
var (
	lenBase = [29]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lenExtra = [29]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
)

// The 30 distance codes with their base distances and extra bit counts.
var (
	distBase = [30]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
		8193, 12289, 16385, 24577,
	}
	distExtra = [30]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// lenCodes maps length-minMatch to the length code index 0 to 28.
var lenCodes [maxMatch - minMatch + 1]uint8

// distCodes maps a distance approximation to the distance code. Distances
// below 257 index the first 256 entries directly with dist-1; larger
// distances use 256+(dist-1)>>7.
var distCodes [256 + 256]uint8

func init() {
	c := 0
	for i := range lenCodes {
		length := i + minMatch
		for c+1 < len(lenBase) && int(lenBase[c+1]) <= length {
			c++
		}
		lenCodes[i] = uint8(c)
	}

	c = 0
	for i := 0; i < 256; i++ {
		dist := i + 1
		for c+1 < len(distBase) && int(distBase[c+1]) <= dist {
			c++
		}
		distCodes[i] = uint8(c)
	}
	for i := 256; i < len(distCodes); i++ {
		dist := (i-256)<<7 + 1
		c = 0
		for c+1 < len(distBase) && int(distBase[c+1]) <= dist {
			c++
		}
		distCodes[i] = uint8(c)
	}
}

// lenCode returns the length code for a match length.
func lenCode(length uint32) uint32 { return uint32(lenCodes[length-minMatch]) }

// distCode returns the distance code for a match distance.
func distCode(dist uint32) uint32 {
	if dist <= 256 {
		return uint32(distCodes[dist-1])
	}
	return uint32(distCodes[256+(dist-1)>>7])
}
