// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gz

// le32 converts the data slice into an unsigned 32-bit integer. The integer
// must be stored in little-endian mode in the data slice. The function
// panics if data has not the length 4.
func le32(data []byte) uint32 {
	if len(data) != 4 {
		panic("data has not the length 4")
	}
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 |
		uint32(data[3])<<24
}

// putLE32 stores the unsigned 32-bit integer in little-endian mode into the
// data slice. The function panics if data has not the length 4.
func putLE32(data []byte, u uint32) {
	if len(data) != 4 {
		panic("data has not the length 4")
	}
	data[0] = byte(u)
	data[1] = byte(u >> 8)
	data[2] = byte(u >> 16)
	data[3] = byte(u >> 24)
}

// le16 converts two bytes in little-endian order into an unsigned 16-bit
// integer.
func le16(data []byte) uint16 {
	if len(data) != 2 {
		panic("data has not the length 2")
	}
	return uint16(data[0]) | uint16(data[1])<<8
}

// putLE16 stores the unsigned 16-bit integer in little-endian mode into the
// data slice.
func putLE16(data []byte, u uint16) {
	if len(data) != 2 {
		panic("data has not the length 2")
	}
	data[0] = byte(u)
	data[1] = byte(u >> 8)
}
