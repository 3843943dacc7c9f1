// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// The hash chains index window positions by the hash of the three bytes
// starting there. The head table and the chain table are plain integer
// arrays; positions scrolling out of the window simply become stale entries
// that the search skips.
const (
	hashBits = 15
	hashSize = 1 << hashBits
	hashMask = winSize - 1

	// Knuth's multiplicative hash constant
	hashMul = 2654435761
)

func hash3(p []byte) uint32 {
	_ = p[2]
	u := uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	return (u * hashMul) >> (32 - hashBits)
}

// levelConfig holds the matcher parameters of a compression level. The
// semantics follow the classic zlib configuration table: lazy matching is
// skipped for matches of at least lazy bytes, chain search stops early at
// nice bytes and is shortened when the previous match reached good bytes.
type levelConfig struct {
	good  int
	lazy  int
	nice  int
	chain int
}

// levels contains the configurations for the compression levels 1 to 9 at
// the indices 1 to 9. Level 0 bypasses the matcher entirely.
var levels = [10]levelConfig{
	{},
	{good: 4, lazy: 0, nice: 8, chain: 4},
	{good: 4, lazy: 0, nice: 16, chain: 8},
	{good: 4, lazy: 0, nice: 32, chain: 32},
	{good: 4, lazy: 4, nice: 16, chain: 16},
	{good: 8, lazy: 16, nice: 32, chain: 32},
	{good: 8, lazy: 16, nice: 128, chain: 128},
	{good: 8, lazy: 32, nice: 128, chain: 256},
	{good: 32, lazy: 128, nice: 258, chain: 1024},
	{good: 32, lazy: 258, nice: 258, chain: 4096},
}

// matcher finds back-references in the sliding window using hash chains. It
// owns the input buffer: the Writer appends data to buf and the matcher
// converts it into a token stream, keeping the last winSize bytes as
// history.
type matcher struct {
	cfg levelConfig

	// buf holds the window followed by not yet scanned input; scanned is
	// the index of the next byte to tokenize.
	buf     []byte
	scanned int

	// hashHead maps a hash to the most recent buf index with that hash,
	// stored as index+1 so that zero means empty. hashPrev chains every
	// window position to the previous position with the same hash.
	hashHead [hashSize]int32
	hashPrev [winSize]int32

	// hashed is the next buf index whose hash has not been inserted yet
	hashed int
}

func newMatcher(level int) *matcher {
	return &matcher{cfg: levels[level]}
}

func (m *matcher) reset() {
	m.buf = m.buf[:0]
	m.scanned = 0
	m.hashed = 0
	for i := range m.hashHead {
		m.hashHead[i] = 0
	}
	for i := range m.hashPrev {
		m.hashPrev[i] = 0
	}
}

// insertTo inserts the hashes of all positions before end that have not been
// inserted yet. Positions too close to the buffer end to form a 3-byte
// prefix stay uninserted until more data arrives.
func (m *matcher) insertTo(end int) {
	limit := len(m.buf) - minMatch + 1
	if end > limit {
		end = limit
	}
	for ; m.hashed < end; m.hashed++ {
		h := hash3(m.buf[m.hashed:])
		m.hashPrev[m.hashed&hashMask] = m.hashHead[h]
		m.hashHead[h] = int32(m.hashed) + 1
	}
}

// findMatch searches the best match for the given position and inserts the
// position into the hash chains. Among matches of equal length the one with
// the smallest distance wins, because the chains are walked from the most
// recent position backwards and only strictly longer matches replace the
// current best. prevLen shortens the chain search after a good previous
// match.
func (m *matcher) findMatch(pos, prevLen int) (length, dist int) {
	buf := m.buf
	maxLen := len(buf) - pos
	if maxLen > maxMatch {
		maxLen = maxMatch
	}
	if maxLen < minMatch {
		return 0, 0
	}

	m.insertTo(pos)
	h := hash3(buf[pos:])
	cand := int(m.hashHead[h]) - 1
	m.hashPrev[pos&hashMask] = m.hashHead[h]
	m.hashHead[h] = int32(pos) + 1
	m.hashed = pos + 1

	chain := m.cfg.chain
	if prevLen >= m.cfg.good {
		chain >>= 2
	}
	nice := m.cfg.nice
	if nice > maxLen {
		nice = maxLen
	}

	limit := pos - winSize
	best := minMatch - 1
	for ; chain > 0 && cand >= 0 && cand > limit; chain-- {
		if buf[cand+best] == buf[pos+best] {
			n := matchLen(buf[cand:], buf[pos:], maxLen)
			if n > best {
				best = n
				dist = pos - cand
				if n >= nice {
					break
				}
			}
		}
		c := int(m.hashPrev[cand&hashMask]) - 1
		if c >= cand {
			// stale chain entry
			break
		}
		cand = c
	}
	if best < minMatch {
		return 0, 0
	}
	return best, dist
}

// matchLen returns the length of the common prefix of a and b, at most max.
func matchLen(a, b []byte, max int) int {
	a = a[:max]
	for i, c := range a {
		if b[i] != c {
			return i
		}
	}
	return max
}

// scan tokenizes buf from the scanned position up to end and appends the
// tokens to dst. A match starting before end may reach beyond it; scanned is
// advanced to the first position not covered by a token. Lazy matching looks
// a single position ahead and prefers the later match if it is strictly
// longer.
func (m *matcher) scan(dst []token, end int) []token {
	buf := m.buf
	pos := m.scanned
	for pos < end {
		length, dist := m.findMatch(pos, 0)
		if m.cfg.lazy > 0 && length >= minMatch && length < m.cfg.lazy &&
			pos+1 < end {
			nextLen, nextDist := m.findMatch(pos+1, length)
			if nextLen > length {
				dst = append(dst, literalToken(buf[pos]))
				pos++
				length, dist = nextLen, nextDist
			}
		}
		if length >= minMatch {
			dst = append(dst, matchToken(uint32(length), uint32(dist)))
			pos += length
			m.insertTo(pos)
		} else {
			dst = append(dst, literalToken(buf[pos]))
			pos++
		}
	}
	m.scanned = pos
	return dst
}

// slide drops history that can no longer be referenced once the scanned
// position has moved a full window past the buffer start. Hash entries
// pointing into the dropped region become zero, the empty marker.
func (m *matcher) slide() {
	if m.scanned < 2*winSize {
		return
	}
	delta := m.scanned - winSize
	n := copy(m.buf, m.buf[delta:])
	m.buf = m.buf[:n]
	m.scanned -= delta
	m.hashed -= delta
	d := int32(delta)
	for i, v := range m.hashHead {
		if v <= d {
			m.hashHead[i] = 0
		} else {
			m.hashHead[i] = v - d
		}
	}
	for i, v := range m.hashPrev {
		if v <= d {
			m.hashPrev[i] = 0
		} else {
			m.hashPrev[i] = v - d
		}
	}
}
