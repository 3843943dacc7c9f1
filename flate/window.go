// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// window is the 32 KiB history buffer of the decoder. Decoded data is
// written at wr and handed out to the consumer through readFlush; the whole
// buffer serves as history for back-references once it has been filled. The
// buffer is the exclusive property of one decoding operation.
type window struct {
	hist []byte
	wr   int
	rd   int
	full bool // buffer has wrapped, all of hist is history
}

func (w *window) init() {
	if w.hist == nil {
		w.hist = make([]byte, winSize)
	}
	w.wr = 0
	w.rd = 0
	w.full = false
}

// histSize returns the number of bytes of usable history.
func (w *window) histSize() int {
	if w.full {
		return winSize
	}
	return w.wr
}

// availWrite returns the space left before the window must be flushed.
func (w *window) availWrite() int { return winSize - w.wr }

// availRead returns the number of decoded bytes waiting for the consumer.
func (w *window) availRead() int { return w.wr - w.rd }

// writeByte appends a decoded literal. The caller must ensure space.
func (w *window) writeByte(c byte) {
	w.hist[w.wr] = c
	w.wr++
}

// writeCopy copies a back-reference of the given length and distance into
// the window. It copies at most availWrite bytes and returns the number
// copied; the caller restarts the copy after flushing. Source and
// destination may overlap, which repeats the overlapped bytes.
func (w *window) writeCopy(dist, length int) int {
	dst := w.wr
	end := dst + length
	if end > winSize {
		end = winSize
	}
	src := dst - dist
	if src < 0 {
		src += winSize
		// source wraps around the buffer end
		n := winSize - src
		if dst+n > end {
			n = end - dst
		}
		copy(w.hist[dst:dst+n], w.hist[src:src+n])
		dst += n
		src = 0
	}
	for dst < end {
		// expanding copy; overlapping ranges repeat the pattern
		n := copy(w.hist[dst:end], w.hist[src:dst])
		dst += n
	}
	n := dst - w.wr
	w.wr = dst
	return n
}

// readFlush returns the decoded bytes not yet handed out and resets the
// write cursor if the buffer is exhausted.
func (w *window) readFlush() []byte {
	p := w.hist[w.rd:w.wr]
	w.rd = w.wr
	if w.wr == winSize {
		w.wr = 0
		w.rd = 0
		w.full = true
	}
	return p
}
