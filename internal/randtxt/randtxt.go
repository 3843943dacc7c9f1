// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randtxt generates random English-like text for tests and
// benchmarks. The output is deterministic for a given random source, has a
// realistic letter distribution and repeats words, so it compresses like
// natural language and not like noise.
package randtxt

import "math/rand"

// words is a small vocabulary; the Zipf distribution over it produces the
// word repetition typical for text.
var words = []string{
	"the", "of", "and", "to", "in", "that", "was", "his", "he", "it",
	"with", "is", "for", "as", "had", "you", "not", "be", "her", "on",
	"at", "by", "which", "have", "or", "from", "this", "him", "but",
	"all", "she", "they", "were", "my", "are", "me", "one", "their",
	"so", "an", "said", "them", "we", "who", "would", "been", "will",
	"no", "when", "there", "if", "more", "out", "up", "into", "any",
	"your", "what", "has", "man", "could", "other", "than", "our",
	"some", "very", "time", "upon", "about", "may", "its", "only",
	"now", "like", "little", "then", "can", "should", "made", "did",
	"us", "such", "a", "great", "before", "must", "two", "these",
	"see", "know", "over", "much", "down", "after", "first", "mr",
	"good", "men", "own", "never", "most", "old", "shall", "day",
	"where", "those", "came", "come", "himself", "way", "work",
	"house", "go", "yet", "being", "thing", "through", "long",
}

// Reader generates an endless stream of random text. It must be created
// with NewReader.
type Reader struct {
	rnd  *rand.Rand
	zipf *rand.Zipf
	line int
	word []byte
}

// NewReader creates a new random text reader using the given source.
func NewReader(src rand.Source) *Reader {
	rnd := rand.New(src)
	return &Reader{
		rnd:  rnd,
		zipf: rand.NewZipf(rnd, 1.2, 1.0, uint64(len(words)-1)),
	}
}

// next fills the word buffer with the next word and its separator.
func (r *Reader) next() {
	w := words[r.zipf.Uint64()]
	r.word = append(r.word[:0], w...)
	r.line += len(w) + 1
	if r.line > 70 {
		r.word = append(r.word, '\n')
		r.line = 0
	} else {
		r.word = append(r.word, ' ')
	}
}

// Read fills p with random text. It never returns an error.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.word) == 0 {
			r.next()
		}
		k := copy(p[n:], r.word)
		r.word = r.word[k:]
		n += k
	}
	return n, nil
}
