// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tuning

import (
	"bytes"
	"crypto/sha256"
	"io"
	"testing"

	"github.com/ulikunitz/gz"
	"github.com/ulikunitz/gz/flate"
	"github.com/ulikunitz/zdata"
)

func TestSilesia(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping corpus test in short mode")
	}
	configs := []struct {
		name string
		cfg  gz.WriterConfig
	}{
		{"fast", gz.WriterConfig{Level: flate.BestSpeed}},
		{"default", gz.WriterConfig{}},
		{"best", gz.WriterConfig{Level: flate.BestCompression}},
	}

	files, err := Files(zdata.Silesia)
	if err != nil {
		t.Fatalf("Files(zdata.Silesia) error %s", err)
	}

	for _, c := range configs {
		c := c
		for _, f := range files {
			f := f
			t.Run(c.name+":"+f.Name, func(t *testing.T) {
				s := sha256.Sum256(f.Data)
				hsum := s[:]

				buf := new(bytes.Buffer)
				w, err := gz.NewWriterConfig(buf, c.cfg)
				if err != nil {
					t.Fatalf("gz.NewWriterConfig error %s",
						err)
				}
				_, err = io.Copy(w, bytes.NewReader(f.Data))
				if err != nil {
					t.Fatalf("%s: io.Copy compression error %s",
						f.Name, err)
				}
				if err = w.Close(); err != nil {
					t.Fatalf("%s: w.Close() error %s",
						f.Name, err)
				}
				t.Logf("%s: %d bytes compressed to %d",
					f.Name, len(f.Data), buf.Len())

				h := sha256.New()
				r, err := gz.NewReader(buf)
				if err != nil {
					t.Fatalf("%s: gz.NewReader error %s",
						f.Name, err)
				}
				_, err = io.Copy(h, r)
				if err != nil {
					t.Fatalf("%s: io.Copy decompression error %s",
						f.Name, err)
				}
				gsum := h.Sum(nil)
				if !bytes.Equal(gsum, hsum) {
					t.Errorf("%s: got %x; want %x",
						f.Name, gsum, hsum)
				}
			})
		}
	}
}

func TestFilesSize(t *testing.T) {
	files, err := Files(zdata.Silesia)
	if err != nil {
		t.Fatalf("Files(zdata.Silesia) error %s", err)
	}
	if len(files) == 0 {
		t.Fatal("corpus is empty")
	}
	if n := Size(files); n <= 0 {
		t.Fatalf("Size returned %d", n)
	}
}
