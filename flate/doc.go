// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flate implements the DEFLATE compressed data format specified by
// RFC 1951 from scratch: an LZ77 match finder over a 32 KiB sliding window,
// canonical Huffman coding limited to 15-bit codes and the stored, fixed and
// dynamic block representations.
//
// Reader and Writer operate on raw DEFLATE streams without any container.
// The gz package of this module wraps them into the gzip file format.
package flate
