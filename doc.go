// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gz supports the compression and decompression of gzip files. It
// implements the file format of RFC 1952 including the optional header
// fields on top of the DEFLATE implementation of the flate package of this
// module.
//
// Use Reader to decompress gzip files and Writer to compress data into the
// gzip format. Both types process the data in streaming mode and require
// memory independent of the size of the data.
package gz
