// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gzgo compresses and decompresses files in the gzip format.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"
	"github.com/ulikunitz/gz/internal/xlog"
)

const usageStr = `Usage: gzgo [OPTION]... [FILE]...
Compress or uncompress FILEs in the .gz format (by default, compress FILES
in place).

  -c, --stdout      write to standard output and don't delete input files
  -d, --decompress  force decompression
  -f, --force       force overwrite of output file
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -l, --list        list compressed file contents
  -n, --no-name     don't save the original file name in the header
  -N, --name        save the original file name in the header (default)
  -q, --quiet       suppress all warnings
  -v, --verbose     verbose mode
  -V, --version     display version string
  -0 ... -9         compression preset; default is 6

With no file, or when FILE is -, read standard input.

Report bugs using <https://github.com/ulikunitz/gz/issues>.
`

const version = "0.1.0"

// preset handles the classic -0 to -9 flags, which the flag package cannot
// express. The digits are filtered out of the argument vector before
// parsing.
type preset int

const defaultPreset preset = 6

func (p *preset) filterArg(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	buf := new(bytes.Buffer)
	buf.Grow(len(arg))
	for _, c := range arg {
		if '0' <= c && c <= '9' {
			*p = preset(c - '0')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

func (p *preset) filter() {
	args := make([]string, 1, len(os.Args))
	args[0] = os.Args[0]
	for i, arg := range os.Args[1:] {
		if arg == "--" {
			args = append(args, os.Args[1+i:]...)
			break
		}
		arg = p.filterArg(arg)
		if arg != "-" {
			args = append(args, arg)
		}
	}
	os.Args = args
}

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

// options collects the flags controlling the file processing.
type options struct {
	stdout     bool
	decompress bool
	force      bool
	keep       bool
	list       bool
	noName     bool
	preset     int
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help        = pflag.BoolP("help", "h", false, "")
		stdout      = pflag.BoolP("stdout", "c", false, "")
		decompress  = pflag.BoolP("decompress", "d", false, "")
		force       = pflag.BoolP("force", "f", false, "")
		keep        = pflag.BoolP("keep", "k", false, "")
		list        = pflag.BoolP("list", "l", false, "")
		noName      = pflag.BoolP("no-name", "n", false, "")
		saveName    = pflag.BoolP("name", "N", false, "")
		quiet       = pflag.BoolP("quiet", "q", false, "")
		verbose     = pflag.BoolP("verbose", "v", false, "")
		showVersion = pflag.BoolP("version", "V", false, "")
		pr          = defaultPreset
	)
	pr.filter()
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("%s %s\n", cmdName, version)
		os.Exit(0)
	}
	switch {
	case *quiet:
		xlog.SetLevel(xlog.Quiet)
	case *verbose:
		xlog.SetLevel(xlog.Verbose)
	}
	opts := &options{
		stdout:     *stdout,
		decompress: *decompress || *list,
		force:      *force,
		keep:       *keep,
		list:       *list,
		noName:     *noName && !*saveName,
		preset:     int(pr),
	}

	files := pflag.Args()
	if len(files) == 0 {
		files = []string{"-"}
		opts.stdout = true
	}
	if opts.list {
		listFiles(files)
		return
	}
	for _, path := range files {
		processFile(path, opts)
	}
}
