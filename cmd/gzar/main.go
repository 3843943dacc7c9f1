// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gzar maintains archives of concatenated gzip members. The name
// of each member is stored in the FNAME field of its header.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ogier/pflag"
	"github.com/ulikunitz/gz"
	"github.com/ulikunitz/gz/flate"
	"github.com/ulikunitz/gz/internal/xlog"
)

const usageStr = `Usage: gzar COMMAND ARCHIVE [FILE]...
Maintain an archive of concatenated gzip members.

Commands:
  c   create ARCHIVE from the given FILEs
  x   extract all members, or only the named members, from ARCHIVE
  t   list the members of ARCHIVE

Options:
  -C, --directory DIR  change to DIR before reading or writing files
  -h, --help           give this help
  -q, --quiet          suppress all warnings
  -v, --verbose        verbose mode
  -V, --version        display version string
  -0 ... -9            compression preset; default is 6

Report bugs using <https://github.com/ulikunitz/gz/issues>.
`

const version = "0.1.0"

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		dir         = pflag.StringP("directory", "C", "", "")
		help        = pflag.BoolP("help", "h", false, "")
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

	args := pflag.Args()
	if len(args) < 2 {
		usage(os.Stderr)
		os.Exit(1)
	}
	command, archive, files := args[0], args[1], args[2:]

	if *dir != "" {
		if err := os.Chdir(*dir); err != nil {
			xlog.Fatal(err)
		}
	}

	var err error
	switch command {
	case "c":
		if len(files) == 0 {
			err = errors.New("no files to archive")
		} else {
			err = create(archive, files, int(pr))
		}
	case "x":
		err = extract(archive, files)
	case "t":
		err = list(archive)
	default:
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		xlog.Fatal(err)
	}
}

// create writes the archive file containing one gzip member per input file.
func create(archive string, files []string, level int) (err error) {
	if level == 0 {
		level = flate.NoCompression
	}
	w, err := os.OpenFile(archive,
		os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	var zw *gz.Writer
	for _, path := range files {
		if zw, err = appendMember(w, zw, path, level); err != nil {
			return err
		}
	}
	return err
}

// appendMember compresses a single file into the next gzip member of the
// archive. The member name is the base of the file path.
func appendMember(w io.Writer, zw *gz.Writer, path string, level int) (*gz.Writer, error) {
	f, err := os.Open(path)
	if err != nil {
		return zw, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return zw, err
	}
	cfg := gz.WriterConfig{Level: level}
	cfg.Name = filepath.Base(path)
	cfg.ModTime = fi.ModTime()
	if zw == nil {
		if zw, err = gz.NewWriterConfig(w, cfg); err != nil {
			return zw, err
		}
	} else if err = zw.ResetConfig(w, cfg); err != nil {
		return zw, err
	}
	if _, err = io.Copy(zw, f); err != nil {
		return zw, err
	}
	if err = zw.Close(); err != nil {
		return zw, err
	}
	xlog.Infof("a %s", cfg.Name)
	return zw, nil
}

// memberName validates the stored member name. Absolute paths and path
// traversal are rejected.
func memberName(h *gz.Header) (string, error) {
	name := h.Name
	if name == "" {
		return "", errors.New("member has no name")
	}
	if filepath.IsAbs(name) || strings.Contains(name, "/") ||
		strings.Contains(name, `\`) || name == ".." {
		return "", fmt.Errorf("invalid member name %q", name)
	}
	return name, nil
}

// extract walks the archive members and writes every selected member to a
// file named after its FNAME field.
func extract(archive string, names []string) error {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := gz.NewReader(f)
	if err != nil {
		return err
	}
	zr.Multistream(false)
	for {
		name, err := memberName(&zr.Header)
		if err != nil {
			return err
		}
		if len(selected) == 0 || selected[name] {
			if err = extractMember(zr, name); err != nil {
				return err
			}
			delete(selected, name)
		}
		if err = zr.NextMember(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
	}
	for name := range selected {
		xlog.Warnf("member %s not found", name)
	}
	return nil
}

func extractMember(zr *gz.Reader, name string) error {
	w, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	if _, err = io.Copy(w, zr); err != nil {
		w.Close()
		os.Remove(name)
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	if !zr.Header.ModTime.IsZero() {
		os.Chtimes(name, zr.Header.ModTime, zr.Header.ModTime)
	}
	xlog.Infof("x %s", name)
	return nil
}

// list prints name, size and modification time for every archive member.
func list(archive string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := gz.NewReader(f)
	if err != nil {
		return err
	}
	zr.Multistream(false)
	for {
		name := zr.Header.Name
		if name == "" {
			name = "<unnamed>"
		}
		size, err := io.Copy(io.Discard, zr)
		if err != nil {
			return err
		}
		mtime := "-"
		if !zr.Header.ModTime.IsZero() {
			mtime = zr.Header.ModTime.Format("2006-01-02 15:04")
		}
		fmt.Printf("%12d %16s %s\n", size, mtime, name)
		if err = zr.NextMember(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
