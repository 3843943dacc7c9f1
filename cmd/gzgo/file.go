// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/gz"
	"github.com/ulikunitz/gz/flate"
	"github.com/ulikunitz/gz/internal/xlog"
)

const gzSuffix = ".gz"

// packer writes the transformed content of a reader to a writer.
type packer interface {
	outputPaths(path string) (outputPath, tmpPath string, err error)
	pack(w io.Writer, r io.Reader, opts *options, fi os.FileInfo) error
}

// gzPacker compresses a file into the gzip format.
type gzPacker struct{}

func (p gzPacker) outputPaths(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if path == "" {
		return "", "", errors.New("path is empty")
	}
	if strings.HasSuffix(path, gzSuffix) {
		return "", "", fmt.Errorf("path %s has already suffix %s",
			path, gzSuffix)
	}
	out = path + gzSuffix
	return out, tmpName(out), nil
}

func (p gzPacker) pack(w io.Writer, r io.Reader, opts *options, fi os.FileInfo) error {
	level := opts.preset
	if level == 0 {
		level = flate.NoCompression
	}
	cfg := gz.WriterConfig{Level: level}
	if fi != nil {
		cfg.ModTime = fi.ModTime()
		if !opts.noName {
			cfg.Name = filepath.Base(fi.Name())
		}
	}
	zw, err := gz.NewWriterConfig(w, cfg)
	if err != nil {
		return err
	}
	if _, err = io.Copy(zw, r); err != nil {
		return err
	}
	return zw.Close()
}

// gzUnpacker decompresses a gzip file.
type gzUnpacker struct{}

func (u gzUnpacker) outputPaths(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if !strings.HasSuffix(path, gzSuffix) {
		return "", "", fmt.Errorf("path %s has no suffix %s",
			path, gzSuffix)
	}
	out = path[:len(path)-len(gzSuffix)]
	if out == "" {
		return "", "", fmt.Errorf("path %s has no base part", path)
	}
	return out, tmpName(out), nil
}

func (u gzUnpacker) pack(w io.Writer, r io.Reader, opts *options, fi os.FileInfo) error {
	zr, err := gz.NewReader(r)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, zr)
	return err
}

// tmpName converts the output path into the name of the temporary file the
// data is written to before the atomic rename.
func tmpName(path string) string {
	return path + ".gzgo-tmp"
}

// signalHandler removes the temporary file if the program is interrupted.
// The returned channel must be closed to release the handler.
func signalHandler(tmpPath string) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case <-sigch:
			if tmpPath != "-" {
				os.Remove(tmpPath)
			}
			os.Exit(7)
		}
	}()
	return quit
}

// packFile opens input and output files and runs the packer.
func packFile(pck packer, path, tmpPath string, opts *options) (err error) {
	var r *os.File
	var fi os.FileInfo
	if path == "-" {
		r = os.Stdin
	} else {
		if fi, err = os.Lstat(path); err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		if r, err = os.Open(path); err != nil {
			return err
		}
	}
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()

	var w *os.File
	if tmpPath == "-" {
		w = os.Stdout
	} else {
		if opts.force {
			os.Remove(tmpPath)
		}
		w, err = os.OpenFile(tmpPath,
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := w.Close(); err == nil {
				err = cerr
			}
		}()
	}

	err = pck.pack(w, r, opts, fi)
	return err
}

// userPathError represents a path error presentable to a user. In contrast
// to os.PathError it drops the name of the operation that failed.
type userPathError struct {
	Path string
	Err  error
}

func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// userError converts a path error into an error message acceptable for
// gzgo users.
func userError(err error) error {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

// processFile compresses or decompresses a single file following the
// options.
func processFile(path string, opts *options) {
	var pck packer
	if opts.decompress {
		pck = gzUnpacker{}
	} else {
		pck = gzPacker{}
	}
	outputPath, tmpPath, err := pck.outputPaths(path)
	if err != nil {
		xlog.Warn(userError(err))
		return
	}
	if opts.stdout {
		outputPath, tmpPath = "-", "-"
	}
	if outputPath != "-" {
		if _, err = os.Lstat(outputPath); err == nil && !opts.force {
			xlog.Warnf("file %s exists", outputPath)
			return
		}
	}
	defer func() {
		if tmpPath != "-" {
			os.Remove(tmpPath)
		}
	}()
	quit := signalHandler(tmpPath)
	defer close(quit)

	if err = packFile(pck, path, tmpPath, opts); err != nil {
		xlog.Warn(userError(err))
		return
	}
	if tmpPath != "-" && outputPath != "-" {
		if err = os.Rename(tmpPath, outputPath); err != nil {
			xlog.Warn(userError(err))
			return
		}
	}
	xlog.Infof("%s -> %s", path, outputPath)
	if !opts.keep && !opts.stdout && path != "-" {
		if err = os.Remove(path); err != nil {
			xlog.Warn(userError(err))
		}
	}
}

// listFiles prints sizes, ratio and name for every gzip file given.
func listFiles(paths []string) {
	fmt.Printf("%12s %12s %6s  %s\n",
		"compressed", "uncompressed", "ratio", "uncompressed_name")
	for _, path := range paths {
		if err := listFile(path); err != nil {
			xlog.Warn(userError(err))
		}
	}
}

// countReader counts the bytes read through it.
type countReader struct {
	r io.Reader
	n int64
}

func (cr *countReader) Read(p []byte) (n int, err error) {
	n, err = cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

func listFile(path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	cr := &countReader{r: r}
	zr, err := gz.NewReader(cr)
	if err != nil {
		return err
	}
	uncompressed, err := io.Copy(io.Discard, zr)
	if err != nil {
		return err
	}
	name := zr.Header.Name
	if name == "" && path != "-" {
		name = strings.TrimSuffix(path, gzSuffix)
	}
	ratio := 0.0
	if uncompressed > 0 {
		ratio = 100 * (1 - float64(cr.n)/float64(uncompressed))
	}
	fmt.Printf("%12d %12d %5.1f%%  %s\n", cr.n, uncompressed, ratio, name)
	return nil
}
