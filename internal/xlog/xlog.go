// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xlog supports the output of warnings and debug messages for the
// command line tools of this module.
//
// The log package of the standard library doesn't support disabling output.
// The package-level functions here respect a verbosity level, so a quiet
// flag can suppress warnings and a verbose flag can enable progress
// messages.
package xlog

import (
	"fmt"
	"log"
	"os"
)

// Verbosity levels for the package-level output functions.
const (
	Quiet = iota
	Warnings
	Verbose
)

var (
	level  = Warnings
	logger = log.New(os.Stderr, "", 0)
)

// SetLevel sets the verbosity for the package-level output functions.
func SetLevel(n int) { level = n }

// SetPrefix sets the prefix, usually the command name, for the
// package-level output functions.
func SetPrefix(prefix string) { logger.SetPrefix(prefix) }

// Warn prints a warning message unless the level is Quiet.
func Warn(v ...interface{}) {
	if level >= Warnings {
		logger.Output(2, fmt.Sprint(v...))
	}
}

// Warnf prints a formatted warning message unless the level is Quiet.
func Warnf(format string, v ...interface{}) {
	if level >= Warnings {
		logger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Fatal prints an error message regardless of the level and exits with
// status 1.
func Fatal(v ...interface{}) {
	logger.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Info prints a progress message if the level is Verbose.
func Info(v ...interface{}) {
	if level >= Verbose {
		logger.Output(2, fmt.Sprint(v...))
	}
}

// Infof prints a formatted progress message if the level is Verbose.
func Infof(format string, v ...interface{}) {
	if level >= Verbose {
		logger.Output(2, fmt.Sprintf(format, v...))
	}
}
