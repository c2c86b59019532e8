// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package compdb loads JSON compilation databases.
//
// A compilation database is a JSON array of objects, one per compiled
// source file, with string fields "directory", "command", "file" and
// an optional string array "arguments".
// https://clang.llvm.org/docs/JSONCompilationDatabase.html
package compdb

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"go.chromium.org/infra/build/lintdb/toolsupport/ccutil"
	"go.chromium.org/infra/build/lintdb/toolsupport/shutil"
)

// Record is one compilation database entry: one compiled source file.
type Record struct {
	// Directory is the working directory of the compile step.
	Directory string
	// Command is the compile command as a single shell quoted line.
	Command string
	// File is the main source file, absolute or relative to Directory.
	File string
	// Arguments is the compile command as a pre-split argument vector.
	// When non-empty it takes precedence over Command.
	Arguments []string

	// Invocation is derived from the command tokens at load time.
	// It stays nil when no dialect visitor recognized the compiler.
	Invocation *ccutil.Invocation
}

// tokens returns the record's authoritative argument tokens.
func (r *Record) tokens() []string {
	if len(r.Arguments) > 0 {
		return r.Arguments
	}
	return shutil.Split(r.Command)
}

// finish derives the record's invocation once all fields are set.
func (r *Record) finish(visitors []ccutil.Visitor) error {
	inv, err := ccutil.Derive(r.tokens(), visitors)
	if err != nil {
		return fmt.Errorf("record file=%q directory=%q: %w", r.File, r.Directory, err)
	}
	r.Invocation = inv
	return nil
}

// DB is the ordered list of records of one compilation database.
// It is read-only after Load, so it is safe for concurrent readers.
type DB struct {
	Records []*Record
}

// Load reads the compilation database fname, deriving each record's
// invocation via the first matching visitor. The document is streamed,
// so a large database is never held in memory at once.
//
// A document that is not an array, or an empty array, yields an empty
// DB without error. Malformed JSON, and a record with no usable token
// source (ccutil.ErrNoTokens), abort the whole load.
func Load(ctx context.Context, fname string, visitors []ccutil.Visitor) (*DB, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	db, err := read(bufio.NewReader(f), visitors)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fname, err)
	}
	return db, nil
}
