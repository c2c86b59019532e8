// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ccutil extracts preprocessor defines and include search
// directories from compiler command lines of known dialects.
package ccutil

import "errors"

// ErrNoTokens is returned when a command has no tokens at all, i.e.
// there is not even an executable to match a dialect against.
var ErrNoTokens = errors.New("need at least one token")

// Invocation is the preprocessor-relevant part of one compiler
// invocation: its macro definitions and include search directories,
// both in command line order. Duplicates are kept as-is.
type Invocation struct {
	// Defines are macros in NAME or NAME=VALUE form.
	Defines []string
	// Includes are include search directories.
	Includes []string
}

// Visitor extracts an Invocation from the argument tokens of one
// compiler dialect.
//
// Start, Visit and Finish hold per-command state, so a Visitor must
// not be shared across commands processed concurrently.
type Visitor interface {
	// Matches reports whether the visitor understands the command
	// whose executable token is exe.
	Matches(exe string) bool
	// Start resets the visitor for a new command.
	Start()
	// Visit consumes one argument token. Tokens the dialect does not
	// recognize are skipped without error.
	Visit(arg string)
	// Finish returns the invocation accumulated since Start.
	Finish() *Invocation
}

// Visitors returns the dialect visitors in match order.
// The GCC dialect is tried before the MSVC dialect.
func Visitors() []Visitor {
	return []Visitor{&GCCVisitor{}, &MSVCVisitor{}}
}

// Derive runs the first visitor matching args[0] over the remaining
// args and returns the extracted invocation. It returns nil when no
// visitor matches; an unknown compiler is not an error.
// An empty args means the command had no usable token source, which
// indicates corrupt input upstream, so it fails with ErrNoTokens.
func Derive(args []string, visitors []Visitor) (*Invocation, error) {
	if len(args) == 0 {
		return nil, ErrNoTokens
	}
	for _, v := range visitors {
		if !v.Matches(args[0]) {
			continue
		}
		v.Start()
		for _, arg := range args[1:] {
			v.Visit(arg)
		}
		return v.Finish(), nil
	}
	return nil, nil
}
