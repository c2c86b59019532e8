// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ccutil

import (
	"path/filepath"
	"strings"
)

// gccNames are compiler front end names recognized as GCC compatible.
// Matching is by substring of the executable basename, so versioned or
// prefixed drivers like gcc-12 or x86_64-linux-gnu-g++ match too.
var gccNames = []string{"clang", "clang++", "gcc", "cc", "g++", "c++", "cpp"}

// GCCVisitor extracts defines and includes from GCC compatible command
// lines (clang, gcc and friends).
//
// It understands `-DNAME[=VALUE]` and `-D NAME[=VALUE]`, `-Idir` and
// `-I dir`, and `-isystem dir`, per
// https://gcc.gnu.org/onlinedocs/gcc/Directory-Options.html
// Other include-path flags (-iquote, -idirafter, -isysroot, -iprefix)
// and -U are skipped.
type GCCVisitor struct {
	inv *Invocation
	// capture is the list the next token is appended to when the
	// previous token was a bare -D, -I or -isystem.
	capture *[]string
}

// Matches reports whether exe's basename names a GCC compatible front end.
func (*GCCVisitor) Matches(exe string) bool {
	name := filepath.Base(exe)
	for _, cmd := range gccNames {
		if strings.Contains(name, cmd) {
			return true
		}
	}
	return false
}

// Start resets the visitor for a new command.
func (v *GCCVisitor) Start() {
	v.inv = &Invocation{}
	v.capture = nil
}

// Visit consumes one argument token.
func (v *GCCVisitor) Visit(arg string) {
	if v.capture != nil {
		*v.capture = append(*v.capture, arg)
		v.capture = nil
		return
	}
	switch arg {
	case "-D":
		v.capture = &v.inv.Defines
		return
	case "-I", "-isystem":
		v.capture = &v.inv.Includes
		return
	}
	switch {
	case strings.HasPrefix(arg, "-D"):
		v.inv.Defines = append(v.inv.Defines, arg[2:])
	case strings.HasPrefix(arg, "-I"):
		v.inv.Includes = append(v.inv.Includes, arg[2:])
	}
}

// Finish returns the invocation accumulated since Start.
func (v *GCCVisitor) Finish() *Invocation {
	inv := v.inv
	v.inv = nil
	v.capture = nil
	return inv
}
