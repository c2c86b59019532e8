// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ccutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// MSVCVisitor extracts defines and includes from cl.exe command lines.
//
// cl accepts flags with either / or - prefix, and compilation
// databases emit the single-token forms `/Idir` and `/DNAME[=VALUE]`.
// https://learn.microsoft.com/en-us/cpp/build/reference/compiler-options-listed-by-category
type MSVCVisitor struct {
	inv *Invocation
}

// Matches reports whether exe's basename is exactly cl.exe.
// Unlike the GCC dialect this is not a substring match; cl is too
// short a name to match loosely.
func (*MSVCVisitor) Matches(exe string) bool {
	if runtime.GOOS != "windows" {
		exe = strings.ReplaceAll(exe, `\`, "/")
	}
	return filepath.Base(exe) == "cl.exe"
}

// Start resets the visitor for a new command.
func (v *MSVCVisitor) Start() {
	v.inv = &Invocation{}
}

// Visit consumes one argument token.
func (v *MSVCVisitor) Visit(arg string) {
	if len(arg) < 2 {
		return
	}
	switch arg[:2] {
	case "/I", "-I":
		v.inv.Includes = append(v.inv.Includes, arg[2:])
	case "/D", "-D":
		v.inv.Defines = append(v.inv.Defines, arg[2:])
	}
}

// Finish returns the invocation accumulated since Start.
func (v *MSVCVisitor) Finish() *Invocation {
	inv := v.inv
	v.inv = nil
	return inv
}
