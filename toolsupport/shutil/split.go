// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil provides shell command line utilities.
package shutil

import "bytes"

// Split splits a command line into whitespace separated tokens.
// A double quote toggles string mode: spaces inside a quoted region do
// not split, and the quote characters themselves are not part of the
// output tokens. Runs of spaces produce no empty tokens. An
// unterminated quote keeps string mode on until the end of the line,
// so malformed quoting never fails; it just yields one long token.
func Split(cmdline string) []string {
	var args []string
	sb := bytes.NewBuffer(make([]byte, 0, len(cmdline)))
	inquote := false
	for i := 0; i < len(cmdline); i++ {
		switch ch := cmdline[i]; {
		case ch == '"':
			inquote = !inquote
		case ch == ' ' && !inquote:
			if sb.Len() > 0 {
				args = append(args, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteByte(ch)
		}
	}
	if sb.Len() > 0 {
		args = append(args, sb.String())
	}
	return args
}
