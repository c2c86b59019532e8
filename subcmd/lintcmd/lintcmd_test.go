// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package lintcmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringListFlag(t *testing.T) {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	var patterns stringListFlag
	fs.Var(&patterns, "include_only", "")
	err := fs.Parse([]string{"-include_only", "/src/.*", "-include_only", "/include/.*"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := stringListFlag{"/src/.*", "/include/.*"}
	if diff := cmp.Diff(want, patterns); diff != "" {
		t.Errorf("patterns: diff -want +got:\n%s", diff)
	}
}

func TestRunMissingFlags(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		c    *run
	}{
		{name: "no compilation_db", c: &run{}},
		{name: "no lint_path", c: &run{dbPath: "compile_commands.json"}},
		{name: "no lint_binary", c: &run{dbPath: "compile_commands.json", lintPath: "/opt/flexelint"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.c.run(ctx, nil)
			if !errors.Is(err, flag.ErrHelp) {
				t.Errorf("run=%v; want %v", err, flag.ErrHelp)
			}
		})
	}
}
