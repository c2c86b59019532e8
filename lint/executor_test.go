// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package lint

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/lintdb/compdb"
	"go.chromium.org/infra/build/lintdb/toolsupport/ccutil"
)

func TestArgs(t *testing.T) {
	e := &Executor{
		Path:   "/opt/flexelint",
		Binary: "flint",
		Args:   []string{"-w2"},
	}
	rec := &compdb.Record{
		Directory: "/b",
		File:      "/b/a.cpp",
		Invocation: &ccutil.Invocation{
			Defines:  []string{"FOO", "BAR=1"},
			Includes: []string{"inc", "gen"},
		},
	}
	got := e.args(rec)
	want := []string{
		"/opt/flexelint/flint",
		"-b",
		`-i"/opt/flexelint/lnt"`,
		"-w2",
		"-dFOO",
		"-dBAR=1",
		`-i"inc"`,
		`-i"gen"`,
		"/b/a.cpp",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("args: diff -want +got:\n%s", diff)
	}
}

func TestArgsNilInvocation(t *testing.T) {
	e := &Executor{Path: "/opt/flexelint", Binary: "flint"}
	rec := &compdb.Record{File: "a.cpp"}
	got := e.args(rec)
	want := []string{
		"/opt/flexelint/flint",
		"-b",
		`-i"/opt/flexelint/lnt"`,
		"a.cpp",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("args: diff -want +got:\n%s", diff)
	}
}

// fakeLint installs a shell script that echoes its arguments and
// exits with code.
func fakeLint(t *testing.T, dir string, code int) {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\necho \"lint $@\"\nexit %d\n", code)
	err := os.WriteFile(filepath.Join(dir, "flint"), []byte(script), 0755)
	if err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the lint binary")
	}
	ctx := context.Background()
	dir := t.TempDir()
	fakeLint(t, dir, 0)
	outDir := filepath.Join(dir, "out")

	db := &compdb.DB{
		Records: []*compdb.Record{
			{
				Directory:  outDir,
				File:       filepath.Join(dir, "a.cpp"),
				Invocation: &ccutil.Invocation{Defines: []string{"FOO"}},
			},
			{
				Directory:  outDir,
				File:       filepath.Join(dir, "b.cpp"),
				Invocation: &ccutil.Invocation{Includes: []string{"inc"}},
			},
		},
	}
	var buf bytes.Buffer
	e := &Executor{
		Path:   dir,
		Binary: "flint",
		Jobs:   2,
		Out:    &buf,
	}
	stats, results, err := e.Run(ctx, db)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total != 2 || stats.Failed != 0 {
		t.Errorf("stats=%+v; want Total=2 Failed=0", stats)
	}
	if len(results) != 2 {
		t.Fatalf("results=%d; want 2", len(results))
	}
	for i, res := range results {
		if res.ExitCode != 0 {
			t.Errorf("results[%d].ExitCode=%d; want 0\n%s", i, res.ExitCode, res.Output)
		}
		if res.TID < 1 || res.TID > 2 {
			t.Errorf("results[%d].TID=%d; want 1..2", i, res.TID)
		}
	}
	out := buf.String()
	if !strings.Contains(out, "-dFOO") {
		t.Errorf("output misses define flag:\n%s", out)
	}
	if !strings.Contains(out, `-i"inc"`) {
		t.Errorf("output misses include flag:\n%s", out)
	}
	// The record's directory was created before running lint in it.
	if _, err := os.Stat(outDir); err != nil {
		t.Errorf("record directory not created: %v", err)
	}
}

func TestRunLintFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the lint binary")
	}
	ctx := context.Background()
	dir := t.TempDir()
	fakeLint(t, dir, 3)

	db := &compdb.DB{
		Records: []*compdb.Record{
			{Directory: dir, File: "a.cpp"},
			{Directory: dir, File: "b.cpp"},
		},
	}
	var buf bytes.Buffer
	e := &Executor{Path: dir, Binary: "flint", Jobs: 1, Out: &buf}
	stats, results, err := e.Run(ctx, db)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Lint failures don't abort the run; both files were processed.
	if stats.Total != 2 || stats.Failed != 2 {
		t.Errorf("stats=%+v; want Total=2 Failed=2", stats)
	}
	for i, res := range results {
		if res.ExitCode != 3 {
			t.Errorf("results[%d].ExitCode=%d; want 3", i, res.ExitCode)
		}
	}
}

func TestRunMissingBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses exec error semantics of unix")
	}
	ctx := context.Background()
	dir := t.TempDir()
	db := &compdb.DB{Records: []*compdb.Record{{Directory: dir, File: "a.cpp"}}}
	var buf bytes.Buffer
	e := &Executor{Path: dir, Binary: "no_such_lint", Jobs: 1, Out: &buf}
	stats, results, err := e.Run(ctx, db)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 {
		t.Errorf("stats=%+v; want Failed=1", stats)
	}
	if results[0].ExitCode != -1 {
		t.Errorf("ExitCode=%d; want -1", results[0].ExitCode)
	}
	if !strings.Contains(buf.String(), "lintdb:") {
		t.Errorf("output misses error note:\n%s", buf.String())
	}
}
