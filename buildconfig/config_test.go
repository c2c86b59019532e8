// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "lint.star")
	err := os.WriteFile(fname, []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	fname := writeConfig(t, `
def init(ctx):
    args = ["-w2"]
    if ctx.flags.get("jobs") == "1":
        args.append("-verbose")
    return struct(
        lint_path = "/opt/flexelint",
        lint_binary = "flint",
        args = args,
        exclude_all = [".*/third_party/.*"],
    )
`)
	cfg, err := New(ctx, fname, map[string]string{"jobs": "1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := &Config{
		LintPath:   "/opt/flexelint",
		LintBinary: "flint",
		Args:       []string{"-w2", "-verbose"},
		ExcludeAll: []string{".*/third_party/.*"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config: diff -want +got:\n%s", diff)
	}
}

func TestNewPartial(t *testing.T) {
	ctx := context.Background()
	fname := writeConfig(t, `
def init(ctx):
    return struct(lint_binary = "pclp64")
`)
	cfg, err := New(ctx, fname, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := &Config{LintBinary: "pclp64"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config: diff -want +got:\n%s", diff)
	}
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name    string
		content string
	}{
		{name: "no init", content: `x = 1`},
		{name: "syntax error", content: `def init(ctx)`},
		{name: "not a struct", content: "def init(ctx):\n    return 42\n"},
		{name: "bad attr type", content: "def init(ctx):\n    return struct(lint_path = 42)\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fname := writeConfig(t, tc.content)
			_, err := New(ctx, fname, nil)
			if err == nil {
				t.Error("New succeeded; want error")
			}
		})
	}
}
