// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package buildconfig loads lint run configuration from a Starlark
// file, so a project can keep its lint setup next to its sources
// instead of repeating it on every command line.
package buildconfig

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const configEntryPoint = "init"

// Config is a lint run configuration.
// Command line flags override config values.
type Config struct {
	// LintPath is the lint installation directory.
	LintPath string
	// LintBinary is the lint executable name inside LintPath.
	LintBinary string
	// Args are extra lint arguments.
	Args []string
	// IncludeOnly and ExcludeAll are record filter patterns.
	IncludeOnly []string
	ExcludeAll  []string
}

// New loads the config file fname.
//
// The file must define init(ctx) returning a struct with any of the
// attributes lint_path, lint_binary, args, include_only, exclude_all:
//
//	def init(ctx):
//	    return struct(
//	        lint_path = "/opt/flexelint",
//	        lint_binary = "flint",
//	        args = ["-w2"],
//	        exclude_all = [".*/third_party/.*"],
//	    )
//
// ctx.flags carries the command line flag values, so a config can
// adjust to them.
func New(ctx context.Context, fname string, flags map[string]string) (*Config, error) {
	thread := &starlark.Thread{
		Name: "load",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("config: %s", msg)
		},
	}
	predeclared := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
	globals, err := starlark.ExecFile(thread, fname, nil, predeclared)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	initFn, ok := globals[configEntryPoint]
	if !ok {
		return nil, fmt.Errorf("config %s: %s is not defined", fname, configEntryPoint)
	}
	flagsValue := starlark.NewDict(len(flags))
	for k, v := range flags {
		err := flagsValue.SetKey(starlark.String(k), starlark.String(v))
		if err != nil {
			return nil, err
		}
	}
	ctxValue := starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"flags": flagsValue,
	})
	v, err := starlark.Call(thread, initFn, starlark.Tuple{ctxValue}, nil)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	st, ok := v.(*starlarkstruct.Struct)
	if !ok {
		return nil, fmt.Errorf("config %s: %s returned %s; want struct", fname, configEntryPoint, v.Type())
	}
	cfg := &Config{}
	for _, attr := range []struct {
		name string
		dst  *string
	}{
		{"lint_path", &cfg.LintPath},
		{"lint_binary", &cfg.LintBinary},
	} {
		if err := stringAttr(st, attr.name, attr.dst); err != nil {
			return nil, fmt.Errorf("config %s: %w", fname, err)
		}
	}
	for _, attr := range []struct {
		name string
		dst  *[]string
	}{
		{"args", &cfg.Args},
		{"include_only", &cfg.IncludeOnly},
		{"exclude_all", &cfg.ExcludeAll},
	} {
		if err := stringsAttr(st, attr.name, attr.dst); err != nil {
			return nil, fmt.Errorf("config %s: %w", fname, err)
		}
	}
	log.Debugf("config %s: %+v", fname, cfg)
	return cfg, nil
}

// stringAttr stores the struct attribute name in dst.
// A missing attribute leaves dst as is.
func stringAttr(st *starlarkstruct.Struct, name string, dst *string) error {
	v, err := st.Attr(name)
	if err != nil || v == nil {
		return nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("%s: got %s, want str", name, v.Type())
	}
	*dst = s
	return nil
}

// stringsAttr appends the elements of the struct attribute name to dst.
// A missing attribute leaves dst as is.
func stringsAttr(st *starlarkstruct.Struct, name string, dst *[]string) error {
	v, err := st.Attr(name)
	if err != nil || v == nil {
		return nil
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return fmt.Errorf("%s: got %s, want list of str", name, v.Type())
	}
	iter := iterable.Iterate()
	defer iter.Done()
	var x starlark.Value
	for iter.Next(&x) {
		s, ok := starlark.AsString(x)
		if !ok {
			return fmt.Errorf("%s: element %s, want str", name, x.Type())
		}
		*dst = append(*dst, s)
	}
	return nil
}
