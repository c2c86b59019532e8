// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Lintdb runs an external lint binary over every entry of a JSON
// compilation database, passing each source file's real preprocessor
// defines and include search paths to the lint binary.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/lintdb/subcmd/dump"
	"go.chromium.org/infra/build/lintdb/subcmd/help"
	"go.chromium.org/infra/build/lintdb/subcmd/lintcmd"
	"go.chromium.org/infra/build/lintdb/subcmd/version"
)

const lintdbVersion = "0.9"

func main() {
	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	if buildinfo, ok := debug.ReadBuildInfo(); ok {
		log.Debugf("buildinfo: path=%q go=%s", buildinfo.Path, buildinfo.GoVersion)
	}

	app := &cli.Application{
		Name:  "lintdb",
		Title: fmt.Sprintf("lintdb %s: run lint over a compilation database", lintdbVersion),
		Context: func(ctx context.Context) context.Context {
			ctx, cancel := context.WithCancel(ctx)
			signals.HandleInterrupt(cancel)
			return ctx
		},
		Commands: []*subcommands.Command{
			lintcmd.Cmd(),
			dump.Cmd(),
			version.Cmd(lintdbVersion),
			help.Cmd(),
		},
	}
	os.Exit(subcommands.Run(app, nil))
}
