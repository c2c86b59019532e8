// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build unix

package lintcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"golang.org/x/sys/unix"

	"go.chromium.org/infra/build/lintdb/ui"
)

func (c *run) checkResourceLimits(ctx context.Context) {
	var lim unix.Rlimit
	err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim)
	if err != nil {
		log.Warnf("failed to get rlimit: %v", err)
		return
	}
	// each lint proc holds a few fds (pipes plus its own config files).
	nfile := uint64(c.jobs) * 8
	log.Infof("rlimit.nofile=%d,%d required=%d?", lim.Cur, lim.Max, nfile)
	if lim.Cur >= nfile {
		return
	}
	cur := lim.Cur
	lim.Cur = min(nfile, lim.Max)
	err = unix.Setrlimit(unix.RLIMIT_NOFILE, &lim)
	if err != nil {
		log.Warnf("failed to raise rlimit.nofile from %d: %v", cur, err)
	}
	if lim.Cur < nfile {
		msg := fmt.Sprintf("WARNING: low file limit=%d. lint may fail with too many open files", lim.Cur)
		if ui.IsTerminal() {
			msg = ui.SGR(ui.Yellow, msg)
		}
		fmt.Fprintln(os.Stderr, msg)
	}
}
