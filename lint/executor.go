// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package lint runs an external lint binary over compilation database
// records, passing each record's derived defines and includes.
package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/infra/build/lintdb/compdb"
	"go.chromium.org/infra/build/lintdb/sync/semaphore"
	"go.chromium.org/infra/build/lintdb/toolsupport/shutil"
)

// Executor builds and runs lint invocations for compilation database
// records.
type Executor struct {
	// Path is the lint installation directory. The lint config dir
	// `<Path>/lnt` is always passed as an include.
	Path string
	// Binary is the lint executable name inside Path.
	Binary string
	// Args are extra arguments placed before the derived defines and
	// includes.
	Args []string

	// Jobs caps concurrent lint processes. 0 or less means NumCPU.
	Jobs int
	// Out receives each file's lint output as one write.
	// Defaults to os.Stdout.
	Out io.Writer
}

// Result is the outcome of linting one file.
type Result struct {
	File     string
	TID      int
	ExitCode int
	Start    time.Time
	Duration time.Duration
	Output   []byte
}

// Stats summarizes one lint run.
type Stats struct {
	Total  int
	Failed int
}

// args returns the lint command line for rec: the fixed flags, the
// user flags, one -d per define and one -i per include derived from
// the record's compile command, then the source file.
func (e *Executor) args(rec *compdb.Record) []string {
	args := []string{
		filepath.Join(e.Path, e.Binary),
		"-b",
		fmt.Sprintf(`-i"%s/lnt"`, e.Path),
	}
	args = append(args, e.Args...)
	if inv := rec.Invocation; inv != nil {
		for _, d := range inv.Defines {
			args = append(args, "-d"+d)
		}
		for _, dir := range inv.Includes {
			args = append(args, fmt.Sprintf(`-i"%s"`, dir))
		}
	}
	args = append(args, rec.File)
	return args
}

// Run lints all records of db, at most Jobs at a time, and writes each
// file's output to Out as one block, serialized. A lint process that
// fails is counted and reported but does not stop the run; only a
// canceled context does.
func (e *Executor) Run(ctx context.Context, db *compdb.DB) (Stats, []Result, error) {
	jobs := e.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	sema := semaphore.New("lint", jobs)
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	results := make([]Result, len(db.Records))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range db.Records {
		g.Go(func() error {
			return sema.Do(gctx, func(ctx context.Context) error {
				res := e.lintOne(ctx, rec)
				results[i] = res
				mu.Lock()
				defer mu.Unlock()
				_, err := out.Write(res.Output)
				if err != nil {
					return err
				}
				return ctx.Err()
			})
		})
	}
	err := g.Wait()
	log.Debugf("lint semaphore %s: reqs=%d capacity=%d", sema.Name(), sema.NumRequests(), sema.Capacity())
	stats := Stats{Total: len(results)}
	for _, res := range results {
		if res.ExitCode != 0 {
			stats.Failed++
		}
	}
	return stats, results, err
}

func (e *Executor) lintOne(ctx context.Context, rec *compdb.Record) Result {
	res := Result{
		File:  rec.File,
		TID:   semaphore.TID(ctx),
		Start: time.Now(),
	}
	args := e.args(rec)
	log.Debugf("run %s", shutil.Join(args))
	if rec.Directory != "" {
		err := os.MkdirAll(rec.Directory, 0755)
		if err != nil {
			res.ExitCode = -1
			res.Output = fmt.Appendf(nil, "lintdb: %v\n", err)
			res.Duration = time.Since(res.Start)
			return res
		}
	}
	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Dir = rec.Directory
	var buf bytes.Buffer
	c.Stdout = &buf
	c.Stderr = &buf
	err := c.Run()
	res.Duration = time.Since(res.Start)
	res.Output = buf.Bytes()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Output = fmt.Appendf(res.Output, "lintdb: %v\n", err)
		}
		log.Warnf("lint %s: %v", rec.File, err)
	}
	return res
}
