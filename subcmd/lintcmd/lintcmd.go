// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package lintcmd implements the subcommand `lint` which runs the
// configured lint binary over every record of a compilation database.
package lintcmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/lintdb/buildconfig"
	"go.chromium.org/infra/build/lintdb/compdb"
	"go.chromium.org/infra/build/lintdb/lint"
	"go.chromium.org/infra/build/lintdb/toolsupport/ccutil"
	"go.chromium.org/infra/build/lintdb/ui"
)

const usage = `run lint over a compilation database

 $ lintdb lint -compilation_db out/compile_commands.json \
     -lint_path /opt/flexelint -lint_binary flint \
     [-jobs N] [-include_only <re>] [-exclude_all <re>] \
     [-config lint.star] [-report report.json.gz] [-trace trace.json] \
     [args...]

args are passed to the lint binary before the derived defines and
includes. -include_only and -exclude_all may be repeated; patterns
match source file paths from the start.
`

// Cmd returns the Command for the `lint` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "lint <args>...",
		ShortDesc: "run lint over a compilation database",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	started time.Time

	dbPath      string
	lintPath    string
	lintBinary  string
	jobs        int
	includeOnly stringListFlag
	excludeAll  stringListFlag
	configFile  string
	reportFile  string
	traceFile   string
}

func (c *run) init() {
	c.Flags.StringVar(&c.dbPath, "compilation_db", "", "path to the compilation database (compile_commands.json)")
	c.Flags.StringVar(&c.lintPath, "lint_path", "", "lint installation directory")
	c.Flags.StringVar(&c.lintBinary, "lint_binary", "", "lint executable name inside -lint_path")
	c.Flags.IntVar(&c.jobs, "jobs", runtime.NumCPU(), "number of concurrent lint processes")
	c.Flags.Var(&c.includeOnly, "include_only", "only lint files matching this pattern (repeatable)")
	c.Flags.Var(&c.excludeAll, "exclude_all", "skip files matching this pattern (repeatable)")
	c.Flags.StringVar(&c.configFile, "config", "", "Starlark config file; flags override its values")
	c.Flags.StringVar(&c.reportFile, "report", "", "write a gzip compressed JSON report to this file")
	c.Flags.StringVar(&c.traceFile, "trace", "", "write a Chrome trace of lint executions to this file")
}

// Run runs the `lint` subcommand.
func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	c.started = time.Now()
	ctx := cli.GetContext(a, c, env)
	stats, err := c.run(ctx, args)
	dur := ui.FormatDuration(time.Since(c.started))
	if err != nil {
		var errLint lintError
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		case errors.As(err, &errLint):
			msgPrefix := "Lint Failure"
			if ui.IsTerminal() {
				dur = ui.SGR(ui.Bold, dur)
				msgPrefix = ui.SGR(ui.BackgroundRed, msgPrefix)
			}
			fmt.Fprintf(os.Stderr, "%6s %s: %v\n", dur, msgPrefix, err)
		default:
			msgPrefix := "Error"
			if ui.IsTerminal() {
				msgPrefix = ui.SGR(ui.BackgroundRed, msgPrefix)
			}
			fmt.Fprintf(os.Stderr, "%6s %s: %v\n", dur, msgPrefix, err)
		}
		return 1
	}
	msgPrefix := "Lint Succeeded"
	if ui.IsTerminal() {
		dur = ui.SGR(ui.Bold, dur)
		msgPrefix = ui.SGR(ui.Green, msgPrefix)
	}
	fmt.Fprintf(os.Stderr, "%6s %s: %d files\n", dur, msgPrefix, stats.Total)
	return 0
}

func (c *run) run(ctx context.Context, args []string) (lint.Stats, error) {
	log.Debugf("cpu brand=%q physicalCores=%d logicalCores=%d", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	if c.dbPath == "" {
		return lint.Stats{}, fmt.Errorf("missing -compilation_db: %w", flag.ErrHelp)
	}
	lintArgs := args
	if c.configFile != "" {
		cfg, err := buildconfig.New(ctx, c.configFile, c.flagValues())
		if err != nil {
			return lint.Stats{}, err
		}
		if c.lintPath == "" {
			c.lintPath = cfg.LintPath
		}
		if c.lintBinary == "" {
			c.lintBinary = cfg.LintBinary
		}
		lintArgs = append(append([]string{}, cfg.Args...), args...)
		c.includeOnly = append(stringListFlag(cfg.IncludeOnly), c.includeOnly...)
		c.excludeAll = append(stringListFlag(cfg.ExcludeAll), c.excludeAll...)
	}
	if c.lintPath == "" {
		return lint.Stats{}, fmt.Errorf("missing -lint_path: %w", flag.ErrHelp)
	}
	if c.lintBinary == "" {
		return lint.Stats{}, fmt.Errorf("missing -lint_binary: %w", flag.ErrHelp)
	}
	c.checkResourceLimits(ctx)

	runID := uuid.New().String()
	log.Infof("lint run id=%s db=%s jobs=%d", runID, c.dbPath, c.jobs)

	db, err := compdb.Load(ctx, c.dbPath, ccutil.Visitors())
	if err != nil {
		return lint.Stats{}, err
	}
	log.Infof("loaded %d records from %s", len(db.Records), c.dbPath)
	db, err = db.Filter(c.includeOnly, c.excludeAll)
	if err != nil {
		return lint.Stats{}, err
	}
	log.Infof("%d records after filtering", len(db.Records))

	e := &lint.Executor{
		Path:   c.lintPath,
		Binary: c.lintBinary,
		Args:   lintArgs,
		Jobs:   c.jobs,
	}
	stats, results, err := e.Run(ctx, db)
	if err != nil {
		return stats, err
	}
	if c.reportFile != "" {
		rep := lint.MakeReport(runID, c.started, c.jobs, stats, results)
		if err := rep.WriteFile(c.reportFile); err != nil {
			return stats, err
		}
	}
	if c.traceFile != "" {
		if err := lint.WriteTrace(c.traceFile, c.started, results); err != nil {
			return stats, err
		}
	}
	if stats.Failed > 0 {
		return stats, lintError{failed: stats.Failed, total: stats.Total}
	}
	return stats, nil
}

// flagValues exposes flag values to the Starlark config.
func (c *run) flagValues() map[string]string {
	return map[string]string{
		"compilation_db": c.dbPath,
		"lint_path":      c.lintPath,
		"lint_binary":    c.lintBinary,
		"jobs":           fmt.Sprintf("%d", c.jobs),
	}
}

type lintError struct {
	failed int
	total  int
}

func (e lintError) Error() string {
	return fmt.Sprintf("%d of %d files reported findings", e.failed, e.total)
}

// stringListFlag collects the values of a repeatable string flag.
type stringListFlag []string

func (f *stringListFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *stringListFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}
