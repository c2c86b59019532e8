// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package dump implements the subcommand `dump` which prints the
// defines and includes derived from each compilation database record.
// It is a debugging aid for checking what lint would be invoked with.
package dump

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/lintdb/compdb"
	"go.chromium.org/infra/build/lintdb/toolsupport/ccutil"
)

const usage = `print derived invocations of a compilation database

 $ lintdb dump -compilation_db out/compile_commands.json \
     [-include_only <re>] [-exclude_all <re>]
`

// Cmd returns the Command for the `dump` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "dump <args>...",
		ShortDesc: "print derived invocations of a compilation database",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dbPath      string
	includeOnly stringListFlag
	excludeAll  stringListFlag
}

func (c *run) init() {
	c.Flags.StringVar(&c.dbPath, "compilation_db", "", "path to the compilation database (compile_commands.json)")
	c.Flags.Var(&c.includeOnly, "include_only", "only show files matching this pattern (repeatable)")
	c.Flags.Var(&c.excludeAll, "exclude_all", "skip files matching this pattern (repeatable)")
}

// Run runs the `dump` subcommand.
func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context) error {
	if c.dbPath == "" {
		return fmt.Errorf("missing -compilation_db: %w", flag.ErrHelp)
	}
	db, err := compdb.Load(ctx, c.dbPath, ccutil.Visitors())
	if err != nil {
		return err
	}
	db, err = db.Filter(c.includeOnly, c.excludeAll)
	if err != nil {
		return err
	}
	for _, rec := range db.Records {
		fmt.Printf("%s:\n", rec.File)
		fmt.Printf("    in        %s\n", rec.Directory)
		if rec.Invocation == nil {
			fmt.Printf("    no matching dialect\n")
			continue
		}
		fmt.Printf("    defines:  %s\n", strings.Join(rec.Invocation.Defines, "\t"))
		fmt.Printf("    includes: %s\n", strings.Join(rec.Invocation.Includes, "\t"))
	}
	return nil
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
