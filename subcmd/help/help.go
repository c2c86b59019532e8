// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package help provides the help subcommand.
package help

import (
	"flag"
	"fmt"

	"github.com/maruel/subcommands"
)

// Cmd returns the Command for the `help` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "help [<command>|-advanced]",
		ShortDesc: "prints help about a command",
		LongDesc:  "Prints commands and globally-available flags, or help about a specific command.\nUse -advanced to also show debugging commands.",
		CommandRun: func() subcommands.CommandRun {
			c := &helpRun{}
			c.Flags.BoolVar(&c.advanced, "advanced", false, "show advanced commands")
			return c
		},
	}
}

type helpRun struct {
	subcommands.CommandRunBase
	advanced bool
}

func (h *helpRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) == 0 {
		// Top-level help: the command list, then the global flags.
		subcommands.Usage(a.GetOut(), a, h.advanced)
		fmt.Println("Common flags accepted by all commands:")
		flag.PrintDefaults()
		return 0
	}
	// Per-command help comes from the default implementation.
	return subcommands.CmdHelp.CommandRun().Run(a, args, env)
}
