package main

import (
	"context"
	"fmt"
	"io"

	"github.com/agnivade/levenshtein"
)

type command struct {
	name string
	help string
	run  func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{name: "run", help: "start the timer (default)", run: runTimer},
	{name: "history", help: "list recent intervals: history [n]", run: runHistory},
	{name: "stats", help: "summarize today", run: runStats},
	{name: "reset", help: "clear the interval journal", run: runReset},
	{name: "config", help: "config path | config init [--force]", run: runConfig},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// suggest returns the closest command name to a mistyped one, or "" when
// nothing is close.
func suggest(name string) string {
	best, bestDist := "", 3
	for _, c := range commands {
		if d := levenshtein.ComputeDistance(name, c.name); d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, titleStyle.Render("usage: tomato [command]"))
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.help)
	}
}
