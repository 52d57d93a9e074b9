package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"plptask/internal/app"
	"plptask/internal/config"
	"plptask/internal/exitcode"
	"plptask/internal/output"
	"plptask/internal/tasks"
)

func init() {
	Register(&ListCmd{})
	Register(&StatsCmd{})
}

// ListCmd implements the list command.
// Handles both `plptask` (no args) and `plptask list`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "plptask list [--filter all|active|completed]" }
func (c *ListCmd) NeedsApp() bool    { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasks.FilterAll), "")
	fs.StringVar(&c.filter, "f", string(tasks.FilterAll), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := tasks.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	output.FormatTaskList(out, a.Theme.StylesFor(out), a.Tasks.Tasks(), filter)
	return exitcode.Success
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task counters" }
func (c *StatsCmd) Usage() string     { return "plptask stats" }
func (c *StatsCmd) NeedsApp() bool    { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	output.FormatStats(out, a.Theme.StylesFor(out), tasks.Compute(a.Tasks.Tasks()))
	return exitcode.Success
}
