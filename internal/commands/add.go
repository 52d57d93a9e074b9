package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"plptask/internal/app"
	"plptask/internal/config"
	"plptask/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "plptask add <text...>" }
func (c *AddCmd) NeedsApp() bool    { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run adds the joined args as a new task. Blank text is ignored without
// an error.
func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, added, err := a.Tasks.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return storageError(errOut, err)
	}
	if !added {
		a.Logger.Debug("ignored blank task text")
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (@%d)\n", task.ID)
	}
	return exitcode.Success
}

// storageError reports a storage failure.
func storageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}
