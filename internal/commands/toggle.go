package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"plptask/internal/app"
	"plptask/internal/config"
	"plptask/internal/exitcode"
	"plptask/internal/tasks"
)

func init() {
	Register(&ToggleCmd{})
	Register(&RmCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed or active again" }
func (c *ToggleCmd) Usage() string     { return "plptask toggle <ref>" }
func (c *ToggleCmd) NeedsApp() bool    { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, code := lookupTask(a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if _, err := a.Tasks.Toggle(ctx, task.ID); err != nil {
		return storageError(errOut, err)
	}

	if !cfg.Quiet {
		state := "completed"
		if task.Completed {
			state = "active"
		}
		fmt.Fprintf(out, "ok (%s)\n", state)
	}
	return exitcode.Success
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "plptask rm <ref>" }
func (c *RmCmd) NeedsApp() bool    { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, code := lookupTask(a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if _, err := a.Tasks.Delete(ctx, task.ID); err != nil {
		return storageError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// lookupTask parses the task reference in args and resolves it against the
// current list, reporting user errors to errOut.
func lookupTask(a *app.App, args []string, errOut io.Writer) (tasks.Task, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return tasks.Task{}, exitcode.UserError
	}

	task, err := ResolveTaskRef(a.Tasks.Tasks(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return tasks.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
