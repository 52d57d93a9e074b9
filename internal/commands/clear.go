package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"plptask/internal/app"
	"plptask/internal/config"
	"plptask/internal/exitcode"
	"plptask/internal/tasks"
)

func init() {
	Register(&ClearCmd{})
	Register(&ClearCompletedCmd{})
}

// errNotInteractive is returned when confirmation is needed but stdin is not a terminal.
var errNotInteractive = errors.New("confirmation required (use --yes)")

// ClearCmd implements the clear command.
type ClearCmd struct {
	yes bool
	in  io.Reader
}

// SetYes sets the yes flag (for testing).
func (c *ClearCmd) SetYes(yes bool) {
	c.yes = yes
}

// SetInput sets where the confirmation answer is read from (for testing).
func (c *ClearCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all tasks" }
func (c *ClearCmd) Usage() string     { return "plptask clear [--yes]" }
func (c *ClearCmd) NeedsApp() bool    { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	var confirmer tasks.Confirmer
	if c.yes {
		confirmer = tasks.ConfirmFunc(func(string) (bool, error) { return true, nil })
	} else {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		confirmer = &promptConfirmer{in: in, out: errOut}
	}

	cleared, err := a.Tasks.ClearAll(ctx, confirmer)
	if errors.Is(err, errNotInteractive) {
		fmt.Fprintf(errOut, "error: %v\n", errNotInteractive)
		return exitcode.UserError
	}
	if err != nil {
		return storageError(errOut, err)
	}

	if !cfg.Quiet {
		if cleared {
			fmt.Fprintln(out, "ok")
		} else {
			fmt.Fprintln(out, "cancelled")
		}
	}
	return exitcode.Success
}

// promptConfirmer asks on out and reads a y/n answer from in.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

// Confirm implements tasks.Confirmer. Anything other than "y" or "yes" is
// a refusal, including end of input.
func (p *promptConfirmer) Confirm(prompt string) (bool, error) {
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errNotInteractive
	}

	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ClearCompletedCmd implements the clear-completed command.
type ClearCompletedCmd struct{}

func (c *ClearCompletedCmd) Name() string      { return "clear-completed" }
func (c *ClearCompletedCmd) Aliases() []string { return []string{"prune"} }
func (c *ClearCompletedCmd) Synopsis() string  { return "Delete completed tasks" }
func (c *ClearCompletedCmd) Usage() string     { return "plptask clear-completed" }
func (c *ClearCompletedCmd) NeedsApp() bool    { return true }

func (c *ClearCompletedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCompletedCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	removed, err := a.Tasks.ClearCompleted(ctx)
	if err != nil {
		return storageError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%d removed)\n", removed)
	}
	return exitcode.Success
}
