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
	"plptask/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or change the color theme" }
func (c *ThemeCmd) Usage() string     { return "plptask theme [light|dark|toggle]" }
func (c *ThemeCmd) NeedsApp() bool    { return true }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(out, a.Theme.Current())
		return exitcode.Success
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	var err error
	if strings.EqualFold(args[0], "toggle") {
		_, err = a.Theme.Toggle(ctx)
	} else {
		var t theme.Theme
		t, err = theme.Parse(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		err = a.Theme.Set(ctx, t)
	}
	if err != nil {
		return storageError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "theme: %s\n", a.Theme.Current())
	}
	return exitcode.Success
}
