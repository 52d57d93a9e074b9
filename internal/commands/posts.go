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
)

func init() {
	Register(&PostsCmd{})
}

// PostsCmd implements the posts command.
type PostsCmd struct {
	query string
	pages int
}

// SetQuery sets the search query (for testing).
func (c *PostsCmd) SetQuery(q string) {
	c.query = q
}

// SetPages sets how many pages to load (for testing).
func (c *PostsCmd) SetPages(n int) {
	c.pages = n
}

func (c *PostsCmd) Name() string      { return "posts" }
func (c *PostsCmd) Aliases() []string { return []string{"search"} }
func (c *PostsCmd) Synopsis() string  { return "Browse and search remote posts" }
func (c *PostsCmd) Usage() string     { return "plptask posts [--query <q>] [--pages <n>]" }
func (c *PostsCmd) NeedsApp() bool    { return true }

func (c *PostsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.query, "query", "", "")
	fs.StringVar(&c.query, "q", "", "")
	fs.IntVar(&c.pages, "pages", 1, "")
}

// Run searches for the query and keeps loading pages until the requested
// number is reached or no more exist. Posts loaded before a failure are
// still printed.
func (c *PostsCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	pages := c.pages
	if pages == 0 {
		pages = 1
	}
	if pages < 1 {
		fmt.Fprintf(errOut, "error: invalid page count: %d\n", pages)
		return exitcode.UserError
	}

	browser := a.Posts
	err := browser.Search(ctx, c.query)
	for loaded := 1; err == nil && loaded < pages && browser.HasMore(); loaded++ {
		err = browser.LoadMore(ctx)
	}

	st := a.Theme.StylesFor(out)
	list := browser.Posts()
	for i, post := range list {
		if i > 0 {
			fmt.Fprintln(out)
		}
		output.FormatPost(out, st, post)
	}

	if err != nil {
		output.FormatError(errOut, a.Theme.StylesFor(errOut), err.Error())
		return exitcode.BackendError
	}

	if len(list) > 0 {
		fmt.Fprintln(out, output.Separator)
	}
	output.FormatPostsSummary(out, st, browser.Query(), len(list), browser.Total(), browser.HasMore())
	return exitcode.Success
}
