// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"plptask/internal/posts"
	"plptask/internal/tasks"
	"plptask/internal/theme"
)

const (
	// Separator is the rule printed between sections.
	Separator = "------------"

	// PersistenceNote is printed under a non-empty task list.
	PersistenceNote = "Tasks are saved locally and persist between runs."
)

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {TEXT}\n" with "[x]" for completed tasks.
func FormatTask(w io.Writer, st theme.Styles, num int, task tasks.Task) {
	text := normalizeTitle(task.Text)
	if task.Completed {
		fmt.Fprintf(w, "%4d  [x] %s\n", num, st.Done.Render(text))
		return
	}
	fmt.Fprintf(w, "%4d  [ ] %s\n", num, st.Text.Render(text))
}

// FormatListHeader formats the heading above the task list.
// The filter is shown unless it is FilterAll.
func FormatListHeader(w io.Writer, st theme.Styles, shown int, filter tasks.Filter) {
	title := fmt.Sprintf("Your Tasks (%d)", shown)
	if filter != tasks.FilterAll {
		title += fmt.Sprintf(" [%s]", filter)
	}
	fmt.Fprintln(w, st.Title.Render(title))
	fmt.Fprintln(w, Separator)
}

// FormatStats formats the counters line.
func FormatStats(w io.Writer, st theme.Styles, s tasks.Stats) {
	fmt.Fprintf(w, "Total: %s  Active: %s  Completed: %s  Remaining: %s\n",
		st.StatAll.Render(fmt.Sprint(s.All)),
		st.StatActive.Render(fmt.Sprint(s.Active)),
		st.StatCompleted.Render(fmt.Sprint(s.Completed)),
		st.StatRemaining.Render(fmt.Sprint(s.Remaining)),
	)
}

// FormatMuted formats an informational line.
func FormatMuted(w io.Writer, st theme.Styles, msg string) {
	fmt.Fprintln(w, st.Muted.Render(msg))
}

// FormatTaskList renders the full list view: header, the tasks matching
// filter numbered by their position in the whole list, the empty-state
// message when nothing matches, and the counters.
func FormatTaskList(w io.Writer, st theme.Styles, list []tasks.Task, filter tasks.Filter) {
	shown := tasks.Apply(list, filter)
	FormatListHeader(w, st, len(shown), filter)

	if len(shown) == 0 {
		FormatMuted(w, st, tasks.EmptyMessage(len(list), filter))
	} else {
		for i, task := range list {
			if filter.Match(task) {
				FormatTask(w, st, i+1, task)
			}
		}
	}

	fmt.Fprintln(w, Separator)
	FormatStats(w, st, tasks.Compute(list))
	if len(list) > 0 {
		FormatMuted(w, st, PersistenceNote)
	}
}

// FormatPost formats a post card.
func FormatPost(w io.Writer, st theme.Styles, post posts.Post) {
	fmt.Fprintln(w, st.Title.Render(normalizeTitle(post.Title)))
	for _, line := range strings.Split(strings.TrimSpace(post.Body), "\n") {
		fmt.Fprintf(w, "    %s\n", st.Text.Render(line))
	}
	fmt.Fprintln(w, st.Muted.Render(fmt.Sprintf("    Post ID: %d | User ID: %d", post.ID, post.UserID)))
}

// FormatPostsSummary formats the lines below the posts: the search summary
// for a query, then whether more pages remain.
func FormatPostsSummary(w io.Writer, st theme.Styles, query string, loaded, total int, hasMore bool) {
	if query != "" {
		FormatMuted(w, st, fmt.Sprintf("Showing results for %q (%d of %d posts)", query, loaded, total))
	}
	switch {
	case loaded == 0 && query != "":
		FormatMuted(w, st, fmt.Sprintf("No posts found matching %q", query))
	case hasMore:
		FormatMuted(w, st, fmt.Sprintf("%d of %d posts loaded, more available.", loaded, total))
	case loaded > 0:
		FormatMuted(w, st, fmt.Sprintf("You've reached the end! %d of %d posts loaded.", loaded, total))
	}
}

// FormatError formats an error line.
func FormatError(w io.Writer, st theme.Styles, msg string) {
	fmt.Fprintln(w, st.Error.Render("error: "+msg))
}

// normalizeTitle normalizes a task or post title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
