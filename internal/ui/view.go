package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"plptask/internal/output"
	"plptask/internal/tasks"
)

func (m *model) View() string {
	var b strings.Builder
	m.writeTabs(&b)

	if m.tab == tabPosts {
		m.writePosts(&b)
	} else {
		m.writeTasks(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		output.FormatError(&b, m.styles, m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.helpLine()))
	return b.String()
}

func (m *model) writeTabs(b *strings.Builder) {
	names := []string{"Tasks", "Posts"}
	rendered := make([]string, len(names))
	for i, name := range names {
		if tab(i) == m.tab {
			rendered[i] = m.styles.TabActive.Render(name)
		} else {
			rendered[i] = m.styles.Tab.Render(name)
		}
	}
	title := m.styles.Title.Render("plptask")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(rendered, " ")))
	b.WriteString("  " + m.styles.Muted.Render(string(m.app.Theme.Current())) + "\n\n")
}

func (m *model) writeTasks(b *strings.Builder) {
	if m.mode == modeAdd {
		b.WriteString(m.input.View() + "\n\n")
	}

	shown := m.shown()
	output.FormatListHeader(b, m.styles, len(shown), m.filter)

	if len(shown) == 0 {
		output.FormatMuted(b, m.styles, tasks.EmptyMessage(len(m.list), m.filter))
	}
	for i, t := range shown {
		mark := "[ ]"
		text := m.styles.Text.Render(t.Text)
		if t.Completed {
			mark = "[x]"
			text = m.styles.Done.Render(t.Text)
		}
		line := fmt.Sprintf("%s %s", mark, text)
		if i == m.cursor && m.mode == modeNormal {
			line = m.styles.Selected.Render("> " + mark + " " + t.Text)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(output.Separator + "\n")
	output.FormatStats(b, m.styles, tasks.Compute(m.list))
	if len(m.list) > 0 {
		output.FormatMuted(b, m.styles, output.PersistenceNote)
	}

	if m.mode == modeConfirmClear {
		b.WriteString("\n" + m.styles.Error.Render(tasks.ClearAllPrompt+" [y/N]") + "\n")
	}
}

func (m *model) writePosts(b *strings.Builder) {
	browser := m.app.Posts

	if m.mode == modeSearch {
		b.WriteString(m.search.View() + "\n\n")
	}

	b.WriteString(m.window(m.postLines()))

	if m.loading > 0 {
		b.WriteString(m.spinner.View() + " Loading posts...\n")
	}
	if err := browser.Err(); err != nil {
		output.FormatError(b, m.styles, err.Error())
	}
	output.FormatPostsSummary(b, m.styles, browser.Query(), len(browser.Posts()), browser.Total(), browser.HasMore())
}

// postLines renders every accumulated post as a card, one entry per line.
func (m *model) postLines() []string {
	var body strings.Builder
	for _, post := range m.app.Posts.Posts() {
		var card strings.Builder
		output.FormatPost(&card, m.styles, post)
		body.WriteString(m.styles.Card.Render(strings.TrimRight(card.String(), "\n")) + "\n")
	}
	if body.Len() == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
}

// window returns the lines visible at the current scroll offset, leaving
// room for the header and footer. The offset is clamped in Update.
func (m *model) window(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	lines = lines[min(m.scroll, len(lines)-1):]

	if avail := m.height - 10; m.height > 0 && avail > 0 && len(lines) > avail {
		lines = lines[:avail]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *model) helpLine() string {
	switch m.mode {
	case modeAdd:
		return "enter add • esc cancel"
	case modeSearch:
		return "enter search • esc cancel"
	case modeConfirmClear:
		return "y confirm • any other key cancels"
	}
	if m.tab == tabPosts {
		return "/ search • m load more • r refresh • ↑/↓ scroll • tab tasks • T theme • q quit"
	}
	return "a add • space toggle • d delete • 1/2/3 filter • c clear completed • C clear all • tab posts • T theme • q quit"
}
