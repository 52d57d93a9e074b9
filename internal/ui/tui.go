// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"plptask/internal/app"
	"plptask/internal/posts"
	"plptask/internal/tasks"
	"plptask/internal/theme"
)

// ErrNoTTY is returned by Run when standard output is not a terminal.
var ErrNoTTY = errors.New("tui requires a terminal")

// Run starts the TUI over a and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTTY
	}

	m := newModel(ctx, a)
	defer m.close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type tab int

const (
	tabTasks tab = iota
	tabPosts
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeSearch
	modeConfirmClear
)

// postsMsg carries the result of a fetch started by fetch.
type postsMsg struct {
	req  posts.Request
	page posts.Page
	err  error
}

type model struct {
	ctx context.Context
	app *app.App

	tab    tab
	mode   mode
	filter tasks.Filter
	cursor int
	scroll int

	list   []tasks.Task
	styles theme.Styles

	input   textinput.Model
	search  textinput.Model
	spinner spinner.Model

	// loading counts fetches in flight.
	loading int
	status  string

	width, height int

	unsubscribe      func()
	unsubscribeTheme func()
}

func newModel(ctx context.Context, a *app.App) *model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "+ "
	input.CharLimit = 200

	search := textinput.New()
	search.Placeholder = "Search posts..."
	search.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &model{
		ctx:     ctx,
		app:     a,
		filter:  tasks.FilterAll,
		list:    a.Tasks.Tasks(),
		styles:  a.Theme.Styles(),
		input:   input,
		search:  search,
		spinner: sp,
	}
	m.unsubscribe = a.Tasks.Subscribe(func(list []tasks.Task) {
		m.list = list
		m.clampCursor()
	})
	m.unsubscribeTheme = a.Theme.Subscribe(func(t theme.Theme) {
		m.styles = theme.StylesFor(t, nil)
	})
	return m
}

func (m *model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	if m.unsubscribeTheme != nil {
		m.unsubscribeTheme()
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.app.Posts.SearchRequest("")))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		m.search.Width = msg.Width - 4
		return m, nil

	case postsMsg:
		m.loading--
		m.app.Posts.Apply(msg.req, msg.page, msg.err)
		if msg.req.Page == 1 && msg.err == nil {
			m.scroll = 0
		}
		m.clampScroll()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmClear:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.tab == tabTasks {
			m.tab = tabPosts
		} else {
			m.tab = tabTasks
		}
		return m, nil
	case "T":
		if _, err := m.app.Theme.Toggle(m.ctx); err != nil {
			m.fail(err)
		}
		return m, nil
	}

	if m.tab == tabPosts {
		return m.updatePosts(msg)
	}
	return m.updateTasks(msg)
}

func (m *model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "a", "n":
		m.mode = modeAdd
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.shown())-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		if t, ok := m.selected(); ok {
			if _, err := m.app.Tasks.Toggle(m.ctx, t.ID); err != nil {
				m.fail(err)
			}
		}
	case "d", "delete":
		if t, ok := m.selected(); ok {
			if _, err := m.app.Tasks.Delete(m.ctx, t.ID); err != nil {
				m.fail(err)
			}
		}
	case "1":
		m.setFilter(tasks.FilterAll)
	case "2":
		m.setFilter(tasks.FilterActive)
	case "3":
		m.setFilter(tasks.FilterCompleted)
	case "f":
		m.setFilter(nextFilter(m.filter))
	case "c":
		if _, err := m.app.Tasks.ClearCompleted(m.ctx); err != nil {
			m.fail(err)
		}
	case "C":
		if len(m.list) > 0 {
			m.mode = modeConfirmClear
		}
	}
	return m, nil
}

func (m *model) updatePosts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "s":
		m.mode = modeSearch
		m.search.SetValue(m.app.Posts.Query())
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "m", "l":
		// The next page is only known once the previous fetch is applied.
		if m.loading > 0 {
			return m, nil
		}
		if req, ok := m.app.Posts.NextRequest(); ok {
			return m, m.fetch(req)
		}
	case "r":
		if m.loading > 0 {
			return m, nil
		}
		return m, m.fetch(m.app.Posts.RefreshRequest())
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		m.scroll++
		m.clampScroll()
	}
	return m, nil
}

func (m *model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case "enter":
		if _, _, err := m.app.Tasks.Add(m.ctx, m.input.Value()); err != nil {
			m.fail(err)
			return m, nil
		}
		m.input.Reset()
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.search.Blur()
		return m, m.fetch(m.app.Posts.SearchRequest(m.search.Value()))
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	answer := msg.String() == "y" || msg.String() == "Y"
	_, err := m.app.Tasks.ClearAll(m.ctx, tasks.ConfirmFunc(func(string) (bool, error) {
		return answer, nil
	}))
	if err != nil {
		m.fail(err)
	}
	return m, nil
}

// fetch issues req off the update loop. The browser only changes when the
// resulting postsMsg is applied.
func (m *model) fetch(req posts.Request) tea.Cmd {
	m.loading++
	ctx, browser := m.ctx, m.app.Posts
	return func() tea.Msg {
		page, err := browser.Do(ctx, req)
		return postsMsg{req: req, page: page, err: err}
	}
}

func (m *model) fail(err error) {
	m.app.Logger.Error("storage error", "err", err)
	m.status = "storage error: " + err.Error()
}

func (m *model) setFilter(f tasks.Filter) {
	m.filter = f
	m.cursor = 0
}

func (m *model) shown() []tasks.Task {
	return tasks.Apply(m.list, m.filter)
}

func (m *model) selected() (tasks.Task, bool) {
	shown := m.shown()
	if m.cursor < 0 || m.cursor >= len(shown) {
		return tasks.Task{}, false
	}
	return shown[m.cursor], true
}

// clampScroll keeps the posts scroll offset on a rendered line.
func (m *model) clampScroll() {
	if n := len(m.postLines()); m.scroll > n-1 {
		m.scroll = max(n-1, 0)
	}
}

func (m *model) clampCursor() {
	n := len(m.shown())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(f tasks.Filter) tasks.Filter {
	all := tasks.Filters()
	for i, candidate := range all {
		if candidate == f {
			return all[(i+1)%len(all)]
		}
	}
	return tasks.FilterAll
}
