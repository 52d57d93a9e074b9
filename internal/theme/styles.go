package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors for one theme.
type Palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color
}

var palettes = map[Theme]Palette{
	Light: {
		Text:      "#111827",
		Muted:     "#6B7280",
		Primary:   "#2563EB",
		Success:   "#16A34A",
		Danger:    "#DC2626",
		Accent:    "#9333EA",
		Warning:   "#EA580C",
		Border:    "#E5E7EB",
		Highlight: "#DBEAFE",
	},
	Dark: {
		Text:      "#F9FAFB",
		Muted:     "#9CA3AF",
		Primary:   "#60A5FA",
		Success:   "#4ADE80",
		Danger:    "#F87171",
		Accent:    "#C084FC",
		Warning:   "#FB923C",
		Border:    "#374151",
		Highlight: "#1E3A8A",
	},
}

// Styles are the rendering styles shared by the CLI and the TUI.
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Done      lipgloss.Style
	Error     lipgloss.Style
	Selected  lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Card      lipgloss.Style

	StatAll       lipgloss.Style
	StatActive    lipgloss.Style
	StatCompleted lipgloss.Style
	StatRemaining lipgloss.Style
}

// StylesFor builds the style set for t using renderer r.
// A nil r uses the default renderer (standard output).
func StylesFor(t Theme, r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p, ok := palettes[t]
	if !ok {
		p = palettes[Default]
	}
	return Styles{
		Theme: t,

		Title: r.NewStyle().
			Foreground(p.Text).
			Bold(true),

		Text: r.NewStyle().
			Foreground(p.Text),

		Muted: r.NewStyle().
			Foreground(p.Muted),

		Done: r.NewStyle().
			Foreground(p.Muted).
			Strikethrough(true),

		Error: r.NewStyle().
			Foreground(p.Danger).
			Bold(true),

		Selected: r.NewStyle().
			Background(p.Highlight).
			Foreground(p.Text),

		TabActive: r.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Tab: r.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),

		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		StatAll:       r.NewStyle().Foreground(p.Primary).Bold(true),
		StatActive:    r.NewStyle().Foreground(p.Success).Bold(true),
		StatCompleted: r.NewStyle().Foreground(p.Accent).Bold(true),
		StatRemaining: r.NewStyle().Foreground(p.Warning).Bold(true),
	}
}

// WriterStyles builds the style set for t rendered to w. Colors are dropped
// when w is not a terminal.
func WriterStyles(t Theme, w io.Writer) Styles {
	return StylesFor(t, lipgloss.NewRenderer(w))
}
