package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Done      lipgloss.Style
	Pending   lipgloss.Style
	DeleteHit lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
	Empty     lipgloss.Style
}

func newStyles(accent string) styles {
	color := lipgloss.Color(accent)
	muted := lipgloss.Color("241")

	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(color).
			Padding(0, 1),
		Cursor:    lipgloss.NewStyle().Foreground(color).Bold(true),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Pending:   lipgloss.NewStyle(),
		DeleteHit: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Status:    lipgloss.NewStyle().Foreground(color),
		Help:      lipgloss.NewStyle().Foreground(muted),
		Empty:     lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
