package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// consoleStyles colours the status lines of a session. The renderer is bound to
// the session writer, so non-terminal writers get plain text.
type consoleStyles struct {
	header  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
}

func newConsoleStyles(w io.Writer) consoleStyles {
	r := lipgloss.NewRenderer(w)
	return consoleStyles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		err:     r.NewStyle().Foreground(lipgloss.Color("9")),
		info:    r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}
