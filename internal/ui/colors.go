package ui

import "github.com/charmbracelet/lipgloss"

// Palette holds the lipgloss styles shared by every view.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	like  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette() Palette {
	return Palette{
		title: NewBold("205"),
		ok:    NewStyle("42"),
		err:   NewStyle("196"),
		warn:  NewStyle("214"),
		like:  NewStyle("211"),
		help:  NewStyle("241"),
	}
}

func NewStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func NewBold(color string) lipgloss.Style {
	return NewStyle(color).Bold(true)
}

var styles = NewPalette()
