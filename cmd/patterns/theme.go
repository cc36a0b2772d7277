package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/patterns/pkg/catalog"
)

// Catppuccin Mocha, the same palette as internal/errors.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSky)
	diagramStyle = lipgloss.NewStyle().Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1)
)

// categoryColor is the accent for a category, matching the web dots.
func categoryColor(c catalog.Category) lipgloss.Color {
	switch c {
	case catalog.Creational:
		return colorGreen
	case catalog.Structural:
		return colorBlue
	case catalog.Behavioral:
		return colorPeach
	}
	return colorMauve
}

func categoryStyle(c catalog.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(categoryColor(c)).Bold(true)
}
