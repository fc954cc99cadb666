package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorIdle    lipgloss.Color = "#45475a"
	colorText    lipgloss.Color = "#ffffff"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorError   lipgloss.Color = "#f38ba8"
)

var (
	boxStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true).
			Padding(1, 6).
			Align(lipgloss.Center)
	labelStyle  = lipgloss.NewStyle().Foreground(colorSubtext).PaddingLeft(1)
	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext).PaddingLeft(1)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).PaddingLeft(1)
	helpStyle   = lipgloss.NewStyle().PaddingLeft(1)
)
