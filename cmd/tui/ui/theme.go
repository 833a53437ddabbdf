package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusedStyle = paneStyle.BorderForeground(lipgloss.Color("#7D56F4"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7D56F4"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD866")).Bold(true)
	runningBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFD866")).Padding(0, 1)
)

const (
	minPaneWidth  = 30
	minPaneHeight = 8
)
