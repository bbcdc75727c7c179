package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("205")
	colorAccent  = lipgloss.Color("63")
	colorText    = lipgloss.Color("252")
	colorDim     = lipgloss.Color("241")
	colorDone    = lipgloss.Color("42")
	colorError   = lipgloss.Color("196")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	tabStyle       = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorAccent).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	positionStyle  = lipgloss.NewStyle().Foreground(colorDim)
	textStyle      = lipgloss.NewStyle().Foreground(colorText)
	doneStyle      = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	checkStyle     = lipgloss.NewStyle().Foreground(colorDone)
	emptyStyle     = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle    = lipgloss.NewStyle().Foreground(colorError)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
)
