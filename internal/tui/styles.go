package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("179")
	muted  = lipgloss.Color("245")
	danger = lipgloss.Color("203")

	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	filterStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeFilterStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true).Foreground(accent)
	cardTitleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	descStyle         = lipgloss.NewStyle().Foreground(muted).PaddingLeft(3)
	statusStyle       = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	emptyStyle        = lipgloss.NewStyle().Italic(true).Foreground(muted).MarginTop(1)
	toastStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	errorToastStyle   = toastStyle.BorderForeground(danger).Foreground(danger)
	detailStyle       = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	labelStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent)
)
