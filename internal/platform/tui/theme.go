package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles of the menus around the board.
type Theme struct {
	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemDone    lipgloss.Style
	MenuDescription lipgloss.Style

	// Progress board styles
	BoardTitle  lipgloss.Style
	BoardBorder lipgloss.Style
	TabActive   lipgloss.Style
	TabIdle     lipgloss.Style
	EmptyNotice lipgloss.Style

	HelpText lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		BoardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		BoardBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		TabIdle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		EmptyNotice: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		HelpText: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme drops colors for terminals without them.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.MenuItemDone = lipgloss.NewStyle()
	theme.TabActive = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	return theme
}
