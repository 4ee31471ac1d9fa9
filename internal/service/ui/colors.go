package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette colors only, so the styles degrade cleanly on terminals
// without truecolor.
var (
	// TitleStyle renders section titles in bold cyan.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle renders command lines and arguments in green.
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle renders descriptions in gray, dimmer than the rest.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle renders flag names in yellow.
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
