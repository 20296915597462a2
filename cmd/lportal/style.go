package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Console styles for the CLI's own user-facing output. The core package
// never imports lipgloss: it logs warnings with stdlib log by default, and
// the CLI receives them through lportal.Options.WarnSink and styles them
// here, keeping the conversion package free of any CLI-layer dependency.
var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue   = lipgloss.NewStyle().Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// stat renders one "label: value" line for the convert/watch summary.
func stat(label string, value any) string {
	return styleLabel.Render(label+": ") + styleValue.Render(fmt.Sprint(value))
}
