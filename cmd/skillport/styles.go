package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"skillport/internal/construct"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// severityStyle picks the display style for a warning severity.
func severityStyle(s construct.Severity) lipgloss.Style {
	switch s {
	case construct.SeverityUnsupported:
		return errStyle
	case construct.SeverityDegraded:
		return warnStyle
	}
	return dimStyle
}

// printWarnings renders a warning list, indented under its document.
func printWarnings(ws []construct.Warning) {
	for _, w := range ws {
		style := severityStyle(w.Severity)
		fmt.Printf("    %s %s: %s\n", style.Render("["+string(w.Severity)+"]"), w.Kind, w.Message)
	}
}
