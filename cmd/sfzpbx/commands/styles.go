// SPDX-License-Identifier: EPL-2.0

package commands

import "github.com/charmbracelet/lipgloss"

// Colors are dropped automatically when output is not a terminal.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)
