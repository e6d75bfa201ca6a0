// Package styles provides shared lipgloss styles for git-org's output.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette colors
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Success is used for completed moves and placed repositories (green)
	Success color.Color = lipgloss.Color("82")

	// Warning is used for skipped entries and misplaced repositories (orange)
	Warning color.Color = lipgloss.Color("214")

	// Error is used for failures (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for entries git-org ignores (gray)
	Muted color.Color = lipgloss.Color("240")
)

var (
	Bold         = lipgloss.NewStyle().Bold(true)
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)
