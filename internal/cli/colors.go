package cli

import "github.com/charmbracelet/lipgloss"

// Spectrogram palette, following the jet colour ramp from cold to hot.
// Shared by the CLI and the progress TUI.
var (
	JetBlue   = lipgloss.Color("#1E5AFF") // Quiet bins
	JetCyan   = lipgloss.Color("#00D7E6") // Low energy
	JetGreen  = lipgloss.Color("#3CDC5A") // Mid energy
	JetYellow = lipgloss.Color("#FFD700") // Loud
	JetRed    = lipgloss.Color("#E0301E") // Peaks

	// Accent colours
	SlateGray = lipgloss.Color("#6C7A89") // Subtle text
)
