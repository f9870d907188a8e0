package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	// Title style - bold yellow with note emoji
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(JetYellow).
			MarginBottom(1)

	// Subtitle style - muted gray
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SlateGray).
			Italic(true)

	// Section header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(JetCyan).
			MarginTop(1).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(JetGreen)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(JetRed)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(JetYellow)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(SlateGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(JetBlue).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(TitleStyle.Render("Pitchgram 🎼"))
	fmt.Println(SubtitleStyle.Render(Description))
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Pitchgram 🎼"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintFileError reports a failed input without stopping the run
func PrintFileError(path string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", ErrorStyle.Render("✗"), path, err)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Println(BoxStyle.Render(content))
}

// PrintBatchSummary prints the totals for a run in a box
func PrintBatchSummary(total, failed int, elapsed time.Duration) {
	var b strings.Builder

	if failed == 0 {
		b.WriteString(SuccessStyle.Render("✓ All spectrograms written"))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %d of %d files failed", failed, total)))
	}
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Files:   "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", total)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Written: "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", total-failed)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Time:    "))
	b.WriteString(ValueStyle.Render(FormatDuration(elapsed)))

	PrintBox(b.String())
}
