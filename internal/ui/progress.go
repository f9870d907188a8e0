package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/pitchgram/internal/cli"
)

// FileStarted is sent when a worker picks up a file
type FileStarted struct {
	Index int
	Total int
	Path  string
}

// FileFinished is sent when a file has been written or has failed
type FileFinished struct {
	Index   int
	Total   int
	Path    string
	Output  string
	Label   string // Artist/title from tags, or the file name
	Width   int
	Height  int
	Elapsed time.Duration
	Err     error
}

// BatchComplete signals that every file has been handled
type BatchComplete struct {
	Total   int
	Failed  int
	Elapsed time.Duration
}

// quitMsg is sent when it's time to quit after showing completion
type quitMsg struct{}

// recentLimit is the number of finished files listed under the bar
const recentLimit = 6

// Model is the Bubbletea model for a batch run
type Model struct {
	progressBar progress.Model

	total    int
	done     int
	failed   int
	active   map[int]string
	recent   []FileFinished
	complete *BatchComplete

	startTime       time.Time
	width           int
	completionDelay time.Duration
}

// NewModel creates a progress model for total files
func NewModel(total int) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.JetBlue), string(cli.JetRed)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		total:           total,
		active:          make(map[int]string),
		startTime:       time.Now(),
		completionDelay: 500 * time.Millisecond,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case FileStarted:
		m.active[msg.Index] = msg.Path
		return m, nil

	case FileFinished:
		delete(m.active, msg.Index)
		m.done++
		if msg.Err != nil {
			m.failed++
		}
		m.recent = append(m.recent, msg)
		if len(m.recent) > recentLimit {
			m.recent = m.recent[len(m.recent)-recentLimit:]
		}
		return m, nil

	case BatchComplete:
		m.complete = &msg
		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return quitMsg{}
		})

	case quitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// Done returns the number of finished files and how many of them failed
func (m *Model) Done() (done, failed int) {
	return m.done, m.failed
}

// View renders the UI
func (m *Model) View() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.JetYellow).
		Render("Pitchgram 🎼")
	s.WriteString(title)
	s.WriteString("\n")

	phase := "Rendering spectrograms"
	if m.complete != nil {
		phase = "Complete"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(cli.JetCyan).Render(phase))
	s.WriteString("\n\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.done) / float64(m.total)
	}
	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(ratio))
	s.WriteString(fmt.Sprintf("  %d/%d", m.done, m.total))
	s.WriteString("\n")

	elapsed := time.Since(m.startTime)
	if m.complete != nil {
		elapsed = m.complete.Elapsed
	}
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("Time: %s  │  Failed: %d", cli.FormatDuration(elapsed), m.failed)))
	s.WriteString("\n")

	if len(m.active) > 0 {
		s.WriteString("\n")
		indices := make([]int, 0, len(m.active))
		for i := range m.active {
			indices = append(indices, i)
		}
		sort.Ints(indices)
		for _, i := range indices {
			s.WriteString(lipgloss.NewStyle().Foreground(cli.JetGreen).Render("▶ "))
			s.WriteString(filepath.Base(m.active[i]))
			s.WriteString("\n")
		}
	}

	if len(m.recent) > 0 {
		s.WriteString("\n")
		for _, f := range m.recent {
			s.WriteString(renderFinished(f))
			s.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.JetBlue).
		Padding(1, 2).
		Render(strings.TrimRight(s.String(), "\n"))
}

func renderFinished(f FileFinished) string {
	if f.Err != nil {
		return lipgloss.NewStyle().Foreground(cli.JetRed).Render("✗ ") +
			filepath.Base(f.Path) + lipgloss.NewStyle().Faint(true).Render(": "+f.Err.Error())
	}
	return lipgloss.NewStyle().Foreground(cli.JetGreen).Render("✓ ") +
		f.Label + lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("  %dx%d  %s", f.Width, f.Height, cli.FormatDuration(f.Elapsed)))
}
