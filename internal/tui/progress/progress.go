// Package progress shows a spinner and the crawl status line while a search
// runs.
package progress

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
)

// Interval is how often the status line is refreshed.
const Interval = 200 * time.Millisecond

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})
)

type tickMsg struct{}

// DoneMsg stops the display.
type DoneMsg struct{}

type Model struct {
	spinner   spinner.Model
	heartbeat func() tea.Cmd
	interval  time.Duration
	line      string
	done      bool
}

// New returns a model that polls heartbeat every interval for a new status
// line.
func New(heartbeat func() tea.Cmd, interval time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	if interval <= 0 {
		interval = Interval
	}
	return Model{spinner: s, heartbeat: heartbeat, interval: interval}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.poll())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}

	case tickMsg:
		return m, m.poll()

	case state.ProgressMsg:
		m.line = msg.Line
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) poll() tea.Cmd {
	if m.heartbeat == nil {
		return nil
	}
	return m.heartbeat()
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + statusStyle.Render(m.line) + "\n"
}

// Line returns the last status line received.
func (m Model) Line() string {
	return m.line
}

// Run executes work while rendering the display to out. The display stops
// as soon as work returns, and work's error is returned. If the display
// cannot start, work still runs to completion.
func Run(out io.Writer, heartbeat func() tea.Cmd, work func() error) error {
	p := tea.NewProgram(New(heartbeat, Interval), tea.WithOutput(out), tea.WithInput(nil))

	errc := make(chan error, 1)
	go func() {
		errc <- work()
		p.Send(DoneMsg{})
	}()

	_, _ = p.Run()
	return <-errc
}
