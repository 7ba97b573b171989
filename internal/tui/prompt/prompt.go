// Package prompt asks for the start page once.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Label is shown in front of the input.
const Label = "Enter the Wikipedia page URL to start from: "

// ErrCancelled is returned when the user leaves the prompt with esc or
// ctrl+c.
var ErrCancelled = errors.New("prompt: cancelled")

var (
	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585b70"))
	helpStyle = dimStyle.Copy()
)

type Model struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

func New(label string) Model {
	t := textinput.New()
	t.Prompt = label
	t.Placeholder = "https://en.wikipedia.org/wiki/Footloose_(1984_film)"
	t.PromptStyle = focusedStyle
	t.PlaceholderStyle = dimStyle
	t.Cursor.Style = focusedStyle
	t.CharLimit = 512
	t.Focus()

	return Model{input: t}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "ctrl+d", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.input.View() + "\n" + helpStyle.Render("(enter to search, esc to cancel)") + "\n"
}

// Value returns the trimmed input.
func (m Model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m Model) Done() bool      { return m.done }
func (m Model) Cancelled() bool { return m.cancelled }

// Read asks for one line. On a terminal it runs an interactive text input
// rendered to out; otherwise the label is written to out and one line is
// read from in.
func Read(in io.Reader, out io.Writer, label string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return readInteractive(f, out, label)
	}
	return readLine(in, out, label)
}

func readInteractive(in *os.File, out io.Writer, label string) (string, error) {
	final, err := tea.NewProgram(New(label), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return "", fmt.Errorf("prompt: unexpected model type %T", final)
	}
	if m.Cancelled() {
		return "", ErrCancelled
	}

	// The program clears its view on exit; echo the answer so the
	// transcript shows what was searched.
	fmt.Fprintf(out, "%s%s\n", label, m.Value())
	return m.Value(), nil
}

func readLine(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
