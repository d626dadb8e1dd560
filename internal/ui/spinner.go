// Package ui shows load progress on stderr while the stats document is fetched.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY returns true if stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stderr.Fd())
}

// --- Plain text fallback ---

// PlainStatus prints load messages to a callback function.
// Used when stderr is not a TTY (e.g., piped output).
type PlainStatus struct {
	print func(string)
}

// NewPlainStatus creates a new PlainStatus with the given print callback.
func NewPlainStatus(print func(string)) *PlainStatus {
	return &PlainStatus{print: print}
}

// Start prints that the document is being loaded from source.
func (p *PlainStatus) Start(source string) {
	p.print(fmt.Sprintf("Loading stats from %s...", source))
}

// Done prints the settled state.
func (p *PlainStatus) Done(state, reason string) {
	if reason != "" {
		p.print(fmt.Sprintf("Stats %s: %s", state, reason))
		return
	}
	p.print(fmt.Sprintf("Stats %s.", state))
}

// --- TUI spinner ---

// DoneMsg is sent to the bubbletea program once the fetch has settled.
type DoneMsg struct {
	State  string
	Reason string
}

type model struct {
	spinner spinner.Model
	source  string
	state   string
	reason  string
	done    bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))
)

// NewSpinnerModel creates the bubbletea model shown while source is fetched.
func NewSpinnerModel(source string) model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = titleStyle
	return model{spinner: s, source: source}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case DoneMsg:
		m.done = true
		m.state = msg.State
		m.reason = msg.Reason
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		if m.reason != "" {
			return fmt.Sprintf("  %s %s\n", errStyle.Render("Stats "+m.state+":"), infoStyle.Render(m.reason))
		}
		return fmt.Sprintf("  %s\n", titleStyle.Render("Stats "+m.state+"."))
	}
	return fmt.Sprintf("  %s %s\n", m.spinner.View(), infoStyle.Render("Loading stats from "+m.source+"..."))
}

// RunSpinner creates and returns a bubbletea program for the load spinner.
// The program outputs to stderr so rendered output on stdout stays clean.
func RunSpinner(source string) *tea.Program {
	m := NewSpinnerModel(source)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	return p
}
