// Package tui is the interactive shell around a selection session.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/byterings/gus/internal/selection"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model maps key presses onto session events. Current names the profile the
// repository already uses, if any.
type Model struct {
	session *selection.Session
	state   selection.State
	outcome *selection.Outcome
	current string
}

// New returns a picker over session
func New(session *selection.Session, current string) Model {
	return Model{
		session: session,
		state:   session.State(),
		current: current,
	}
}

// Outcome returns what the confirm did, or nil if the picker was left
func (m Model) Outcome() *selection.Outcome {
	return m.outcome
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	ev, ok := eventFor(key)
	if !ok {
		return m, nil
	}

	state, out := m.session.Handle(ev)
	m.state = state
	if out != nil {
		m.outcome = out
	}
	if state.Done {
		return m, tea.Quit
	}
	return m, nil
}

func eventFor(key tea.KeyMsg) (selection.Event, bool) {
	switch key.String() {
	case "up", "k":
		return selection.NavigateUp, true
	case "down", "j":
		return selection.NavigateDown, true
	case "enter":
		return selection.Confirm, true
	case "esc", "ctrl+c", "q":
		return selection.Exit, true
	}
	return 0, false
}

func (m Model) View() string {
	if m.state.Done {
		return ""
	}

	var b strings.Builder
	last := len(m.state.Entries) - 1
	for i, e := range m.state.Entries {
		if e.Kind == selection.EntryHeader {
			b.WriteString(titleStyle.Render(e.Label) + "\n")
			continue
		}

		label := e.Label
		if i != last {
			label = fmt.Sprintf("%d. %s", i, e.Label)
		}
		if e.Kind == selection.EntryProfile && e.Label == m.current {
			label += mutedStyle.Render(" (current)")
		}

		if m.state.Active && m.state.Cursor == i {
			b.WriteString(selectedStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}
	b.WriteString(mutedStyle.Render("↑/↓ move · enter select · esc quit") + "\n")
	return b.String()
}

// Run shows the picker until a confirm does something or the user leaves
func Run(session *selection.Session, current string) (*selection.Outcome, error) {
	final, err := tea.NewProgram(New(session, current)).Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	return final.(Model).Outcome(), nil
}
