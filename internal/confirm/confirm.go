// Package confirm implements the interactive yes/no prompt movr shows
// before Execute unless --yes is given (spec.md §6 "behavior" flags).
// Grounded in the teacher's choice of charmbracelet/bubbletea for
// terminal interaction (internal/shell.InteractiveShell), scaled down from
// a full shell to a single confirmation prompt.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Ask runs an interactive y/n prompt with message and returns the user's
// answer. ok is false both on an explicit "no" and on Ctrl-C/Esc.
func Ask(message string) (ok bool, err error) {
	m := model{message: message}
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}
	return final.(model).answer, nil
}

type model struct {
	message string
	answer  bool
	done    bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N", "esc", "ctrl+c":
		m.answer, m.done = false, true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s [y/N] ", m.message)
}
