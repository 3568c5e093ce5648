package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// removeConfirmModel is the first removal gate: backup opt-in plus a
// continue/cancel choice. The irreversible confirmation is a separate screen.
type removeConfirmModel struct {
	state  *wizardState
	cursor int
}

func newRemoveConfirmModel(state *wizardState) *removeConfirmModel {
	return &removeConfirmModel{state: state}
}

func (m *removeConfirmModel) Init() tea.Cmd {
	m.cursor = 0
	m.state.removeBackup = true
	m.state.removeConfirmed = false
	return nil
}

func (m *removeConfirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, navigate(screenMenu)
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < 2 {
			m.cursor++
		}
		if isSpace(msg) && m.cursor == 0 {
			m.state.removeBackup = !m.state.removeBackup
		}
		if isEnter(msg) {
			switch m.cursor {
			case 0:
				m.state.removeBackup = !m.state.removeBackup
			case 1:
				return m, navigate(screenRemoveFinal)
			case 2:
				return m, navigate(screenMenu)
			}
		}
	}
	return m, nil
}

func (m *removeConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Remove Paymenter"))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render("  This removes the application tree, its database and user,"))
	b.WriteString("\n")
	b.WriteString(normalStyle.Render("  the nginx vhost, the queue worker unit and the cron entry."))
	b.WriteString("\n\n")

	check := checkOff
	if m.state.removeBackup {
		check = checkOn
	}
	rows := []string{
		fmt.Sprintf("%s Take a snapshot before removing", check),
		"Continue",
		"Cancel",
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s %s\n", cursorChar, selectedStyle.Render(row)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", normalStyle.Render(row)))
		}
	}

	b.WriteString(helpStyle.Render("\n  space: toggle  enter: select  esc: back"))
	return b.String()
}

// removeFinalModel is the second, irreversible-action confirmation. Nothing
// destructive runs unless Remove is affirmatively chosen here.
type removeFinalModel struct {
	state  *wizardState
	cursor int
}

func newRemoveFinalModel(state *wizardState) *removeFinalModel {
	return &removeFinalModel{state: state}
}

func (m *removeFinalModel) Init() tea.Cmd {
	// Default to the safe choice.
	m.cursor = 1
	return nil
}

func (m *removeFinalModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, navigate(screenMenu)
		}
		if isLeft(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isRight(msg) && m.cursor < 1 {
			m.cursor++
		}
		if isEnter(msg) {
			if m.cursor == 0 {
				m.state.removeConfirmed = true
				return m, navigate(screenProgress)
			}
			return m, navigate(screenMenu)
		}
	}
	return m, nil
}

func (m *removeFinalModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Final Confirmation"))
	b.WriteString("\n\n")
	b.WriteString(errorStyle.Render("  This cannot be undone."))
	b.WriteString("\n")
	if m.state.removeBackup {
		b.WriteString(mutedStyle.Render("  A snapshot will be taken first."))
	} else {
		b.WriteString(warningStyle.Render("  No snapshot will be taken."))
	}
	b.WriteString("\n\n")

	buttons := []string{"Remove", "Keep Installation"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}

	b.WriteString(helpStyle.Render("\n\n  left/right: navigate  enter: select  esc: back"))
	return b.String()
}
