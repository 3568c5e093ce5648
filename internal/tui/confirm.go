package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

type confirmModel struct {
	state  *wizardState
	cursor int
}

func newConfirmModel(state *wizardState) *confirmModel {
	return &confirmModel{state: state}
}

func (m *confirmModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, navigate(screenPasswordInput)
		}
		if (isLeft(msg) || isUp(msg)) && m.cursor > 0 {
			m.cursor--
		}
		if (isRight(msg) || isDown(msg)) && m.cursor < 2 {
			m.cursor++
		}
		if isEnter(msg) {
			switch m.cursor {
			case 0:
				return m, navigate(screenPreflight)
			case 1:
				return m, navigate(screenPasswordInput)
			case 2:
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *confirmModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Confirm Installation"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("  Summary"))
	b.WriteString("\n")
	kind := "domain"
	if m.state.installType == paymenter.InstallIP {
		kind = "IP address"
	}
	b.WriteString(fmt.Sprintf("  Server name:  %s (%s)\n", selectedStyle.Render(m.state.serverName), kind))
	b.WriteString(fmt.Sprintf("  Install dir:  %s\n", selectedStyle.Render(m.state.cfg.InstallDir)))
	b.WriteString(fmt.Sprintf("  Database:     %s\n", selectedStyle.Render("paymenter / paymenter")))

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Equivalent CLI Command"))
	b.WriteString("\n")
	if m.state.installType == paymenter.InstallIP {
		b.WriteString(mutedStyle.Render("  $ paymenterctl install --ip --db-pass ********"))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  $ paymenterctl install --domain %s --db-pass ********", m.state.serverName)))
	}
	b.WriteString("\n\n")

	buttons := []string{"Confirm", "Back", "Cancel"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("\n  left/right: navigate  enter: select  esc: back"))
	return b.String()
}
