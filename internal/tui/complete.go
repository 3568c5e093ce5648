package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

type completeModel struct {
	state *wizardState
}

func newCompleteModel(state *wizardState) *completeModel {
	return &completeModel{state: state}
}

func (m *completeModel) Init() tea.Cmd {
	return nil
}

func (m *completeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEnter(msg) {
			return m, navigate(screenMenu)
		}
		if isEsc(msg) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *completeModel) View() string {
	var b strings.Builder

	b.WriteString(successStyle.Render("  Done"))
	b.WriteString("\n\n")

	switch m.state.op {
	case paymenter.OpInstall:
		b.WriteString(normalStyle.Render(fmt.Sprintf("  Paymenter is installed and serving at http://%s", m.state.serverName)))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("  Create your admin account with:"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  $ php %s/artisan p:user:create", m.state.cfg.InstallDir)))
	case paymenter.OpBackup:
		b.WriteString(normalStyle.Render(fmt.Sprintf("  Snapshot written under %s", m.state.cfg.BackupDir)))
	case paymenter.OpRemove:
		b.WriteString(normalStyle.Render("  Paymenter has been removed from this host."))
	default:
		b.WriteString(normalStyle.Render("  Update finished; services restarted."))
	}

	b.WriteString(helpStyle.Render("\n\n  enter: back to menu  esc: quit"))
	return b.String()
}
