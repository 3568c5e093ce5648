package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

var logo = `
 ██████╗  █████╗ ██╗   ██╗███╗   ███╗███████╗███╗   ██╗████████╗███████╗██████╗
 ██╔══██╗██╔══██╗╚██╗ ██╔╝████╗ ████║██╔════╝████╗  ██║╚══██╔══╝██╔════╝██╔══██╗
 ██████╔╝███████║ ╚████╔╝ ██╔████╔██║█████╗  ██╔██╗ ██║   ██║   █████╗  ██████╔╝
 ██╔═══╝ ██╔══██║  ╚██╔╝  ██║╚██╔╝██║██╔══╝  ██║╚██╗██║   ██║   ██╔══╝  ██╔══██╗
 ██║     ██║  ██║   ██║   ██║ ╚═╝ ██║███████╗██║ ╚████║   ██║   ███████╗██║  ██║
 ╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝   ╚═╝   ╚══════╝╚═╝  ╚═╝
`

type menuItem struct {
	label string
	desc  string
	op    paymenter.Operation
}

type menuModel struct {
	state  *wizardState
	cursor int
	items  []menuItem
}

func newMenuModel(state *wizardState) *menuModel {
	return &menuModel{
		state: state,
		items: []menuItem{
			{label: "Install", desc: "Fresh installation on this host", op: paymenter.OpInstall},
			{label: "Auto Update", desc: "Snapshot, then run the application's self-update", op: paymenter.OpAutoUpdate},
			{label: "Manual Update", desc: "Snapshot, then fetch and apply the latest release", op: paymenter.OpManualUpdate},
			{label: "Backup", desc: "Snapshot files and database now", op: paymenter.OpBackup},
			{label: "Remove", desc: "Uninstall Paymenter and its configuration", op: paymenter.OpRemove},
			{label: "Exit", desc: "Leave the menu"},
		},
	}
}

func (m *menuModel) Init() tea.Cmd {
	return nil
}

func (m *menuModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < len(m.items)-1 {
			m.cursor++
		}
		if isEnter(msg) {
			item := m.items[m.cursor]
			if item.label == "Exit" {
				return m, tea.Quit
			}
			m.state.op = item.op
			switch item.op {
			case paymenter.OpInstall:
				return m, navigate(screenInstallType)
			case paymenter.OpRemove:
				return m, navigate(screenRemoveConfirm)
			default:
				return m, navigate(screenProgress)
			}
		}
	}
	return m, nil
}

func (m *menuModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Paymenter Installation Manager"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s %s\n", cursorChar, selectedStyle.Render(item.label)))
			b.WriteString(fmt.Sprintf("    %s\n", mutedStyle.Render(item.desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", normalStyle.Render(item.label)))
			b.WriteString(fmt.Sprintf("    %s\n", mutedStyle.Render(item.desc)))
		}
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  enter: select  ctrl+c: quit"))
	return b.String()
}

func navigate(to screen) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{to: to}
	}
}
