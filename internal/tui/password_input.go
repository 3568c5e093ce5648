package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

type passwordInputModel struct {
	state   *wizardState
	inputs  [2]textinput.Model
	focused int
	err     string
}

func newPasswordInputModel(state *wizardState) *passwordInputModel {
	m := &passwordInputModel{state: state}
	for i := range m.inputs {
		ti := textinput.New()
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		ti.CharLimit = 64
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[0].Placeholder = "database password"
	m.inputs[1].Placeholder = "confirm password"
	return m
}

func (m *passwordInputModel) Init() tea.Cmd {
	m.err = ""
	m.focused = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.inputs[0].Focus()
	return textinput.Blink
}

func (m *passwordInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			if m.state.installType == paymenter.InstallIP {
				return m, navigate(screenInstallType)
			}
			return m, navigate(screenDomainInput)
		}
		if isTab(msg) {
			m.switchFocus(1 - m.focused)
			return m, textinput.Blink
		}
		if isEnter(msg) {
			if m.focused == 0 {
				m.switchFocus(1)
				return m, textinput.Blink
			}
			pass := m.inputs[0].Value()
			if len(pass) < 8 {
				m.err = "password must be at least 8 characters"
				return m, nil
			}
			if pass != m.inputs[1].Value() {
				m.err = "passwords do not match"
				return m, nil
			}
			m.state.dbPass = pass
			return m, navigate(screenConfirm)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *passwordInputModel) switchFocus(to int) {
	m.inputs[m.focused].Blur()
	m.focused = to
	m.inputs[m.focused].Focus()
}

func (m *passwordInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Database Password"))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render("  Password for the application's MySQL user (min 8 characters):"))
	b.WriteString("\n\n  ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n  ")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + m.err))
	}

	b.WriteString(helpStyle.Render("\n  tab: switch field  enter: continue  esc: back"))
	return b.String()
}
