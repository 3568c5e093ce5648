package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

type installTypeModel struct {
	state    *wizardState
	cursor   int
	detected string
	detErr   error
}

func newInstallTypeModel(state *wizardState) *installTypeModel {
	return &installTypeModel{state: state}
}

func (m *installTypeModel) Init() tea.Cmd {
	m.detected, m.detErr = paymenter.DetectIPv4()
	return nil
}

func (m *installTypeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, navigate(screenMenu)
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < 1 {
			m.cursor++
		}
		if isEnter(msg) {
			if m.cursor == 0 {
				m.state.installType = paymenter.InstallDomain
				return m, navigate(screenDomainInput)
			}
			if m.detErr != nil {
				return m, nil
			}
			m.state.installType = paymenter.InstallIP
			m.state.serverName = m.detected
			return m, navigate(screenPasswordInput)
		}
	}
	return m, nil
}

func (m *installTypeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Install Type"))
	b.WriteString("\n\n")

	options := []string{
		"Domain name",
		fmt.Sprintf("Detected IPv4 address (%s)", m.detectedLabel()),
	}
	for i, opt := range options {
		radio := radioOff
		style := normalStyle
		if i == m.cursor {
			radio = radioOn
			style = selectedStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", radio, style.Render(opt)))
	}

	if m.detErr != nil {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("  no usable IPv4 address detected; install by domain"))
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  enter: select  esc: back"))
	return b.String()
}

func (m *installTypeModel) detectedLabel() string {
	if m.detErr != nil {
		return "unavailable"
	}
	return m.detected
}
