package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type domainInputModel struct {
	state *wizardState
	input textinput.Model
	err   string
}

func newDomainInputModel(state *wizardState) *domainInputModel {
	ti := textinput.New()
	ti.Placeholder = "billing.example.com"
	ti.CharLimit = 253
	ti.Width = 40
	return &domainInputModel{state: state, input: ti}
}

func (m *domainInputModel) Init() tea.Cmd {
	m.err = ""
	m.input.Focus()
	return textinput.Blink
}

func (m *domainInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, navigate(screenInstallType)
		}
		if isEnter(msg) {
			domain := strings.TrimSpace(m.input.Value())
			if domain == "" || strings.ContainsAny(domain, " /") || !strings.Contains(domain, ".") {
				m.err = "enter a valid domain name"
				return m, nil
			}
			m.state.serverName = domain
			return m, navigate(screenPasswordInput)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *domainInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Domain"))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render("  The domain your Paymenter panel will be served on:"))
	b.WriteString("\n\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + m.err))
	}

	b.WriteString(helpStyle.Render("\n  enter: continue  esc: back"))
	return b.String()
}
