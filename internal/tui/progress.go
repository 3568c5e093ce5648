package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

type pipelineDoneMsg struct {
	run *paymenter.PipelineRun
}

type progressModel struct {
	state   *wizardState
	spinner spinner.Model
	running bool
	run     *paymenter.PipelineRun
}

func newProgressModel(state *wizardState) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &progressModel{state: state, spinner: sp}
}

func (m *progressModel) Init() tea.Cmd {
	m.running = true
	m.run = nil
	return tea.Batch(m.spinner.Tick, m.runPipeline())
}

// runPipeline executes the selected operation as one blocking command; the
// pipelines are single-run-at-a-time, so there is nothing to stream.
func (m *progressModel) runPipeline() tea.Cmd {
	return func() tea.Msg {
		p := m.state.pipelines
		var run *paymenter.PipelineRun
		switch m.state.op {
		case paymenter.OpInstall:
			run = p.Install(paymenter.InstallParams{
				InstallType: m.state.installType,
				ServerName:  m.state.serverName,
				DB: paymenter.DBCredentials{
					Name:     "paymenter",
					User:     "paymenter",
					Password: m.state.dbPass,
				},
				// Admin creation is interactive; the complete screen points
				// the operator at the artisan command instead.
				CreateAdmin: false,
			})
		case paymenter.OpAutoUpdate:
			run = p.AutoUpdate()
		case paymenter.OpManualUpdate:
			run = p.ManualUpdate()
		case paymenter.OpBackup:
			run = p.Backup()
		case paymenter.OpRemove:
			run = p.Remove(paymenter.RemoveParams{
				Confirmed:  m.state.removeConfirmed,
				TakeBackup: m.state.removeBackup,
			})
		}
		return pipelineDoneMsg{run: run}
	}
}

func (m *progressModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pipelineDoneMsg:
		m.running = false
		m.run = msg.run
		if m.run != nil && m.run.Outcome == paymenter.OutcomeSuccess {
			return m, navigate(screenComplete)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.running {
			if isEnter(msg) {
				return m, navigate(screenMenu)
			}
			if isEsc(msg) {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(operationTitle(m.state.op)))
	b.WriteString("\n\n")

	if m.running {
		b.WriteString(fmt.Sprintf("  %s Working... step output is in the log file\n", m.spinner.View()))
		return b.String()
	}
	if m.run == nil {
		return b.String()
	}

	for _, rec := range m.run.Records {
		if rec.Result.OK {
			b.WriteString(fmt.Sprintf("  %s %s\n", successStyle.Render("OK"), normalStyle.Render(rec.Name)))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s\n", errorStyle.Render("XX"), normalStyle.Render(rec.Name)))
			b.WriteString(fmt.Sprintf("     %s\n", mutedStyle.Render(rec.Result.Message)))
		}
	}

	b.WriteString("\n")
	switch m.run.Outcome {
	case paymenter.OutcomeCancelled:
		b.WriteString(warningStyle.Render("  Cancelled; nothing was changed."))
	case paymenter.OutcomeFailed:
		if err := m.run.Err(); err != nil {
			b.WriteString(errorStyle.Render("  " + err.Error()))
		}
	}
	b.WriteString(helpStyle.Render("\n  enter: back to menu  esc: quit"))
	return b.String()
}

func operationTitle(op paymenter.Operation) string {
	switch op {
	case paymenter.OpInstall:
		return "Installing"
	case paymenter.OpAutoUpdate:
		return "Updating"
	case paymenter.OpManualUpdate:
		return "Upgrading"
	case paymenter.OpBackup:
		return "Backing Up"
	case paymenter.OpRemove:
		return "Removing"
	}
	return "Working"
}
