package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
)

type screen int

const (
	screenMenu screen = iota
	screenInstallType
	screenDomainInput
	screenPasswordInput
	screenConfirm
	screenPreflight
	screenRemoveConfirm
	screenRemoveFinal
	screenProgress
	screenComplete
)

type navigateMsg struct {
	to screen
}

type wizardState struct {
	cfg       paymenter.Config
	pipelines *paymenter.Pipelines

	op          paymenter.Operation
	installType paymenter.InstallType
	serverName  string
	dbPass      string

	removeBackup    bool
	removeConfirmed bool
}

type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (screenModel, tea.Cmd)
	View() string
}

type rootModel struct {
	current  screen
	state    *wizardState
	screens  map[screen]screenModel
	width    int
	height   int
	quitting bool
}

// StartMenu runs the interactive menu. Every operation it offers mutates the
// host, so privilege is the first gate.
func StartMenu() error {
	if err := paymenter.CheckRoot(); err != nil {
		return err
	}

	cfg, err := paymenter.LoadConfig("")
	if err != nil {
		return err
	}
	log, err := paymenter.NewFileLogger(cfg)
	if err != nil {
		return err
	}
	store, err := paymenter.OpenHistory(cfg.HistoryDB)
	if err != nil {
		store = nil
	} else {
		defer store.Close()
	}

	state := &wizardState{
		cfg:       cfg,
		pipelines: paymenter.NewPipelines(cfg, log, store),
	}
	screens := map[screen]screenModel{
		screenMenu:          newMenuModel(state),
		screenInstallType:   newInstallTypeModel(state),
		screenDomainInput:   newDomainInputModel(state),
		screenPasswordInput: newPasswordInputModel(state),
		screenConfirm:       newConfirmModel(state),
		screenPreflight:     newPreflightModel(state),
		screenRemoveConfirm: newRemoveConfirmModel(state),
		screenRemoveFinal:   newRemoveFinalModel(state),
		screenProgress:      newProgressModel(state),
		screenComplete:      newCompleteModel(state),
	}

	m := rootModel{
		current: screenMenu,
		state:   state,
		screens: screens,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m rootModel) Init() tea.Cmd {
	return m.screens[m.current].Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}

	case navigateMsg:
		m.current = msg.to
		s := m.screens[m.current]
		return m, s.Init()
	}

	s := m.screens[m.current]
	newScreen, cmd := s.Update(msg)
	m.screens[m.current] = newScreen
	return m, cmd
}

func (m rootModel) View() string {
	if m.quitting {
		return ""
	}
	return m.screens[m.current].View()
}
