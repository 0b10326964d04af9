package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rig-cli/internal/assign"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Width = msg.Width - 4
		m.output.Height = msg.Height - 6
		if m.output.Height < 1 {
			m.output.Height = 1
		}
		m.setOutput()
		return m, nil

	case deployDoneMsg:
		m.mode = modeDone
		m.setOutput()
		m.output.GotoTop()
		m.saveState()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNormal:
			return m.updateNormal(msg)
		case modeAddProject:
			return m.updateAddProject(msg)
		case modeEditAlias:
			return m.updateEditAlias(msg)
		case modeSelectProjects:
			return m.updateSelectProjects(msg)
		case modeConfirming:
			return m.updateConfirming(msg)
		case modeDeploying:
			// Keys are ignored while passes run.
			return m, nil
		case modeDone:
			return m.updateDone(msg)
		}
	}
	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab":
		m.board.NextTab()
	case "shift+tab":
		m.board.PrevTab()
	case "up", "k":
		m.board.MoveUp()
	case "down", "j":
		m.board.MoveDown()
	case " ":
		m.board.CycleTarget()
	case "a":
		if m.board.ActiveTab == assign.TabProjects {
			m.pathInput.SetValue("")
			m.pathInput.Focus()
			m.mode = modeAddProject
		} else {
			m.board.AllGlobal()
		}
	case "s":
		m.board.SkipAll()
	case "o", "O":
		m.board.ToggleOnPath()
	case "p", "P":
		if m.board.ActiveTab != assign.TabProjects && m.board.ActiveTab != assign.TabHooks && len(m.board.Projects) > 0 {
			if name, ok := m.board.CurrentItemName(); ok {
				m.board.OpenProjectModal(name)
				if m.board.ModalOpen() {
					m.mode = modeSelectProjects
				}
			}
		}
	case "d", "D":
		if m.board.ActiveTab == assign.TabProjects && len(m.board.Projects) > 0 {
			alias := m.board.Projects[m.board.Cursor()].Alias
			m.board.DeleteProject(alias)
		}
	case "e", "E":
		if m.board.ActiveTab == assign.TabProjects && len(m.board.Projects) > 0 {
			m.editAlias = m.board.Projects[m.board.Cursor()].Alias
			m.aliasInput.SetValue(m.editAlias)
			m.aliasInput.CursorEnd()
			m.aliasInput.Focus()
			m.mode = modeEditAlias
		}
	case "enter":
		m.startDeploy()
	}
	return m, nil
}

func (m appModel) updateAddProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := ExpandTilde(strings.TrimSpace(m.pathInput.Value()))
		if path == "" {
			m.mode = modeNormal
			return m, nil
		}
		if entry, err := m.board.AddProject(path); err != nil {
			m.statusMsg = "Cannot add project: " + err.Error()
			m.log.Warn("add project failed", zap.String("path", path), zap.Error(err))
			m.mode = modeNormal
		} else {
			m.statusMsg = "Added project " + entry.Alias
			m.mode = modeNormal
		}
		m.pathInput.Blur()
		return m, nil
	case "esc":
		m.pathInput.Blur()
		m.mode = modeNormal
		return m, nil
	case "tab":
		m.pathInput.SetValue(tabCompletePath(m.pathInput.Value()))
		m.pathInput.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m appModel) updateEditAlias(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		newAlias := strings.TrimSpace(m.aliasInput.Value())
		if err := m.board.RenameProject(m.editAlias, newAlias); err != nil {
			m.statusMsg = "Cannot rename: " + err.Error()
		}
		m.aliasInput.Blur()
		m.editAlias = ""
		m.mode = modeNormal
		return m, nil
	case "esc":
		m.aliasInput.Blur()
		m.editAlias = ""
		m.mode = modeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.aliasInput, cmd = m.aliasInput.Update(msg)
	return m, cmd
}

func (m appModel) updateSelectProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.board.ModalUp()
	case "down", "j":
		m.board.ModalDown()
	case " ":
		m.board.ToggleModalCheck()
	case "enter":
		m.board.ConfirmProjectModal()
		m.mode = modeNormal
	case "esc":
		m.board.CancelProjectModal()
		m.mode = modeNormal
	}
	return m, nil
}

func (m appModel) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		// Drop the preview; Execute writes the live log in its place.
		m.session.Output = nil
		m.mode = modeDeploying
		m.setOutput()
		return m, m.executeCmd()
	case "n", "N", "esc":
		m.session = nil
		m.mode = modeNormal
		return m, nil
	}
	m.scrollKeys(msg)
	return m, nil
}

func (m appModel) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.session = nil
		m.mode = modeNormal
		return m, nil
	}
	m.scrollKeys(msg)
	return m, nil
}

func (m *appModel) scrollKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		m.output.LineUp(1)
	case "down", "j":
		m.output.LineDown(1)
	case "pgup":
		m.output.LineUp(20)
	case "pgdown":
		m.output.LineDown(20)
	case "home", "g":
		m.output.GotoTop()
	case "end", "G":
		m.output.GotoBottom()
	}
}

func (m *appModel) setOutput() {
	if m.session == nil {
		m.output.SetContent("")
		return
	}
	m.output.SetContent(strings.Join(m.session.Output, "\n"))
}
