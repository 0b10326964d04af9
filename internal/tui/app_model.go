package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rig-cli/internal/assign"
	"rig-cli/internal/deploy"
	"rig-cli/internal/store"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeAddProject
	modeEditAlias
	modeSelectProjects
	modeConfirming
	modeDeploying
	modeDone
)

type deployDoneMsg struct{}

type appModel struct {
	board     *assign.Board
	repoRoot  string
	configDir string
	deployer  deploy.Deployer
	store     store.Store
	log       *zap.Logger

	width  int
	height int

	mode inputMode

	// session holds the in-flight or finished deploy. Preview output,
	// execution log and the summary all render through its Output.
	session *deploy.Session

	pathInput  textinput.Model
	aliasInput textinput.Model
	output     viewport.Model

	// editAlias remembers which alias is being renamed while in
	// modeEditAlias.
	editAlias string

	statusMsg string
}

func newAppModel(board *assign.Board, repoRoot, configDir string, deployer deploy.Deployer, st store.Store, logger *zap.Logger) appModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/project"
	pathInput.CharLimit = 512

	aliasInput := textinput.New()
	aliasInput.CharLimit = 64

	return appModel{
		board:      board,
		repoRoot:   repoRoot,
		configDir:  configDir,
		deployer:   deployer,
		store:      st,
		log:        logger,
		mode:       modeNormal,
		pathInput:  pathInput,
		aliasInput: aliasInput,
		output:     viewport.New(0, 0),
	}
}

func (m appModel) Init() tea.Cmd { return nil }

// startDeploy freezes the current plan into a session and moves to the
// preview screen. A plan with no passes is a no-op.
func (m *appModel) startDeploy() {
	plan := m.board.BuildPlan()
	if plan.IsEmpty() {
		m.statusMsg = "Nothing to deploy"
		return
	}
	m.session = deploy.NewSession(m.board, plan, m.repoRoot, m.configDir, m.deployer, m.log)
	m.session.Preview()
	m.setOutput()
	m.output.GotoTop()
	m.mode = modeConfirming
}

func (m *appModel) executeCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.Execute(context.Background())
		return deployDoneMsg{}
	}
}

func (m *appModel) saveState() {
	if err := m.store.Save(store.Capture(m.board)); err != nil {
		m.log.Warn("state save failed", zap.Error(err))
	}
}
