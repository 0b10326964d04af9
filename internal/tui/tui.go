// Package tui is the interactive assignment console: four catalog tabs
// plus a project list, a project-picker modal, and a deploy flow with
// preview, confirmation and a scrollable result log.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rig-cli/internal/assign"
	"rig-cli/internal/catalog"
	"rig-cli/internal/deploy"
	"rig-cli/internal/store"
)

// Options configures a TUI run.
type Options struct {
	RepoRoot  string
	ConfigDir string
	Resolver  catalog.Resolver
	Deployer  deploy.Deployer
	Logger    *zap.Logger
}

// Run discovers the catalog, restores saved assignments, and runs the
// interactive program. State is saved on exit regardless of how the
// session ended.
func Run(opts Options) error {
	cat, err := opts.Resolver.Resolve(opts.RepoRoot)
	if err != nil {
		return fmt.Errorf("resolve catalog: %w", err)
	}

	board := assign.NewBoard(cat)
	st := store.Store{Dir: store.StateDir(opts.RepoRoot)}
	if saved, err := st.Load(); err == nil {
		store.Apply(saved, board)
	}

	applyColorProfilePreference()

	m := newAppModel(board, opts.RepoRoot, opts.ConfigDir, opts.Deployer, st, opts.Logger)
	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()

	if err := st.Save(store.Capture(board)); err != nil && runErr == nil {
		return fmt.Errorf("save state: %w", err)
	}
	return runErr
}
