package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rig-cli/internal/assign"
	"rig-cli/internal/catalog"
	"rig-cli/internal/deploy"
	"rig-cli/internal/store"
)

func testModel(t *testing.T, deployer deploy.Deployer) appModel {
	t.Helper()
	cat := &catalog.Catalog{
		Skills: []catalog.SkillEntry{
			{Item: catalog.Item{Name: "alpha", Enabled: true, Category: catalog.CategorySkill}},
		},
		Hooks: []catalog.Item{
			{Name: "pre-commit", Enabled: true, Category: catalog.CategoryHook},
		},
	}
	board := assign.NewBoard(cat)
	st := store.Store{Dir: t.TempDir()}
	return newAppModel(board, t.TempDir(), "/cfg", deployer, st, nil)
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		if len(k) == 1 {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		} else {
			switch k {
			case "tab":
				msg = tea.KeyMsg{Type: tea.KeyTab}
			case "shift+tab":
				msg = tea.KeyMsg{Type: tea.KeyShiftTab}
			case "enter":
				msg = tea.KeyMsg{Type: tea.KeyEnter}
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "space":
				msg = tea.KeyMsg{Type: tea.KeySpace}
			default:
				t.Fatalf("unknown key %q", k)
			}
		}
		next, _ := m.Update(msg)
		m = next.(appModel)
	}
	return m
}

func TestUpdate_TabSwitching(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m = press(t, m, "tab")
	if m.board.ActiveTab != assign.TabHooks {
		t.Fatalf("tab must advance; got %v", m.board.ActiveTab)
	}
	m = press(t, m, "shift+tab")
	if m.board.ActiveTab != assign.TabSkills {
		t.Fatalf("shift+tab must go back; got %v", m.board.ActiveTab)
	}
}

func TestUpdate_SpaceCyclesMode(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	if !m.board.Skills[0].Mode.IsGlobal() {
		t.Fatalf("enabled skills default to global")
	}
	m = press(t, m, "space")
	// No projects registered, so global cycles straight to skip.
	if !m.board.Skills[0].Mode.IsSkip() {
		t.Fatalf("expected skip after cycle; got %#v", m.board.Skills[0].Mode)
	}
}

func TestUpdate_AddProjectFlow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	m := testModel(t, nil)
	for m.board.ActiveTab != assign.TabProjects {
		m = press(t, m, "tab")
	}
	m = press(t, m, "a")
	if m.mode != modeAddProject {
		t.Fatalf("a on the projects tab must open the path prompt")
	}
	m.pathInput.SetValue(dir)
	m = press(t, m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("confirm must return to normal mode")
	}
	if len(m.board.Projects) != 1 || m.board.Projects[0].Path == "" {
		t.Fatalf("project not added: %+v", m.board.Projects)
	}
}

func TestUpdate_AddProjectRejectsBadPath(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	for m.board.ActiveTab != assign.TabProjects {
		m = press(t, m, "tab")
	}
	m = press(t, m, "a")
	m.pathInput.SetValue("/no/such/dir/hopefully")
	m = press(t, m, "enter")
	if len(m.board.Projects) != 0 {
		t.Fatalf("bad path must not be added")
	}
	if m.statusMsg == "" {
		t.Fatalf("failure must set a status message")
	}
}

func TestUpdate_ProjectModalFlow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := testModel(t, nil)
	if _, err := m.board.AddProject(dir); err != nil {
		t.Fatal(err)
	}

	m = press(t, m, "p")
	if m.mode != modeSelectProjects {
		t.Fatalf("p must open the project picker")
	}
	m = press(t, m, "space", "enter")
	if m.mode != modeNormal {
		t.Fatalf("confirm must close the picker")
	}
	got := m.board.Skills[0].Mode
	if got.Kind != assign.ModeProject || len(got.Aliases) != 1 {
		t.Fatalf("expected one checked project; got %#v", got)
	}
}

func TestUpdate_PickerUnavailableOnHooksTab(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := testModel(t, nil)
	if _, err := m.board.AddProject(dir); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "tab") // hooks
	m = press(t, m, "p")
	if m.mode != modeNormal {
		t.Fatalf("picker must not open on the hooks tab")
	}
}

func TestUpdate_DeployFlow(t *testing.T) {
	t.Parallel()

	var calls int
	fake := deploy.DeployerFunc(func(_ context.Context, req deploy.PassRequest) (string, error) {
		calls++
		return "=== Skills ===\n  Deployed: alpha\n=== Hooks ===\n  Deployed: hook pre-commit\n", nil
	})

	m := testModel(t, fake)
	m = press(t, m, "enter")
	if m.mode != modeConfirming {
		t.Fatalf("enter must show the preview; mode=%v", m.mode)
	}
	if m.session == nil || len(m.session.Output) == 0 {
		t.Fatalf("preview output missing")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(appModel)
	if m.mode != modeDeploying {
		t.Fatalf("y must start the deploy; mode=%v", m.mode)
	}
	if cmd == nil {
		t.Fatalf("y must return the execute command")
	}
	msg := cmd()
	if _, ok := msg.(deployDoneMsg); !ok {
		t.Fatalf("execute command must finish with deployDoneMsg; got %T", msg)
	}
	if calls != 1 {
		t.Fatalf("expected one deployer pass; got %d", calls)
	}

	next, _ = m.Update(msg)
	m = next.(appModel)
	if m.mode != modeDone {
		t.Fatalf("deployDoneMsg must land on the done screen")
	}
	if !strings.Contains(strings.Join(m.session.Output, "\n"), "Deploy complete.") {
		t.Fatalf("final output missing completion line")
	}

	// State must be persisted after a deploy.
	saved, err := m.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.Assignments["alpha"].Mode != "global" {
		t.Fatalf("state not saved after deploy: %#v", saved.Assignments)
	}

	m = press(t, m, "q")
	if m.mode != modeNormal || m.session != nil {
		t.Fatalf("q on the done screen must return to the board")
	}
}

func TestUpdate_CancelPreview(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m = press(t, m, "enter")
	if m.mode != modeConfirming {
		t.Fatalf("expected preview; mode=%v", m.mode)
	}
	m = press(t, m, "n")
	if m.mode != modeNormal || m.session != nil {
		t.Fatalf("n must cancel back to the board")
	}
}

func TestUpdate_EmptyPlanDoesNotPreview(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m = press(t, m, "s") // skip everything
	m = press(t, m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("an empty plan must not open the preview")
	}
	if m.statusMsg == "" {
		t.Fatalf("expected a nothing-to-deploy notice")
	}
}

func TestView_RendersTabsAndRows(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	out := m.View()
	for _, want := range []string{"Skills", "alpha", "GLOBAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}
