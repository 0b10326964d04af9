package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"rig-cli/internal/assign"
)

// Session owns one deploy attempt: a frozen plan, the deployer that
// executes passes, the aggregated results and the textual output log
// shown in the UI. A session is consumed by exactly one Execute call.
type Session struct {
	Board     *assign.Board
	Plan      assign.Plan
	RepoRoot  string
	ConfigDir string
	Deployer  Deployer
	Results   *Results
	Output    []string

	failedPasses []string

	log *zap.Logger
}

// NewSession builds a session for the board's current plan. A nil
// logger disables session logging.
func NewSession(board *assign.Board, plan assign.Plan, repoRoot, configDir string, deployer Deployer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Board:     board,
		Plan:      plan,
		RepoRoot:  repoRoot,
		ConfigDir: configDir,
		Deployer:  deployer,
		Results:   NewResults(),
		log:       logger,
	}
}

func (s *Session) printf(format string, args ...any) {
	s.Output = append(s.Output, fmt.Sprintf(format, args...))
}

// Preview renders the dry-run summary of the plan: every enabled item
// with its destination paths, then a count line. No deployer calls.
func (s *Session) Preview() {
	home, _ := os.UserHomeDir()
	tilde := func(p string) string {
		if home != "" && strings.HasPrefix(p, home) {
			return "~" + strings.TrimPrefix(p, home)
		}
		return p
	}

	globalSkills := tilde(filepath.Join(s.ConfigDir, "skills"))
	globalHooks := tilde(filepath.Join(s.ConfigDir, "hooks"))
	settings := tilde(filepath.Join(s.ConfigDir, "settings.json"))

	s.printf("=== Skills ===")
	for _, skill := range s.Board.Skills {
		if !skill.Enabled {
			continue
		}
		switch {
		case skill.Mode.IsGlobal():
			s.printf("  + %s  -> %s", skill.Name, globalSkills)
			for _, sc := range skill.Scripts {
				if sc.OnPath {
					s.printf("      -> ~/.local/bin/%s", sc.Name)
				}
			}
		case skill.Mode.Kind == assign.ModeProject && len(skill.Mode.Aliases) > 0:
			s.printf("  + %s", skill.Name)
			for _, alias := range skill.Mode.Aliases {
				if path, ok := s.Board.ProjectPath(alias); ok {
					s.printf("      -> %s", tilde(filepath.Join(path, ".claude/skills")))
				}
			}
		default:
			s.printf("  - %s  skipped", skill.Name)
		}
	}

	if len(s.Board.Hooks) > 0 {
		s.printf("")
		s.printf("=== Hooks ===")
		for _, hook := range s.Board.Hooks {
			if !hook.Enabled {
				continue
			}
			if hook.Mode.IsSkip() {
				s.printf("  - %s  skipped", hook.Name)
			} else {
				s.printf("  + %s  -> %s", hook.Name, globalHooks)
			}
		}
	}

	if len(s.Board.MCP) > 0 {
		s.printf("")
		s.printf("=== MCP ===")
		s.previewRows(s.Board.MCP, settings, ".mcp.json", tilde)
	}

	if len(s.Board.Permissions) > 0 {
		s.printf("")
		s.printf("=== Permissions ===")
		s.previewRows(s.Board.Permissions, settings, filepath.Join(".claude", "settings.json"), tilde)
	}

	deployed, skipped := 0, 0
	count := func(mode assign.Mode) {
		if mode.IsSkip() {
			skipped++
		} else {
			deployed++
		}
	}
	for _, skill := range s.Board.Skills {
		if skill.Enabled {
			count(skill.Mode)
		}
	}
	for _, rows := range [][]assign.Row{s.Board.Hooks, s.Board.MCP, s.Board.Permissions} {
		for _, row := range rows {
			if row.Enabled {
				count(row.Mode)
			}
		}
	}
	s.printf("")
	s.printf("%d to deploy, %d skipped. Press [Y] to confirm.", deployed, skipped)
}

func (s *Session) previewRows(rows []assign.Row, globalDest, projectRel string, tilde func(string) string) {
	for _, row := range rows {
		if !row.Enabled {
			continue
		}
		switch {
		case row.Mode.IsGlobal():
			s.printf("  + %s  -> %s", row.Name, globalDest)
		case row.Mode.Kind == assign.ModeProject && len(row.Mode.Aliases) > 0:
			s.printf("  + %s", row.Name)
			for _, alias := range row.Mode.Aliases {
				if path, ok := s.Board.ProjectPath(alias); ok {
					s.printf("      -> %s", tilde(filepath.Join(path, projectRel)))
				}
			}
		default:
			s.printf("  - %s  skipped", row.Name)
		}
	}
}

// Execute runs every pass of the plan strictly sequentially: the global
// pass first, then each project pass in plan (path) order. Each pass's
// log is parsed and aggregated before the next pass starts. A failing
// pass is surfaced as an ERROR line and does not abort the rest.
func (s *Session) Execute(ctx context.Context) {
	if len(s.Plan.GlobalItems) > 0 {
		s.printf("=== Deploying -> global ===")
		s.printf("  Items: %s", strings.Join(s.Plan.GlobalItems, ", "))
		s.runPass(ctx, PassRequest{
			RepoRoot:      s.RepoRoot,
			ConfigDir:     s.ConfigDir,
			Include:       s.Plan.GlobalItems,
			OnPathScripts: s.Plan.OnPathScripts,
		}, "global")
		s.validateJSON("")
	}

	for _, pass := range s.Plan.ProjectItems {
		label := "project:" + s.aliasFor(pass.Path)
		s.printf("=== Deploying -> project: %s ===", pass.Path)
		s.printf("  Items: %s", strings.Join(pass.Items, ", "))
		s.runPass(ctx, PassRequest{
			RepoRoot:    s.RepoRoot,
			ConfigDir:   s.ConfigDir,
			ProjectPath: pass.Path,
			Include:     pass.Items,
		}, label)
		s.validateJSON(pass.Path)
	}

	s.appendSummary()
	s.printf("Deploy complete.")
}

func (s *Session) aliasFor(path string) string {
	for _, p := range s.Board.Projects {
		if p.Path == path {
			return p.Alias
		}
	}
	return filepath.Base(path)
}

func (s *Session) runPass(ctx context.Context, req PassRequest, label string) {
	s.log.Info("deploy pass",
		zap.String("target", label),
		zap.Int("items", len(req.Include)),
	)
	logText, err := s.Deployer.Deploy(ctx, req)
	for _, line := range strings.Split(strings.TrimRight(logText, "\n"), "\n") {
		if line != "" || len(s.Output) > 0 {
			s.Output = append(s.Output, line)
		}
	}
	ParsePassLog(logText, label, s.Results)
	if err != nil {
		s.log.Error("deploy pass failed", zap.String("target", label), zap.Error(err))
		s.failedPasses = append(s.failedPasses, label)
		s.printf("ERROR: %v", err)
	}
	s.printf("")
}

// validateJSON warns when a settings file the deployer may have
// rewritten is unreadable or not valid JSON. projectPath == "" checks
// the global settings file.
func (s *Session) validateJSON(projectPath string) {
	var files []string
	if projectPath == "" {
		files = []string{filepath.Join(s.ConfigDir, "settings.json")}
	} else {
		files = []string{
			filepath.Join(projectPath, ".claude", "settings.json"),
			filepath.Join(projectPath, ".mcp.json"),
		}
	}
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			s.printf("  WARNING: could not read %s: %v", path, err)
			continue
		}
		if !json.Valid(b) {
			s.printf("  WARNING: %s is not valid JSON", path)
			s.log.Warn("invalid settings JSON after pass", zap.String("path", path))
		}
	}
}

// appendSummary writes the aggregated per-item view: skipped first
// (least interesting, scrolls off the top), deployed with their detail
// lines, then errors.
func (s *Session) appendSummary() {
	s.printf("")
	s.printf("=== Summary ===")

	skipped := s.Results.Skipped()
	deployed := s.Results.Deployed()
	errs := s.Results.Errors()

	if len(skipped) > 0 {
		s.printf("  Skipped (%d):", len(skipped))
		for _, r := range skipped {
			s.printf("    - %s (%s)", r.Name, r.Reason)
		}
		s.printf("")
	}
	if len(deployed) > 0 {
		s.printf("  Deployed (%d):", len(deployed))
		for _, r := range deployed {
			s.printf("    + %s -> %s", r.Name, strings.Join(r.Targets, ", "))
			for _, d := range r.Details {
				s.printf("        %s", d)
			}
		}
		s.printf("")
	}
	if len(errs) > 0 {
		s.printf("  Errors (%d):", len(errs))
		for _, r := range errs {
			s.printf("    ! %s (%s)", r.Name, r.Reason)
		}
		s.printf("")
	}
	if s.Results.Len() == 0 {
		s.printf("  (no items processed)")
		s.printf("")
	}

	// A pass that reported deployments and then failed leaves those
	// items in an unknown real state; call that out explicitly.
	for _, r := range deployed {
		for _, failed := range s.failedPasses {
			for _, target := range r.Targets {
				if target == failed {
					s.printf("  NOTE: %s reported deployed in a failing pass (%s); verify the destination.", r.Name, failed)
				}
			}
		}
	}
}
