// Package store persists assignment state between runs as a JSON file
// under the repo's .rig directory.
//
// Loading is best effort: a missing or corrupted file yields an empty
// state so the UI always starts, at worst with defaults.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"rig-cli/internal/assign"
)

const stateFileName = "state.json"

// StateDir returns the state directory for a repo root.
func StateDir(repoRoot string) string {
	return filepath.Join(repoRoot, ".rig")
}

type Store struct {
	Dir string
}

// State is the on-disk shape. Assignments are keyed by item name;
// names are unique across all four catalogs.
type State struct {
	Version     int                   `json:"version"`
	Projects    []ProjectState        `json:"projects"`
	Assignments map[string]Assignment `json:"assignments"`
}

type ProjectState struct {
	Path  string `json:"path"`
	Alias string `json:"alias"`
}

// Assignment is one item's saved mode. Mode is "global", "project" or
// "skip"; Projects and OnPathScripts are omitted when empty.
type Assignment struct {
	Mode          string   `json:"mode"`
	Projects      []string `json:"projects,omitempty"`
	OnPathScripts []string `json:"on_path_scripts,omitempty"`
}

func (s Store) statePath() string {
	return filepath.Join(s.Dir, stateFileName)
}

func (s Store) ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: empty directory")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// Load reads the saved state. Missing or unparseable files return an
// empty state and no error.
func (s Store) Load() (*State, error) {
	empty := &State{Version: 1, Assignments: map[string]Assignment{}}
	if strings.TrimSpace(s.Dir) == "" {
		return empty, nil
	}
	b, err := os.ReadFile(s.statePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, nil
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return empty, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if st.Assignments == nil {
		st.Assignments = map[string]Assignment{}
	}
	return &st, nil
}

// Save writes the state atomically (temp file then rename).
func (s Store) Save(st *State) error {
	if st == nil {
		return nil
	}
	if err := s.ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.statePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Capture snapshots the board's projects and assignments. Project mode
// with no aliases is written as "skip" so the transient editing state
// never reaches disk.
func Capture(b *assign.Board) *State {
	st := &State{Version: 1, Assignments: map[string]Assignment{}}
	for _, p := range b.Projects {
		st.Projects = append(st.Projects, ProjectState{Path: p.Path, Alias: p.Alias})
	}

	for _, skill := range b.Skills {
		a := modeAssignment(skill.Mode)
		for _, sc := range skill.Scripts {
			if sc.OnPath {
				a.OnPathScripts = append(a.OnPathScripts, sc.Name)
			}
		}
		st.Assignments[skill.Name] = a
	}
	for _, rows := range [][]assign.Row{b.Hooks, b.MCP, b.Permissions} {
		for _, row := range rows {
			st.Assignments[row.Name] = modeAssignment(row.Mode)
		}
	}
	return st
}

func modeAssignment(m assign.Mode) Assignment {
	switch m.Kind {
	case assign.ModeGlobal:
		return Assignment{Mode: "global"}
	case assign.ModeProject:
		if len(m.Aliases) == 0 {
			return Assignment{Mode: "skip"}
		}
		return Assignment{Mode: "project", Projects: append([]string(nil), m.Aliases...)}
	default:
		return Assignment{Mode: "skip"}
	}
}

// Apply restores saved state onto a freshly built board. Projects whose
// paths no longer exist are dropped, aliases pointing at dropped
// projects are filtered, unknown item names and unknown mode strings
// are ignored, and disabled items keep their defaults.
func Apply(st *State, b *assign.Board) {
	if st == nil {
		return
	}

	b.Projects = b.Projects[:0]
	for _, ps := range st.Projects {
		if info, err := os.Stat(ps.Path); err == nil && info.IsDir() {
			b.Projects = append(b.Projects, assign.ProjectEntry{Path: ps.Path, Alias: ps.Alias})
		}
	}
	valid := map[string]bool{}
	for _, p := range b.Projects {
		valid[p.Alias] = true
	}

	restore := func(a Assignment) (assign.Mode, bool) {
		switch a.Mode {
		case "global":
			return assign.Global(), true
		case "skip":
			return assign.Skip(), true
		case "project":
			var aliases []string
			for _, alias := range a.Projects {
				if valid[alias] {
					aliases = append(aliases, alias)
				}
			}
			if len(aliases) == 0 {
				return assign.Skip(), true
			}
			return assign.Project(aliases), true
		}
		return assign.Mode{}, false
	}

	for name, a := range st.Assignments {
		mode, ok := restore(a)
		if !ok {
			continue
		}
		if skill := findSkill(b, name); skill != nil {
			if !skill.Enabled {
				continue
			}
			skill.Mode = mode
			// On-path flags only exist under global mode.
			onPath := map[string]bool{}
			if mode.IsGlobal() {
				for _, sc := range a.OnPathScripts {
					onPath[sc] = true
				}
			}
			for i := range skill.Scripts {
				skill.Scripts[i].OnPath = onPath[skill.Scripts[i].Name]
			}
			continue
		}
		if hook := findRow(b.Hooks, name); hook != nil {
			if hook.Enabled {
				// Hooks only support global and skip.
				if mode.IsGlobal() {
					hook.Mode = assign.Global()
				} else {
					hook.Mode = assign.Skip()
				}
			}
			continue
		}
		if row := findRow(b.MCP, name); row != nil {
			if row.Enabled {
				row.Mode = mode
			}
			continue
		}
		if row := findRow(b.Permissions, name); row != nil {
			if row.Enabled {
				row.Mode = mode
			}
		}
	}
}

func findSkill(b *assign.Board, name string) *assign.SkillRow {
	for i := range b.Skills {
		if b.Skills[i].Name == name {
			return &b.Skills[i]
		}
	}
	return nil
}

func findRow(rows []assign.Row, name string) *assign.Row {
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i]
		}
	}
	return nil
}
