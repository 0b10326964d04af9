package assign

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotDirectory is returned when an added project path does not
	// name an existing directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrDuplicateProject is returned when a path is already registered.
	ErrDuplicateProject = errors.New("project already registered")
	// ErrDuplicateAlias is returned when a rename would collide with a
	// live alias.
	ErrDuplicateAlias = errors.New("alias already in use")
)

// AddProject registers a deploy destination. The path must be an
// existing directory and not already registered (after
// canonicalization). The alias defaults to the final path element,
// disambiguated with -2, -3, ... on collision.
func (b *Board) AddProject(path string) (ProjectEntry, error) {
	path = strings.TrimSpace(path)
	st, err := os.Stat(path)
	if err != nil || !st.IsDir() {
		return ProjectEntry{}, fmt.Errorf("add project %q: %w", path, ErrNotDirectory)
	}
	canonical := canonicalPath(path)
	for _, p := range b.Projects {
		if p.Path == canonical {
			return ProjectEntry{}, fmt.Errorf("add project %q: %w", path, ErrDuplicateProject)
		}
	}
	base := filepath.Base(canonical)
	if base == "/" || base == "." {
		base = "project"
	}
	entry := ProjectEntry{Path: canonical, Alias: b.uniqueAlias(base)}
	b.Projects = append(b.Projects, entry)
	return entry, nil
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func (b *Board) uniqueAlias(base string) string {
	if !b.aliasTaken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !b.aliasTaken(candidate) {
			return candidate
		}
	}
}

func (b *Board) aliasTaken(alias string) bool {
	for _, p := range b.Projects {
		if p.Alias == alias {
			return true
		}
	}
	return false
}

// RenameProject changes a project's alias and cascades the rename into
// every item's alias list. The new alias must be non-empty and unique
// among live projects.
func (b *Board) RenameProject(oldAlias, newAlias string) error {
	newAlias = strings.TrimSpace(newAlias)
	if newAlias == "" {
		return errors.New("rename project: empty alias")
	}
	if newAlias == oldAlias {
		return nil
	}
	if b.aliasTaken(newAlias) {
		return fmt.Errorf("rename project %q: %w", newAlias, ErrDuplicateAlias)
	}
	found := false
	for i := range b.Projects {
		if b.Projects[i].Alias == oldAlias {
			b.Projects[i].Alias = newAlias
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("rename project: unknown alias %q", oldAlias)
	}

	rename := func(m *Mode) {
		if m.Kind != ModeProject {
			return
		}
		for i, a := range m.Aliases {
			if a == oldAlias {
				m.Aliases[i] = newAlias
			}
		}
	}
	for i := range b.Skills {
		rename(&b.Skills[i].Mode)
	}
	for _, rows := range [][]Row{b.Hooks, b.MCP, b.Permissions} {
		for i := range rows {
			rename(&rows[i].Mode)
		}
	}
	return nil
}

// DeleteProject removes a project and cascades the alias removal into
// every item. Items left with an empty alias list collapse to Skip;
// skills leaving Global drop their PATH flags.
func (b *Board) DeleteProject(alias string) bool {
	idx := -1
	for i, p := range b.Projects {
		if p.Alias == alias {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	b.Projects = append(b.Projects[:idx], b.Projects[idx+1:]...)

	remove := func(m *Mode) {
		if m.Kind != ModeProject {
			return
		}
		kept := m.Aliases[:0]
		for _, a := range m.Aliases {
			if a != alias {
				kept = append(kept, a)
			}
		}
		m.Aliases = kept
		if len(m.Aliases) == 0 {
			*m = Skip()
		}
	}
	for i := range b.Skills {
		remove(&b.Skills[i].Mode)
		if !b.Skills[i].Mode.IsGlobal() {
			clearOnPath(&b.Skills[i])
		}
	}
	for _, rows := range [][]Row{b.Hooks, b.MCP, b.Permissions} {
		for i := range rows {
			remove(&rows[i].Mode)
		}
	}

	// Keep the Projects-tab cursor in range.
	if len(b.Projects) > 0 && b.cursors[TabProjects] >= len(b.Projects) {
		b.cursors[TabProjects] = len(b.Projects) - 1
	}
	return true
}

// ProjectPath resolves an alias to its registered path.
func (b *Board) ProjectPath(alias string) (string, bool) {
	for _, p := range b.Projects {
		if p.Alias == alias {
			return p.Path, true
		}
	}
	return "", false
}
