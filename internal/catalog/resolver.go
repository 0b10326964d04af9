package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// itemManifest is the optional per-item deploy.yaml. Absent fields keep
// their defaults (enabled, global scope).
type itemManifest struct {
	Enabled     *bool  `yaml:"enabled"`
	Scope       string `yaml:"scope"`
	Description string `yaml:"description"`
}

// DirResolver discovers items by scanning the category directories
// under the repo root (skills/, hooks/, mcp/, permissions/). Each item
// is a subdirectory; an optional deploy.yaml inside it supplies
// enabled/scope/description. Skill scripts are the files under
// skills/<name>/bin/.
type DirResolver struct{}

func (DirResolver) Resolve(repoRoot string) (*Catalog, error) {
	if repoRoot == "" {
		return nil, errors.New("catalog: empty repo root")
	}
	st, err := os.Stat(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("catalog: repo root: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("catalog: repo root %s is not a directory", repoRoot)
	}

	cat := &Catalog{RepoRoot: repoRoot}

	skills, err := scanCategory(repoRoot, "skills", CategorySkill)
	if err != nil {
		return nil, err
	}
	for _, it := range skills {
		cat.Skills = append(cat.Skills, SkillEntry{
			Item:    it,
			Scripts: scanScripts(repoRoot, it.Name),
		})
	}

	if cat.Hooks, err = scanCategory(repoRoot, "hooks", CategoryHook); err != nil {
		return nil, err
	}
	if cat.MCP, err = scanCategory(repoRoot, "mcp", CategoryMcp); err != nil {
		return nil, err
	}
	if cat.Permissions, err = scanCategory(repoRoot, "permissions", CategoryPermission); err != nil {
		return nil, err
	}
	return cat, nil
}

func scanCategory(repoRoot, dir string, cat Category) ([]Item, error) {
	catDir := filepath.Join(repoRoot, dir)
	entries, err := os.ReadDir(catDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", catDir, err)
	}

	var items []Item
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		m := readManifest(filepath.Join(catDir, name, "deploy.yaml"))
		enabled := true
		if m.Enabled != nil {
			enabled = *m.Enabled
		}
		scope := m.Scope
		if scope == "" {
			scope = "global"
		}
		items = append(items, Item{
			Name:        name,
			Enabled:     enabled,
			Scope:       scope,
			Description: m.Description,
			Category:    cat,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// readManifest is best-effort: a missing or malformed manifest means
// defaults, never an error (catalog drift between sessions is routine).
func readManifest(path string) itemManifest {
	var m itemManifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m
	}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return itemManifest{}
	}
	return m
}

func scanScripts(repoRoot, skillName string) []Script {
	binDir := filepath.Join(repoRoot, "skills", skillName, "bin")
	entries, err := os.ReadDir(binDir)
	if err != nil {
		return nil
	}
	var scripts []Script
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		scripts = append(scripts, Script{Name: e.Name()})
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	return scripts
}
