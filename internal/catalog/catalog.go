// Package catalog models the deployable items discovered in a repo:
// skills, hooks, MCP servers and permission groups.
//
// Items are immutable once discovered. Assignment state lives elsewhere
// (internal/assign); this package only describes what exists.
package catalog

import "fmt"

// Category identifies which of the four item kinds an item belongs to.
type Category int

const (
	CategorySkill Category = iota
	CategoryHook
	CategoryMcp
	CategoryPermission
)

// String returns the display header used in deploy logs and the UI
// ("Skills", "Hooks", "MCP", "Permissions").
func (c Category) String() string {
	switch c {
	case CategorySkill:
		return "Skills"
	case CategoryHook:
		return "Hooks"
	case CategoryMcp:
		return "MCP"
	case CategoryPermission:
		return "Permissions"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Item is one deployable unit. Enabled=false items are shown but never
// selectable or deployed.
type Item struct {
	Name        string
	Enabled     bool
	Scope       string
	Description string
	Category    Category
}

// Script is an executable inside a skill's bin/ directory. OnPath is
// assignment state, not discovery state, so it lives in internal/assign;
// here a script is just a name.
type Script struct {
	Name string
}

// SkillEntry is a skill item plus its discovered scripts.
type SkillEntry struct {
	Item
	Scripts []Script
}

// Catalog is the full discovery result across all four categories.
type Catalog struct {
	RepoRoot    string
	Skills      []SkillEntry
	Hooks       []Item
	MCP         []Item
	Permissions []Item
}

// Resolver produces a catalog for a repo root. The real config-layer
// merge lives in an external tool; implementations here only need to
// answer "what items exist and are they enabled".
type Resolver interface {
	Resolve(repoRoot string) (*Catalog, error)
}
