package assign

import (
	"rig-cli/internal/catalog"
)

// Tab indexes into the fixed tab order.
type Tab int

const (
	TabSkills Tab = iota
	TabHooks
	TabMcp
	TabPermissions
	TabProjects
	tabCount
)

// TabNames are the display labels in tab order.
var TabNames = [tabCount]string{"Skills", "Hooks", "MCP", "Permissions", "Projects"}

// ScriptRow is a script under a skill header in the flattened Skills
// list. OnPath only means anything while the owning skill is Global.
type ScriptRow struct {
	Name   string
	OnPath bool
}

// SkillRow is a skill with its child script rows.
type SkillRow struct {
	Name        string
	Enabled     bool
	Scope       string
	Description string
	Mode        Mode
	Scripts     []ScriptRow
}

// Row is a hook, MCP server or permission group.
type Row struct {
	Name        string
	Enabled     bool
	Scope       string
	Description string
	Mode        Mode
}

// ProjectEntry is a registered deploy destination. Aliases are unique
// among live projects at all times.
type ProjectEntry struct {
	Path  string
	Alias string
}

// Board is the whole assignment state: rows for the four catalogs, the
// project list, per-tab cursors and the project-picker modal snapshot.
// It is owned outright by the event loop; nothing here locks.
type Board struct {
	ActiveTab Tab
	cursors   [tabCount]int

	Skills      []SkillRow
	Hooks       []Row
	MCP         []Row
	Permissions []Row
	Projects    []ProjectEntry

	// Project-picker modal. savedMode is the one-level revert snapshot,
	// set on open and cleared on confirm/cancel.
	ModalItem   string
	ModalCursor int
	ModalChecks []bool
	savedMode   *Mode
}

// NewBoard builds the initial board from a catalog. Enabled items start
// Global, disabled ones Skip.
func NewBoard(cat *catalog.Catalog) *Board {
	b := &Board{}
	for _, s := range cat.Skills {
		row := SkillRow{
			Name:        s.Name,
			Enabled:     s.Enabled,
			Scope:       s.Scope,
			Description: s.Description,
			Mode:        initialMode(s.Enabled),
		}
		for _, sc := range s.Scripts {
			row.Scripts = append(row.Scripts, ScriptRow{Name: sc.Name})
		}
		b.Skills = append(b.Skills, row)
	}
	b.Hooks = makeRows(cat.Hooks)
	b.MCP = makeRows(cat.MCP)
	b.Permissions = makeRows(cat.Permissions)
	return b
}

func makeRows(items []catalog.Item) []Row {
	var rows []Row
	for _, it := range items {
		rows = append(rows, Row{
			Name:        it.Name,
			Enabled:     it.Enabled,
			Scope:       it.Scope,
			Description: it.Description,
			Mode:        initialMode(it.Enabled),
		})
	}
	return rows
}

func initialMode(enabled bool) Mode {
	if enabled {
		return Global()
	}
	return Skip()
}

// ---------------------------------------------------------------------------
// Tab and cursor navigation
// ---------------------------------------------------------------------------

func (b *Board) NextTab() { b.ActiveTab = (b.ActiveTab + 1) % tabCount }

func (b *Board) PrevTab() {
	if b.ActiveTab == 0 {
		b.ActiveTab = tabCount - 1
		return
	}
	b.ActiveTab--
}

// Cursor is the flat row index within the active tab.
func (b *Board) Cursor() int { return b.cursors[b.ActiveTab] }

func (b *Board) setCursor(v int) { b.cursors[b.ActiveTab] = v }

// SetCursor clamps and sets the cursor for a specific tab. Exists for
// tests and state restoration; interactive movement goes through
// MoveUp/MoveDown.
func (b *Board) SetCursor(tab Tab, v int) {
	if v < 0 {
		v = 0
	}
	b.cursors[tab] = v
}

func (b *Board) rowCount() int {
	switch b.ActiveTab {
	case TabSkills:
		return b.FlatLen()
	case TabHooks:
		return len(b.Hooks)
	case TabMcp:
		return len(b.MCP)
	case TabPermissions:
		return len(b.Permissions)
	case TabProjects:
		return len(b.Projects)
	default:
		return 0
	}
}

// MoveUp moves the cursor to the previous selectable row, wrapping.
func (b *Board) MoveUp() { b.move(-1) }

// MoveDown moves the cursor to the next selectable row, wrapping.
func (b *Board) MoveDown() { b.move(1) }

func (b *Board) move(delta int) {
	count := b.rowCount()
	if count == 0 {
		return
	}
	start := b.Cursor()
	pos := start
	for {
		pos = (pos + delta + count) % count
		if pos == start {
			return
		}
		if b.selectable(pos) {
			b.setCursor(pos)
			return
		}
	}
}

// selectable reports whether the flat row at idx can take the cursor.
// Disabled items are skipped; script rows are skipped unless their
// owning skill is enabled and Global; project rows always qualify.
func (b *Board) selectable(idx int) bool {
	switch b.ActiveTab {
	case TabSkills:
		pos, ok := b.FlatPos(idx)
		if !ok {
			return false
		}
		skill := b.Skills[pos.Skill]
		if pos.Script < 0 {
			return skill.Enabled
		}
		return skill.Enabled && skill.Mode.IsGlobal()
	case TabHooks:
		return idx < len(b.Hooks) && b.Hooks[idx].Enabled
	case TabMcp:
		return idx < len(b.MCP) && b.MCP[idx].Enabled
	case TabPermissions:
		return idx < len(b.Permissions) && b.Permissions[idx].Enabled
	case TabProjects:
		return idx < len(b.Projects)
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Flat skills view
// ---------------------------------------------------------------------------

// FlatPosition locates a flat Skills-tab index: Script is the script
// index under Skill, or -1 for the skill header row itself.
type FlatPosition struct {
	Skill  int
	Script int
}

// FlatLen is the number of rows in the flattened Skills list.
func (b *Board) FlatLen() int {
	n := 0
	for _, s := range b.Skills {
		n += 1 + len(s.Scripts)
	}
	return n
}

// FlatPos maps a flat index to its skill/script position.
func (b *Board) FlatPos(flat int) (FlatPosition, bool) {
	idx := 0
	for si, s := range b.Skills {
		if idx == flat {
			return FlatPosition{Skill: si, Script: -1}, true
		}
		idx++
		if flat < idx+len(s.Scripts) {
			return FlatPosition{Skill: si, Script: flat - idx}, true
		}
		idx += len(s.Scripts)
	}
	return FlatPosition{}, false
}

// FlatIndex maps a skill/script position back to its flat index.
func (b *Board) FlatIndex(pos FlatPosition) int {
	idx := 0
	for si, s := range b.Skills {
		if si == pos.Skill {
			if pos.Script < 0 {
				return idx
			}
			return idx + 1 + pos.Script
		}
		idx += 1 + len(s.Scripts)
	}
	return idx
}

// CurrentFlatPos returns the cursor's position in the Skills tab.
func (b *Board) CurrentFlatPos() (FlatPosition, bool) {
	if b.ActiveTab != TabSkills {
		return FlatPosition{}, false
	}
	return b.FlatPos(b.Cursor())
}

// ---------------------------------------------------------------------------
// Mode editing
// ---------------------------------------------------------------------------

// CycleTarget advances the mode of the row under the cursor:
// Global -> Project([]) -> Skip -> Global when projects exist, else
// Global <-> Skip. Hooks never take the Project step; they have no
// project-scoped destination.
func (b *Board) CycleTarget() {
	hasProjects := len(b.Projects) > 0
	switch b.ActiveTab {
	case TabSkills:
		pos, ok := b.CurrentFlatPos()
		if !ok || pos.Script >= 0 {
			return
		}
		skill := &b.Skills[pos.Skill]
		if !skill.Enabled {
			return
		}
		skill.Mode = nextMode(skill.Mode, hasProjects)
		if !skill.Mode.IsGlobal() {
			clearOnPath(skill)
		}
	case TabHooks:
		if row := b.hookAt(b.Cursor()); row != nil && row.Enabled {
			if row.Mode.IsGlobal() {
				row.Mode = Skip()
			} else {
				row.Mode = Global()
			}
		}
	case TabMcp:
		if row := rowAt(b.MCP, b.Cursor()); row != nil && row.Enabled {
			row.Mode = nextMode(row.Mode, hasProjects)
		}
	case TabPermissions:
		if row := rowAt(b.Permissions, b.Cursor()); row != nil && row.Enabled {
			row.Mode = nextMode(row.Mode, hasProjects)
		}
	}
}

func (b *Board) hookAt(idx int) *Row { return rowAt(b.Hooks, idx) }

func rowAt(rows []Row, idx int) *Row {
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	return &rows[idx]
}

// ToggleOnPath flips the PATH flag of the script row under the cursor.
// Only effective while the owning skill is enabled and Global.
func (b *Board) ToggleOnPath() {
	pos, ok := b.CurrentFlatPos()
	if !ok || pos.Script < 0 {
		return
	}
	skill := &b.Skills[pos.Skill]
	if skill.Enabled && skill.Mode.IsGlobal() {
		skill.Scripts[pos.Script].OnPath = !skill.Scripts[pos.Script].OnPath
	}
}

func clearOnPath(skill *SkillRow) {
	for i := range skill.Scripts {
		skill.Scripts[i].OnPath = false
	}
}

// CurrentItemName names the item under the cursor, if the cursor is on
// an item row (skill header or simple row; not scripts or projects).
func (b *Board) CurrentItemName() (string, bool) {
	switch b.ActiveTab {
	case TabSkills:
		pos, ok := b.CurrentFlatPos()
		if !ok || pos.Script >= 0 {
			return "", false
		}
		return b.Skills[pos.Skill].Name, true
	case TabHooks:
		if row := b.hookAt(b.Cursor()); row != nil {
			return row.Name, true
		}
	case TabMcp:
		if row := rowAt(b.MCP, b.Cursor()); row != nil {
			return row.Name, true
		}
	case TabPermissions:
		if row := rowAt(b.Permissions, b.Cursor()); row != nil {
			return row.Name, true
		}
	}
	return "", false
}

// itemMode finds an item's mode by name across all four catalogs.
func (b *Board) itemMode(name string) (Mode, bool) {
	for i := range b.Skills {
		if b.Skills[i].Name == name {
			return b.Skills[i].Mode, true
		}
	}
	for _, rows := range [][]Row{b.Hooks, b.MCP, b.Permissions} {
		for i := range rows {
			if rows[i].Name == name {
				return rows[i].Mode, true
			}
		}
	}
	return Mode{}, false
}

// setItemMode applies a mode to an item by name. Hooks are excluded:
// they never enter project mode, so the picker never targets them.
func (b *Board) setItemMode(name string, mode Mode) {
	for i := range b.Skills {
		if b.Skills[i].Name == name {
			b.Skills[i].Mode = mode
			if !mode.IsGlobal() {
				clearOnPath(&b.Skills[i])
			}
			return
		}
	}
	for _, rows := range [][]Row{b.MCP, b.Permissions} {
		for i := range rows {
			if rows[i].Name == name {
				rows[i].Mode = mode
				return
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Project-picker modal
// ---------------------------------------------------------------------------

// ModalOpen reports whether a picker is in progress.
func (b *Board) ModalOpen() bool { return b.savedMode != nil }

// OpenProjectModal snapshots the item's current mode for cancel-revert
// and seeds one checkbox per live project from the item's alias list.
// No-op when no projects are registered.
func (b *Board) OpenProjectModal(itemName string) {
	if len(b.Projects) == 0 {
		return
	}
	mode, ok := b.itemMode(itemName)
	if !ok {
		return
	}
	saved := mode
	b.savedMode = &saved
	b.ModalItem = itemName
	b.ModalCursor = 0

	current := map[string]bool{}
	if mode.Kind == ModeProject {
		for _, a := range mode.Aliases {
			current[a] = true
		}
	}
	b.ModalChecks = make([]bool, len(b.Projects))
	for i, p := range b.Projects {
		b.ModalChecks[i] = current[p.Alias]
	}
}

// ModalUp moves the picker cursor up (no wrap).
func (b *Board) ModalUp() {
	if b.ModalCursor > 0 {
		b.ModalCursor--
	}
}

// ModalDown moves the picker cursor down (no wrap).
func (b *Board) ModalDown() {
	if b.ModalCursor+1 < len(b.ModalChecks) {
		b.ModalCursor++
	}
}

// ToggleModalCheck flips the checkbox under the picker cursor.
func (b *Board) ToggleModalCheck() {
	if b.ModalCursor < len(b.ModalChecks) {
		b.ModalChecks[b.ModalCursor] = !b.ModalChecks[b.ModalCursor]
	}
}

// ConfirmProjectModal rebuilds the item's mode from the checked
// aliases: Project(checked) or Skip when nothing is checked. Clears the
// revert snapshot.
func (b *Board) ConfirmProjectModal() {
	var selected []string
	for i, p := range b.Projects {
		if i < len(b.ModalChecks) && b.ModalChecks[i] {
			selected = append(selected, p.Alias)
		}
	}
	mode := Skip()
	if len(selected) > 0 {
		mode = Project(selected)
	}
	b.setItemMode(b.ModalItem, mode)
	b.savedMode = nil
}

// CancelProjectModal restores the snapshotted mode verbatim. The modal
// must be explorable without side effects.
func (b *Board) CancelProjectModal() {
	if b.savedMode != nil {
		b.setItemMode(b.ModalItem, *b.savedMode)
		b.savedMode = nil
	}
}

// ---------------------------------------------------------------------------
// Bulk operations
// ---------------------------------------------------------------------------

// AllGlobal sets every enabled item across all four catalogs to Global.
func (b *Board) AllGlobal() { b.bulkSet(Global()) }

// SkipAll sets every enabled item to Skip and clears all PATH flags.
func (b *Board) SkipAll() { b.bulkSet(Skip()) }

func (b *Board) bulkSet(mode Mode) {
	for i := range b.Skills {
		if b.Skills[i].Enabled {
			b.Skills[i].Mode = mode
			if !mode.IsGlobal() {
				clearOnPath(&b.Skills[i])
			}
		}
	}
	for _, rows := range [][]Row{b.Hooks, b.MCP, b.Permissions} {
		for i := range rows {
			if rows[i].Enabled {
				rows[i].Mode = mode
			}
		}
	}
}

// TargetCounts tallies enabled items per mode badge, in first-seen
// order, for the header summary.
func (b *Board) TargetCounts() []ModeCount {
	var counts []ModeCount
	add := func(m Mode) {
		label := m.Badge()
		for i := range counts {
			if counts[i].Label == label {
				counts[i].Count++
				return
			}
		}
		counts = append(counts, ModeCount{Label: label, Count: 1})
	}
	for _, s := range b.Skills {
		if s.Enabled {
			add(s.Mode)
		}
	}
	for _, rows := range [][]Row{b.Hooks, b.MCP, b.Permissions} {
		for _, r := range rows {
			if r.Enabled {
				add(r.Mode)
			}
		}
	}
	return counts
}

// ModeCount is one entry of TargetCounts.
type ModeCount struct {
	Label string
	Count int
}
