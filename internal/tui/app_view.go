package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rig-cli/internal/assign"
)

func (m appModel) View() string {
	switch m.mode {
	case modeConfirming, modeDeploying, modeDone:
		return m.viewOutput()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch m.mode {
	case modeAddProject:
		b.WriteString(m.viewTab())
		b.WriteString("\n")
		b.WriteString("  Add project path: " + m.pathInput.View() + "\n")
		b.WriteString(styleMuted().Render("  enter confirm · tab complete · esc cancel"))
	case modeEditAlias:
		b.WriteString(m.viewTab())
		b.WriteString("\n")
		b.WriteString("  Rename " + m.editAlias + ": " + m.aliasInput.View() + "\n")
		b.WriteString(styleMuted().Render("  enter confirm · esc cancel"))
	case modeSelectProjects:
		b.WriteString(m.viewProjectModal())
	default:
		b.WriteString(m.viewTab())
		b.WriteString("\n")
		b.WriteString(m.viewFooter())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render("  " + m.statusMsg))
	}
	return b.String()
}

func (m appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(" rig ")
	var tabs []string
	for i, name := range assign.TabNames {
		label := fmt.Sprintf(" %s ", name)
		if assign.Tab(i) == m.board.ActiveTab {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Underline(true).Render(label))
		} else {
			tabs = append(tabs, styleMuted().Render(label))
		}
	}

	var counts []string
	for _, c := range m.board.TargetCounts() {
		counts = append(counts, fmt.Sprintf("%s %d", c.Label, c.Count))
	}

	return title + strings.Join(tabs, "|") + "   " + styleMuted().Render(strings.Join(counts, "  "))
}

func (m appModel) viewTab() string {
	switch m.board.ActiveTab {
	case assign.TabSkills:
		return m.viewSkills()
	case assign.TabHooks:
		return m.viewRows(m.board.Hooks)
	case assign.TabMcp:
		return m.viewRows(m.board.MCP)
	case assign.TabPermissions:
		return m.viewRows(m.board.Permissions)
	default:
		return m.viewProjects()
	}
}

func (m appModel) viewSkills() string {
	if len(m.board.Skills) == 0 {
		return styleMuted().Render("  (no skills found)")
	}
	var lines []string
	cursor, hasCursor := m.board.CurrentFlatPos()
	for i, skill := range m.board.Skills {
		selected := hasCursor && cursor.Skill == i && cursor.Script == -1
		lines = append(lines, m.renderItemLine(skill.Name, skill.Description, skill.Enabled, skill.Mode, selected))
		for j, sc := range skill.Scripts {
			scriptSel := hasCursor && cursor.Skill == i && cursor.Script == j
			lines = append(lines, m.renderScriptLine(sc, skill, scriptSel))
		}
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderScriptLine(sc assign.ScriptRow, owner assign.SkillRow, selected bool) string {
	check := "[ ]"
	if sc.OnPath {
		check = "[x]"
	}
	line := fmt.Sprintf("      └ %s %s on PATH", check, sc.Name)
	st := styleMuted()
	if owner.Enabled && owner.Mode.IsGlobal() {
		st = lipgloss.NewStyle()
	}
	if selected {
		st = st.Background(colorSelBg)
	}
	return st.Render(line)
}

func (m appModel) viewRows(rows []assign.Row) string {
	if len(rows) == 0 {
		return styleMuted().Render("  (nothing found)")
	}
	var lines []string
	for i, row := range rows {
		selected := m.board.Cursor() == i
		lines = append(lines, m.renderItemLine(row.Name, row.Description, row.Enabled, row.Mode, selected))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderItemLine(name, desc string, enabled bool, mode assign.Mode, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	if !enabled {
		line := fmt.Sprintf("%s%-24s (disabled)", marker, name)
		return lipgloss.NewStyle().Foreground(colorDisabled).Render(line)
	}

	badge := styleBadge(mode).Render(fmt.Sprintf("[%s]", mode.Badge()))
	line := fmt.Sprintf("%s%-24s %s", marker, name, badge)
	if label := mode.ProjectLabel(); label != "" {
		line += " " + lipgloss.NewStyle().Foreground(colorProject).Render(label)
	}
	if desc != "" {
		line += "  " + styleMuted().Render(desc)
	}
	if selected {
		return lipgloss.NewStyle().Background(colorSelBg).Render(line)
	}
	return line
}

func (m appModel) viewProjects() string {
	if len(m.board.Projects) == 0 {
		return styleMuted().Render("  (no projects; press a to add one)")
	}
	var lines []string
	for i, p := range m.board.Projects {
		marker := "  "
		if m.board.Cursor() == i {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-16s %s", marker, p.Alias, p.Path)
		if m.board.Cursor() == i {
			line = lipgloss.NewStyle().Background(colorSelBg).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewProjectModal() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(" Select projects: "+m.board.ModalItem))
	for i, p := range m.board.Projects {
		check := "[ ]"
		if i < len(m.board.ModalChecks) && m.board.ModalChecks[i] {
			check = "[x]"
		}
		marker := "  "
		if m.board.ModalCursor == i {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf(" %s%s %-16s %s", marker, check, p.Alias, p.Path))
	}
	lines = append(lines, styleMuted().Render(" space toggle · enter confirm · esc cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m appModel) viewOutput() string {
	var title string
	switch m.mode {
	case modeConfirming:
		title = " Deploy Preview "
	case modeDeploying:
		title = " Deploying... "
	default:
		title = " Deploy Complete "
	}

	var footer string
	switch m.mode {
	case modeConfirming:
		footer = "y confirm · n cancel · j/k scroll"
	case modeDeploying:
		footer = "running..."
	default:
		footer = "q back · j/k scroll · g/G top/bottom"
	}

	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title) + "\n" +
		m.output.View() + "\n" +
		styleMuted().Render("  "+footer)
}

func (m appModel) viewFooter() string {
	var hints []string
	switch m.board.ActiveTab {
	case assign.TabProjects:
		hints = []string{"a add", "e rename", "d delete"}
	case assign.TabHooks:
		hints = []string{"space global/skip", "a all global", "s skip all"}
	case assign.TabSkills:
		hints = []string{"space cycle", "p projects", "o PATH", "a all global", "s skip all"}
	default:
		hints = []string{"space cycle", "p projects", "a all global", "s skip all"}
	}
	hints = append(hints, "tab switch", "enter deploy", "q quit")
	return styleMuted().Render("  " + strings.Join(hints, " · "))
}
