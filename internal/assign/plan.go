package assign

import "sort"

// Plan is the partitioned execution set for one deploy session: one
// global pass plus one pass per target project. Built fresh on every
// deploy request and immutable once built.
type Plan struct {
	GlobalItems   []string
	ProjectItems  []ProjectPass
	OnPathScripts map[string][]string
}

// ProjectPass is the item list for one project-scoped pass.
type ProjectPass struct {
	Path  string
	Items []string
}

// IsEmpty reports whether the plan would run zero passes.
func (p Plan) IsEmpty() bool {
	return len(p.GlobalItems) == 0 && len(p.ProjectItems) == 0
}

// BuildPlan partitions every enabled item by its mode: Global items go
// to the global pass, each alias of a Project item resolves to its
// project's pass, Skip contributes nothing. PATH scripts are collected
// only for enabled Global skills with at least one checked script.
// The result is a pure function of board state; project passes are
// ordered by path and script lists sorted, so repeated builds with no
// edits in between are identical.
func (b *Board) BuildPlan() Plan {
	plan := Plan{OnPathScripts: map[string][]string{}}
	projectMap := map[string][]string{}

	collect := func(name string, enabled bool, mode Mode) {
		if !enabled {
			return
		}
		switch mode.Kind {
		case ModeGlobal:
			plan.GlobalItems = append(plan.GlobalItems, name)
		case ModeProject:
			for _, alias := range mode.Aliases {
				if path, ok := b.ProjectPath(alias); ok {
					projectMap[path] = append(projectMap[path], name)
				}
			}
		}
	}

	for _, s := range b.Skills {
		collect(s.Name, s.Enabled, s.Mode)
	}
	for _, rows := range [][]Row{b.Hooks, b.MCP, b.Permissions} {
		for _, r := range rows {
			collect(r.Name, r.Enabled, r.Mode)
		}
	}

	for _, s := range b.Skills {
		if !s.Enabled || !s.Mode.IsGlobal() {
			continue
		}
		var checked []string
		for _, sc := range s.Scripts {
			if sc.OnPath {
				checked = append(checked, sc.Name)
			}
		}
		if len(checked) > 0 {
			sort.Strings(checked)
			plan.OnPathScripts[s.Name] = checked
		}
	}

	paths := make([]string, 0, len(projectMap))
	for path := range projectMap {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		plan.ProjectItems = append(plan.ProjectItems, ProjectPass{Path: path, Items: projectMap[path]})
	}
	return plan
}
