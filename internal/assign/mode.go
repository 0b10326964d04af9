// Package assign holds the assignment state machine: per-item
// destination modes across the four catalogs, the registered project
// list, cursor/tab navigation and the project-picker modal, plus the
// deploy plan built from all of it.
package assign

import "strings"

// ModeKind is the destination classification of an item.
type ModeKind int

const (
	ModeGlobal ModeKind = iota
	ModeProject
	ModeSkip
)

// Mode is an item's assigned destination. Project mode carries an
// ordered list of project aliases; an empty alias list is a transient
// editing state that reads as Skip and never survives a modal confirm.
type Mode struct {
	Kind    ModeKind
	Aliases []string
}

func Global() Mode { return Mode{Kind: ModeGlobal} }
func Skip() Mode { return Mode{Kind: ModeSkip} }
func Project(aliases []string) Mode {
	return Mode{Kind: ModeProject, Aliases: aliases}
}

func (m Mode) IsGlobal() bool { return m.Kind == ModeGlobal }

// IsSkip reports whether the mode deploys nothing. Project mode with no
// aliases counts as skip.
func (m Mode) IsSkip() bool {
	return m.Kind == ModeSkip || (m.Kind == ModeProject && len(m.Aliases) == 0)
}

// Badge is the short mode label shown in the mode column.
func (m Mode) Badge() string {
	switch m.Kind {
	case ModeGlobal:
		return "GLOBAL"
	case ModeProject:
		return "PROJECT"
	default:
		return "SKIP"
	}
}

// ProjectLabel is the comma-joined alias list for the right column, or
// "" for non-project modes and empty alias lists.
func (m Mode) ProjectLabel() string {
	if m.Kind != ModeProject || len(m.Aliases) == 0 {
		return ""
	}
	return strings.Join(m.Aliases, ", ")
}

// nextMode cycles Global -> Project([]) -> Skip -> Global. Without any
// registered projects the Project step is skipped.
func nextMode(current Mode, hasProjects bool) Mode {
	switch current.Kind {
	case ModeGlobal:
		if hasProjects {
			return Project(nil)
		}
		return Skip()
	case ModeProject:
		return Skip()
	default:
		return Global()
	}
}
