package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"rig-cli/internal/assign"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal
// backgrounds, so colors are lipgloss.AdaptiveColor pairs and "faint"
// styling is only applied on dark backgrounds (faint text on light
// terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("25", "39")
	colorGlobal   lipgloss.TerminalColor = ac("28", "40")
	colorProject  lipgloss.TerminalColor = ac("130", "214")
	colorDisabled lipgloss.TerminalColor = ac("245", "240")
	colorError    lipgloss.TerminalColor = ac("124", "203")
	colorSelBg    lipgloss.TerminalColor = ac("254", "236")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleBadge(m assign.Mode) lipgloss.Style {
	switch {
	case m.IsGlobal():
		return lipgloss.NewStyle().Foreground(colorGlobal).Bold(true)
	case m.IsSkip():
		return styleMuted()
	default:
		return lipgloss.NewStyle().Foreground(colorProject).Bold(true)
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile before the
// program starts. Only NO_COLOR disables colors; otherwise the TUI
// follows the terminal's capabilities, upgraded when TERM/COLORTERM
// indicate more than the detector reports.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}
